package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/figreact"
	"github.com/fwojciec/figreact/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	tc, err := gemini.NewTokenCounter("gemini-2.0-flash")
	require.NoError(t, err)

	var _ figreact.TokenCounter = tc

	t.Run("counts tokens in a module", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), `const App = () => <div className="row">Hello</div>;`)

		require.NoError(t, err)
		assert.Positive(t, count)
	})

	t.Run("empty string returns zero", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "")

		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("extracted module counts fewer tokens than the original", func(t *testing.T) {
		t.Parallel()

		original := `<ul>
  <li className="item"><span>One</span></li>
  <li className="item"><span>Two</span></li>
  <li className="item"><span>Three</span></li>
  <li className="item"><span>Four</span></li>
</ul>`
		extracted := `<ul>
  <Extracted1 />
  <Extracted1 />
  <Extracted1 />
  <Extracted1 />
</ul>`
		ctx := context.Background()

		before, err := tc.CountTokens(ctx, original)
		require.NoError(t, err)
		after, err := tc.CountTokens(ctx, extracted)
		require.NoError(t, err)

		assert.Less(t, after, before)
	})
}
