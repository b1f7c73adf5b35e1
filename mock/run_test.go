package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/figreact"
	"github.com/fwojciec/figreact/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunService_ImplementsInterface(t *testing.T) {
	t.Parallel()

	var _ figreact.RunService = &mock.RunService{}
}

func TestRunService_CreateRun(t *testing.T) {
	t.Parallel()

	t.Run("delegates to CreateRunFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *figreact.Run
		s := &mock.RunService{
			CreateRunFn: func(_ context.Context, run *figreact.Run) error {
				calledWith = run
				return nil
			},
		}

		run := &figreact.Run{InputPath: "src/App.tsx", InputHash: "abc"}

		err := s.CreateRun(context.Background(), run)

		require.NoError(t, err)
		assert.Equal(t, run, calledWith)
	})

	t.Run("returns error from CreateRunFn", func(t *testing.T) {
		t.Parallel()

		s := &mock.RunService{
			CreateRunFn: func(_ context.Context, _ *figreact.Run) error {
				return figreact.Errorf(figreact.EINTERNAL, "db locked")
			},
		}

		err := s.CreateRun(context.Background(), &figreact.Run{})

		require.Error(t, err)
		assert.Equal(t, figreact.EINTERNAL, figreact.ErrorCode(err))
	})
}
