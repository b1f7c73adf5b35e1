package figreact_test

import (
	"testing"

	"github.com/fwojciec/figreact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsComponentName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag  string
		want bool
	}{
		{"div", false},
		{"span", false},
		{"", false},
		{"Icon", true},
		{"Card", true},
		{"motion.div", true},
		{"Foo.Bar", true},
		{"_private", false},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, figreact.IsComponentName(tt.tag))
		})
	}
}

func TestIsIdentifier(t *testing.T) {
	t.Parallel()

	assert.True(t, figreact.IsIdentifier("Extracted"))
	assert.True(t, figreact.IsIdentifier("Card_2"))
	assert.True(t, figreact.IsIdentifier("$el"))
	assert.False(t, figreact.IsIdentifier(""))
	assert.False(t, figreact.IsIdentifier("2Card"))
	assert.False(t, figreact.IsIdentifier("My Card"))
	assert.False(t, figreact.IsIdentifier("my-card"))
}

func TestNode_IsSignificant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node *figreact.Node
		want bool
	}{
		{name: "nil", node: nil, want: false},
		{name: "element", node: figreact.NewElement("div", nil), want: true},
		{name: "expression", node: figreact.NewExpression("{x}"), want: true},
		{name: "text", node: figreact.NewText("Hello"), want: true},
		{name: "inline space", node: figreact.NewText(" "), want: true},
		{name: "indentation", node: figreact.NewText("\n    "), want: false},
		{name: "padded text", node: figreact.NewText("\n  Hi\n"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.node.IsSignificant())
		})
	}
}

func TestNode_IsComponentRef(t *testing.T) {
	t.Parallel()

	assert.True(t, figreact.NewReference("Extracted1").IsComponentRef())
	assert.False(t, figreact.NewElement("div", nil).IsComponentRef())
	assert.False(t, figreact.NewText("Icon").IsComponentRef())
}

func TestNode_Attr(t *testing.T) {
	t.Parallel()

	n := figreact.NewElement("div", []figreact.Attribute{
		{Kind: figreact.AttrSpread, Value: "{...props}"},
		{Name: "className", Kind: figreact.AttrLiteral, Value: `"card p-4"`},
		{Name: "hidden", Kind: figreact.AttrBare},
	})

	a, ok := n.Attr("className")
	require.True(t, ok)
	assert.Equal(t, "card p-4", a.Literal())

	a, ok = n.Attr("hidden")
	require.True(t, ok)
	assert.Empty(t, a.Literal())

	_, ok = n.Attr("id")
	assert.False(t, ok)
}

func TestAttribute_Literal(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b", figreact.Attribute{Kind: figreact.AttrLiteral, Value: "'a b'"}.Literal())
	assert.Empty(t, figreact.Attribute{Kind: figreact.AttrExpression, Value: "{cls}"}.Literal())
	assert.Empty(t, figreact.Attribute{Kind: figreact.AttrLiteral, Value: `"`}.Literal())
}

func TestNode_Clone(t *testing.T) {
	t.Parallel()

	orig := figreact.NewElement("div",
		[]figreact.Attribute{{Name: "className", Kind: figreact.AttrLiteral, Value: `"a"`}},
		figreact.NewElement("p", nil, figreact.NewText("x")),
	)

	c := orig.Clone()
	c.Attrs[0].Value = `"b"`
	c.Children[0].Children[0].Data = "y"
	c.Children[0] = figreact.NewReference("Extracted1")

	assert.Equal(t, `"a"`, orig.Attrs[0].Value)
	assert.Equal(t, "p", orig.Children[0].Tag)
	assert.Equal(t, "x", orig.Children[0].Children[0].Data)
	assert.Nil(t, (*figreact.Node)(nil).Clone())
}

func TestNewElement_SelfClosing(t *testing.T) {
	t.Parallel()

	assert.True(t, figreact.NewElement("br", nil).SelfClosing)
	assert.False(t, figreact.NewElement("p", nil, figreact.NewText("x")).SelfClosing)
	assert.False(t, figreact.NewElement("", nil).SelfClosing, "fragments never self-close")
}
