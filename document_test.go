package figreact_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/figreact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newDocument builds a one-island document for source, where the island
// spans the first occurrence of markup and has root as its tree.
func newDocument(t *testing.T, source, markup string, root *figreact.Node) *figreact.Document {
	t.Helper()
	start := strings.Index(source, markup)
	require.GreaterOrEqual(t, start, 0, "markup not in source")
	return &figreact.Document{
		Source: []byte(source),
		Islands: []*figreact.Island{
			{Root: root, Start: start, End: start + len(markup)},
		},
		Identifiers: map[string]bool{},
	}
}

func TestDocument_Render_UnchangedIsVerbatim(t *testing.T) {
	t.Parallel()

	source := "const App = () => <div  className='x'>\n  hi\n</div>;\n"
	root := figreact.NewElement("div", nil)
	doc := newDocument(t, source, "<div  className='x'>\n  hi\n</div>", root)

	assert.False(t, doc.Changed())
	assert.Equal(t, source, doc.Render())
}

func TestDocument_Render_CleanIslandsKeepOriginalText(t *testing.T) {
	t.Parallel()

	source := "const A = <p  id='a'>x</p>;\nconst B = <p>y</p>;\n"
	a := figreact.NewElement("p", nil)
	b := figreact.NewElement("p", nil, figreact.NewText("y"))
	doc := &figreact.Document{
		Source: []byte(source),
		Islands: []*figreact.Island{
			{Root: a, Start: 10, End: 26},
			{Root: b, Start: 38, End: 46},
		},
	}

	b.Children[0] = figreact.NewReference("Extracted1")
	doc.Islands[1].MarkDirty()

	assert.Equal(t, "const A = <p  id='a'>x</p>;\nconst B = <p><Extracted1 /></p>;\n", doc.Render())
}

func TestDocument_Render_DeclarationsAtTopWithoutImports(t *testing.T) {
	t.Parallel()

	source := "const App = () => <ul><li>a</li></ul>;\n"
	li := figreact.NewElement("li", nil, figreact.NewText("a"))
	root := figreact.NewElement("ul", nil, li)
	doc := newDocument(t, source, "<ul><li>a</li></ul>", root)

	root.Children[0] = figreact.NewReference("Extracted1")
	doc.Islands[0].MarkDirty()
	doc.Declare(&figreact.Component{Name: "Extracted1", Body: li.Clone(), References: 1})

	want := "const Extracted1 = () => (\n  <li>a</li>\n);\n\n" +
		"const App = () => <ul><Extracted1 /></ul>;\n"
	assert.Equal(t, want, doc.Render())
}

func TestDocument_Render_DeclarationsAfterImports(t *testing.T) {
	t.Parallel()

	source := "import React from 'react';\n\nexport const App = () => <ul><li>a</li></ul>;\n"
	li := figreact.NewElement("li", nil, figreact.NewText("a"))
	root := figreact.NewElement("ul", nil, li)
	doc := newDocument(t, source, "<ul><li>a</li></ul>", root)
	doc.DeclOffset = len("import React from 'react';")

	root.Children[0] = figreact.NewReference("Extracted1")
	doc.Islands[0].MarkDirty()
	doc.Declare(&figreact.Component{Name: "Extracted1", Body: li.Clone(), References: 1})

	want := "import React from 'react';\n\n" +
		"const Extracted1 = () => (\n  <li>a</li>\n);\n\n" +
		"export const App = () => <ul><Extracted1 /></ul>;\n"
	assert.Equal(t, want, doc.Render())
}

func TestDocument_Declare_PrependsLaterComponents(t *testing.T) {
	t.Parallel()

	doc := &figreact.Document{Source: []byte("x")}
	doc.Declare(&figreact.Component{Name: "Extracted1", Body: figreact.NewElement("a", nil)})
	doc.Declare(&figreact.Component{Name: "Extracted2", Body: figreact.NewElement("b", nil)})

	require.Len(t, doc.Components, 2)
	assert.Equal(t, "Extracted2", doc.Components[0].Name)
	assert.Equal(t, "Extracted1", doc.Components[1].Name)
	assert.Equal(t, "const Extracted2 = () => (\n  <b />\n);\n\nconst Extracted1 = () => (\n  <a />\n);\n\nx", doc.Render())
}

func TestDocument_Declared(t *testing.T) {
	t.Parallel()

	doc := &figreact.Document{Identifiers: map[string]bool{"Extracted1": true}}
	doc.Declare(&figreact.Component{Name: "Extracted2"})

	assert.True(t, doc.Declared("Extracted1"))
	assert.True(t, doc.Declared("Extracted2"))
	assert.False(t, doc.Declared("Extracted3"))
}

func TestDocument_Island(t *testing.T) {
	t.Parallel()

	root := figreact.NewElement("div", nil)
	doc := &figreact.Document{Islands: []*figreact.Island{{Root: root}}}

	island, ok := doc.Island(root)
	require.True(t, ok)
	assert.Same(t, root, island.Root)

	_, ok = doc.Island(figreact.NewElement("div", nil))
	assert.False(t, ok)
	assert.Equal(t, []*figreact.Node{root}, doc.Roots())
}
