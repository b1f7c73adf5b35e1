package dedupe

import (
	"fmt"

	"github.com/fwojciec/figreact"
)

// Rewriter applies planned groups to a document in place.
type Rewriter struct {
	doc     *figreact.Document
	parents ParentIndex
}

// NewRewriter returns a Rewriter for doc. parents must be built from the
// document before any rewrite.
func NewRewriter(doc *figreact.Document, parents ParentIndex) *Rewriter {
	return &Rewriter{doc: doc, parents: parents}
}

// Apply extracts one group: it clones the example into a component,
// declares the component and replaces every occurrence, found by identity,
// with a reference to it. Occurrences that can no longer be located are
// skipped and reported as ELOOKUP diagnostics. Apply returns nil when the
// example is unreachable or no occurrence could be replaced.
func (r *Rewriter) Apply(g *Group) (*figreact.Component, []figreact.Diagnostic) {
	var diags []figreact.Diagnostic

	example := g.Example()
	if _, _, ok := r.locate(example); !ok {
		diags = append(diags, figreact.Diagnostic{
			Code:      figreact.ELOOKUP,
			Message:   "example occurrence is no longer in the tree; group skipped",
			Component: g.Name,
		})
		return nil, diags
	}

	// Clone before any replacement so the body never shares nodes with the
	// live tree.
	component := &figreact.Component{Name: g.Name, Body: example.Clone()}

	for _, n := range g.Occurrences {
		parent, i, ok := r.locate(n)
		if !ok {
			diags = append(diags, figreact.Diagnostic{
				Code:      figreact.ELOOKUP,
				Message:   "occurrence at " + position(n) + " is no longer in the tree; skipped",
				Component: g.Name,
			})
			continue
		}
		parent.Children[i] = figreact.NewReference(g.Name)
		component.References++
		r.markDirty(parent)
	}

	if component.References == 0 {
		return nil, diags
	}
	r.doc.Declare(component)
	return component, diags
}

// locate returns the parent of n and n's index among its children,
// provided the chain from n up to an island root is still intact.
func (r *Rewriter) locate(n *figreact.Node) (*figreact.Node, int, bool) {
	if n == nil {
		return nil, 0, false
	}
	parent, ok := r.parents.Parent(n)
	if !ok {
		return nil, 0, false
	}
	i := childIndex(parent, n)
	if i < 0 || !r.attached(parent) {
		return nil, 0, false
	}
	return parent, i, true
}

// attached reports whether n is still reachable from an island root.
func (r *Rewriter) attached(n *figreact.Node) bool {
	for {
		parent, ok := r.parents.Parent(n)
		if !ok {
			_, isRoot := r.doc.Island(n)
			return isRoot
		}
		if childIndex(parent, n) < 0 {
			return false
		}
		n = parent
	}
}

func (r *Rewriter) markDirty(n *figreact.Node) {
	root := n
	for ancestor := range r.parents.Ancestors(n) {
		root = ancestor
	}
	if island, ok := r.doc.Island(root); ok {
		island.MarkDirty()
	}
}

func childIndex(parent, n *figreact.Node) int {
	for i, child := range parent.Children {
		if child == n {
			return i
		}
	}
	return -1
}

func position(n *figreact.Node) string {
	return fmt.Sprintf("%d:%d", n.Pos.Line, n.Pos.Column)
}
