// Package dedupe detects structurally repeated JSX fragments and hoists
// them into named components.
//
// A run walks every island of a document, fingerprints each element,
// groups elements sharing a fingerprint, plans which groups to extract
// (most repeated first) and rewrites the tree so every occurrence becomes
// an invocation of the new component.
package dedupe

import (
	"iter"

	"github.com/fwojciec/figreact"
)

// Elements returns the element nodes under roots in pre-order.
// Every range over the sequence walks the tree again.
// Content of expression slots is opaque and never walked.
func Elements(roots ...*figreact.Node) iter.Seq[*figreact.Node] {
	return func(yield func(*figreact.Node) bool) {
		for _, root := range roots {
			if !walk(root, yield) {
				return
			}
		}
	}
}

func walk(n *figreact.Node, yield func(*figreact.Node) bool) bool {
	if !n.IsElement() {
		return true
	}
	if !yield(n) {
		return false
	}
	for _, child := range n.Children {
		if !walk(child, yield) {
			return false
		}
	}
	return true
}

// ParentIndex maps a node to the element that owns it.
// It reflects the tree as it was when built.
type ParentIndex map[*figreact.Node]*figreact.Node

// NewParentIndex builds a ParentIndex for the trees under roots.
func NewParentIndex(roots ...*figreact.Node) ParentIndex {
	idx := make(ParentIndex)
	for n := range Elements(roots...) {
		for _, child := range n.Children {
			idx[child] = n
		}
	}
	return idx
}

// Parent returns the parent element of n.
func (p ParentIndex) Parent(n *figreact.Node) (*figreact.Node, bool) {
	parent, ok := p[n]
	return parent, ok
}

// Ancestors returns the ancestors of n, nearest first.
func (p ParentIndex) Ancestors(n *figreact.Node) iter.Seq[*figreact.Node] {
	return func(yield func(*figreact.Node) bool) {
		for parent, ok := p[n]; ok; parent, ok = p[parent] {
			if !yield(parent) {
				return
			}
		}
	}
}
