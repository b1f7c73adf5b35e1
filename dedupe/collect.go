package dedupe

import (
	"cmp"
	"slices"

	"github.com/fwojciec/figreact"
)

// Group is a set of elements sharing one signature, and so one fingerprint.
// Occurrences are borrowed references into the live tree, in discovery order.
type Group struct {
	Fingerprint figreact.Fingerprint
	Occurrences []*figreact.Node

	// Name is assigned when the group is finalized for extraction.
	Name string

	order int
}

// Example returns the occurrence used as the component body.
func (g *Group) Example() *figreact.Node {
	if len(g.Occurrences) == 0 {
		return nil
	}
	return g.Occurrences[0]
}

// Count returns the number of occurrences.
func (g *Group) Count() int {
	return len(g.Occurrences)
}

// Collector groups elements by signature and applies exclusion rules.
type Collector struct {
	MinRepeats    int
	SkipTags      map[string]bool
	Fingerprinter *Fingerprinter
}

// Collect returns the groups of at least MinRepeats occurrences, most
// repeated first; ties keep discovery order.
//
// An element is not a candidate when its tag or its parent's tag is
// skip-listed, when it is itself a component reference, or when it has no
// parent element. A group is dropped entirely when any occurrence sits
// inside a component reference.
func (c *Collector) Collect(roots []*figreact.Node, parents ParentIndex) []*Group {
	bySignature := make(map[string]*Group)
	var groups []*Group

	for n := range Elements(roots...) {
		if c.excluded(n, parents) {
			continue
		}
		sig := c.Fingerprinter.Signature(n)
		g, ok := bySignature[sig]
		if !ok {
			g = &Group{Fingerprint: c.Fingerprinter.Fingerprint(n), order: len(groups)}
			bySignature[sig] = g
			groups = append(groups, g)
		}
		g.Occurrences = append(g.Occurrences, n)
	}

	qualifying := make([]*Group, 0, len(groups))
	for _, g := range groups {
		if g.Count() < c.MinRepeats {
			continue
		}
		if insideComponent(g, parents) {
			continue
		}
		qualifying = append(qualifying, g)
	}

	slices.SortStableFunc(qualifying, func(a, b *Group) int {
		if n := cmp.Compare(b.Count(), a.Count()); n != 0 {
			return n
		}
		return cmp.Compare(a.order, b.order)
	})
	return qualifying
}

func (c *Collector) excluded(n *figreact.Node, parents ParentIndex) bool {
	parent, hasParent := parents.Parent(n)
	switch {
	case c.SkipTags[n.Tag]:
		return true
	case hasParent && c.SkipTags[parent.Tag]:
		return true
	case n.IsComponentRef():
		return true
	case !hasParent:
		return true
	}
	return false
}

// insideComponent reports whether any occurrence has a component reference
// among its ancestors.
func insideComponent(g *Group, parents ParentIndex) bool {
	for _, n := range g.Occurrences {
		for ancestor := range parents.Ancestors(n) {
			if ancestor.IsComponentRef() {
				return true
			}
		}
	}
	return false
}
