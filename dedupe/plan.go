package dedupe

import (
	"strconv"

	"github.com/fwojciec/figreact"
)

// Planner finalizes candidate groups for extraction.
type Planner struct {
	MinRepeats int
	NameBase   string

	// Reserved reports names that must not be assigned. May be nil.
	Reserved func(name string) bool
}

// Plan walks groups in order and returns the ones to extract, named and
// pruned. An occurrence is pruned when it, or one of its ancestors, is
// already claimed by a finalized group or by an earlier occurrence of its
// own group. Groups left with fewer than MinRepeats occurrences are skipped
// and consume no name.
//
// The input groups are not modified.
func (p *Planner) Plan(groups []*Group, parents ParentIndex) []*Group {
	claimed := make(map[*figreact.Node]bool)
	names := nameCounter{base: p.NameBase, reserved: p.Reserved}

	var planned []*Group
	for _, g := range groups {
		kept := make([]*figreact.Node, 0, g.Count())
		local := make(map[*figreact.Node]bool, g.Count())
		for _, n := range g.Occurrences {
			if claimed[n] || local[n] || claimedAncestor(n, parents, claimed, local) {
				continue
			}
			kept = append(kept, n)
			local[n] = true
		}
		if len(kept) < p.MinRepeats {
			continue
		}

		for _, n := range kept {
			claimed[n] = true
		}
		planned = append(planned, &Group{
			Fingerprint: g.Fingerprint,
			Occurrences: kept,
			Name:        names.next(),
			order:       g.order,
		})
	}
	return planned
}

func claimedAncestor(n *figreact.Node, parents ParentIndex, sets ...map[*figreact.Node]bool) bool {
	for ancestor := range parents.Ancestors(n) {
		for _, set := range sets {
			if set[ancestor] {
				return true
			}
		}
	}
	return false
}

// nameCounter hands out base+1, base+2, ... skipping reserved names.
type nameCounter struct {
	base     string
	reserved func(string) bool
	n        int
}

func (c *nameCounter) next() string {
	for {
		c.n++
		name := c.base + strconv.Itoa(c.n)
		if c.reserved == nil || !c.reserved(name) {
			return name
		}
	}
}
