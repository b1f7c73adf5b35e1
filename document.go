package figreact

import "strings"

// Island is an outermost JSX expression of a module together with its byte
// range in the source.
type Island struct {
	Root  *Node
	Start int
	End   int

	dirty bool
}

// MarkDirty flags the island for re-rendering. Clean islands are written
// back verbatim from the source.
func (i *Island) MarkDirty() {
	i.dirty = true
}

// Dirty reports whether the island has been mutated.
func (i *Island) Dirty() bool {
	return i.dirty
}

// Component is a reusable unit hoisted out of a module.
type Component struct {
	Name string

	// Body is a deep clone of an occurrence. It never aliases the live tree.
	Body *Node

	// References is the number of occurrences replaced by an invocation.
	References int
}

// Declaration renders the component as a module-level declaration.
func (c *Component) Declaration() string {
	return "const " + c.Name + " = () => (\n  " + Render(c.Body) + "\n);"
}

// Document is a parsed module: its source text, the JSX islands found in it
// and the components declared by an extraction run.
type Document struct {
	Source  []byte
	Islands []*Island

	// DeclOffset is the byte offset at which component declarations are
	// inserted: after any directive prologue and leading imports.
	DeclOffset int

	// Identifiers holds the names already bound or referenced by the module.
	Identifiers map[string]bool

	// Components holds the declarations added by a run, in output order.
	Components []*Component
}

// Roots returns the root node of every island, in source order.
func (d *Document) Roots() []*Node {
	roots := make([]*Node, 0, len(d.Islands))
	for _, island := range d.Islands {
		roots = append(roots, island.Root)
	}
	return roots
}

// Island returns the island whose root is n.
func (d *Document) Island(n *Node) (*Island, bool) {
	for _, island := range d.Islands {
		if island.Root == n {
			return island, true
		}
	}
	return nil, false
}

// Declared reports whether name is already in use by the module or by a
// component declared in this run.
func (d *Document) Declared(name string) bool {
	if d.Identifiers[name] {
		return true
	}
	for _, c := range d.Components {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Declare inserts a component declaration ahead of every existing
// top-level statement, including earlier declarations.
func (d *Document) Declare(c *Component) {
	d.Components = append([]*Component{c}, d.Components...)
}

// Changed reports whether rendering would differ from the source.
func (d *Document) Changed() bool {
	if len(d.Components) > 0 {
		return true
	}
	for _, island := range d.Islands {
		if island.dirty {
			return true
		}
	}
	return false
}

// Render returns the module text. Untouched regions are copied from the
// source byte for byte.
func (d *Document) Render() string {
	if !d.Changed() {
		return string(d.Source)
	}

	var b strings.Builder
	b.Grow(len(d.Source))

	pos := 0
	if len(d.Components) > 0 {
		b.Write(d.Source[:d.DeclOffset])
		decls := make([]string, 0, len(d.Components))
		for _, c := range d.Components {
			decls = append(decls, c.Declaration())
		}
		if d.DeclOffset > 0 {
			b.WriteString("\n\n")
			b.WriteString(strings.Join(decls, "\n\n"))
		} else {
			b.WriteString(strings.Join(decls, "\n\n"))
			b.WriteString("\n\n")
		}
		pos = d.DeclOffset
	}

	for _, island := range d.Islands {
		if island.Start < pos {
			continue
		}
		b.Write(d.Source[pos:island.Start])
		if island.dirty {
			b.WriteString(Render(island.Root))
		} else {
			b.Write(d.Source[island.Start:island.End])
		}
		pos = island.End
	}
	b.Write(d.Source[pos:])

	return b.String()
}
