package treesitter

import (
	"github.com/fwojciec/figreact"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// converter builds figreact nodes from tree-sitter JSX nodes.
type converter struct {
	source []byte

	// components collects the component tags seen in JSX.
	components map[string]bool
}

func (c *converter) element(n *sitter.Node) *figreact.Node {
	el := &figreact.Node{
		Kind: figreact.ElementNode,
		Pos:  position(n),
	}

	switch n.Kind() {
	case "jsx_self_closing_element":
		el.Tag = extractNodeText(n.ChildByFieldName("name"), c.source)
		el.Attrs = c.attributes(n)
		el.SelfClosing = true
	case "jsx_element":
		open := n.ChildByFieldName("open_tag")
		el.Tag = extractNodeText(open.ChildByFieldName("name"), c.source)
		el.Attrs = c.attributes(open)
		el.Children = c.children(n, open, n.ChildByFieldName("close_tag"))
	}

	if figreact.IsComponentName(el.Tag) {
		if c.components == nil {
			c.components = make(map[string]bool)
		}
		c.components[el.Tag] = true
	}
	return el
}

// attributes converts the attributes of an opening or self-closing tag.
func (c *converter) attributes(tag *sitter.Node) []figreact.Attribute {
	var attrs []figreact.Attribute
	for i := 0; i < int(tag.NamedChildCount()); i++ {
		child := tag.NamedChild(uint(i))
		switch child.Kind() {
		case "jsx_attribute":
			attrs = append(attrs, c.attribute(child))
		case "jsx_expression":
			attrs = append(attrs, figreact.Attribute{
				Kind:  figreact.AttrSpread,
				Value: extractNodeText(child, c.source),
			})
		}
	}
	return attrs
}

func (c *converter) attribute(n *sitter.Node) figreact.Attribute {
	attr := figreact.Attribute{Kind: figreact.AttrBare}
	if n.NamedChildCount() > 0 {
		attr.Name = extractNodeText(n.NamedChild(0), c.source)
	}
	if n.NamedChildCount() > 1 {
		value := n.NamedChild(1)
		attr.Value = extractNodeText(value, c.source)
		if value.Kind() == "string" {
			attr.Kind = figreact.AttrLiteral
		} else {
			attr.Kind = figreact.AttrExpression
		}
	}
	return attr
}

// children converts the content between open and close tags. Elements and
// expression containers become nodes; every byte between them becomes a
// text node so that whitespace survives re-rendering.
func (c *converter) children(n, openTag, closeTag *sitter.Node) []*figreact.Node {
	start := int(openTag.EndByte())
	end := int(n.EndByte())
	if closeTag != nil {
		end = int(closeTag.StartByte())
	}

	var children []*figreact.Node
	pos := start
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(uint(i))
		var node *figreact.Node
		switch child.Kind() {
		case "jsx_element", "jsx_self_closing_element":
			node = c.element(child)
		case "jsx_expression":
			node = figreact.NewExpression(extractNodeText(child, c.source))
			node.Pos = position(child)
		default:
			continue
		}
		if gap := int(child.StartByte()); gap > pos {
			children = append(children, c.text(pos, gap))
		}
		children = append(children, node)
		pos = int(child.EndByte())
	}
	if end > pos {
		children = append(children, c.text(pos, end))
	}
	return children
}

func (c *converter) text(start, end int) *figreact.Node {
	n := figreact.NewText(string(c.source[start:end]))
	n.Pos.Offset = start
	return n
}

func position(n *sitter.Node) figreact.Position {
	p := n.StartPosition()
	return figreact.Position{
		Line:   int(p.Row) + 1,
		Column: int(p.Column) + 1,
		Offset: int(n.StartByte()),
	}
}
