package figreact

import "strings"

// Render renders a node as JSX text.
// Text and expression slots are written back exactly as they were parsed.
func Render(n *Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n *Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case TextNode, ExpressionNode:
		b.WriteString(n.Data)
	case ElementNode:
		writeElement(b, n)
	}
}

func writeElement(b *strings.Builder, n *Node) {
	b.WriteByte('<')
	b.WriteString(n.Tag)
	for _, a := range n.Attrs {
		b.WriteByte(' ')
		writeAttr(b, a)
	}

	// Fragments cannot self-close.
	if len(n.Children) == 0 && n.SelfClosing && n.Tag != "" {
		b.WriteString(" />")
		return
	}
	b.WriteByte('>')
	for _, child := range n.Children {
		writeNode(b, child)
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}

func writeAttr(b *strings.Builder, a Attribute) {
	switch a.Kind {
	case AttrSpread:
		b.WriteString(a.Value)
	case AttrBare:
		b.WriteString(a.Name)
	default:
		b.WriteString(a.Name)
		b.WriteByte('=')
		b.WriteString(a.Value)
	}
}
