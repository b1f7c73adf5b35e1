package figreact

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NodeKind identifies the variant of a Node.
type NodeKind int

// NodeKind values.
const (
	ElementNode NodeKind = iota
	TextNode
	ExpressionNode
)

// AttrKind identifies how an attribute value was written.
type AttrKind int

// AttrKind values.
const (
	AttrLiteral    AttrKind = iota // name="value"
	AttrExpression                 // name={value}
	AttrBare                       // name
	AttrSpread                     // {...value}
)

// Attribute is a single JSX attribute.
// Value holds the raw source text of the value, including quotes or braces.
type Attribute struct {
	Name  string
	Kind  AttrKind
	Value string
}

// Literal returns the unquoted value of a literal attribute.
func (a Attribute) Literal() string {
	if a.Kind != AttrLiteral || len(a.Value) < 2 {
		return ""
	}
	return a.Value[1 : len(a.Value)-1]
}

// Position is a location in the source text. Line and Column are 1-based.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Node is a node of a markup tree: an element, a run of text, or an
// expression slot. Parents own their children exclusively; nodes carry no
// back-references.
type Node struct {
	Kind NodeKind

	// Element fields. An empty Tag is a fragment.
	Tag         string
	Attrs       []Attribute
	Children    []*Node
	SelfClosing bool

	// Raw source text of a text run or of an expression slot (braces included).
	Data string

	Pos Position
}

// NewElement returns an element node.
func NewElement(tag string, attrs []Attribute, children ...*Node) *Node {
	return &Node{
		Kind:        ElementNode,
		Tag:         tag,
		Attrs:       attrs,
		Children:    children,
		SelfClosing: len(children) == 0 && tag != "",
	}
}

// NewText returns a text node.
func NewText(data string) *Node {
	return &Node{Kind: TextNode, Data: data}
}

// NewExpression returns an expression slot holding raw expression text.
func NewExpression(raw string) *Node {
	return &Node{Kind: ExpressionNode, Data: raw}
}

// NewReference returns a self-closing invocation of the named component
// without attributes.
func NewReference(name string) *Node {
	return &Node{Kind: ElementNode, Tag: name, SelfClosing: true}
}

// IsElement reports whether n is an element node.
func (n *Node) IsElement() bool {
	return n != nil && n.Kind == ElementNode
}

// IsComponentRef reports whether n is an element that invokes a custom
// component rather than a primitive tag.
func (n *Node) IsComponentRef() bool {
	return n.IsElement() && IsComponentName(n.Tag)
}

// IsSignificant reports whether n contributes to rendered output. Text made
// only of whitespace that spans a line break is dropped by JSX.
func (n *Node) IsSignificant() bool {
	if n == nil {
		return false
	}
	if n.Kind != TextNode {
		return true
	}
	return strings.TrimSpace(n.Data) != "" || !strings.Contains(n.Data, "\n")
}

// Attr returns the first attribute with the given name.
func (n *Node) Attr(name string) (Attribute, bool) {
	for _, a := range n.Attrs {
		if a.Kind != AttrSpread && a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// Clone returns a deep copy of n that shares no memory with the original.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	if n.Attrs != nil {
		c.Attrs = make([]Attribute, len(n.Attrs))
		copy(c.Attrs, n.Attrs)
	}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return &c
}

// IsComponentName reports whether a tag names a custom component.
// React treats capitalized and dotted tags as component references and
// lower-case tags as intrinsic elements.
func IsComponentName(tag string) bool {
	if tag == "" {
		return false
	}
	if strings.Contains(tag, ".") {
		return true
	}
	r, _ := utf8.DecodeRuneInString(tag)
	return unicode.IsUpper(r)
}

// IsIdentifier reports whether s is usable as a component name.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
