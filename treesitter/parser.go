// Package treesitter parses TSX modules into figreact documents using the
// tree-sitter TSX grammar.
package treesitter

import (
	"fmt"

	"github.com/fwojciec/figreact"
	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Ensure Parser implements figreact.Parser at compile time.
var _ figreact.Parser = (*Parser)(nil)

// Parser parses TSX source. It is safe for concurrent use; every call uses
// its own tree-sitter parser.
type Parser struct {
	language *sitter.Language
}

// NewParser creates a new TSX Parser.
func NewParser() *Parser {
	return &Parser{language: sitter.NewLanguage(typescript.LanguageTSX())}
}

// Parse parses source and collects its outermost JSX expressions.
func (p *Parser) Parse(source []byte) (*figreact.Document, error) {
	tree, err := p.parse(source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxError(root)
	}

	c := &converter{source: source}
	doc := &figreact.Document{
		Source:      source,
		DeclOffset:  declOffset(root),
		Identifiers: make(map[string]bool),
	}

	walkTree(root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "jsx_element", "jsx_self_closing_element":
			doc.Islands = append(doc.Islands, &figreact.Island{
				Root:  c.element(n),
				Start: int(n.StartByte()),
				End:   int(n.EndByte()),
			})
			return false
		case "identifier", "type_identifier":
			doc.Identifiers[extractNodeText(n, source)] = true
		}
		return true
	})
	for name := range c.components {
		doc.Identifiers[name] = true
	}

	return doc, nil
}

// Validate returns EPARSE if source contains syntax errors.
func (p *Parser) Validate(source []byte) error {
	tree, err := p.parse(source)
	if err != nil {
		return err
	}
	defer tree.Close()

	if root := tree.RootNode(); root.HasError() {
		return syntaxError(root)
	}
	return nil
}

func (p *Parser) parse(source []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(p.language); err != nil {
		return nil, fmt.Errorf("failed to load tsx grammar: %w", err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, figreact.Errorf(figreact.EPARSE, "failed to parse source")
	}
	return tree, nil
}

// syntaxError reports the first error or missing node under root.
func syntaxError(root *sitter.Node) error {
	var bad *sitter.Node
	walkTree(root, func(n *sitter.Node) bool {
		if bad != nil {
			return false
		}
		if n.IsError() || n.IsMissing() {
			bad = n
			return false
		}
		return n.HasError()
	})
	if bad == nil {
		return figreact.Errorf(figreact.EPARSE, "syntax error")
	}
	pos := bad.StartPosition()
	return figreact.Errorf(figreact.EPARSE, "syntax error at %d:%d", pos.Row+1, pos.Column+1)
}

// declOffset returns the byte offset just past the directive prologue and
// leading imports of a program.
func declOffset(program *sitter.Node) int {
	offset := 0
	for i := 0; i < int(program.NamedChildCount()); i++ {
		child := program.NamedChild(uint(i))
		switch child.Kind() {
		case "comment":
			continue
		case "hash_bang_line", "import_statement":
			offset = int(child.EndByte())
		case "expression_statement":
			if !isDirective(child) {
				return offset
			}
			offset = int(child.EndByte())
		default:
			return offset
		}
	}
	return offset
}

// isDirective reports whether an expression statement is a bare string
// such as "use client".
func isDirective(stmt *sitter.Node) bool {
	if stmt.NamedChildCount() != 1 {
		return false
	}
	return stmt.NamedChild(0).Kind() == "string"
}

// walkTree recursively walks a tree-sitter tree and calls the visitor for each node.
// Children are skipped when the visitor returns false.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkTree(node.Child(uint(i)), visitor)
	}
}

// extractNodeText extracts the text content of a tree-sitter node.
func extractNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}
