package mock

import "github.com/fwojciec/figreact"

var _ figreact.Parser = (*Parser)(nil)

// Parser is a mock implementation of figreact.Parser.
type Parser struct {
	ParseFn    func(source []byte) (*figreact.Document, error)
	ValidateFn func(source []byte) error
}

func (p *Parser) Parse(source []byte) (*figreact.Document, error) {
	return p.ParseFn(source)
}

func (p *Parser) Validate(source []byte) error {
	return p.ValidateFn(source)
}
