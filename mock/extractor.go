package mock

import "github.com/fwojciec/figreact"

var _ figreact.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of figreact.Extractor.
type Extractor struct {
	ExtractFn func(source string, opts figreact.Options) (*figreact.Result, error)
}

func (e *Extractor) Extract(source string, opts figreact.Options) (*figreact.Result, error) {
	return e.ExtractFn(source, opts)
}
