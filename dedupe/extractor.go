package dedupe

import (
	"github.com/fwojciec/figreact"
)

// Ensure Extractor implements figreact.Extractor at compile time.
var _ figreact.Extractor = (*Extractor)(nil)

// Extractor runs the full pass: parse, collect, plan, rewrite, render and
// validate. It holds no per-run state and is safe for concurrent use when
// its Parser is.
type Extractor struct {
	parser figreact.Parser
}

// NewExtractor creates a new Extractor that parses and validates with parser.
func NewExtractor(parser figreact.Parser) *Extractor {
	return &Extractor{parser: parser}
}

// Extract hoists repeated fragments of source into components.
func (e *Extractor) Extract(source string, opts figreact.Options) (*figreact.Result, error) {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return figreact.Unchanged(source), err
	}

	doc, err := e.parser.Parse([]byte(source))
	if err != nil {
		return figreact.Unchanged(source), err
	}

	roots := doc.Roots()
	parents := NewParentIndex(roots...)

	collector := &Collector{
		MinRepeats:    opts.MinRepeats,
		SkipTags:      opts.SkipSet(),
		Fingerprinter: NewFingerprinter(opts.Fingerprint),
	}
	planner := &Planner{
		MinRepeats: opts.MinRepeats,
		NameBase:   opts.ComponentNameBase,
		Reserved:   doc.Declared,
	}
	planned := planner.Plan(collector.Collect(roots, parents), parents)
	if len(planned) == 0 {
		return figreact.Unchanged(source), nil
	}

	rewriter := NewRewriter(doc, parents)
	var reports []figreact.ComponentReport
	var diags []figreact.Diagnostic
	for _, g := range planned {
		component, groupDiags := rewriter.Apply(g)
		diags = append(diags, groupDiags...)
		if component == nil {
			continue
		}
		reports = append(reports, figreact.ComponentReport{
			Name:            component.Name,
			OccurrenceCount: component.References,
			Fingerprint:     g.Fingerprint,
		})
	}

	if len(reports) == 0 {
		result := figreact.Unchanged(source)
		result.Diagnostics = diags
		return result, nil
	}

	code := doc.Render()
	if err := e.parser.Validate([]byte(code)); err != nil {
		result := figreact.Unchanged(source)
		result.Diagnostics = diags
		return result, figreact.Errorf(figreact.ESERIALIZE, "rewritten module does not parse: %s", figreact.ErrorMessage(err))
	}

	return &figreact.Result{
		Code:        code,
		Components:  reports,
		Changed:     true,
		Diagnostics: diags,
	}, nil
}
