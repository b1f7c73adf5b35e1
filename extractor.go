package figreact

import "strings"

// Default extraction settings.
const (
	DefaultMinRepeats        = 2
	DefaultComponentNameBase = "Extracted"
)

// DefaultSkipTags returns the low-level graphic and leaf tags that are never
// considered extraction roots.
func DefaultSkipTags() []string {
	return []string{
		"svg", "path", "g", "circle", "rect", "line", "polyline", "polygon",
		"ellipse", "defs", "clipPath", "mask", "use", "symbol", "stop",
		"linearGradient", "radialGradient", "text", "tspan", "image",
		"img", "br", "hr", "input",
	}
}

// Fingerprint is a content-blind structural signature of an element.
type Fingerprint string

// FingerprintOptions tunes which parts of an element feed its fingerprint.
type FingerprintOptions struct {
	// ClassAttributes lists the attributes holding the style class, in
	// priority order. Defaults to className, class.
	ClassAttributes []string `json:"classAttributes,omitempty"`

	// IgnoreAttributes are left out of the attribute count (e.g. key).
	IgnoreAttributes []string `json:"ignoreAttributes,omitempty"`

	// RawClass disables class normalization (splitting, sorting and
	// de-duplicating class tokens).
	RawClass bool `json:"rawClass,omitempty"`

	// Deep folds the fingerprints of child elements into the key.
	Deep bool `json:"deep,omitempty"`
}

// Options configures an extraction run.
// Zero fields take their defaults.
type Options struct {
	MinRepeats        int                `json:"minRepeats"`
	ComponentNameBase string             `json:"componentNameBase"`
	SkipTags          []string           `json:"skipTags"`
	Fingerprint       FingerprintOptions `json:"fingerprint"`
}

// DefaultOptions returns the default extraction options.
func DefaultOptions() Options {
	return Options{
		MinRepeats:        DefaultMinRepeats,
		ComponentNameBase: DefaultComponentNameBase,
		SkipTags:          DefaultSkipTags(),
	}
}

// WithDefaults returns a copy of o with zero fields set to their defaults.
func (o Options) WithDefaults() Options {
	if o.MinRepeats == 0 {
		o.MinRepeats = DefaultMinRepeats
	}
	if o.ComponentNameBase == "" {
		o.ComponentNameBase = DefaultComponentNameBase
	}
	if o.SkipTags == nil {
		o.SkipTags = DefaultSkipTags()
	}
	return o
}

// Validate returns an error if the options contain invalid fields.
func (o Options) Validate() error {
	if o.MinRepeats < 2 {
		return Errorf(EINVALID, "min repeats must be at least 2, got %d", o.MinRepeats)
	}
	if !IsIdentifier(o.ComponentNameBase) || !IsComponentName(o.ComponentNameBase) {
		return Errorf(EINVALID, "component name base %q must be a capitalized identifier", o.ComponentNameBase)
	}
	return nil
}

// SkipSet returns SkipTags as a set.
func (o Options) SkipSet() map[string]bool {
	set := make(map[string]bool, len(o.SkipTags))
	for _, tag := range o.SkipTags {
		if tag = strings.TrimSpace(tag); tag != "" {
			set[tag] = true
		}
	}
	return set
}

// ComponentReport describes one extracted component.
type ComponentReport struct {
	Name            string      `json:"name"`
	OccurrenceCount int         `json:"occurrenceCount"`
	Fingerprint     Fingerprint `json:"fingerprint"`
}

// Diagnostic records a recoverable problem met during a run.
type Diagnostic struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Component string `json:"component,omitempty"`
}

// Result is the outcome of an extraction run.
type Result struct {
	Code        string            `json:"code"`
	Components  []ComponentReport `json:"components"`
	Changed     bool              `json:"changed"`
	Diagnostics []Diagnostic      `json:"diagnostics,omitempty"`
}

// Unchanged returns a result carrying the original source.
func Unchanged(source string) *Result {
	return &Result{Code: source}
}

// Extractor hoists repeated markup into reusable components.
type Extractor interface {
	// Extract parses source, extracts repeated fragments and returns the
	// rewritten module. When nothing qualifies the source is returned
	// verbatim with Changed unset. On a fatal error the result still
	// carries the original source, alongside an EINVALID, EPARSE or
	// ESERIALIZE error.
	Extract(source string, opts Options) (*Result, error)
}

// Parser turns module text into a Document.
type Parser interface {
	// Parse parses a module. Returns EPARSE if the source is malformed.
	Parse(source []byte) (*Document, error)

	// Validate returns EPARSE if source does not parse cleanly.
	Validate(source []byte) error
}
