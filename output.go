package figreact

import "context"

// Output is a converted module ready to be written.
type Output struct {
	// Path is relative to the output root.
	Path       string
	Code       string
	Components []ComponentReport
}

// OutputStore persists outputs with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type OutputStore interface {
	Save(ctx context.Context, out *Output) error
	Commit() error
	Abort() error
}
