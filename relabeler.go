package figreact

import "context"

// Relabeler restyles or relabels a module for a target UI framework.
// It runs after extraction and is best-effort: callers keep the extracted
// code when relabeling fails.
type Relabeler interface {
	// Relabel returns code rewritten for target (e.g. "tailwind", "mui").
	// Returns EINVALID if code or target is empty.
	Relabel(ctx context.Context, code, target string) (string, error)
}
