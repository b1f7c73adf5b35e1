package mock

import (
	"context"

	"github.com/fwojciec/figreact"
)

var _ figreact.Relabeler = (*Relabeler)(nil)

// Relabeler is a mock implementation of figreact.Relabeler.
type Relabeler struct {
	RelabelFn func(ctx context.Context, code, target string) (string, error)
}

func (r *Relabeler) Relabel(ctx context.Context, code, target string) (string, error) {
	return r.RelabelFn(ctx, code, target)
}
