package mock

import (
	"context"

	"github.com/fwojciec/figreact"
)

var _ figreact.OutputStore = (*OutputStore)(nil)

// OutputStore is a mock implementation of figreact.OutputStore.
type OutputStore struct {
	SaveFn   func(ctx context.Context, out *figreact.Output) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *OutputStore) Save(ctx context.Context, out *figreact.Output) error {
	return s.SaveFn(ctx, out)
}

func (s *OutputStore) Commit() error {
	return s.CommitFn()
}

func (s *OutputStore) Abort() error {
	return s.AbortFn()
}
