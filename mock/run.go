package mock

import (
	"context"

	"github.com/fwojciec/figreact"
)

var _ figreact.RunService = (*RunService)(nil)

// RunService is a mock implementation of figreact.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *figreact.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*figreact.Run, error)
	FindRunsFn    func(ctx context.Context, filter figreact.RunFilter) ([]*figreact.Run, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *figreact.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*figreact.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter figreact.RunFilter) ([]*figreact.Run, error) {
	return s.FindRunsFn(ctx, filter)
}
