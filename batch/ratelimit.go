package batch

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter paces calls to a remote model.
type Limiter interface {
	Wait(ctx context.Context) error
}

var _ Limiter = (*rate.Limiter)(nil)

// NewLimiter returns a token bucket allowing rps requests per second with a
// burst of 1. A non-positive rps disables limiting.
func NewLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}
