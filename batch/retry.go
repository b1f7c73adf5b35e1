package batch

import (
	"context"
	"time"

	"github.com/fwojciec/figreact"
)

// Func is a retryable call that transforms a module.
type Func func(ctx context.Context, code string) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// WithRetry calls fn with exponential backoff. It retries up to 3 times
// (4 total attempts) with delays of 1s, 2s, 4s. The logger function, if
// provided, is called for each retry attempt.
func WithRetry(ctx context.Context, code string, fn Func, logger LogFunc) (string, error) {
	return WithRetryDelays(ctx, code, fn, logger, DefaultRetryDelays())
}

// WithRetryDelays is like WithRetry but allows configurable delays.
// EINVALID errors are returned without retrying.
func WithRetryDelays(ctx context.Context, code string, fn Func, logger LogFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		out, err := fn(ctx, code)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 || figreact.ErrorCode(err) == figreact.EINVALID {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if logger != nil {
			logger("  retry (attempt %d): %v", attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
