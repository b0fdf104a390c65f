package router

import (
	"context"
	"time"
)

const (
	// MaxRetries bounds completion attempts per model within one request.
	MaxRetries = 3
	// BaseDelay seeds the exponential backoff between attempts.
	BaseDelay = time.Second
)

// backoffDelay returns the pause after a failed attempt (0-based),
// doubling BaseDelay each time: 1s, 2s, 4s, ...
func backoffDelay(attempt int) time.Duration {
	return BaseDelay << attempt
}

// sleepCtx blocks for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
