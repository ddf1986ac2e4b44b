package utils

import (
	"context"
	"time"
)

var sleep = time.Sleep

// WaitFor blocks for d or until ctx is done, whichever comes first.
func WaitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		sleep(d)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Backoff returns the delay before retry attempt n (starting at 1), doubling
// base each time and never exceeding limit.
func Backoff(base, limit time.Duration, attempt int) time.Duration {
	if attempt < 1 || base <= 0 {
		return 0
	}

	d := base
	for i := 1; i < attempt; i++ {
		d *= 2
		if limit > 0 && d >= limit {
			return limit
		}
	}

	if limit > 0 && d > limit {
		return limit
	}
	return d
}
