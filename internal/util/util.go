package util

import (
	"context"
	"time"
)

var sleep = time.Sleep

// WaitFor blocks for the given duration or until the context is canceled,
// whichever happens first.
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

// Backoff returns the wait duration before the given retry attempt,
// doubling from base and capped at max. Attempts are zero-based.
func Backoff(attempt int, base, max time.Duration) time.Duration {
	if base <= 0 {
		base = time.Second
	}
	d := base
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= max && max > 0 {
			return max
		}
	}
	return d
}
