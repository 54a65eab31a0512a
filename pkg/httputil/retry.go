package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a failure as transient. Fetches wrap timeouts and
// 5xx responses in this type so [Retry] re-attempts them; anything else
// (a 404, a malformed URL) fails on the first try.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn up to attempts times, doubling the delay between tries.
// Only errors wrapped in [RetryableError] are retried. When the context is
// cancelled mid-backoff the context error is returned; otherwise the error
// from the final attempt is.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)

	var lastErr error
	for i := range attempts {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !errors.As(err, new(*RetryableError)) {
			return err
		}

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return lastErr
}

// RetryWithBackoff runs fn with the default retry policy used by document
// fetches: three attempts starting at one second.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}
