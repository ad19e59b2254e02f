package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks a failure to reach a remote cache backend.
var ErrNetwork = errors.New("network error")

type retryableError struct{ err error }

func (e retryableError) Error() string { return e.err.Error() }
func (e retryableError) Unwrap() error { return e.err }

// Retryable marks err as worth another attempt. Nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return retryableError{err}
}

// IsRetryable reports whether err, or anything it wraps, was marked with
// Retryable.
func IsRetryable(err error) bool {
	var re retryableError
	return errors.As(err, &re)
}

// backoff retries operations that fail with a Retryable error, doubling
// the wait after each attempt.
type backoff struct {
	attempts int
	wait     time.Duration
}

var defaultBackoff = backoff{attempts: 3, wait: 250 * time.Millisecond}

func (b backoff) do(ctx context.Context, fn func() error) error {
	wait := b.wait
	for i := 1; ; i++ {
		err := fn()
		if err == nil || !IsRetryable(err) || i >= b.attempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
			wait *= 2
		}
	}
}
