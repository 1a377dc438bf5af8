package source

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/guiyumin/linkparse/internal/webdav"
)

// RetryOptions configures retries of remote reads
type RetryOptions struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryOptions returns default retry options
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
	}
}

func (o RetryOptions) newBackoff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = o.InitialInterval
	b.MaxInterval = o.MaxInterval
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5
	b.Reset()

	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(o.MaxRetries)), ctx)
}

// retry runs op until it succeeds, fails permanently, or retries run out
func retry[T any](ctx context.Context, opts RetryOptions, op func() (T, error)) (T, error) {
	var result T
	err := backoff.Retry(func() error {
		var err error
		result, err = op()
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, opts.newBackoff(ctx))
	return result, err
}

func isRetryable(err error) bool {
	switch {
	case errors.Is(err, webdav.ErrIsDirectory),
		webdav.IsClientError(err),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return true
}
