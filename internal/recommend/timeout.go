// Package recommend calls the external recommendation API under a bounded
// retry and timeout discipline: each attempt gets a fixed deadline, only
// timed-out attempts are retried, and a retry budget caps the total work.
package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/clefworks/scorevault/internal/domain"
)

type attemptResult[T any] struct {
	value T
	err   error
}

// WithTimeout races op against limit. On expiry the op goroutine is
// abandoned, not cancelled: it keeps the context it was given and its late
// result is discarded. The caller gets domain.ErrTimeout.
func WithTimeout[T any](ctx context.Context, limit time.Duration, op func(context.Context) (T, error)) (T, error) {
	resCh := make(chan attemptResult[T], 1)
	go func() {
		value, err := op(ctx)
		resCh <- attemptResult[T]{value: value, err: err}
	}()

	timer := time.NewTimer(limit)
	defer timer.Stop()

	var zero T
	select {
	case res := <-resCh:
		return res.value, res.err
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-timer.C:
		return zero, domain.ErrTimeout
	}
}

// RetryWithTimeout runs op under WithTimeout with up to maxRetries
// additional attempts after a timed-out one, waiting delay between attempts.
// Any failure other than a timeout is permanent and surfaces immediately.
func RetryWithTimeout[T any](ctx context.Context, maxRetries uint64, limit, delay time.Duration, op func(context.Context) (T, error)) (T, error) {
	var value T

	operation := func() error {
		v, err := WithTimeout(ctx, limit, op)
		if err == nil {
			value = v
			return nil
		}
		if errors.Is(err, domain.ErrTimeout) {
			return err
		}
		return backoff.Permanent(err)
	}

	b := backoff.WithMaxRetries(backoff.NewConstantBackOff(delay), maxRetries)
	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		var zero T
		return zero, err
	}

	return value, nil
}
