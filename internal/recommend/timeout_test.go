package recommend_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clefworks/scorevault/internal/domain"
	"github.com/clefworks/scorevault/internal/recommend"
)

func TestWithTimeout_CompletesInTime(t *testing.T) {
	got, err := recommend.WithTimeout(context.Background(), time.Second,
		func(context.Context) (string, error) {
			return "done", nil
		})

	require.NoError(t, err)
	assert.Equal(t, "done", got)
}

func TestWithTimeout_PropagatesError(t *testing.T) {
	opErr := errors.New("upstream rejected request")

	_, err := recommend.WithTimeout(context.Background(), time.Second,
		func(context.Context) (string, error) {
			return "", opErr
		})

	assert.ErrorIs(t, err, opErr)
}

func TestWithTimeout_ExpiresAtLimit(t *testing.T) {
	start := time.Now()

	_, err := recommend.WithTimeout(context.Background(), 20*time.Millisecond,
		func(context.Context) (string, error) {
			time.Sleep(500 * time.Millisecond)
			return "late", nil
		})

	elapsed := time.Since(start)
	require.ErrorIs(t, err, domain.ErrTimeout)
	assert.Less(t, elapsed, 300*time.Millisecond, "caller must not wait for the abandoned operation")
}

func TestWithTimeout_AbandonedOpRunsToCompletion(t *testing.T) {
	finished := make(chan struct{})

	_, err := recommend.WithTimeout(context.Background(), 10*time.Millisecond,
		func(ctx context.Context) (string, error) {
			time.Sleep(50 * time.Millisecond)
			assert.NoError(t, ctx.Err(), "abandoned operation keeps an uncancelled context")
			close(finished)
			return "late", nil
		})

	require.ErrorIs(t, err, domain.ErrTimeout)

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("abandoned operation never finished")
	}
}

func TestRetryWithTimeout_ExhaustsBudget(t *testing.T) {
	var attempts atomic.Int64

	_, err := recommend.RetryWithTimeout(context.Background(), 2, 10*time.Millisecond, time.Millisecond,
		func(context.Context) (string, error) {
			attempts.Add(1)
			time.Sleep(100 * time.Millisecond)
			return "late", nil
		})

	require.ErrorIs(t, err, domain.ErrTimeout)
	assert.Equal(t, int64(3), attempts.Load(), "one initial attempt plus two retries")
}

func TestRetryWithTimeout_SucceedsAfterTimeout(t *testing.T) {
	var attempts atomic.Int64

	got, err := recommend.RetryWithTimeout(context.Background(), 2, 20*time.Millisecond, time.Millisecond,
		func(context.Context) (string, error) {
			if attempts.Add(1) == 1 {
				time.Sleep(200 * time.Millisecond)
			}
			return "recovered", nil
		})

	require.NoError(t, err)
	assert.Equal(t, "recovered", got)
	assert.Equal(t, int64(2), attempts.Load())
}

func TestRetryWithTimeout_NonTimeoutFailureIsPermanent(t *testing.T) {
	var attempts atomic.Int64
	opErr := errors.New("upstream rejected request")

	_, err := recommend.RetryWithTimeout(context.Background(), 2, time.Second, time.Millisecond,
		func(context.Context) (string, error) {
			attempts.Add(1)
			return "", opErr
		})

	require.ErrorIs(t, err, opErr)
	assert.Equal(t, int64(1), attempts.Load(), "non-timeout failures must not be retried")
}

func TestRetryWithTimeout_ZeroRetries(t *testing.T) {
	var attempts atomic.Int64

	_, err := recommend.RetryWithTimeout(context.Background(), 0, 10*time.Millisecond, time.Millisecond,
		func(context.Context) (string, error) {
			attempts.Add(1)
			time.Sleep(100 * time.Millisecond)
			return "late", nil
		})

	require.ErrorIs(t, err, domain.ErrTimeout)
	assert.Equal(t, int64(1), attempts.Load())
}
