package collection_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clefworks/scorevault/internal/collection"
	"github.com/clefworks/scorevault/internal/store"
	"github.com/clefworks/scorevault/internal/store/schema"
)

// fakePager serves pages from an in-memory dataset and can be made to fail
// or block on demand.
type fakePager struct {
	mu        sync.Mutex
	dataset   []store.LinkedScore
	listErr   error
	removeErr error
	listCalls int

	// blockPage, when non-zero, makes ListByUser for that page wait on gate
	blockPage int
	gate      chan struct{}
}

func (f *fakePager) ListByUser(_ context.Context, page, pageSize int) ([]store.LinkedScore, int64, error) {
	f.mu.Lock()
	f.listCalls++
	blocked := f.blockPage != 0 && page == f.blockPage
	gate := f.gate
	f.mu.Unlock()

	if blocked {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, 0, f.listErr
	}

	start := (page - 1) * pageSize
	if start >= len(f.dataset) {
		return nil, int64(len(f.dataset)), nil
	}
	end := start + pageSize
	if end > len(f.dataset) {
		end = len(f.dataset)
	}

	out := make([]store.LinkedScore, end-start)
	copy(out, f.dataset[start:end])
	return out, int64(len(f.dataset)), nil
}

func (f *fakePager) RemoveLink(_ context.Context, scoreID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.removeErr != nil {
		return f.removeErr
	}
	for i, item := range f.dataset {
		if item.Score.ID == scoreID {
			f.dataset = append(f.dataset[:i], f.dataset[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakePager) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func makeDataset(n int) []store.LinkedScore {
	items := make([]store.LinkedScore, n)
	for i := range items {
		items[i] = store.LinkedScore{
			Score: schema.Score{
				ID:       int64(i + 1),
				Title:    fmt.Sprintf("Etude No. %d", i+1),
				Composer: "Frédéric Chopin",
			},
			LinkedAt: time.Now(),
		}
	}
	return items
}

func TestController_Load(t *testing.T) {
	pager := &fakePager{dataset: makeDataset(7)}
	c := collection.NewController(pager, 5)

	assert.Equal(t, collection.PhaseInitialLoading, c.Phase())

	require.NoError(t, c.Load(context.Background()))

	assert.Equal(t, collection.PhaseReady, c.Phase())
	assert.Len(t, c.Items(), 5)
	assert.Equal(t, int64(7), c.Total())
	assert.True(t, c.HasMore())
}

func TestController_LoadFailure(t *testing.T) {
	pager := &fakePager{listErr: errors.New("connection refused")}
	c := collection.NewController(pager, 5)

	err := c.Load(context.Background())

	require.Error(t, err)
	assert.Equal(t, collection.PhaseError, c.Phase())
	assert.Error(t, c.Err())
	assert.Empty(t, c.Items())
}

func TestController_RetryAfterError(t *testing.T) {
	pager := &fakePager{listErr: errors.New("connection refused"), dataset: makeDataset(3)}
	c := collection.NewController(pager, 5)

	require.Error(t, c.Load(context.Background()))
	require.Equal(t, collection.PhaseError, c.Phase())

	pager.mu.Lock()
	pager.listErr = nil
	pager.mu.Unlock()

	require.NoError(t, c.Retry(context.Background()))

	assert.Equal(t, collection.PhaseReady, c.Phase())
	assert.Len(t, c.Items(), 3)
	assert.NoError(t, c.Err())
}

func TestController_RetryOutsideErrorPhaseIsNoOp(t *testing.T) {
	pager := &fakePager{dataset: makeDataset(2)}
	c := collection.NewController(pager, 5)

	require.NoError(t, c.Load(context.Background()))
	before := pager.calls()

	require.NoError(t, c.Retry(context.Background()))

	assert.Equal(t, before, pager.calls())
}

func TestController_Pagination(t *testing.T) {
	pager := &fakePager{dataset: makeDataset(120)}
	c := collection.NewController(pager, 50)
	ctx := context.Background()

	require.NoError(t, c.Load(ctx))
	assert.Len(t, c.Items(), 50)
	assert.True(t, c.HasMore())

	require.NoError(t, c.LoadMore(ctx))
	assert.Len(t, c.Items(), 100)
	assert.True(t, c.HasMore())

	require.NoError(t, c.LoadMore(ctx))
	assert.Len(t, c.Items(), 120)
	assert.False(t, c.HasMore())

	// Exhausted: further calls never reach the pager
	before := pager.calls()
	require.NoError(t, c.LoadMore(ctx))
	assert.Equal(t, before, pager.calls())
}

func TestController_LoadMoreInFlightGuard(t *testing.T) {
	pager := &fakePager{
		dataset:   makeDataset(10),
		blockPage: 2,
		gate:      make(chan struct{}),
	}
	c := collection.NewController(pager, 5)
	ctx := context.Background()

	require.NoError(t, c.Load(ctx))

	done := make(chan error, 1)
	go func() {
		done <- c.LoadMore(ctx)
	}()

	// Wait until the first LoadMore is blocked inside the pager
	require.Eventually(t, func() bool {
		return c.Phase() == collection.PhasePaginating
	}, time.Second, time.Millisecond)

	// The overlapping call must bail out without touching the pager
	before := pager.calls()
	require.NoError(t, c.LoadMore(ctx))
	assert.Equal(t, before, pager.calls())

	close(pager.gate)
	require.NoError(t, <-done)
	assert.Len(t, c.Items(), 10)
}

func TestController_LoadMoreFailureKeepsItems(t *testing.T) {
	pager := &fakePager{dataset: makeDataset(10)}
	c := collection.NewController(pager, 5)
	ctx := context.Background()

	require.NoError(t, c.Load(ctx))

	pager.mu.Lock()
	pager.listErr = errors.New("connection refused")
	pager.mu.Unlock()

	err := c.LoadMore(ctx)

	require.Error(t, err)
	assert.Equal(t, collection.PhaseReady, c.Phase())
	assert.Len(t, c.Items(), 5)
}

func TestController_Add(t *testing.T) {
	pager := &fakePager{dataset: makeDataset(2)}
	c := collection.NewController(pager, 5)

	require.NoError(t, c.Load(context.Background()))

	c.Add(store.LinkedScore{
		Score:    schema.Score{ID: 99, Title: "Gymnopédie No. 1", Composer: "Erik Satie"},
		LinkedAt: time.Now(),
	})

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, int64(99), items[0].Score.ID)
	assert.Equal(t, int64(3), c.Total())
}

func TestController_Remove(t *testing.T) {
	pager := &fakePager{dataset: makeDataset(3)}
	c := collection.NewController(pager, 5)
	ctx := context.Background()

	require.NoError(t, c.Load(ctx))
	before := pager.calls()

	require.NoError(t, c.Remove(ctx, 2))

	items := c.Items()
	require.Len(t, items, 2)
	for _, item := range items {
		assert.NotEqual(t, int64(2), item.Score.ID)
	}
	assert.Equal(t, int64(2), c.Total())
	// Successful removal reconciles without re-fetching
	assert.Equal(t, before, pager.calls())
}

func TestController_RemoveBeyondLoadedPages(t *testing.T) {
	pager := &fakePager{dataset: makeDataset(5)}
	c := collection.NewController(pager, 2)
	ctx := context.Background()

	require.NoError(t, c.Load(ctx))
	require.Len(t, c.Items(), 2)

	// Score 5 sits on an unloaded page; removal goes straight to storage
	require.NoError(t, c.Remove(ctx, 5))

	assert.Len(t, c.Items(), 2)
	assert.Equal(t, int64(4), c.Total())

	pager.mu.Lock()
	remaining := len(pager.dataset)
	pager.mu.Unlock()
	assert.Equal(t, 4, remaining)
}

func TestController_RemoveFailureResyncs(t *testing.T) {
	pager := &fakePager{dataset: makeDataset(3), removeErr: errors.New("connection refused")}
	c := collection.NewController(pager, 5)
	ctx := context.Background()

	require.NoError(t, c.Load(ctx))

	err := c.Remove(ctx, 2)

	require.Error(t, err)
	// The optimistic removal was rolled back by a full reload
	assert.Equal(t, collection.PhaseReady, c.Phase())
	assert.Len(t, c.Items(), 3)
	assert.Equal(t, int64(3), c.Total())
}
