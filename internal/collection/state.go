// Package collection holds the optimistic state machine behind a user's
// collection view. Mutations apply to the in-memory list first and reconcile
// with storage afterwards; a failed reconciliation triggers a full resync so
// the view never drifts from the stored truth.
package collection

import (
	"context"
	"fmt"
	"sync"

	"github.com/clefworks/scorevault/internal/store"
)

// Phase is the lifecycle state of one collection view
type Phase string

const (
	// PhaseInitialLoading means the first page has not arrived yet
	PhaseInitialLoading Phase = "initial_loading"
	// PhaseReady means the list is usable and stable
	PhaseReady Phase = "ready"
	// PhasePaginating means a further page is in flight while the list stays usable
	PhasePaginating Phase = "paginating"
	// PhaseError means the initial load failed and only Retry leaves this state
	PhaseError Phase = "error"
)

// Pager is the storage boundary the controller drives. Pages are 1-based.
//
//go:generate mockgen -source=state.go -destination=../mocks/pager.go -package=mocks
type Pager interface {
	ListByUser(ctx context.Context, page, pageSize int) ([]store.LinkedScore, int64, error)
	RemoveLink(ctx context.Context, scoreID int64) error
}

// Controller is the state machine for one user's collection view. All
// methods are safe for concurrent use; fetches run outside the lock so the
// in-flight guard can reject overlapping pagination.
type Controller struct {
	mu       sync.Mutex
	pager    Pager
	pageSize int

	phase   Phase
	items   []store.LinkedScore
	total   int64
	page    int
	lastErr error
}

// NewController creates a controller in the initial-loading phase. Nothing is
// fetched until Load is called.
func NewController(pager Pager, pageSize int) *Controller {
	return &Controller{
		pager:    pager,
		pageSize: pageSize,
		phase:    PhaseInitialLoading,
	}
}

// Load fetches the first page, replacing whatever the view held. Failure
// moves the view to the error phase with no partial content.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.phase = PhaseInitialLoading
	c.items = nil
	c.total = 0
	c.page = 0
	c.lastErr = nil
	c.mu.Unlock()

	items, total, err := c.pager.ListByUser(ctx, 1, c.pageSize)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.phase = PhaseError
		c.lastErr = err
		return fmt.Errorf("failed to load collection: %w", err)
	}

	c.phase = PhaseReady
	c.items = items
	c.total = total
	c.page = 1
	return nil
}

// Retry re-enters initial loading from the error phase. Outside the error
// phase it does nothing.
func (c *Controller) Retry(ctx context.Context) error {
	c.mu.Lock()
	if c.phase != PhaseError {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	return c.Load(ctx)
}

// LoadMore appends the next page. It only fires from the ready phase with
// more content known to exist; any other state, including a pagination
// already in flight, makes it a no-op. A failed fetch keeps the loaded items
// and returns to ready.
func (c *Controller) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.phase != PhaseReady || !c.hasMoreLocked() {
		c.mu.Unlock()
		return nil
	}
	c.phase = PhasePaginating
	next := c.page + 1
	c.mu.Unlock()

	items, total, err := c.pager.ListByUser(ctx, next, c.pageSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = PhaseReady

	if err != nil {
		return fmt.Errorf("failed to load page %d: %w", next, err)
	}

	c.items = append(c.items, items...)
	c.total = total
	c.page = next
	return nil
}

// Add prepends a freshly linked score to the view. The caller has already
// persisted the link, so no reconciliation is needed.
func (c *Controller) Add(item store.LinkedScore) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = append([]store.LinkedScore{item}, c.items...)
	c.total++
}

// Remove drops the score from the view first and deletes the link second. If
// the delete fails, the optimistic removal cannot stand, so the view resyncs
// from storage in full and the delete error is surfaced.
func (c *Controller) Remove(ctx context.Context, scoreID int64) error {
	c.mu.Lock()
	idx := -1
	for i, item := range c.items {
		if item.Score.ID == scoreID {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		// Beyond the loaded pages there is nothing to remove optimistically;
		// delete straight through and let the next load reconcile the total.
		if err := c.pager.RemoveLink(ctx, scoreID); err != nil {
			return fmt.Errorf("failed to remove score %d: %w", scoreID, err)
		}
		c.mu.Lock()
		if c.total > int64(len(c.items)) {
			c.total--
		}
		c.mu.Unlock()
		return nil
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	c.total--
	c.mu.Unlock()

	err := c.pager.RemoveLink(ctx, scoreID)
	if err == nil {
		return nil
	}

	if syncErr := c.Load(ctx); syncErr != nil {
		return fmt.Errorf("failed to remove score %d and resync: %w", scoreID, err)
	}
	return fmt.Errorf("failed to remove score %d: %w", scoreID, err)
}

// Phase returns the current lifecycle phase
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Items returns a copy of the loaded view
func (c *Controller) Items() []store.LinkedScore {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]store.LinkedScore, len(c.items))
	copy(out, c.items)
	return out
}

// Page returns the highest 1-based page loaded into the view, 0 before the
// first load completes
func (c *Controller) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Total returns the stored total the view last saw
func (c *Controller) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// HasMore reports whether storage holds pages beyond the loaded ones
func (c *Controller) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasMoreLocked()
}

// Err returns the error that put the view into the error phase
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Controller) hasMoreLocked() bool {
	return int64(c.page*c.pageSize) < c.total
}
