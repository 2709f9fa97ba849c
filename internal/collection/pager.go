package collection

import (
	"context"
	"sync"

	"github.com/clefworks/scorevault/internal/store"
)

// storePager binds the generic pager boundary to one user's rows in the
// database, with a fixed sort order.
type storePager struct {
	store  store.Store
	userID string
	sort   store.SortKey
}

// NewStorePager returns a Pager serving one user's collection from st
func NewStorePager(st store.Store, userID string, sort store.SortKey) Pager {
	return &storePager{store: st, userID: userID, sort: sort}
}

func (p *storePager) ListByUser(ctx context.Context, page, pageSize int) ([]store.LinkedScore, int64, error) {
	return p.store.ListLinksByUser(ctx, p.userID, page, pageSize, p.sort)
}

func (p *storePager) RemoveLink(ctx context.Context, scoreID int64) error {
	return p.store.DeleteLink(ctx, p.userID, scoreID)
}

// Manager hands out one long-lived controller per (user, sort order) pair so
// the view survives across requests. Controllers are created lazily and kept
// for the life of the process.
type Manager struct {
	mu          sync.Mutex
	store       store.Store
	pageSize    int
	controllers map[string]*Controller
}

// NewManager creates a controller manager over st with the given page size
func NewManager(st store.Store, pageSize int) *Manager {
	return &Manager{
		store:       st,
		pageSize:    pageSize,
		controllers: make(map[string]*Controller),
	}
}

// For returns the controller for userID under the given sort order, creating
// it on first use
func (m *Manager) For(userID string, sort store.SortKey) *Controller {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := userID + "|" + string(sort)
	if c, ok := m.controllers[key]; ok {
		return c
	}

	c := NewController(NewStorePager(m.store, userID, sort), m.pageSize)
	m.controllers[key] = c
	return c
}
