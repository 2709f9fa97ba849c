package store

import (
	"context"
	"time"

	"github.com/clefworks/scorevault/internal/store/schema"
)

// LinkedScore is one row of a user's collection listing: the canonical score
// joined with its link timestamp.
type LinkedScore struct {
	Score    schema.Score
	LinkedAt time.Time
}

// SortKey controls collection listing order
type SortKey string

const (
	// SortByLinkedAt orders by when the score entered the collection, newest first
	SortByLinkedAt SortKey = "linked_at"
	// SortByTitle orders alphabetically by score title
	SortByTitle SortKey = "title"
)

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks
type Store interface {
	// FindScoreByHash retrieves a canonical score by content hash, nil if none exists
	FindScoreByHash(ctx context.Context, contentHash string) (*schema.Score, error)
	// FindScoreByID retrieves a canonical score by its internal ID, nil if none exists
	FindScoreByID(ctx context.Context, scoreID int64) (*schema.Score, error)
	// InsertScore persists a new canonical score. A content-hash uniqueness
	// violation is returned as domain.ErrDuplicateHash so callers can recover
	// by re-reading; it is an expected race outcome, not a fatal error.
	InsertScore(ctx context.Context, score *schema.Score) error
	// DeleteScore removes a canonical score (administrative only). It refuses
	// with domain.ErrScoreReferenced while any collection link references it.
	DeleteScore(ctx context.Context, scoreID int64) error

	// FindLink retrieves the link for a (user, score) pair, nil if none exists
	FindLink(ctx context.Context, userID string, scoreID int64) (*schema.CollectionLink, error)
	// InsertLink links a score into a user's collection. Linking an
	// already-linked pair is a no-op; the stored link is returned either way.
	InsertLink(ctx context.Context, userID string, scoreID int64) (*schema.CollectionLink, error)
	// DeleteLink removes a score from a user's collection
	DeleteLink(ctx context.Context, userID string, scoreID int64) error
	// ListLinksByUser returns one page of a user's collection and the total count
	ListLinksByUser(ctx context.Context, userID string, page, pageSize int, sortKey SortKey) ([]LinkedScore, int64, error)
}
