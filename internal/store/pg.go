package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clefworks/scorevault/internal/domain"
	"github.com/clefworks/scorevault/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to the defaults applied by
// NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings
// into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// FindScoreByHash retrieves a canonical score by content hash
func (s *pgStore) FindScoreByHash(ctx context.Context, contentHash string) (*schema.Score, error) {
	var score schema.Score
	err := s.db.WithContext(ctx).Where("content_hash = ?", contentHash).First(&score).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get score by hash: %w", err)
	}

	return &score, nil
}

// FindScoreByID retrieves a canonical score by its internal ID
func (s *pgStore) FindScoreByID(ctx context.Context, scoreID int64) (*schema.Score, error) {
	var score schema.Score
	err := s.db.WithContext(ctx).Where("id = ?", scoreID).First(&score).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get score: %w", err)
	}

	return &score, nil
}

// InsertScore persists a new canonical score keyed by its content hash.
//
// Uses ON CONFLICT DO NOTHING on content_hash so that when two identical
// uploads race, exactly one creation succeeds; the loser observes
// domain.ErrDuplicateHash and is expected to re-read the winner's row. This
// is deliberately insert-then-recover rather than check-then-insert to avoid
// a time-of-check/time-of-use gap.
func (s *pgStore) InsertScore(ctx context.Context, score *schema.Score) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "content_hash"}},
		DoNothing: true,
	}).Clauses(clause.Returning{Columns: []clause.Column{}}).
		Create(score).Error
	if err != nil {
		return fmt.Errorf("failed to create score: %w", err)
	}

	// ID stays 0 when the insert hit the conflict clause
	if score.ID == 0 {
		return domain.ErrDuplicateHash
	}

	return nil
}

// DeleteScore removes a canonical score. Administrative only: it refuses
// while any collection link still references the score.
func (s *pgStore) DeleteScore(ctx context.Context, scoreID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var linkCount int64
		if err := tx.Model(&schema.CollectionLink{}).
			Where("score_id = ?", scoreID).
			Count(&linkCount).Error; err != nil {
			return fmt.Errorf("failed to count links: %w", err)
		}
		if linkCount > 0 {
			return domain.ErrScoreReferenced
		}

		result := tx.Where("id = ?", scoreID).Delete(&schema.Score{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete score: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrScoreNotFound
		}

		return nil
	})
}

// FindLink retrieves the link for a (user, score) pair
func (s *pgStore) FindLink(ctx context.Context, userID string, scoreID int64) (*schema.CollectionLink, error) {
	var link schema.CollectionLink
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND score_id = ?", userID, scoreID).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get link: %w", err)
	}

	return &link, nil
}

// InsertLink links a score into a user's collection. Linking an
// already-linked pair is a no-op; the previously stored link is returned with
// its original timestamp.
func (s *pgStore) InsertLink(ctx context.Context, userID string, scoreID int64) (*schema.CollectionLink, error) {
	link := schema.CollectionLink{
		UserID:   userID,
		ScoreID:  scoreID,
		LinkedAt: time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "score_id"}},
		DoNothing: true,
	}).Create(&link).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create link: %w", err)
	}

	// Re-read so a no-op insert returns the original linked_at
	var stored schema.CollectionLink
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND score_id = ?", userID, scoreID).
		First(&stored).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get stored link: %w", err)
	}

	return &stored, nil
}

// DeleteLink removes a score from a user's collection. The canonical score is
// never deleted here; it may be referenced by other users.
func (s *pgStore) DeleteLink(ctx context.Context, userID string, scoreID int64) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND score_id = ?", userID, scoreID).
		Delete(&schema.CollectionLink{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete link: %w", result.Error)
	}

	return nil
}

// ListLinksByUser returns one page of a user's collection and the total count.
// Pages are 1-based; the caller computes "more pages available" from
// page*pageSize against the returned total.
func (s *pgStore) ListLinksByUser(ctx context.Context, userID string, page, pageSize int, sortKey SortKey) ([]LinkedScore, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	var total int64
	err := s.db.WithContext(ctx).
		Model(&schema.CollectionLink{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count links: %w", err)
	}

	order := "collection_links.linked_at DESC"
	if sortKey == SortByTitle {
		order = "scores.title ASC"
	}

	var rows []struct {
		schema.Score
		LinkedAt time.Time `gorm:"column:linked_at"`
	}
	err = s.db.WithContext(ctx).
		Table("collection_links").
		Select("scores.*, collection_links.linked_at").
		Joins("JOIN scores ON scores.id = collection_links.score_id").
		Where("collection_links.user_id = ?", userID).
		Order(order).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list links: %w", err)
	}

	items := make([]LinkedScore, 0, len(rows))
	for _, row := range rows {
		items = append(items, LinkedScore{
			Score:    row.Score,
			LinkedAt: row.LinkedAt,
		})
	}

	return items, total, nil
}
