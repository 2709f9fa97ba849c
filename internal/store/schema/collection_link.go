package schema

import (
	"time"
)

// CollectionLink represents the collection_links table - the join between a
// user and a canonical score, signifying "this score is in my collection".
// At most one link exists per (user, score) pair; deleting a link never
// deletes the score it references.
type CollectionLink struct {
	// UserID identifies the owning user
	UserID string `gorm:"column:user_id;primaryKey;type:text"`
	// ScoreID references the canonical score
	ScoreID int64 `gorm:"column:score_id;primaryKey"`
	// LinkedAt is the timestamp the score entered the user's collection
	LinkedAt time.Time `gorm:"column:linked_at;not null;default:now()"`
}

// TableName specifies the table name for the CollectionLink model
func (CollectionLink) TableName() string {
	return "collection_links"
}
