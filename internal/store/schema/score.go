package schema

import (
	"time"
)

// Score represents the scores table - one canonical record per distinct
// musical content, shared across every user who holds it. The content hash is
// the deduplication key; its uniqueness constraint is the only concurrency
// control for canonical rows.
type Score struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Title is the display title; never empty once visible to a consumer
	Title string `gorm:"column:title;not null;type:text"`
	// Composer is the display composer; never empty once visible to a consumer
	Composer string `gorm:"column:composer;not null;type:text"`
	// Subtitle is the optional movement/arrangement label
	Subtitle *string `gorm:"column:subtitle;type:text"`
	// ContentHash is the hex SHA-256 digest of the raw uploaded bytes
	ContentHash string `gorm:"column:content_hash;not null;uniqueIndex;type:text"`
	// FileURL is the raw file storage reference for the uploaded bytes
	FileURL string `gorm:"column:file_url;not null;type:text"`
	// CreatedAt is the timestamp of first successful ingestion of this content
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`

	// Associations
	Links []CollectionLink `gorm:"foreignKey:ScoreID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for the Score model
func (Score) TableName() string {
	return "scores"
}
