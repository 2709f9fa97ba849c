package domain

import "time"

// ScoreMeta holds the display metadata of a canonical score as extracted from
// the uploaded document. Empty fields are allowed here; the ingestion resolver
// guarantees non-empty title and composer before anything is persisted.
type ScoreMeta struct {
	Title    string
	Composer string
	// Subtitle is the movement/arrangement label, nil when the document
	// carries neither a movement number nor a movement title.
	Subtitle *string
}

// IngestionOutcome is the transient result of one ingestion attempt.
// Duplicate distinguishes linked-existing from created; a duplicate upload is
// a successful outcome, never an error.
type IngestionOutcome struct {
	ScoreID     int64
	Title       string
	Composer    string
	Subtitle    *string
	ContentHash string
	FileURL     string
	LinkedAt    time.Time
	Duplicate   bool
}

// Reference identifies a score to the recommendation API
type Reference struct {
	Title    string `json:"title"`
	Composer string `json:"composer"`
}

// Suggestion is one recommended score returned by the recommendation API
type Suggestion struct {
	Title    string `json:"title"`
	Composer string `json:"composer"`
}
