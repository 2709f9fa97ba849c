package rest

import (
	"time"

	"github.com/clefworks/scorevault/internal/collection"
	"github.com/clefworks/scorevault/internal/domain"
	"github.com/clefworks/scorevault/internal/store"
	"github.com/clefworks/scorevault/internal/store/schema"
)

// scoreDTO is the wire shape of one canonical score
type scoreDTO struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Composer    string    `json:"composer"`
	Subtitle    *string   `json:"subtitle,omitempty"`
	ContentHash string    `json:"content_hash"`
	FileURL     string    `json:"file_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// uploadResponseDTO is the result of one upload. Duplicate tells the caller
// the content already existed; the upload still succeeded.
type uploadResponseDTO struct {
	Score     scoreDTO  `json:"score"`
	Duplicate bool      `json:"duplicate"`
	LinkedAt  time.Time `json:"linked_at"`
}

// collectionItemDTO is one entry of a collection listing
type collectionItemDTO struct {
	Score    scoreDTO  `json:"score"`
	LinkedAt time.Time `json:"linked_at"`
}

// collectionResponseDTO is one page of a user's collection
type collectionResponseDTO struct {
	Items    []collectionItemDTO `json:"items"`
	Total    int64               `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
	HasMore  bool                `json:"has_more"`
	Phase    collection.Phase    `json:"phase"`
}

// linkResponseDTO is the result of linking an existing score
type linkResponseDTO struct {
	ScoreID  int64     `json:"score_id"`
	LinkedAt time.Time `json:"linked_at"`
}

// suggestionsRequestDTO asks for recommendations. With no references the
// caller's own collection seeds the request.
type suggestionsRequestDTO struct {
	References []domain.Reference `json:"references"`
}

// suggestionsResponseDTO carries the recommended scores
type suggestionsResponseDTO struct {
	Suggestions []domain.Suggestion `json:"suggestions"`
}

func toScoreDTO(s *schema.Score) scoreDTO {
	return scoreDTO{
		ID:          s.ID,
		Title:       s.Title,
		Composer:    s.Composer,
		Subtitle:    s.Subtitle,
		ContentHash: s.ContentHash,
		FileURL:     s.FileURL,
		CreatedAt:   s.CreatedAt,
	}
}

func toUploadResponseDTO(outcome *domain.IngestionOutcome) uploadResponseDTO {
	return uploadResponseDTO{
		Score: scoreDTO{
			ID:          outcome.ScoreID,
			Title:       outcome.Title,
			Composer:    outcome.Composer,
			Subtitle:    outcome.Subtitle,
			ContentHash: outcome.ContentHash,
			FileURL:     outcome.FileURL,
		},
		Duplicate: outcome.Duplicate,
		LinkedAt:  outcome.LinkedAt,
	}
}

func toCollectionItemDTOs(items []store.LinkedScore) []collectionItemDTO {
	out := make([]collectionItemDTO, 0, len(items))
	for i := range items {
		out = append(out, collectionItemDTO{
			Score:    toScoreDTO(&items[i].Score),
			LinkedAt: items[i].LinkedAt,
		})
	}
	return out
}
