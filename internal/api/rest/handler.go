package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clefworks/scorevault/internal/api/middleware"
	"github.com/clefworks/scorevault/internal/collection"
	"github.com/clefworks/scorevault/internal/domain"
	"github.com/clefworks/scorevault/internal/ingest"
	"github.com/clefworks/scorevault/internal/logger"
	"github.com/clefworks/scorevault/internal/store"
)

// Recommender asks the recommendation API for scores similar to refs
type Recommender interface {
	Suggest(ctx context.Context, refs []domain.Reference) ([]domain.Suggestion, error)
}

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// UploadScore ingests an uploaded score file for the requesting user
	// POST /api/v1/scores (multipart, field "file")
	UploadScore(c *gin.Context)

	// GetScore retrieves a single canonical score
	// GET /api/v1/scores/:id
	GetScore(c *gin.Context)

	// GetCollection retrieves one page of the requesting user's collection
	// GET /api/v1/collection?page=<page>&sort=linked_at|title
	GetCollection(c *gin.Context)

	// AddToCollection links an existing score into the requesting user's collection
	// POST /api/v1/collection/:score_id
	AddToCollection(c *gin.Context)

	// RemoveFromCollection removes a score from the requesting user's collection
	// DELETE /api/v1/collection/:score_id
	RemoveFromCollection(c *gin.Context)

	// Suggest returns recommended scores, seeded by the request body or by
	// the requesting user's collection
	// POST /api/v1/suggestions
	Suggest(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	resolver    *ingest.Resolver
	store       store.Store
	collections *collection.Manager
	recommender Recommender
	pageSize    int
}

// NewHandler creates a new REST API handler
func NewHandler(resolver *ingest.Resolver, st store.Store, collections *collection.Manager, recommender Recommender, pageSize int) Handler {
	return &handler{
		resolver:    resolver,
		store:       st,
		collections: collections,
		recommender: recommender,
		pageSize:    pageSize,
	}
}

// requireUser extracts the authenticated user ID, responding with 403 when
// the request carries no user identity (API key callers).
func requireUser(c *gin.Context) (string, bool) {
	userID := middleware.UserID(c)
	if userID == "" {
		respondWithError(c, http.StatusForbidden, errCodeForbidden, "User identity required")
		return "", false
	}
	return userID, true
}

// UploadScore ingests an uploaded score file for the requesting user
func (h *handler) UploadScore(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondBadRequest(c, "Score file is required", err.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondBadRequest(c, "Failed to open uploaded file", err.Error())
		return
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		respondBadRequest(c, "Failed to read uploaded file", err.Error())
		return
	}

	outcome, err := h.resolver.Ingest(
		c.Request.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		data,
		userID,
	)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidFileFormat):
			respondBadRequest(c, "Invalid file format", err.Error())
		case errors.Is(err, domain.ErrFileTooLarge):
			respondWithError(c, http.StatusRequestEntityTooLarge, errCodeFileTooLarge, "File too large", err.Error())
		case errors.Is(err, domain.ErrInvalidDocument):
			respondValidationError(c, err.Error())
		case errors.Is(err, domain.ErrStorageUnavailable):
			respondStorageError(c, err, zap.String("user_id", userID))
		default:
			respondInternalError(c, err, "Failed to ingest score")
		}
		return
	}

	status := http.StatusCreated
	if outcome.Duplicate {
		status = http.StatusOK
	}
	c.JSON(status, toUploadResponseDTO(outcome))
}

// GetScore retrieves a single canonical score
func (h *handler) GetScore(c *gin.Context) {
	scoreID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid score ID")
		return
	}

	score, err := h.store.FindScoreByID(c.Request.Context(), scoreID)
	if err != nil {
		respondStorageError(c, err, zap.Int64("score_id", scoreID))
		return
	}
	if score == nil {
		respondNotFound(c, "Score not found")
		return
	}

	c.JSON(http.StatusOK, toScoreDTO(score))
}

// GetCollection retrieves one page of the requesting user's collection. Page
// 1 always reloads from storage; later pages extend the view held for the
// user, so paging forward never skips or repeats entries.
func (h *handler) GetCollection(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		respondBadRequest(c, "Invalid page")
		return
	}

	sort, ok := parseSortKey(c.DefaultQuery("sort", string(store.SortByLinkedAt)))
	if !ok {
		respondBadRequest(c, "Invalid sort key")
		return
	}

	ctx := c.Request.Context()
	ctrl := h.collections.For(userID, sort)

	if page == 1 || ctrl.Page() == 0 {
		if err := ctrl.Load(ctx); err != nil {
			respondStorageError(c, err, zap.String("user_id", userID))
			return
		}
	}
	for ctrl.Page() < page && ctrl.HasMore() {
		if err := ctrl.LoadMore(ctx); err != nil {
			respondStorageError(c, err, zap.String("user_id", userID))
			return
		}
	}

	items := ctrl.Items()
	start := (page - 1) * h.pageSize
	if start > len(items) {
		start = len(items)
	}
	end := start + h.pageSize
	if end > len(items) {
		end = len(items)
	}

	c.JSON(http.StatusOK, collectionResponseDTO{
		Items:    toCollectionItemDTOs(items[start:end]),
		Total:    ctrl.Total(),
		Page:     page,
		PageSize: h.pageSize,
		HasMore:  ctrl.HasMore(),
		Phase:    ctrl.Phase(),
	})
}

// AddToCollection links an existing score into the requesting user's collection
func (h *handler) AddToCollection(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	scoreID, err := strconv.ParseInt(c.Param("score_id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid score ID")
		return
	}

	ctx := c.Request.Context()

	score, err := h.store.FindScoreByID(ctx, scoreID)
	if err != nil {
		respondStorageError(c, err, zap.Int64("score_id", scoreID))
		return
	}
	if score == nil {
		respondNotFound(c, "Score not found")
		return
	}

	link, err := h.store.InsertLink(ctx, userID, scoreID)
	if err != nil {
		respondStorageError(c, err, zap.Int64("score_id", scoreID), zap.String("user_id", userID))
		return
	}

	// Keep a loaded view current; re-adding an already listed score must not
	// duplicate the entry.
	ctrl := h.collections.For(userID, store.SortByLinkedAt)
	if ctrl.Page() > 0 && !viewContains(ctrl.Items(), scoreID) {
		ctrl.Add(store.LinkedScore{Score: *score, LinkedAt: link.LinkedAt})
	}

	c.JSON(http.StatusOK, linkResponseDTO{
		ScoreID:  scoreID,
		LinkedAt: link.LinkedAt,
	})
}

// RemoveFromCollection removes a score from the requesting user's collection
func (h *handler) RemoveFromCollection(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	scoreID, err := strconv.ParseInt(c.Param("score_id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid score ID")
		return
	}

	ctx := c.Request.Context()
	ctrl := h.collections.For(userID, store.SortByLinkedAt)

	if ctrl.Page() == 0 {
		if err := ctrl.Load(ctx); err != nil {
			respondStorageError(c, err, zap.String("user_id", userID))
			return
		}
	}

	if err := ctrl.Remove(ctx, scoreID); err != nil {
		respondStorageError(c, err, zap.Int64("score_id", scoreID), zap.String("user_id", userID))
		return
	}

	c.Status(http.StatusNoContent)
}

// Suggest returns recommended scores. An empty request body seeds the
// request from the user's own collection.
func (h *handler) Suggest(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req suggestionsRequestDTO
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "Invalid request body", err.Error())
			return
		}
	}

	ctx := c.Request.Context()

	refs := req.References
	if len(refs) == 0 {
		items, _, err := h.store.ListLinksByUser(ctx, userID, 1, h.pageSize, store.SortByLinkedAt)
		if err != nil {
			respondStorageError(c, err, zap.String("user_id", userID))
			return
		}
		for i := range items {
			refs = append(refs, domain.Reference{
				Title:    items[i].Score.Title,
				Composer: items[i].Score.Composer,
			})
		}
	}

	if len(refs) == 0 {
		c.JSON(http.StatusOK, suggestionsResponseDTO{Suggestions: []domain.Suggestion{}})
		return
	}

	suggestions, err := h.recommender.Suggest(ctx, refs)
	if err != nil {
		if errors.Is(err, domain.ErrTimeout) {
			respondWithError(c, http.StatusGatewayTimeout, errCodeServiceError, "Recommendation service timed out")
			return
		}
		logger.Error(err, zap.String("user_id", userID))
		respondWithError(c, http.StatusBadGateway, errCodeServiceError, "Recommendation service failed")
		return
	}

	if suggestions == nil {
		suggestions = []domain.Suggestion{}
	}
	c.JSON(http.StatusOK, suggestionsResponseDTO{Suggestions: suggestions})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

func parseSortKey(value string) (store.SortKey, bool) {
	switch store.SortKey(value) {
	case store.SortByLinkedAt:
		return store.SortByLinkedAt, true
	case store.SortByTitle:
		return store.SortByTitle, true
	default:
		return "", false
	}
}

func viewContains(items []store.LinkedScore, scoreID int64) bool {
	for i := range items {
		if items[i].Score.ID == scoreID {
			return true
		}
	}
	return false
}
