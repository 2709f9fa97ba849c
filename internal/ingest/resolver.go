// Package ingest resolves an uploaded score file into either a new canonical
// score record or a link to an existing one. It owns the deduplication
// invariant: one canonical row per distinct content hash, even under
// concurrent identical uploads.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/clefworks/scorevault/internal/blobstore"
	"github.com/clefworks/scorevault/internal/contentid"
	"github.com/clefworks/scorevault/internal/domain"
	"github.com/clefworks/scorevault/internal/logger"
	"github.com/clefworks/scorevault/internal/musicxml"
	"github.com/clefworks/scorevault/internal/store"
	"github.com/clefworks/scorevault/internal/store/schema"
)

// The two recognized score-document extensions
var allowedExtensions = map[string]bool{
	".musicxml": true,
	".xml":      true,
}

// Declared MIME types accepted at the upload boundary, beyond the generic
// "+xml" suffix rule
var allowedMIMETypes = map[string]bool{
	"application/xml": true,
	"text/xml":        true,
	"application/vnd.recordare.musicxml+xml": true,
}

// Resolver orchestrates validation, hashing, extraction and the
// create-or-link decision for one uploaded file.
type Resolver struct {
	store       store.Store
	blobs       blobstore.Storage
	maxFileSize int64
}

// NewResolver creates a new ingestion resolver
func NewResolver(st store.Store, blobs blobstore.Storage, maxFileSize int64) *Resolver {
	return &Resolver{
		store:       st,
		blobs:       blobs,
		maxFileSize: maxFileSize,
	}
}

// Ingest resolves one uploaded score file for the requesting user.
//
// Validation happens before any storage is touched. Hashing and metadata
// extraction run concurrently; both complete before the duplicate lookup. A
// content-hash collision on insert is recovered by re-reading the winning
// row, so the result of racing identical uploads is indistinguishable from a
// sequential duplicate upload. Duplicate uploads are a successful outcome
// carrying Duplicate=true, never an error.
func (r *Resolver) Ingest(ctx context.Context, fileName, declaredMIME string, data []byte, userID string) (*domain.IngestionOutcome, error) {
	if err := r.validate(fileName, declaredMIME, data); err != nil {
		return nil, err
	}

	// Hash the raw bytes concurrently with parsing and extraction; neither
	// depends on the other, but the duplicate lookup needs both.
	hashCh := make(chan string, 1)
	go func() {
		hashCh <- contentid.Hash(data)
	}()

	doc, err := musicxml.Parse(data)
	if err != nil {
		return nil, err
	}
	meta := musicxml.Extract(doc)
	hash := <-hashCh

	score, duplicate, err := r.resolveScore(ctx, hash, meta, data, fileName)
	if err != nil {
		return nil, err
	}

	link, err := r.store.InsertLink(ctx, userID, score.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to link score: %v", domain.ErrStorageUnavailable, err)
	}

	return &domain.IngestionOutcome{
		ScoreID:     score.ID,
		Title:       score.Title,
		Composer:    score.Composer,
		Subtitle:    score.Subtitle,
		ContentHash: score.ContentHash,
		FileURL:     score.FileURL,
		LinkedAt:    link.LinkedAt,
		Duplicate:   duplicate,
	}, nil
}

// validate enforces the upload acceptance criteria: recognized extension,
// XML-family declared MIME, size ceiling, and XML-looking bytes. Violations
// are rejected before any parsing is attempted.
func (r *Resolver) validate(fileName, declaredMIME string, data []byte) error {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedExtensions[ext] {
		return fmt.Errorf("%w: unsupported extension %q", domain.ErrInvalidFileFormat, ext)
	}

	mediaType, _, err := mime.ParseMediaType(declaredMIME)
	if err != nil {
		return fmt.Errorf("%w: unparseable content type %q", domain.ErrInvalidFileFormat, declaredMIME)
	}
	if !allowedMIMETypes[mediaType] && !strings.HasSuffix(mediaType, "+xml") {
		return fmt.Errorf("%w: content type %q is not XML", domain.ErrInvalidFileFormat, mediaType)
	}

	if r.maxFileSize > 0 && int64(len(data)) > r.maxFileSize {
		return fmt.Errorf("%w: %d bytes exceeds ceiling of %d", domain.ErrFileTooLarge, len(data), r.maxFileSize)
	}

	// Sniff the actual bytes; the declared type is caller-controlled
	sniffed := mimetype.Detect(data)
	if !sniffed.Is("text/xml") && !sniffed.Is("application/xml") {
		return fmt.Errorf("%w: detected content type %q is not XML", domain.ErrInvalidFileFormat, sniffed.String())
	}

	return nil
}

// resolveScore finds the canonical score for hash or creates it, returning
// whether the content already existed.
func (r *Resolver) resolveScore(ctx context.Context, hash string, meta domain.ScoreMeta, data []byte, fileName string) (*schema.Score, bool, error) {
	existing, err := r.store.FindScoreByHash(ctx, hash)
	if err != nil {
		return nil, false, fmt.Errorf("%w: failed to look up score: %v", domain.ErrStorageUnavailable, err)
	}
	if existing != nil {
		return existing, true, nil
	}

	fileURL, err := r.blobs.Put(ctx, data, strings.ToLower(filepath.Ext(fileName)))
	if err != nil {
		return nil, false, fmt.Errorf("%w: failed to store file: %v", domain.ErrStorageUnavailable, err)
	}

	score := &schema.Score{
		Title:       normalizeRequired(meta.Title, domain.PlaceholderTitle),
		Composer:    normalizeRequired(meta.Composer, domain.PlaceholderComposer),
		Subtitle:    meta.Subtitle,
		ContentHash: hash,
		FileURL:     fileURL,
	}

	err = r.store.InsertScore(ctx, score)
	if err == nil {
		return score, false, nil
	}
	if !errors.Is(err, domain.ErrDuplicateHash) {
		return nil, false, fmt.Errorf("%w: failed to create score: %v", domain.ErrStorageUnavailable, err)
	}

	// Lost the creation race: another identical upload inserted this hash
	// first. Recover by re-reading the winner's row and continue as if the
	// record had pre-existed. First-seen metadata is kept unconditionally.
	logger.DebugCtx(ctx, "lost creation race, reusing existing score", zap.String("content_hash", hash))
	winner, err := r.store.FindScoreByHash(ctx, hash)
	if err != nil {
		return nil, false, fmt.Errorf("%w: failed to re-read score after conflict: %v", domain.ErrStorageUnavailable, err)
	}
	if winner == nil {
		return nil, false, fmt.Errorf("%w: score vanished after conflict", domain.ErrStorageUnavailable)
	}

	return winner, true, nil
}

// normalizeRequired keeps the required-field invariant: an empty extracted
// value becomes a safe placeholder rather than being persisted empty.
func normalizeRequired(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}
