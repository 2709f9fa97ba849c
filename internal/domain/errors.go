package domain

import "errors"

var (
	// ErrInvalidFileFormat is returned when an upload fails extension or MIME validation
	ErrInvalidFileFormat = errors.New("invalid file format")

	// ErrInvalidDocument is returned when the uploaded bytes cannot be parsed into a score document
	ErrInvalidDocument = errors.New("invalid score document")

	// ErrFileTooLarge is returned when an upload exceeds the configured size ceiling
	ErrFileTooLarge = errors.New("file too large")

	// ErrDuplicateHash is returned by the store when inserting a score whose
	// content hash already exists. The resolver treats this as an expected
	// race outcome and recovers by re-reading.
	ErrDuplicateHash = errors.New("score with content hash already exists")

	// ErrScoreNotFound is returned when a score is not found
	ErrScoreNotFound = errors.New("score not found")

	// ErrScoreReferenced is returned when deleting a score that is still linked
	// into at least one collection
	ErrScoreReferenced = errors.New("score is referenced by collection links")

	// ErrStorageUnavailable is returned when an upstream store dependency fails
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrTimeout is reported when an operation loses the race against its deadline
	ErrTimeout = errors.New("operation timed out")
)
