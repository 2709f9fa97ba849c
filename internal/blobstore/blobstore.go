// Package blobstore is the raw file storage boundary: it accepts a byte
// payload and returns a retrievable reference. The canonical record keeps
// that reference; nothing else about the stored bytes is modeled here.
package blobstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Storage defines the interface for raw score file storage
//
//go:generate mockgen -source=blobstore.go -destination=../mocks/blobstore.go -package=mocks -mock_names=Storage=MockStorage
type Storage interface {
	// Put stores data and returns a retrievable reference URL
	Put(ctx context.Context, data []byte, ext string) (string, error)
}

// LocalStorage implements Storage on the local filesystem
type LocalStorage struct {
	rootDir string
}

// NewLocalStorage creates a Storage rooted at rootDir, creating it if needed
func NewLocalStorage(rootDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(rootDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create blob root: %w", err)
	}

	return &LocalStorage{rootDir: rootDir}, nil
}

// Put writes data under a fresh UUID name and returns a file:// URL
func (s *LocalStorage) Put(_ context.Context, data []byte, ext string) (string, error) {
	name := uuid.NewString() + ext
	path := filepath.Join(s.rootDir, name)

	if err := os.WriteFile(path, data, 0o640); err != nil {
		return "", fmt.Errorf("failed to write blob: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve blob path: %w", err)
	}

	return "file://" + abs, nil
}
