package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage stores blobs as files under a base directory.
// The content type is accepted for interface parity with managed object
// stores but is not persisted by this backend.
type LocalStorage struct {
	baseDir string
}

func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

// path maps a key to a file inside baseDir. Keys are flattened to their
// base name so a hostile key cannot escape the storage root.
func (s *LocalStorage) path(key string) string {
	return filepath.Join(s.baseDir, filepath.Base(key))
}

func (s *LocalStorage) Put(_ context.Context, key string, _ string, reader io.Reader) error {
	fullPath := s.path(key)
	f, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("create blob: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		os.Remove(fullPath)
		return fmt.Errorf("write blob: %w", err)
	}
	return nil
}

func (s *LocalStorage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(key))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("blob %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("open blob: %w", err)
	}
	return f, nil
}
