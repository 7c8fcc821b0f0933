// Package storage provides the blob store: raw uploaded bytes addressed by
// a caller-chosen key, kept separate from document metadata.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when no blob exists under the requested key.
var ErrNotFound = errors.New("blob not found")

// Storage is the interface for blob persistence backends.
type Storage interface {
	// Put stores the blob under key with the given content type.
	Put(ctx context.Context, key string, contentType string, reader io.Reader) error
	// Get opens the blob stored under key.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}
