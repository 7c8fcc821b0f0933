// Package repository defines storage interfaces for document metadata.
package repository

import (
	"context"
	"errors"

	"github.com/Qween0fPandora/ai-summary-app/internal/document"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

// DocumentRepository abstracts document metadata persistence so callers
// don't need to know whether storage is in-memory, PostgreSQL, or a mix.
//
// Updates are field-scoped on purpose: SetExtractedText and SetSummary
// each touch only their own field, so re-running one stage can never
// clear the other stage's output.
type DocumentRepository interface {
	// Create persists a new document, assigning its ID and creation time.
	Create(ctx context.Context, doc *document.Document) error
	Get(ctx context.Context, id string) (*document.Document, error)
	List(ctx context.Context) ([]*document.Document, error)
	SetExtractedText(ctx context.Context, id, text string) error
	SetSummary(ctx context.Context, id, summary string) error
}
