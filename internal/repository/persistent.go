package repository

import (
	"context"
	"log/slog"

	"github.com/Qween0fPandora/ai-summary-app/internal/db"
	"github.com/Qween0fPandora/ai-summary-app/internal/document"
)

// PersistentRepository wraps a MemoryRepository with a PostgreSQL backend.
// Writes go to both stores (DB failure is logged but non-fatal).
// Reads try memory first, falling back to the database.
type PersistentRepository struct {
	mem *MemoryRepository
	db  *db.DB
}

// NewPersistent creates a repository backed by both memory and PostgreSQL.
func NewPersistent(mem *MemoryRepository, database *db.DB) *PersistentRepository {
	return &PersistentRepository{mem: mem, db: database}
}

func (r *PersistentRepository) Create(ctx context.Context, doc *document.Document) error {
	_ = r.mem.Create(ctx, doc) // assigns ID and CreatedAt
	if err := r.db.InsertDocument(ctx, doc); err != nil {
		slog.Warn("db insert document failed, in-memory only", "id", doc.ID, "err", err)
	}
	return nil
}

func (r *PersistentRepository) Get(ctx context.Context, id string) (*document.Document, error) {
	// Fast path: in-memory.
	doc, err := r.mem.Get(ctx, id)
	if err == nil {
		return doc, nil
	}

	// Fallback: database.
	row, dbErr := r.db.GetDocument(ctx, id)
	if dbErr != nil {
		return nil, err // return original ErrNotFound
	}

	// Cache in memory for future lookups.
	_ = r.mem.Create(ctx, row)
	return row, nil
}

func (r *PersistentRepository) List(ctx context.Context) ([]*document.Document, error) {
	// Prefer DB for durable listing.
	rows, err := r.db.ListDocuments(ctx)
	if err == nil {
		return rows, nil
	}
	slog.Warn("db list documents failed, falling back to in-memory", "err", err)
	return r.mem.List(ctx)
}

func (r *PersistentRepository) SetExtractedText(ctx context.Context, id, text string) error {
	if err := r.mem.SetExtractedText(ctx, id, text); err != nil {
		return err
	}
	if err := r.db.SetExtractedText(ctx, id, text); err != nil {
		slog.Warn("db update extracted text failed, in-memory only", "id", id, "err", err)
	}
	return nil
}

func (r *PersistentRepository) SetSummary(ctx context.Context, id, summary string) error {
	if err := r.mem.SetSummary(ctx, id, summary); err != nil {
		return err
	}
	if err := r.db.SetSummary(ctx, id, summary); err != nil {
		slog.Warn("db update summary failed, in-memory only", "id", id, "err", err)
	}
	return nil
}
