package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Qween0fPandora/ai-summary-app/internal/document"
)

// MemoryRepository is a thread-safe in-memory DocumentRepository.
type MemoryRepository struct {
	mu   sync.RWMutex
	docs map[string]document.Document
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *MemoryRepository {
	return &MemoryRepository{docs: make(map[string]document.Document)}
}

func (r *MemoryRepository) Create(_ context.Context, doc *document.Document) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.ID] = *doc
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*document.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	cp := doc
	return &cp, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*document.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*document.Document, 0, len(r.docs))
	for _, doc := range r.docs {
		cp := doc
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *MemoryRepository) SetExtractedText(_ context.Context, id, text string) error {
	return r.update(id, func(doc *document.Document) { doc.ExtractedText = text })
}

func (r *MemoryRepository) SetSummary(_ context.Context, id, summary string) error {
	return r.update(id, func(doc *document.Document) { doc.Summary = summary })
}

func (r *MemoryRepository) update(id string, apply func(*document.Document)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	apply(&doc)
	r.docs[id] = doc
	return nil
}
