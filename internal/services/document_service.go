// internal/services/document_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Qween0fPandora/ai-summary-app/internal/document"
	"github.com/Qween0fPandora/ai-summary-app/internal/extract"
	"github.com/Qween0fPandora/ai-summary-app/internal/provider"
	"github.com/Qween0fPandora/ai-summary-app/internal/repository"
	"github.com/Qween0fPandora/ai-summary-app/internal/storage"
)

const summarizeSystemPrompt = "You are a helpful assistant that summarizes documents clearly and concisely."

// DocumentService runs the three document stages: upload, extract,
// summarize. Each stage is independently triggerable; concurrent re-runs
// of the same stage race at the store with last-write-wins semantics (no
// per-document sequencing exists, matching the stores' own behavior).
type DocumentService struct {
	repo      repository.DocumentRepository
	blobs     storage.Storage
	providers *provider.Registry
	model     string // "provider/model"
	maxTokens int
}

func NewDocumentService(repo repository.DocumentRepository, blobs storage.Storage, providers *provider.Registry, model string, maxTokens int) *DocumentService {
	return &DocumentService{
		repo:      repo,
		blobs:     blobs,
		providers: providers,
		model:     model,
		maxTokens: maxTokens,
	}
}

// Upload validates and stores a new document: bytes to the blob store,
// metadata to the repository. The two writes are not transactional; if the
// insert fails after the blob write, the blob is orphaned (no compensation).
func (s *DocumentService) Upload(ctx context.Context, filename, contentType string, r io.Reader) (*document.Document, error) {
	mime := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	if !document.AllowedType(mime) {
		return nil, fmt.Errorf("%w: %s", document.ErrUnsupportedType, mime)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, document.ErrNoFile
	}

	// Timestamp prefix keeps identically-named uploads from colliding.
	key := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filename)
	if err := s.blobs.Put(ctx, key, mime, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	doc := &document.Document{
		Filename: filename,
		FilePath: key,
		FileType: mime,
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document metadata: %w", err)
	}
	return doc, nil
}

// Extract reads the stored blob back and derives plain text from it.
// Re-running always overwrites the previous extracted text.
func (s *DocumentService) Extract(ctx context.Context, id string) (string, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}

	rc, err := s.blobs.Get(ctx, doc.FilePath)
	if err != nil {
		return "", fmt.Errorf("read stored file: %w", err)
	}
	defer rc.Close()

	text, err := extract.Extract(doc.FileType, rc)
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}

	if err := s.repo.SetExtractedText(ctx, id, text); err != nil {
		return "", fmt.Errorf("save extracted text: %w", err)
	}
	return text, nil
}

// Summarize sends the extracted text to the configured model and persists
// the returned summary. It never calls the provider for a document whose
// text has not been extracted yet.
func (s *DocumentService) Summarize(ctx context.Context, id string) (string, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if doc.ExtractedText == "" {
		return "", document.ErrNoExtractedText
	}

	p, model, err := s.providers.Resolve(s.model)
	if err != nil {
		return "", fmt.Errorf("resolve summarizer model: %w", err)
	}

	maxTokens := s.maxTokens
	resp, err := p.ChatCompletion(ctx, &provider.ChatRequest{
		Model: model,
		Messages: []provider.Message{
			{Role: provider.RoleSystem, Content: summarizeSystemPrompt},
			{Role: provider.RoleUser, Content: "Please summarize the following document in 3-5 sentences:\n\n" + doc.ExtractedText},
		},
		MaxTokens: &maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}
	if resp.Content == "" {
		return "", fmt.Errorf("generate summary: empty response from model")
	}

	if err := s.repo.SetSummary(ctx, id, resp.Content); err != nil {
		return "", fmt.Errorf("save summary: %w", err)
	}
	return resp.Content, nil
}

// Get returns the current metadata record for a document.
func (s *DocumentService) Get(ctx context.Context, id string) (*document.Document, error) {
	return s.repo.Get(ctx, id)
}

// List returns all documents, newest first.
func (s *DocumentService) List(ctx context.Context) ([]*document.Document, error) {
	return s.repo.List(ctx)
}

// OpenFile opens the raw uploaded bytes for a document.
func (s *DocumentService) OpenFile(ctx context.Context, id string) (*document.Document, io.ReadCloser, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.blobs.Get(ctx, doc.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("read stored file: %w", err)
	}
	return doc, rc, nil
}
