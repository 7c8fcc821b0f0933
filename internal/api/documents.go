// internal/api/documents.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Qween0fPandora/ai-summary-app/internal/document"
	"github.com/Qween0fPandora/ai-summary-app/internal/repository"
)

const maxUploadSize = 50 << 20 // 50MB

// documentIDRequest is the body of the extract and summarize endpoints.
type documentIDRequest struct {
	DocumentID string `json:"documentId"`
}

func (s *Server) uploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large (max 50MB)")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	doc, err := s.documents.Upload(r.Context(), header.Filename, contentType, file)
	if err != nil {
		s.writeStageError(w, err, "Upload failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "document": doc})
}

func (s *Server) extractDocument(w http.ResponseWriter, r *http.Request) {
	var req documentIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DocumentID == "" {
		writeError(w, http.StatusBadRequest, "No document ID provided")
		return
	}

	text, err := s.documents.Extract(r.Context(), req.DocumentID)
	if err != nil {
		s.writeStageError(w, err, "Extraction failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "extractedText": text})
}

func (s *Server) summarizeDocument(w http.ResponseWriter, r *http.Request) {
	var req documentIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DocumentID == "" {
		writeError(w, http.StatusBadRequest, "No document ID provided")
		return
	}

	summary, err := s.documents.Summarize(r.Context(), req.DocumentID)
	if err != nil {
		s.writeStageError(w, err, "Summarization failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "summary": summary})
}

func (s *Server) listDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.documents.List(r.Context())
	if err != nil {
		s.writeStageError(w, err, "Listing documents failed")
		return
	}
	if docs == nil {
		docs = []*document.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) getDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := s.documents.Get(r.Context(), id)
	if err != nil {
		s.writeStageError(w, err, "Fetching document failed")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) serveDocumentFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, rc, err := s.documents.OpenFile(r.Context(), id)
	if err != nil {
		s.writeStageError(w, err, "Fetching document file failed")
		return
	}
	defer rc.Close()

	escaped := strings.ReplaceAll(doc.Filename, `"`, `\"`)
	w.Header().Set("Content-Type", doc.FileType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, escaped))
	if _, err := io.Copy(w, rc); err != nil {
		slog.Warn("serveDocumentFile: copy interrupted", "id", id, "err", err)
	}
}

// writeStageError maps a stage failure to the response taxonomy: client
// mistakes get 400 with the validation message, unknown documents get 404,
// everything else gets 500 with a generic message and a server-side log.
func (s *Server) writeStageError(w http.ResponseWriter, err error, generic string) {
	switch {
	case errors.Is(err, document.ErrNoFile),
		errors.Is(err, document.ErrUnsupportedType),
		errors.Is(err, document.ErrNoExtractedText):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "Document not found")
	default:
		slog.Error(generic, "err", err)
		writeError(w, http.StatusInternalServerError, generic)
	}
}
