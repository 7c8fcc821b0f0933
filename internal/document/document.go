// Package document defines the Document entity and the validation rules
// shared by the upload, extract and summarize stages.
package document

import (
	"errors"
	"time"
)

// MIME types accepted at upload. Nothing else is ever persisted.
const (
	TypePDF  = "application/pdf"
	TypeText = "text/plain"
)

// Document is the metadata record for one uploaded file and the artifacts
// derived from it. ExtractedText and Summary are empty until their stage
// has run; re-running a stage overwrites only its own field.
type Document struct {
	ID            string    `json:"id"`
	Filename      string    `json:"filename"`
	FilePath      string    `json:"file_path"`
	FileType      string    `json:"file_type"`
	ExtractedText string    `json:"extracted_text,omitempty"`
	Summary       string    `json:"summary,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Validation sentinels. Handlers map these to HTTP 400.
var (
	ErrNoFile          = errors.New("no file provided")
	ErrUnsupportedType = errors.New("only PDF and TXT files are allowed")
	ErrNoExtractedText = errors.New("no extracted text found, run extract first")
)

// AllowedType reports whether contentType may be uploaded.
func AllowedType(contentType string) bool {
	return contentType == TypePDF || contentType == TypeText
}
