package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Qween0fPandora/ai-summary-app/internal/document"
)

func (d *DB) InsertDocument(ctx context.Context, doc *document.Document) error {
	_, err := d.Pool.ExecContext(ctx,
		`INSERT INTO documents (id, filename, file_path, file_type, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		doc.ID, doc.Filename, doc.FilePath, doc.FileType, doc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (d *DB) GetDocument(ctx context.Context, id string) (*document.Document, error) {
	doc := &document.Document{}
	var extracted, summary sql.NullString

	err := d.Pool.QueryRowContext(ctx,
		`SELECT id, filename, file_path, file_type, extracted_text, summary, created_at
		 FROM documents WHERE id = $1`, id,
	).Scan(&doc.ID, &doc.Filename, &doc.FilePath, &doc.FileType, &extracted, &summary, &doc.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("document not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	doc.ExtractedText = extracted.String
	doc.Summary = summary.String
	return doc, nil
}

func (d *DB) ListDocuments(ctx context.Context) ([]*document.Document, error) {
	rows, err := d.Pool.QueryContext(ctx,
		`SELECT id, filename, file_path, file_type, extracted_text, summary, created_at
		 FROM documents ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var result []*document.Document
	for rows.Next() {
		doc := &document.Document{}
		var extracted, summary sql.NullString
		if err := rows.Scan(&doc.ID, &doc.Filename, &doc.FilePath, &doc.FileType, &extracted, &summary, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		doc.ExtractedText = extracted.String
		doc.Summary = summary.String
		result = append(result, doc)
	}
	return result, rows.Err()
}

// SetExtractedText updates only the extracted_text column, so a racing
// summarize run can never lose its summary to this write.
func (d *DB) SetExtractedText(ctx context.Context, id, text string) error {
	_, err := d.Pool.ExecContext(ctx,
		`UPDATE documents SET extracted_text = $1 WHERE id = $2`, text, id)
	if err != nil {
		return fmt.Errorf("update extracted text: %w", err)
	}
	return nil
}

// SetSummary updates only the summary column.
func (d *DB) SetSummary(ctx context.Context, id, summary string) error {
	_, err := d.Pool.ExecContext(ctx,
		`UPDATE documents SET summary = $1 WHERE id = $2`, summary, id)
	if err != nil {
		return fmt.Errorf("update summary: %w", err)
	}
	return nil
}
