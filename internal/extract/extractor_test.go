package extract_test

import (
	"strings"
	"testing"

	"github.com/Qween0fPandora/ai-summary-app/internal/extract"
)

func TestExtractPlainText(t *testing.T) {
	text, err := extract.Extract("text/plain", strings.NewReader("hello world"))
	if err != nil {
		t.Fatal(err)
	}
	if text != "hello world" {
		t.Errorf("want %q got %q", "hello world", text)
	}
}

func TestExtractPlainTextWithCharset(t *testing.T) {
	text, err := extract.Extract("text/plain; charset=utf-8", strings.NewReader("héllo"))
	if err != nil {
		t.Fatal(err)
	}
	if text != "héllo" {
		t.Errorf("want %q got %q", "héllo", text)
	}
}

func TestExtractPDFReturnsStub(t *testing.T) {
	// PDF content is never decoded; the stage succeeds with the stub text.
	text, err := extract.Extract("application/pdf", strings.NewReader("%PDF-1.4 ..."))
	if err != nil {
		t.Fatal(err)
	}
	if text != extract.UnsupportedFormatStub {
		t.Errorf("want stub %q got %q", extract.UnsupportedFormatStub, text)
	}
}

func TestExtractUnknownType(t *testing.T) {
	text, err := extract.Extract("application/octet-stream", strings.NewReader("binary"))
	if err != nil {
		t.Fatal(err)
	}
	if text != "" {
		t.Errorf("unknown content type should return empty string, got %q", text)
	}
}
