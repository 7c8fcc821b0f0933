// Package extract derives plain text from uploaded document bytes.
package extract

import (
	"fmt"
	"io"
	"strings"
)

// UnsupportedFormatStub is the text stored for formats whose extraction is
// not implemented. It is a deliberate stub outcome, not an error: the stage
// succeeds and the placeholder is persisted verbatim, so callers can tell
// a functionality gap apart from a transient failure.
const UnsupportedFormatStub = "[PDF text extraction requires additional setup]"

// Extract reads r and returns a text representation of the content.
// text/* content is decoded verbatim; application/pdf yields
// UnsupportedFormatStub. Returns ("", nil) for any other content type.
func Extract(contentType string, r io.Reader) (string, error) {
	mime := strings.SplitN(contentType, ";", 2)[0]
	mime = strings.TrimSpace(strings.ToLower(mime))

	switch {
	case strings.HasPrefix(mime, "text/"):
		return extractText(r)
	case mime == "application/pdf":
		return UnsupportedFormatStub, nil
	default:
		return "", nil
	}
}

func extractText(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return string(data), nil
}
