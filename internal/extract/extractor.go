// Package extract turns uploaded document bytes into raw text.
//
// Three strategies exist, selected by Kind:
//   - Plain: the bytes decoded as UTF-8, verbatim
//   - StructuredDocument: .docx paragraphs joined by single spaces
//   - PagedDocument: .pdf pages with extractable text joined by single spaces
package extract

import (
	"fmt"
	"log/slog"
)

// Extract returns the raw text of content interpreted as kind.
func Extract(content []byte, kind Kind) (string, error) {
	slog.Debug("extract: start", "kind", kind.String(), "input_size_bytes", len(content))

	var (
		text string
		err  error
	)
	switch kind {
	case Plain:
		text, err = extractPlain(content)
	case StructuredDocument:
		text, err = extractDocx(content)
	case PagedDocument:
		text, err = extractPDF(content)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind)
	}
	if err != nil {
		slog.Error("extract: failed", "kind", kind.String(), "error", err)
		return "", err
	}

	slog.Debug("extract: complete", "kind", kind.String(), "output_size_bytes", len(text))
	return text, nil
}
