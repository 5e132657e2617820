package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for file extensions no extractor handles.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Kind identifies the extraction strategy for an uploaded document.
type Kind int

const (
	// Plain is UTF-8 text taken verbatim (.txt).
	Plain Kind = iota
	// StructuredDocument is a WordprocessingML archive read paragraph by paragraph (.docx).
	StructuredDocument
	// PagedDocument is a PDF read page by page (.pdf).
	PagedDocument
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case StructuredDocument:
		return "structured-document"
	case PagedDocument:
		return "paged-document"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// KindFromFilename maps the extension suffix of name (case-insensitive) to a Kind.
func KindFromFilename(name string) (Kind, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch ext {
	case "txt":
		return Plain, nil
	case "docx":
		return StructuredDocument, nil
	case "pdf":
		return PagedDocument, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
