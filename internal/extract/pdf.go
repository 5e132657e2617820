package extract

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF joins the text of every page that yields any, in page order.
func extractPDF(content []byte) (text string, err error) {
	// the parser panics on some malformed object graphs
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	pageCount := reader.NumPage()
	pages := make([]string, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", i, pageErr)
		}
		if strings.TrimSpace(pageText) == "" {
			slog.Debug("extract: skipping page without text", "page", i)
			continue
		}
		pages = append(pages, pageText)
	}

	slog.Debug("extract: pdf pages read", "page_count", pageCount, "pages_with_text", len(pages))
	return strings.Join(pages, " "), nil
}
