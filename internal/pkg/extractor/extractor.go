// Package extractor turns stored file bytes into plain text for the
// generation pipeline. Plain-text files are decoded verbatim, PDFs are read
// page by page, and opaque formats fall back to a short placeholder so
// generation stays best-effort instead of failing outright.
package extractor

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/planora/planora/internal/pkg/logger"
)

// pageSeparator joins extracted PDF pages with a blank line.
const pageSeparator = "\n\n"

// textExtensions are treated as plain text regardless of the declared mime type.
var textExtensions = map[string]bool{
	".txt": true,
	".md":  true,
	".csv": true,
	".log": true,
}

// Extractor produces a plain-text representation of a stored file.
type Extractor struct{}

// New creates a new Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract returns the text content of a file given its bytes, declared mime
// type, and display name. The result is never empty unless the file itself is
// empty text.
func (e *Extractor) Extract(data []byte, mimeType, fileName string) (string, error) {
	switch {
	case isPlainText(mimeType, fileName):
		return string(data), nil
	case isPDF(mimeType, fileName):
		return extractPDF(data, fileName)
	default:
		return placeholder(fileName, mimeType), nil
	}
}

func isPlainText(mimeType, fileName string) bool {
	if strings.HasPrefix(mimeType, "text/") {
		return true
	}
	return textExtensions[strings.ToLower(filepath.Ext(fileName))]
}

func isPDF(mimeType, fileName string) bool {
	if mimeType == "application/pdf" {
		return true
	}
	return strings.EqualFold(filepath.Ext(fileName), ".pdf")
}

// extractPDF pulls the text layer out of a PDF page by page. A page that
// fails to extract is skipped rather than aborting the whole document.
func extractPDF(data []byte, fileName string) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		logger.Warn().Err(err).Str("file", fileName).Msg("Failed to open PDF, falling back to placeholder")
		return placeholder(fileName, "application/pdf"), nil
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Warn().Err(err).Str("file", fileName).Int("page", i).Msg("Skipping unreadable PDF page")
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, strings.TrimSpace(text))
	}

	if len(pages) == 0 {
		return placeholder(fileName, "application/pdf"), nil
	}
	return joinPages(pages), nil
}

// joinPages joins non-empty page texts in page order with a blank line.
func joinPages(pages []string) string {
	return strings.Join(pages, pageSeparator)
}

// placeholder synthesizes a short context string for opaque formats, signaling
// to downstream stages that generation is not grounded in file content.
func placeholder(fileName, mimeType string) string {
	if mimeType == "" {
		mimeType = "unknown type"
	}
	return fmt.Sprintf("The study material is a file named %q (%s). Its content could not be extracted as text.", fileName, mimeType)
}
