package services

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// Markers returned in place of document text. Extraction never fails; callers
// get one of these strings instead.
const (
	MarkerEmptyPDF    = "No text could be extracted from PDF"
	MarkerEmptyFile   = "File is empty"
	MarkerUnsupported = "Unsupported file type"
)

// TextExtractor turns uploaded files into plain text.
type TextExtractor struct{}

func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// ExtractFile reads the stored upload at path and extracts it according to the
// extension of the original filename.
func (e *TextExtractor) ExtractFile(path, filename string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("Error reading file: %v", err)
	}
	return e.Extract(data, filename)
}

// Extract returns best-effort plain text for data. It never panics.
func (e *TextExtractor) Extract(data []byte, filename string) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = fmt.Sprintf("Error reading file: %v", r)
		}
	}()

	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".pdf"):
		return extractPDF(data)
	case strings.HasSuffix(name, ".txt"), strings.HasSuffix(name, ".md"):
		return extractPlain(data)
	default:
		return MarkerUnsupported
	}
}

func extractPDF(data []byte) (text string) {
	// The pdf package panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text = fmt.Sprintf("PDF extraction error: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Sprintf("PDF extraction error: %v", err)
	}

	var builder strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return fmt.Sprintf("PDF extraction error: page %d: %v", i, err)
		}
		builder.WriteString(content)
	}

	if strings.TrimSpace(builder.String()) == "" {
		return MarkerEmptyPDF
	}
	return builder.String()
}

func extractPlain(data []byte) string {
	if !utf8.Valid(data) {
		return "Text file error: invalid UTF-8 content"
	}
	content := string(data)
	if strings.TrimSpace(content) == "" {
		return MarkerEmptyFile
	}
	return content
}
