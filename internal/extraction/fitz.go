package extraction

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// Fitz extracts text from PDF documents with MuPDF. Layout-aware plain-text
// extraction is the primary method; when any page refuses it, the page HTML
// is rendered and flattened instead.
type Fitz struct{}

// NewFitz creates a new MuPDF-backed Extractor.
func NewFitz() *Fitz {
	return &Fitz{}
}

// Extract returns the document text, or an error when both extraction
// methods fail.
func (f *Fitz) Extract(data []byte, contentType string) (string, error) {
	if contentType != "" && !strings.EqualFold(contentType, "application/pdf") {
		return "", fmt.Errorf("unsupported content type %q", contentType)
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	if text, err := plainText(doc); err == nil {
		return text, nil
	}
	text, err := flattenedHTML(doc)
	if err != nil {
		return "", fmt.Errorf("extracting text: %w", err)
	}
	return text, nil
}

// Close releases extractor resources (no-op; documents are opened per call).
func (f *Fitz) Close() error {
	return nil
}

func plainText(doc *fitz.Document) (string, error) {
	var pages []string
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			return "", fmt.Errorf("reading page %d: %w", n, err)
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n"), nil
}

func flattenedHTML(doc *fitz.Document) (string, error) {
	var pages []string
	for n := 0; n < doc.NumPage(); n++ {
		page, err := doc.HTML(n, false)
		if err != nil {
			return "", fmt.Errorf("rendering page %d: %w", n, err)
		}
		pages = append(pages, StripTags(page))
	}
	return strings.Join(pages, "\n"), nil
}

var (
	blockTags = regexp.MustCompile(`(?i)<(?:br|/p|/div|/h[1-6]|/tr)[^>]*>`)
	anyTag    = regexp.MustCompile(`<[^>]*>`)
)

// StripTags flattens rendered page HTML into plain text, turning block
// boundaries into line breaks so label-anchored patterns keep working.
func StripTags(s string) string {
	s = blockTags.ReplaceAllString(s, "\n")
	s = anyTag.ReplaceAllString(s, "")
	return html.UnescapeString(s)
}
