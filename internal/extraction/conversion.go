package extraction

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/gen2brain/heic"
)

// renderDocumentPNG converts a source document to a single PNG for the
// transcription backend: the first page for PDFs (invoices are almost always
// single page), a decode and re-encode for images. HEIC/HEIF photos from
// phones need the dedicated decoder because the standard image package does
// not know the format.
func renderDocumentPNG(data []byte, contentType string) ([]byte, error) {
	mimeType := strings.ToLower(strings.TrimSpace(contentType))

	if mimeType == "application/pdf" {
		doc, err := fitz.NewFromMemory(data)
		if err != nil {
			return nil, fmt.Errorf("opening PDF: %w", err)
		}
		defer doc.Close()

		img, err := doc.Image(0)
		if err != nil {
			return nil, fmt.Errorf("rendering PDF page: %w", err)
		}
		return encodePNG(img)
	}

	var img image.Image
	var err error
	if isHEICData(data) || isHEICMimeType(mimeType) {
		img, err = heic.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decoding HEIC/HEIF image: %w", err)
		}
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decoding image: %w", err)
		}
	}
	return encodePNG(img)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// isHEICData sniffs the ftyp box brands that HEIC/HEIF containers start
// with.
func isHEICData(data []byte) bool {
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	switch string(data[8:12]) {
	case "heic", "heif", "mif1", "msf1":
		return true
	}
	return false
}

func isHEICMimeType(mimeType string) bool {
	return strings.Contains(mimeType, "heic") || strings.Contains(mimeType, "heif")
}
