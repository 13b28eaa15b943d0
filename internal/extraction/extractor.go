// Package extraction turns source invoice documents into best-effort plain
// text for the parsing core. Extraction never has to be perfect: downstream
// parsing treats empty or garbled text as "no fields matched".
package extraction

// Extractor defines the interface for document text extraction backends.
type Extractor interface {
	// Extract returns the best-effort plain text of a document. An
	// error means the backend could produce no text at all.
	Extract(data []byte, contentType string) (string, error)
	// Close releases backend resources.
	Close() error
}
