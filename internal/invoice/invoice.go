package invoice

import (
	"time"

	"github.com/appsumo-tools/invoice-tracker/internal/parsing"
)

// Invoice is one parsed source document: the recovered header fields, the
// detected line items, and where the document came from. Invoices are
// constructed fresh per document and never mutated after being saved.
type Invoice struct {
	ID          string             `json:"id"`
	Header      parsing.Header     `json:"header"`
	Items       []parsing.LineItem `json:"items"`
	SourceFile  string             `json:"source_file"`
	ArchiveFile string             `json:"archive_file,omitempty"`
	ContentType string             `json:"content_type,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// Records flattens the invoice into its ordered output rows.
func (inv *Invoice) Records() []parsing.Record {
	return parsing.AssembleRecords(inv.Header, inv.Items, inv.SourceFile)
}

// DocumentLog is the per-document processing summary: the recovered invoice
// id (or nil), how many rows the document yielded, and the acquisition error
// message if there was one.
type DocumentLog struct {
	SourceFile  string    `json:"source_file"`
	InvoiceID   *string   `json:"invoice_id"`
	Rows        int       `json:"rows"`
	Error       string    `json:"error,omitempty"`
	ProcessedAt time.Time `json:"processed_at"`
}
