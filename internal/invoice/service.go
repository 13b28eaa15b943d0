package invoice

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/appsumo-tools/invoice-tracker/internal/extraction"
	"github.com/appsumo-tools/invoice-tracker/internal/parsing"
)

// ErrUnparseable marks a document that yielded neither an invoice id nor any
// line item. Such documents contribute zero output rows and are surfaced
// only through the per-document log.
var ErrUnparseable = errors.New("no invoice id and no line items recovered")

// IDGenerator generates fallback ids for invoices whose id field was not
// recovered.
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service handles invoice document operations
type Service struct {
	db          DB
	extractor   extraction.Extractor
	storage     Storage
	segmenter   parsing.SegmenterConfig
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with default ID generator and time source
func NewService(db DB, extractor extraction.Extractor, storage Storage) *Service {
	return &Service{
		db:          db,
		extractor:   extractor,
		storage:     storage,
		segmenter:   parsing.DefaultSegmenterConfig(),
		idGenerator: &defaultIDGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, extractor extraction.Extractor, storage Storage, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		extractor:   extractor,
		storage:     storage,
		segmenter:   parsing.DefaultSegmenterConfig(),
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

var (
	unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	multiSpace  = regexp.MustCompile(`\s+`)
)

// sanitizeFilename cleans up a filename before archiving it
func sanitizeFilename(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	base = unsafeChars.ReplaceAllString(base, "")
	base = strings.TrimSpace(multiSpace.ReplaceAllString(base, " "))

	maxLen := 50
	if len(base) > maxLen {
		base = base[:maxLen]
	}
	if base == "" {
		base = "invoice"
	}
	return base + ext
}

// ProcessDocument extracts, parses, archives, and saves one source document.
// An extraction failure is recorded in the document log and treated as "no
// fields matched" rather than an error; only an unparseable result (no
// invoice id, no line items) makes the document yield nothing.
func (s *Service) ProcessDocument(filename string, data []byte, contentType string) (*Invoice, error) {
	now := s.timeSource.Now()

	text, extractErr := s.extractor.Extract(data, contentType)
	if extractErr != nil {
		slog.Error("Failed to extract document text",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", extractErr,
		)
		text = ""
	}

	header := parsing.ExtractHeader(text)
	header.Date = parsing.ParseInvoiceDate(text)
	items := s.segmenter.Segment(text)

	entry := &DocumentLog{
		SourceFile:  filename,
		InvoiceID:   header.InvoiceID,
		Rows:        len(parsing.AssembleRecords(header, items, filename)),
		ProcessedAt: now,
	}
	if extractErr != nil {
		entry.Error = extractErr.Error()
	}
	if err := s.db.AppendLog(entry); err != nil {
		slog.Warn("Failed to record document log", "filename", filename, "error", err)
	}

	if header.InvoiceID == nil && len(items) == 0 {
		return nil, fmt.Errorf("%s: %w", filename, ErrUnparseable)
	}

	id := s.idGenerator.Generate()
	if header.InvoiceID != nil {
		id = *header.InvoiceID
	}

	archived, err := s.storage.Save(fmt.Sprintf("%s_%s", id, sanitizeFilename(filename)), data)
	if err != nil {
		return nil, fmt.Errorf("archiving document: %w", err)
	}

	inv := &Invoice{
		ID:          id,
		Header:      header,
		Items:       items,
		SourceFile:  filename,
		ArchiveFile: archived,
		ContentType: contentType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.db.SaveInvoice(inv); err != nil {
		// Clean up the archived file if the database save fails
		s.storage.Delete(archived)
		return nil, fmt.Errorf("saving invoice to database: %w", err)
	}

	return inv, nil
}

// GetInvoice retrieves an invoice by ID
func (s *Service) GetInvoice(id string) (*Invoice, error) {
	inv, err := s.db.GetInvoice(id)
	if err != nil {
		return nil, fmt.Errorf("getting invoice: %w", err)
	}
	return inv, nil
}

// ListInvoices returns all invoices
func (s *Service) ListInvoices() ([]*Invoice, error) {
	invoices, err := s.db.ListInvoices()
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	return invoices, nil
}

// ListRecords flattens every stored invoice into its ordered output rows.
func (s *Service) ListRecords() ([]parsing.Record, error) {
	invoices, err := s.db.ListInvoices()
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	records := make([]parsing.Record, 0, len(invoices))
	for _, inv := range invoices {
		records = append(records, inv.Records()...)
	}
	return records, nil
}

// ListLogs returns the per-document processing log
func (s *Service) ListLogs() ([]*DocumentLog, error) {
	entries, err := s.db.ListLogs()
	if err != nil {
		return nil, fmt.Errorf("listing document logs: %w", err)
	}
	return entries, nil
}

// DeleteInvoice removes an invoice and its archived document
func (s *Service) DeleteInvoice(id string) error {
	inv, err := s.db.GetInvoice(id)
	if err != nil {
		return fmt.Errorf("getting invoice for deletion: %w", err)
	}

	if inv.ArchiveFile != "" {
		if err := s.storage.Delete(inv.ArchiveFile); err != nil {
			// Log but continue with the database deletion
			slog.Warn("Failed to delete archived document", "filename", inv.ArchiveFile, "error", err)
		}
	}

	if err := s.db.DeleteInvoice(id); err != nil {
		return fmt.Errorf("deleting invoice from database: %w", err)
	}
	return nil
}

// GetDocumentFile retrieves the archived source document for an invoice
func (s *Service) GetDocumentFile(id string) ([]byte, string, error) {
	inv, err := s.db.GetInvoice(id)
	if err != nil {
		return nil, "", fmt.Errorf("getting invoice: %w", err)
	}

	data, err := s.storage.Get(inv.ArchiveFile)
	if err != nil {
		return nil, "", fmt.Errorf("getting archived document: %w", err)
	}

	return data, inv.ContentType, nil
}
