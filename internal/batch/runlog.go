package batch

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/appsumo-tools/invoice-tracker/internal/invoice"
)

// RunLogCSV returns the per-document processing log as CSV, one row per
// document in run order.
func RunLogCSV(entries []*invoice.DocumentLog) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"source_file", "invoice_id", "rows", "error", "processed_at"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}

	for _, entry := range entries {
		id := ""
		if entry.InvoiceID != nil {
			id = *entry.InvoiceID
		}
		row := []string{
			entry.SourceFile,
			id,
			strconv.Itoa(entry.Rows),
			entry.Error,
			entry.ProcessedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}
