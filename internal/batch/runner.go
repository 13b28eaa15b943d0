// Package batch runs the extraction and parsing pipeline over a directory
// of invoice documents and collects the combined output rows.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/appsumo-tools/invoice-tracker/internal/extraction"
	"github.com/appsumo-tools/invoice-tracker/internal/invoice"
	"github.com/appsumo-tools/invoice-tracker/internal/parsing"
)

// Runner processes every PDF under an input directory. Documents are
// processed concurrently but results always come back in sorted path order,
// so repeated runs over the same directory produce identical output.
type Runner struct {
	extractor extraction.Extractor
	segmenter parsing.SegmenterConfig
	workers   int
	db        invoice.DB // optional; nil disables persistence
}

// Result holds everything one run produced.
type Result struct {
	Records []parsing.Record
	Logs    []*invoice.DocumentLog
}

// NewRunner creates a Runner. A workers value below 1 is treated as 1.
func NewRunner(extractor extraction.Extractor, workers int, db invoice.DB) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		extractor: extractor,
		segmenter: parsing.DefaultSegmenterConfig(),
		workers:   workers,
		db:        db,
	}
}

// documentResult is the per-document outcome, written to a slot indexed by
// the document's position in the sorted input so the final ordering is
// stable.
type documentResult struct {
	records []parsing.Record
	log     *invoice.DocumentLog
	inv     *invoice.Invoice
}

// Run processes every PDF under dir and returns the combined records and
// per-document log, ordered by source path.
func (r *Runner) Run(ctx context.Context, dir string) (*Result, error) {
	paths, err := findPDFs(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning input directory: %w", err)
	}
	slog.Info("Starting batch run", "directory", dir, "documents", len(paths), "workers", r.workers)

	jobs := make(chan int)
	results := make([]documentResult, len(paths))

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = r.processDocument(paths[i])
			}
		}()
	}

	for i := range paths {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	out := &Result{
		Records: make([]parsing.Record, 0, len(paths)),
		Logs:    make([]*invoice.DocumentLog, 0, len(paths)),
	}
	for _, res := range results {
		out.Records = append(out.Records, res.records...)
		out.Logs = append(out.Logs, res.log)

		if r.db != nil {
			if res.inv != nil {
				if err := r.db.SaveInvoice(res.inv); err != nil {
					slog.Warn("Failed to save invoice", "source", res.inv.SourceFile, "error", err)
				}
			}
			if err := r.db.AppendLog(res.log); err != nil {
				slog.Warn("Failed to record document log", "source", res.log.SourceFile, "error", err)
			}
		}
	}
	return out, nil
}

// processDocument runs extraction and parsing for one file. A panic from a
// malformed document is confined to that document and recorded in its log.
func (r *Runner) processDocument(path string) (res documentResult) {
	res.log = &invoice.DocumentLog{
		SourceFile:  path,
		ProcessedAt: time.Now(),
	}

	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("Panic processing document", "path", path, "panic", rec)
			res.records = nil
			res.inv = nil
			res.log.Rows = 0
			res.log.Error = fmt.Sprintf("panic: %v", rec)
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("Failed to read document", "path", path, "error", err)
		res.log.Error = err.Error()
		return res
	}

	text, err := r.extractor.Extract(data, "application/pdf")
	if err != nil {
		slog.Error("Failed to extract document text", "path", path, "error", err)
		res.log.Error = err.Error()
		text = ""
	}

	header := parsing.ExtractHeader(text)
	header.Date = parsing.ParseInvoiceDate(text)
	items := r.segmenter.Segment(text)
	res.records = parsing.AssembleRecords(header, items, path)

	res.log.InvoiceID = header.InvoiceID
	res.log.Rows = len(res.records)

	if header.InvoiceID != nil || len(items) > 0 {
		now := time.Now()
		id := path
		if header.InvoiceID != nil {
			id = *header.InvoiceID
		}
		res.inv = &invoice.Invoice{
			ID:          id,
			Header:      header,
			Items:       items,
			SourceFile:  path,
			ContentType: "application/pdf",
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}
	return res
}

// findPDFs returns every .pdf file under dir, sorted by path.
func findPDFs(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".pdf") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
