// invoice-batch runs the extraction and parsing pipeline over a directory of
// invoice PDFs and writes the combined rows to a spreadsheet.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/appsumo-tools/invoice-tracker/internal/batch"
	"github.com/appsumo-tools/invoice-tracker/internal/export"
	"github.com/appsumo-tools/invoice-tracker/internal/extraction"
	"github.com/appsumo-tools/invoice-tracker/internal/invoice"
)

func main() {
	fs := ff.NewFlagSet("invoice-batch")
	var (
		inDir         = fs.StringLong("in", "invoices", "Directory of invoice PDFs")
		outPath       = fs.StringLong("out", "invoices.xlsx", "Output spreadsheet path (.xlsx or .csv)")
		logPath       = fs.StringLong("log", "", "Optional per-document run log CSV path")
		workers       = fs.IntLong("workers", 4, "Number of concurrent documents")
		dbPath        = fs.StringLong("db", "", "Optional database file to persist parsed invoices")
		extractorType = fs.StringLong("extractor", "fitz", "Extractor type: 'fitz' or 'gemini'")
		geminiKey     = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel   = fs.StringLong("gemini-model", "gemini-2.5-pro", "Google Gemini model name")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("INVOICE_BATCH"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := run(*inDir, *outPath, *logPath, *workers, *dbPath, *extractorType, *geminiKey, *geminiModel); err != nil {
		slog.Error("Batch run failed", "error", err)
		os.Exit(1)
	}
}

func run(inDir, outPath, logPath string, workers int, dbPath, extractorType, geminiKey, geminiModel string) error {
	extractor, err := newExtractor(extractorType, geminiKey, geminiModel)
	if err != nil {
		return err
	}
	defer extractor.Close()

	var db invoice.DB
	if dbPath != "" {
		boltDB, err := invoice.NewBoltDB(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer boltDB.Close()
		db = boltDB
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := batch.NewRunner(extractor, workers, db)
	result, err := runner.Run(ctx, inDir)
	if err != nil {
		return err
	}

	if err := writeRecords(outPath, result); err != nil {
		return err
	}
	slog.Info("Wrote output", "path", outPath, "rows", len(result.Records))

	if logPath != "" {
		data, err := batch.RunLogCSV(result.Logs)
		if err != nil {
			return fmt.Errorf("building run log: %w", err)
		}
		if err := os.WriteFile(logPath, data, 0644); err != nil {
			return fmt.Errorf("writing run log: %w", err)
		}
		slog.Info("Wrote run log", "path", logPath, "documents", len(result.Logs))
	}

	failed := 0
	for _, entry := range result.Logs {
		if entry.Error != "" || entry.Rows == 0 {
			failed++
		}
	}
	slog.Info("Batch run complete",
		"documents", len(result.Logs),
		"rows", len(result.Records),
		"without_output", failed,
	)
	return nil
}

func writeRecords(path string, result *batch.Result) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		data, err = export.RecordsXLSX(result.Records)
	case ".csv":
		data, err = export.RecordsCSV(result.Records)
	default:
		return fmt.Errorf("unsupported output format %q: use .xlsx or .csv", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("building output: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func newExtractor(extractorType, geminiKey, geminiModel string) (extraction.Extractor, error) {
	switch extractorType {
	case "fitz":
		return extraction.NewFitz(), nil
	case "gemini":
		apiKey := geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("gemini API key is required: set --gemini-key flag or GEMINI_API_KEY environment variable")
		}
		return extraction.NewGemini(apiKey, geminiModel)
	default:
		return nil, fmt.Errorf("invalid extractor type %q: valid types are 'fitz' or 'gemini'", extractorType)
	}
}
