package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/appsumo-tools/invoice-tracker/internal/extraction"
	"github.com/appsumo-tools/invoice-tracker/internal/invoice"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("invoice-tracker")
	var (
		port          = fs.IntLong("port", 8080, "HTTP server port")
		dbPath        = fs.StringLong("db", "invoice-tracker.db", "Database file path")
		storagePath   = fs.StringLong("storage", "./invoices", "Archive directory path")
		extractorType = fs.StringLong("extractor", "fitz", "Extractor type: 'fitz' or 'gemini'")
		geminiKey     = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel   = fs.StringLong("gemini-model", "gemini-2.5-pro", "Google Gemini model name")
		authUser      = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass      = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		showVersion   = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("INVOICE_TRACKER"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Initialize database
	slog.Info("Initializing database...")
	db, err := invoice.NewBoltDB(*dbPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize extractor based on type
	extractor, err := newExtractor(*extractorType, *geminiKey, *geminiModel)
	if err != nil {
		slog.Error("Failed to initialize extractor", "error", err)
		os.Exit(1)
	}
	defer extractor.Close()

	// Initialize storage
	slog.Info("Initializing storage...")
	store, err := invoice.NewLocalStorage(*storagePath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	// Initialize service
	invoiceService := invoice.NewService(db, extractor, store)

	// Initialize server
	basicAuth := invoice.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	server := invoice.NewServer(invoiceService, basicAuth)

	// Start server in goroutine
	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}

func newExtractor(extractorType, geminiKey, geminiModel string) (extraction.Extractor, error) {
	switch extractorType {
	case "fitz":
		slog.Info("Initializing PDF text extractor...")
		return extraction.NewFitz(), nil
	case "gemini":
		apiKey := geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("gemini API key is required: set --gemini-key flag or GEMINI_API_KEY environment variable")
		}
		slog.Info("Initializing Gemini extractor...", "model", geminiModel)
		return extraction.NewGemini(apiKey, geminiModel)
	default:
		return nil, fmt.Errorf("invalid extractor type %q: valid types are 'fitz' or 'gemini'", extractorType)
	}
}
