package invoice

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/appsumo-tools/invoice-tracker/internal/export"
)

// corsError writes an error response with CORS headers set
func corsError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	http.Error(w, message, code)
}

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// handleIndex serves the HTML interface
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// handleListInvoices returns a list of all invoices
func (s *Server) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := s.service.ListInvoices()
	if err != nil {
		slog.Error("Error listing invoices", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(invoices); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleUploadDocument handles source document upload
func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 50MB to handle scanned multi-page PDFs)
	maxFormSize := int64(50 << 20) // 50MB
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		setCORSHeaders(w)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		errorMsg := "Error parsing form"
		if err.Error() == "http: request body too large" {
			errorMsg = "File is too large. Maximum size is 50MB."
		}
		json.NewEncoder(w).Encode(map[string]string{
			"error": errorMsg,
		})
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		slog.Error("Error getting file from form", "error", err)
		setCORSHeaders(w)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "No file was selected. Please choose a file to upload.",
		})
		return
	}
	defer f.Close()

	if header.Size > maxFormSize {
		setCORSHeaders(w)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "File is too large. Maximum size is 50MB.",
		})
		return
	}

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		setCORSHeaders(w)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "Error reading file. Please try again.",
		})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		ext := strings.ToLower(filepath.Ext(header.Filename))
		switch ext {
		case ".pdf":
			contentType = "application/pdf"
		case ".jpg", ".jpeg":
			contentType = "image/jpeg"
		case ".png":
			contentType = "image/png"
		case ".heic":
			contentType = "image/heic"
		case ".heif":
			contentType = "image/heif"
		default:
			contentType = "application/octet-stream"
		}
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))

	inv, err := s.service.ProcessDocument(header.Filename, data, contentType)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrUnparseable) {
			status = http.StatusUnprocessableEntity
		}
		slog.Error("Error processing document", "filename", header.Filename, "error", err)
		setCORSHeaders(w)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{
			"error": err.Error(),
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(inv); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleGetInvoice returns a single invoice
func (s *Server) handleGetInvoice(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Invoice ID required", http.StatusBadRequest)
		return
	}
	inv, err := s.service.GetInvoice(id)
	if err != nil {
		corsError(w, "Invoice not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(inv); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleGetInvoiceRecords returns the flattened output rows for one invoice
func (s *Server) handleGetInvoiceRecords(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Invoice ID required", http.StatusBadRequest)
		return
	}
	inv, err := s.service.GetInvoice(id)
	if err != nil {
		corsError(w, "Invoice not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(inv.Records()); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleGetInvoiceFile returns the archived source document for an invoice
func (s *Server) handleGetInvoiceFile(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Invoice ID required", http.StatusBadRequest)
		return
	}
	data, contentType, err := s.service.GetDocumentFile(id)
	if err != nil {
		corsError(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}

// handleDeleteInvoice deletes an invoice and its archived document
func (s *Server) handleDeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Invoice ID required", http.StatusBadRequest)
		return
	}
	if err := s.service.DeleteInvoice(id); err != nil {
		corsError(w, "Error deleting invoice", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListRecords returns the output rows for every stored invoice
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.ListRecords()
	if err != nil {
		slog.Error("Error listing records", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(records); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleExportRecords returns every stored invoice's rows as an XLSX workbook
func (s *Server) handleExportRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.ListRecords()
	if err != nil {
		slog.Error("Error listing records for export", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data, err := export.RecordsXLSX(records)
	if err != nil {
		slog.Error("Error building XLSX export", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("invoices_%s.xlsx", s.service.timeSource.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

// handleListLogs returns the per-document processing log
func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	entries, err := s.service.ListLogs()
	if err != nil {
		slog.Error("Error listing document logs", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// Ensure we always return an array, not nil
	if entries == nil {
		entries = []*DocumentLog{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}
