package invoice

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"
)

// Server handles HTTP requests for the invoice history
type Server struct {
	service   *Service
	basicAuth BasicAuth
	mux       *http.ServeMux
}

// BasicAuth holds basic authentication credentials
type BasicAuth struct {
	Username string
	Password string
}

// NewServer creates a new Server with default mux
func NewServer(service *Service, basicAuth BasicAuth) *Server {
	return NewServerWithMux(service, basicAuth, http.NewServeMux())
}

// NewServerWithMux creates a new Server with a custom mux for testing
func NewServerWithMux(service *Service, basicAuth BasicAuth, mux *http.ServeMux) *Server {
	s := &Server{
		service:   service,
		basicAuth: basicAuth,
		mux:       mux,
	}
	s.registerRoutes()
	return s
}

// authenticate checks basic auth credentials
func (s *Server) authenticate(r *http.Request) bool {
	if s.basicAuth.Username == "" && s.basicAuth.Password == "" {
		return true // No auth required if not configured
	}

	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Basic ") {
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(auth, "Basic "))
	if err != nil {
		return false
	}

	credentials := strings.SplitN(string(decoded), ":", 2)
	if len(credentials) != 2 {
		return false
	}

	return credentials[0] == s.basicAuth.Username && credentials[1] == s.basicAuth.Password
}

// requireAuth middleware
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.authenticate(r) {
			w.Header().Set("WWW-Authenticate", `Basic realm="Invoice Tracker"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// registerRoutes registers all API routes on the server's mux.
// Routes must be registered from most specific to least specific.
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /api/invoices/{id}/records", s.requireAuth(s.handleGetInvoiceRecords))
	s.mux.HandleFunc("GET /api/invoices/{id}/file", s.requireAuth(s.handleGetInvoiceFile))
	s.mux.HandleFunc("GET /api/invoices/{id}", s.requireAuth(s.handleGetInvoice))
	s.mux.HandleFunc("DELETE /api/invoices/{id}", s.requireAuth(s.handleDeleteInvoice))
	s.mux.HandleFunc("GET /api/invoices", s.requireAuth(s.handleListInvoices))
	s.mux.HandleFunc("POST /api/invoices", s.requireAuth(s.handleUploadDocument))

	s.mux.HandleFunc("GET /api/records", s.requireAuth(s.handleListRecords))
	s.mux.HandleFunc("GET /api/records.xlsx", s.requireAuth(s.handleExportRecords))
	s.mux.HandleFunc("GET /api/runs", s.requireAuth(s.handleListLogs))

	s.mux.HandleFunc("GET /index.html", s.requireAuth(s.handleIndex))
	s.mux.HandleFunc("GET /", s.requireAuth(s.handleIndex))
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	slog.Info("Starting server", "address", addr)
	return http.ListenAndServe(addr, s.mux)
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
