// Package httpapi exposes the flood-risk advisory service over HTTP:
// the assessment and advice endpoints plus health, readiness, and metrics.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sahilb1203/aquaalert-backend/internal/assessment"
	"github.com/sahilb1203/aquaalert-backend/internal/domain"
)

const minAddressLength = 3

// Assessor is the application service behind the API routes.
type Assessor interface {
	Assess(ctx context.Context, address string) (domain.RiskAssessment, error)
	Advise(ctx context.Context, address, specs string) (domain.RiskAssessment, string, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the risk assessment API plus health, readiness, and
// metrics endpoints.
type Server struct {
	httpServer *http.Server
	assessor   Assessor
	logger     *slog.Logger
}

// NewServer creates a Server listening on addr. allowedOrigins configures
// CORS; the single entry "*" allows any origin.
func NewServer(addr string, assessor Assessor, allowedOrigins []string, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      corsMiddleware(allowedOrigins, mux),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		assessor: assessor,
		logger:   logger,
	}

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /risk", s.handleRisk)
	mux.HandleFunc("POST /advice", s.handleAdvice)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Hello AquaAlert!"})
}

func (s *Server) handleRisk(w http.ResponseWriter, r *http.Request) {
	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if len(address) < minAddressLength {
		writeError(w, http.StatusBadRequest, "address query parameter must be at least 3 characters")
		return
	}

	result, err := s.assessor.Assess(r.Context(), address)
	if err != nil {
		s.writeAssessError(w, address, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type adviceRequest struct {
	Address string `json:"address"`
	Specs   string `json:"specs"`
}

type adviceResponse struct {
	Assessment domain.RiskAssessment `json:"assessment"`
	Advice     string                `json:"advice"`
}

func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	var req adviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Address = strings.TrimSpace(req.Address)
	if len(req.Address) < minAddressLength {
		writeError(w, http.StatusBadRequest, "address must be at least 3 characters")
		return
	}

	result, advice, err := s.assessor.Advise(r.Context(), req.Address, req.Specs)
	if err != nil {
		if errors.Is(err, assessment.ErrAdviceDisabled) {
			writeError(w, http.StatusServiceUnavailable, "advice generation is not configured")
			return
		}
		s.writeAssessError(w, req.Address, err)
		return
	}

	writeJSON(w, http.StatusOK, adviceResponse{Assessment: result, Advice: advice})
}

func (s *Server) writeAssessError(w http.ResponseWriter, address string, err error) {
	if errors.Is(err, domain.ErrAddressNotFound) {
		writeError(w, http.StatusNotFound, "address could not be geocoded")
		return
	}
	s.logger.Error("assessment failed", "address", address, "error", err)
	writeError(w, http.StatusBadGateway, "an upstream data source is unavailable")
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.assessor.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// corsMiddleware reflects allowed origins onto responses and answers
// preflight requests.
func corsMiddleware(allowedOrigins []string, next http.Handler) http.Handler {
	allowAll := len(allowedOrigins) == 1 && allowedOrigins[0] == "*"
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (allowAll || allowed[origin]) {
			if allowAll {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}
