package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/forecast-summary/internal/domain"
	"github.com/couchcryptid/forecast-summary/internal/report"
	"github.com/couchcryptid/forecast-summary/internal/synthesis"
)

// maxRequestBytes bounds a synchronous summary request body.
const maxRequestBytes = 8 << 20

// ReportGenerator builds a report from a decoded request.
type ReportGenerator interface {
	Generate(ctx context.Context, req domain.ReportRequest) (report.Report, error)
}

// Server exposes health, readiness, metrics, and on-demand summary endpoints.
type Server struct {
	httpServer *http.Server
	generator  ReportGenerator
	rules      synthesis.Rules
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics,
// POST /v1/summaries, and GET /v1/rules routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, gen ReportGenerator, rules synthesis.Rules, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		generator: gen,
		rules:     rules,
		logger:    logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /v1/summaries", s.handleSummarize)
	mux.HandleFunc("GET /v1/rules", s.handleRules)

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

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeError(w, status, err)
		return
	}

	req, err := domain.ParseReportRequest(domain.RawEvent{Value: body})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rep, err := s.generator.Generate(r.Context(), req)
	switch {
	case errors.Is(err, report.ErrMissingElement), errors.Is(err, report.ErrNoPoints):
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	case err != nil:
		s.logger.Error("generate report failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, rep)
}

func (s *Server) handleRules(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, s.rules)
}

func writeError(w http.ResponseWriter, status int, err error) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": err.Error()})
}
