// Package server exposes the summarization pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/samvad-hq/samvad-summarizer/internal/domain"
	"github.com/samvad-hq/samvad-summarizer/internal/logger"
	"github.com/samvad-hq/samvad-summarizer/internal/pipeline"
)

const maxRequestBytes = 1 << 20

// Response messages for rejected requests.
const (
	msgNoURL      = "No URL provided."
	msgBadScheme  = "URL must start with http or https."
	msgInternal   = "Internal server error."
	msgBadRequest = "Bad request."
)

// Runner executes the pipeline for one URL.
type Runner interface {
	Run(ctx context.Context, url string) (domain.PipelineResult, error)
}

// StatsFunc returns a JSON-serializable snapshot of runtime counters.
type StatsFunc func() map[string]interface{}

// Server routes HTTP requests to the pipeline.
type Server struct {
	runner Runner
	stats  StatsFunc
	log    logger.Logger
}

// New builds a Server. stats may be nil.
func New(runner Runner, stats StatsFunc, log logger.Logger) *Server {
	if stats == nil {
		stats = func() map[string]interface{} { return map[string]interface{}{} }
	}
	return &Server{runner: runner, stats: stats, log: logger.Ensure(log)}
}

// Routes returns the HTTP handler tree.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /summarize", s.handleSummarize)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	return s.logMiddleware(mux)
}

type summarizeReq struct {
	URL string `json:"url"`
}

type errorResp struct {
	Error string `json:"error"`
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeReq
	// A malformed body is treated the same as an empty one.
	_ = json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req)

	url, err := ValidateURL(req.URL)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: err.Error()})
		return
	}

	res, err := s.runner.Run(r.Context(), url)
	if err != nil {
		status, body := errorResponse(err)
		writeJSON(w, status, body)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.stats())
}

// ValidateURL returns the trimmed URL. The error text is safe to show to clients.
func ValidateURL(raw string) (string, error) {
	url := strings.TrimSpace(raw)
	if url == "" {
		return "", errors.New(msgNoURL)
	}
	lower := strings.ToLower(url)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return "", errors.New(msgBadScheme)
	}
	return url, nil
}

func errorResponse(err error) (int, errorResp) {
	var pErr *pipeline.Error
	if !errors.As(err, &pErr) {
		return http.StatusInternalServerError, errorResp{Error: msgInternal}
	}
	switch pErr.Severity {
	case pipeline.SeverityBadRequest:
		return http.StatusBadRequest, errorResp{Error: firstNonEmpty(pErr.Message, msgBadRequest)}
	case pipeline.SeverityUnprocessable:
		return http.StatusUnprocessableEntity, errorResp{Error: pErr.Message}
	default:
		return http.StatusInternalServerError, errorResp{Error: firstNonEmpty(pErr.Message, msgInternal)}
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.InfoObj("http request", "http_request", map[string]any{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
	})
}
