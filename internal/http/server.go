// Package http exposes the reporting engine's two read operations as a
// small JSON API consumed by the UI layer.
package http

import (
	"net/http"
	"time"

	"bilancio/internal/log"
	"bilancio/internal/report"
)

type Server struct {
	http.Server
	engine  *report.Engine
	logger  *log.Logger
	timeout time.Duration
}

func NewServer(addr string, engine *report.Engine, logger *log.Logger, timeout time.Duration) *Server {
	if timeout <= 0 {
		timeout = 7 * time.Second
	}
	s := &Server{
		engine:  engine,
		logger:  logger.WithComponent(log.ComponentHTTP),
		timeout: timeout,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/breakdown", s.handleBreakdown)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleHealth)

	s.Addr = addr
	s.Handler = s.withRequestLog(mux)
	return s
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// withRequestLog logs method, path, status and duration for every request.
func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.InfoContext(r.Context(), "Request handled",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rec.status,
			log.FieldDuration, time.Since(start).Milliseconds(),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
