package discord

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/TrainerBot_Go/internal/database"
	"github.com/osse101/TrainerBot_Go/internal/logger"
	"github.com/osse101/TrainerBot_Go/internal/metrics"
)

// HealthChecker reports whether the backend API is reachable
type HealthChecker interface {
	Healthz(ctx context.Context) error
}

// HTTPServer serves health, readiness and metrics endpoints
type HTTPServer struct {
	server    *http.Server
	api       HealthChecker
	db        database.Pool
	connected func() bool
}

// ServerDeps are the dependencies probed by the HTTP server. DB may be nil
// when drafts are kept in memory.
type ServerDeps struct {
	API       HealthChecker
	DB        database.Pool
	Connected func() bool
}

// NewHTTPServer creates a new HTTP server
func NewHTTPServer(port string, deps ServerDeps) *HTTPServer {
	srv := &HTTPServer{
		api:       deps.API,
		db:        deps.DB,
		connected: deps.Connected,
	}
	srv.server = &http.Server{
		Addr:              ":" + port,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv
}

// Routes builds the router
func (s *HTTPServer) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", s.HandleHealth)
	r.Get("/readyz", s.HandleReady)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// Start starts the HTTP server
func (s *HTTPServer) Start() {
	go func() {
		slog.Info("Starting HTTP server", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server failed", "error", err)
		}
	}()
}

// Stop stops the HTTP server
func (s *HTTPServer) Stop(ctx context.Context) {
	if err := s.server.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown failed", "error", err)
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Probes and scrapes would drown out everything else
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)

		next.ServeHTTP(w, r)

		logger.FromContext(ctx).Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds())
	})
}
