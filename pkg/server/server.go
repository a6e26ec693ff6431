// Package server provides the HTTP API for diagram generation.
//
// The API exposes two endpoints:
//
//	POST /v1/diagram  - generate a diagram from connection text
//	GET  /healthz     - liveness probe
//
// Requests run through the same [pipeline.Runner] as the CLI, so server
// deployments get the same caching and defaults. Pair the runner with a
// [cache.RedisCache] when multiple instances share a cache.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gridflow/pkg/pipeline"
)

// Config configures the HTTP server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// RequestTimeout bounds the total time spent on one request.
	RequestTimeout time.Duration

	// MaxBodyBytes limits the request body size. Zero means the default
	// of 1 MiB, which is far beyond any reasonable connection list.
	MaxBodyBytes int64
}

// DefaultConfig returns the standard server settings.
func DefaultConfig() Config {
	return Config{
		Addr:           ":8080",
		RequestTimeout: 30 * time.Second,
		MaxBodyBytes:   1 << 20,
	}
}

// Server is the HTTP API server.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	logger *log.Logger
	http   *http.Server
}

// New creates a server around a pipeline runner.
func New(cfg Config, runner *pipeline.Runner, logger *log.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultConfig().Addr
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = DefaultConfig().RequestTimeout
	}
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = DefaultConfig().MaxBodyBytes
	}
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		cfg:    cfg,
		runner: runner,
		logger: logger,
	}
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Routes builds the router. Exposed separately so tests can drive the
// handler chain without a listener.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/diagram", s.handleDiagram)

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.cfg.Addr)
		errc <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("server shutting down")
		return s.http.Shutdown(shutdownCtx)
	}
}
