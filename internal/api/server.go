// Package api serves course generation over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/abhisek/trainy/internal/course"
	"github.com/abhisek/trainy/internal/logging"
)

// Generator produces a course from a free-text request.
type Generator interface {
	Generate(ctx context.Context, request string) (*course.Content, error)
}

// Options configures the API server.
type Options struct {
	Generator  Generator
	Configured bool

	// Rate and Burst bound course generation requests across all clients.
	// A zero Rate disables limiting.
	Rate  float64
	Burst int

	Logger *logging.Logger
}

// Server is the HTTP front end for the course generator.
type Server struct {
	generator  Generator
	configured bool
	limiter    *rate.Limiter
	metrics    *metrics
	registry   *prometheus.Registry
	logger     *logging.Logger
}

// New creates a Server. Metrics are kept in a registry owned by the server.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	var limiter *rate.Limiter
	if opts.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.Rate), max(opts.Burst, 1))
	}

	reg := prometheus.NewRegistry()
	return &Server{
		generator:  opts.Generator,
		configured: opts.Configured && opts.Generator != nil,
		limiter:    limiter,
		metrics:    newMetrics(reg),
		registry:   reg,
		logger:     logger,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/config", s.handleConfig)
		r.With(s.rateLimit).Post("/courses", s.handleCreateCourse)
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving api: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("api shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down api: %w", err)
	}
	return nil
}
