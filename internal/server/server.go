package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/linkaudit/linkaudit/internal/checker"
	"github.com/linkaudit/linkaudit/internal/config"
	"github.com/linkaudit/linkaudit/internal/fetch"
)

// Server wires the checkers to HTTP handlers.
type Server struct {
	logger  *slog.Logger
	links   *checker.LinkChecker
	domains *checker.DomainChecker

	// runCtx is the lifetime context for background runs. Cancelling
	// it aborts in-flight checks during shutdown.
	runCtx context.Context

	defaultConcurrency int
	defaultTimeout     time.Duration

	checkerOpts []checker.Option
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used by the server and its checkers.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithCheckerOptions passes extra options to both checkers.
// Tests use this to inject a custom HTTP client.
func WithCheckerOptions(opts ...checker.Option) Option {
	return func(s *Server) {
		s.checkerOpts = append(s.checkerOpts, opts...)
	}
}

// New creates a Server backed by fresh checkers.
// runCtx bounds the lifetime of background runs: the caller should pass
// a context cancelled at shutdown, never a request context.
func New(runCtx context.Context, cfg *config.Config, opts ...Option) *Server {
	s := &Server{
		logger:             slog.Default(),
		runCtx:             runCtx,
		defaultConcurrency: cfg.Concurrency,
		defaultTimeout:     cfg.Timeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	checkerOpts := append([]checker.Option{
		checker.WithLogger(s.logger),
		checker.WithFetchOptions(
			fetch.WithUserAgent(cfg.UserAgent),
			fetch.WithMaxBodySize(cfg.MaxBodySize),
		),
	}, s.checkerOpts...)

	s.links = checker.NewLinkChecker(checkerOpts...)
	s.domains = checker.NewDomainChecker(checkerOpts...)

	return s
}

// Router builds the HTTP routing table.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)

	r.Route("/api/link-check", func(r chi.Router) {
		r.Post("/start", s.handleLinkCheckStart)
		r.Get("/status", s.handleLinkCheckStatus)
		r.Get("/results", s.handleLinkCheckResults)
		r.Post("/stop", s.handleLinkCheckStop)
	})

	r.Route("/api/domain-check", func(r chi.Router) {
		r.Post("/start", s.handleDomainCheckStart)
		r.Get("/status", s.handleDomainCheckStatus)
		r.Get("/results", s.handleDomainCheckResults)
		r.Post("/stop", s.handleDomainCheckStop)
	})

	return r
}

// logRequests logs each request with method, path, status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// handleHealthz reports liveness.
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// runSettings resolves per-request concurrency and timeout overrides,
// falling back to the configured defaults.
func (s *Server) runSettings(threads, timeoutSeconds int) (int, time.Duration) {
	concurrency := s.defaultConcurrency
	if threads > 0 {
		concurrency = threads
	}
	timeout := s.defaultTimeout
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}
	return concurrency, timeout
}
