package checker

import (
	"errors"
	"log/slog"

	"github.com/linkaudit/linkaudit/internal/fetch"
)

// Submission errors. Both engines reject a run before any state changes.
var (
	// ErrAlreadyRunning is returned when a submission arrives while the
	// engine's previous run is still in flight. The in-flight run is not
	// affected.
	ErrAlreadyRunning = errors.New("check already in progress")

	// ErrNoRows is returned when a link-check submission contains no valid
	// rows.
	ErrNoRows = errors.New("no valid rows to check")

	// ErrNoDomains is returned when a domain-check submission contains no
	// referring domains.
	ErrNoDomains = errors.New("no referring domains to check")
)

// DefaultConcurrency is the worker pool size used when a submission does
// not specify one.
const DefaultConcurrency = 5

// settings holds configuration shared by both engine constructors.
type settings struct {
	logger    *slog.Logger
	fetchOpts []fetch.Option
}

// Option configures an engine.
type Option func(*settings)

// WithLogger sets a custom logger for the engine's run-level logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFetchOptions appends options applied to the per-run page fetcher.
// Used by tests to substitute the HTTP client; can also override the user
// agent or body size limit.
func WithFetchOptions(opts ...fetch.Option) Option {
	return func(s *settings) {
		s.fetchOpts = append(s.fetchOpts, opts...)
	}
}

// newSettings applies options over defaults.
func newSettings(opts []Option) settings {
	s := settings{}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}
