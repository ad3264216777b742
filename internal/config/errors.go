package config

import "errors"

// Configuration validation errors returned by Config.Validate().
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic handling while still providing
// human-readable messages.
var (
	// ErrInvalidConcurrency is returned when the worker pool size is not
	// positive. Zero workers would mean no fetching at all.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidTimeout is returned when the per-fetch timeout is not
	// positive. A zero timeout would fail every fetch immediately.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is
	// negative. Use 0 to keep the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrNoListenAddr is returned when the HTTP listen address is empty.
	ErrNoListenAddr = errors.New("no listen address configured")
)
