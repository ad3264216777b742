package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultListenAddr is the HTTP API listen address.
	DefaultListenAddr = ":8080"

	// DefaultConcurrency is the number of pages fetched in parallel per
	// batch. Five concurrent fetches keeps throughput reasonable without
	// hammering any shared upstream infrastructure.
	DefaultConcurrency = 5

	// DefaultTimeout is the per-fetch timeout. Fifteen seconds covers slow
	// shared-hosting pages; anything slower is reported as a fetch error
	// rather than stalling the batch.
	DefaultTimeout = 15 * time.Second

	// DefaultMaxBodySize limits the response body read per page. 5MB is
	// generous for HTML while preventing memory exhaustion from
	// unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// AppName is the application name used for XDG directory paths.
	AppName = "linkaudit"
)

// Config holds all configuration options.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// ListenAddr is the address the HTTP API binds to, "host:port" form.
	ListenAddr string

	// Concurrency is the default worker pool size per check batch.
	// Submissions may override it per run.
	Concurrency int

	// Timeout is the default per-fetch timeout. Submissions may override
	// it per run.
	Timeout time.Duration

	// UserAgent overrides the User-Agent header sent with page fetches.
	// Empty means the fetcher's default browser signature.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read per
	// page. Zero means the default (5MB).
	MaxBodySize int64

	// Verbose enables debug log output. When false, only warnings and
	// errors are logged.
	Verbose bool

	// ConfigFilePath is the path the configuration was loaded from, empty
	// when only defaults and flags were used.
	ConfigFilePath string
}

// NewConfig creates a Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because most defaults are non-zero. This also serves as
// documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		ListenAddr:  DefaultListenAddr,
		Concurrency: DefaultConcurrency,
		Timeout:     DefaultTimeout,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// XDGDataDir returns the XDG data directory for linkaudit, used as the
// default location for exported reports.
// On Linux: ~/.local/share/linkaudit
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for linkaudit.
// On Linux: ~/.config/linkaudit
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid. It returns the first
// specific error found; fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.ListenAddr == "" {
		return ErrNoListenAddr
	}
	return nil
}
