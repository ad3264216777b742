package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".linkaudit"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .linkaudit configuration file.
// Durations are expressed in seconds to keep the file format simple.
type File struct {
	Listen         string `yaml:"listen,omitempty"`
	Concurrency    int    `yaml:"concurrency,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
	UserAgent      string `yaml:"user_agent,omitempty"`
	MaxBodySize    int64  `yaml:"max_body_size,omitempty"`
}

// LoadConfigFile loads configuration overrides from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers should
// handle this based on whether the path was explicitly specified by the
// user: a missing default file is fine, a missing explicit file is not.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Apply overlays the file's non-zero values onto cfg.
func (f *File) Apply(cfg *Config) {
	if f.Listen != "" {
		cfg.ListenAddr = f.Listen
	}
	if f.Concurrency > 0 {
		cfg.Concurrency = f.Concurrency
	}
	if f.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(f.TimeoutSeconds) * time.Second
	}
	if f.UserAgent != "" {
		cfg.UserAgent = f.UserAgent
	}
	if f.MaxBodySize > 0 {
		cfg.MaxBodySize = f.MaxBodySize
	}
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .linkaudit in the current directory
//  3. Look for .linkaudit in the XDG config directory
//  4. Look for .linkaudit in the user's home directory
//
// Returns the path to the configuration file if found, or empty string.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	xdgConfig := filepath.Join(XDGConfigDir(), DefaultConfigFile)
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
