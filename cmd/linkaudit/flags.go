package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/linkaudit/linkaudit/internal/config"
	"github.com/linkaudit/linkaudit/internal/report"
)

// addRunFlags registers the flags shared by every command that fetches pages.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("threads", "n", config.DefaultConcurrency,
		"Number of concurrent page fetches")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Per-fetch timeout")
	cmd.Flags().String("user-agent", "",
		"Override the User-Agent header sent with page fetches")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize,
		"Maximum response body size to read per page, in bytes")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .linkaudit in current or home directory)")
	cmd.Flags().Bool("json-log", false,
		"Emit logs as JSON instead of text")
}

// addReportFlags registers report output flags for one-shot commands.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (a bare file name is placed under the user data directory)")
	cmd.Flags().Bool("show-ok", false,
		"List passing entries in the text report, not just problems")
}

// buildConfig creates a Config from defaults, an optional config file, and
// flags. Flags the user actually set win over config file values.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently continue on defaults.
	found := config.FindConfigFile(configPath)
	if found != "" {
		f, err := config.LoadConfigFile(found)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
		}
		f.Apply(cfg)
		cfg.ConfigFilePath = found
	} else if configPath != "" {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	if cmd.Flags().Changed("threads") {
		cfg.Concurrency, err = cmd.Flags().GetInt("threads")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("user-agent") {
		cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("max-body-size") {
		cfg.MaxBodySize, err = cmd.Flags().GetInt64("max-body-size")
		if err != nil {
			return nil, err
		}
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// newReportWriter picks the report writer from format flags. The returned
// cleanup function closes the output file, if any, and must always be
// called.
func newReportWriter(cmd *cobra.Command, verbose bool) (report.Writer, func() error, error) {
	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return nil, nil, err
	}
	markdownOut, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, nil, err
	}
	if jsonOut && markdownOut {
		return nil, nil, errors.New("--json and --markdown are mutually exclusive")
	}

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return nil, nil, err
	}
	showOK, err := cmd.Flags().GetBool("show-ok")
	if err != nil {
		return nil, nil, err
	}

	var dest io.Writer = cmd.OutOrStdout()
	cleanup := func() error { return nil }
	if outputPath != "" {
		// A bare file name lands in the per-user data directory; any
		// path with a separator (including ./name) is taken literally.
		if !strings.ContainsRune(outputPath, os.PathSeparator) {
			outputPath = filepath.Join(config.XDGDataDir(), outputPath)
		}
		if dir := filepath.Dir(outputPath); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, nil, fmt.Errorf("failed to create report directory: %w", err)
			}
		}
		f, err := os.Create(outputPath) //nolint:gosec // User-provided report path is intentional
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create report file: %w", err)
		}
		dest = f
		cleanup = f.Close
	}

	var w report.Writer
	switch {
	case jsonOut:
		w = report.NewJSONWriter(dest, report.WithPrettyPrint())
	case markdownOut:
		w = report.NewMarkdownWriter(dest)
	default:
		w = report.NewSimpleWriter(dest, report.WithShowOK(showOK), report.WithVerbose(verbose))
	}
	return w, cleanup, nil
}
