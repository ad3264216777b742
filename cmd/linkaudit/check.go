package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/linkaudit/linkaudit/internal/checker"
	"github.com/linkaudit/linkaudit/internal/fetch"
	"github.com/linkaudit/linkaudit/internal/input"
	"github.com/linkaudit/linkaudit/internal/model"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [csv-file]",
		Short: "Verify expected links from a CSV file",
		Long: `Check reads CSV rows of (site, expected link, expected anchor) and
verifies each site still carries the expected link with the expected
anchor text. Pass "-" or no argument to read the CSV from stdin.

Each row is classified as one of:
  ok               link present, anchor matches (or no anchor expected)
  anchor_mismatch  link present with different anchor text
  link_not_found   page loaded but the link is missing
  fetch_error      the hosting page could not be loaded

Examples:
  # Check rows from a file, text summary to stdout
  linkaudit check backlinks.csv

  # JSON report to a file
  linkaudit check --json -o report.json backlinks.csv

  # Read from stdin with more workers
  cat backlinks.csv | linkaudit check --threads 10`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCheckCmd,
	}

	addRunFlags(cmd)
	addReportFlags(cmd)

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	rows, err := readRows(cmd, args)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no valid rows found in CSV input")
	}

	writer, cleanup, err := newReportWriter(cmd, cfg.Verbose)
	if err != nil {
		return err
	}

	jsonLog, err := cmd.Flags().GetBool("json-log")
	if err != nil {
		cleanup() //nolint:errcheck // Flag error takes precedence
		return err
	}
	logger := setupLogger(cfg.Verbose, jsonLog)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lc := checker.NewLinkChecker(
		checker.WithLogger(logger),
		checker.WithFetchOptions(
			fetch.WithUserAgent(cfg.UserAgent),
			fetch.WithMaxBodySize(cfg.MaxBodySize),
		),
	)
	if err := lc.Run(ctx, rows, cfg.Concurrency, cfg.Timeout); err != nil {
		cleanup() //nolint:errcheck // Run error takes precedence
		return err
	}
	if err := lc.Wait(ctx); err != nil {
		cleanup() //nolint:errcheck // Wait error takes precedence
		return fmt.Errorf("check interrupted: %w", err)
	}

	rep := model.NewLinkCheckReport(lc.Tracker().Results())
	if _, err := writer.WriteLinkCheck(rep); err != nil {
		cleanup() //nolint:errcheck // Write error takes precedence
		return fmt.Errorf("failed to write report: %w", err)
	}
	return cleanup()
}

// readRows parses CSV rows from the file argument or stdin.
func readRows(cmd *cobra.Command, args []string) ([]model.Row, error) {
	var src io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0]) //nolint:gosec // User-provided CSV path is intentional
		if err != nil {
			return nil, fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer f.Close()
		src = f
	}
	return input.ParseRows(src), nil
}
