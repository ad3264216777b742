package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/linkaudit/linkaudit/internal/checker"
	"github.com/linkaudit/linkaudit/internal/fetch"
	"github.com/linkaudit/linkaudit/internal/input"
	"github.com/linkaudit/linkaudit/internal/model"
)

// NewDomainsCmd creates the domains command.
func NewDomainsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domains [domain-list-file]",
		Short: "Check which referring domains link to target domains",
		Long: `Domains fetches each referring domain's homepage and reports the
outbound links found there. With --targets, it additionally reports
whether each target domain is linked, and with what anchor text.

The domain list accepts one domain per line or comma separated values.
Schemes and www. prefixes are stripped. Pass "-" or no argument to read
the list from stdin.

Examples:
  # Report outbound link counts for a list of domains
  linkaudit domains referrers.txt

  # Check which referrers still link to your domains
  linkaudit domains --targets example.com,shop.example.com referrers.txt

  # Markdown report to a file
  linkaudit domains -T example.com -m -o report.md referrers.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDomainsCmd,
	}

	cmd.Flags().StringP("targets", "T", "",
		"Target domains to look for, comma or newline separated")
	addRunFlags(cmd)
	addReportFlags(cmd)

	return cmd
}

// runDomainsCmd executes the domains command.
func runDomainsCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	domains, err := readDomains(cmd, args)
	if err != nil {
		return err
	}
	if len(domains) == 0 {
		return fmt.Errorf("no referring domains provided")
	}

	rawTargets, err := cmd.Flags().GetString("targets")
	if err != nil {
		return err
	}
	targets := input.ParseDomainList(rawTargets)

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

	dc := checker.NewDomainChecker(
		checker.WithLogger(logger),
		checker.WithFetchOptions(
			fetch.WithUserAgent(cfg.UserAgent),
			fetch.WithMaxBodySize(cfg.MaxBodySize),
		),
	)
	if err := dc.Run(ctx, domains, targets, cfg.Concurrency, cfg.Timeout); err != nil {
		cleanup() //nolint:errcheck // Run error takes precedence
		return err
	}
	if err := dc.Wait(ctx); err != nil {
		cleanup() //nolint:errcheck // Wait error takes precedence
		return fmt.Errorf("check interrupted: %w", err)
	}

	rep := model.NewDomainCheckReport(dc.Tracker().Results())
	if _, err := writer.WriteDomainCheck(rep); err != nil {
		cleanup() //nolint:errcheck // Write error takes precedence
		return fmt.Errorf("failed to write report: %w", err)
	}
	return cleanup()
}

// readDomains parses the referring domain list from the file argument or
// stdin.
func readDomains(cmd *cobra.Command, args []string) ([]string, error) {
	var src io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0]) //nolint:gosec // User-provided list path is intentional
		if err != nil {
			return nil, fmt.Errorf("failed to open domain list: %w", err)
		}
		defer f.Close()
		src = f
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read domain list: %w", err)
	}
	return input.ParseDomainList(strings.TrimSpace(string(data))), nil
}
