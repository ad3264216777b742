// Package main provides the entry point for the linkaudit CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/linkaudit/linkaudit/internal/log"
)

// NewRootCmd creates the root command for linkaudit.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linkaudit",
		Short: "Backlink and domain link verification tool",
		Long: `linkaudit verifies backlinks at scale.

The check command reads CSV rows of (site, expected link, expected anchor)
and verifies each site still carries the expected link. The domains command
crawls referring domains' homepages and reports which target domains they
link out to. The serve command exposes both checks over a JSON HTTP API.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewDomainsCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger based on verbosity and output
// format settings. Attribute values are bounded so one huge fetch error
// cannot flood the log.
func setupLogger(verbose, jsonLog bool) *slog.Logger {
	if jsonLog {
		return log.NewJSONLogger(os.Stderr, verbose)
	}
	return log.NewLogger(os.Stderr, verbose)
}
