package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/linkaudit/linkaudit/internal/config"
	"github.com/linkaudit/linkaudit/internal/log"
	"github.com/linkaudit/linkaudit/internal/server"
)

// shutdownGrace is how long in-flight HTTP requests get to finish after
// a shutdown signal.
const shutdownGrace = 10 * time.Second

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Serve exposes both checkers over a JSON HTTP API.

Endpoints:
  POST /api/link-check/start      Submit CSV rows and launch a run
  GET  /api/link-check/status     Live progress of the current run
  GET  /api/link-check/results    Finished results with filtering and paging
  POST /api/link-check/stop       Request the current run to stop
  POST /api/domain-check/start    Submit referring domains and targets
  GET  /api/domain-check/status   Live progress of the current run
  GET  /api/domain-check/results  Finished results with filtering and paging
  POST /api/domain-check/stop     Request the current run to stop
  GET  /healthz                   Liveness probe

Examples:
  # Listen on the default address
  linkaudit serve

  # Custom address and higher default concurrency
  linkaudit serve --listen :9090 --threads 10`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("listen", "l", config.DefaultListenAddr,
		"Address to bind the HTTP API to")
	addRunFlags(cmd)

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	cfg.ListenAddr, err = cmd.Flags().GetString("listen")
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	jsonLog, err := cmd.Flags().GetBool("json-log")
	if err != nil {
		return err
	}
	logger := setupServeLogger(cfg.Verbose, jsonLog)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(ctx, cfg, server.WithLogger(logger))
	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	logger.Info("server started",
		"addr", cfg.ListenAddr,
		"concurrency", cfg.Concurrency,
		"timeout", cfg.Timeout,
		"config_file", cfg.ConfigFilePath,
	)

	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal, draining requests")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
}

// setupServeLogger builds the server logger. The server logs at info
// level so request logs are visible; verbose lowers it to debug.
func setupServeLogger(verbose, jsonLog bool) *slog.Logger {
	return log.NewServerLogger(os.Stderr, verbose, jsonLog)
}
