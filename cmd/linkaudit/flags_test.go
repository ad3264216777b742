package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/linkaudit/linkaudit/internal/config"
	"github.com/linkaudit/linkaudit/internal/report"
)

// newFlagTestCmd builds a bare command carrying the shared flag sets.
func newFlagTestCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test", Run: func(*cobra.Command, []string) {}}
	cmd.Flags().BoolP("verbose", "v", false, "")
	addRunFlags(cmd)
	addReportFlags(cmd)
	return cmd
}

func TestBuildConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cmd := newFlagTestCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}
		if cfg.Concurrency != config.DefaultConcurrency {
			t.Errorf("Concurrency = %d, want default", cfg.Concurrency)
		}
		if cfg.Timeout != config.DefaultTimeout {
			t.Errorf("Timeout = %v, want default", cfg.Timeout)
		}
	})

	t.Run("flags override config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), config.DefaultConfigFile)
		content := "concurrency: 8\ntimeout_seconds: 30\nuser_agent: file-agent\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		cmd := newFlagTestCmd()
		if err := cmd.ParseFlags([]string{"--config", path, "--threads", "3"}); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}
		if cfg.Concurrency != 3 {
			t.Errorf("Concurrency = %d, want flag value 3", cfg.Concurrency)
		}
		if cfg.Timeout != 30*time.Second {
			t.Errorf("Timeout = %v, want file value 30s", cfg.Timeout)
		}
		if cfg.UserAgent != "file-agent" {
			t.Errorf("UserAgent = %q, want file value", cfg.UserAgent)
		}
		if cfg.ConfigFilePath != path {
			t.Errorf("ConfigFilePath = %q, want %q", cfg.ConfigFilePath, path)
		}
	})

	t.Run("explicit missing config file fails", func(t *testing.T) {
		cmd := newFlagTestCmd()
		missing := filepath.Join(t.TempDir(), "nope")
		if err := cmd.ParseFlags([]string{"--config", missing}); err != nil {
			t.Fatal(err)
		}

		if _, err := buildConfig(cmd); err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})
}

func TestNewReportWriter(t *testing.T) {
	t.Run("defaults to text writer on stdout", func(t *testing.T) {
		cmd := newFlagTestCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatal(err)
		}

		w, cleanup, err := newReportWriter(cmd, false)
		if err != nil {
			t.Fatalf("newReportWriter() error = %v", err)
		}
		defer cleanup() //nolint:errcheck // Stdout cleanup is a no-op

		if _, ok := w.(*report.SimpleWriter); !ok {
			t.Errorf("writer = %T, want *report.SimpleWriter", w)
		}
	})

	t.Run("json flag selects json writer", func(t *testing.T) {
		cmd := newFlagTestCmd()
		if err := cmd.ParseFlags([]string{"--json"}); err != nil {
			t.Fatal(err)
		}

		w, cleanup, err := newReportWriter(cmd, false)
		if err != nil {
			t.Fatalf("newReportWriter() error = %v", err)
		}
		defer cleanup() //nolint:errcheck // Stdout cleanup is a no-op

		if _, ok := w.(*report.JSONWriter); !ok {
			t.Errorf("writer = %T, want *report.JSONWriter", w)
		}
	})

	t.Run("markdown flag selects markdown writer", func(t *testing.T) {
		cmd := newFlagTestCmd()
		if err := cmd.ParseFlags([]string{"--markdown"}); err != nil {
			t.Fatal(err)
		}

		w, cleanup, err := newReportWriter(cmd, false)
		if err != nil {
			t.Fatalf("newReportWriter() error = %v", err)
		}
		defer cleanup() //nolint:errcheck // Stdout cleanup is a no-op

		if _, ok := w.(*report.MarkdownWriter); !ok {
			t.Errorf("writer = %T, want *report.MarkdownWriter", w)
		}
	})

	t.Run("conflicting formats fail", func(t *testing.T) {
		cmd := newFlagTestCmd()
		if err := cmd.ParseFlags([]string{"--json", "--markdown"}); err != nil {
			t.Fatal(err)
		}

		if _, _, err := newReportWriter(cmd, false); err == nil {
			t.Error("expected error for conflicting format flags")
		}
	})

	t.Run("bare output name lands in data directory", func(t *testing.T) {
		dataHome := t.TempDir()
		t.Cleanup(xdg.Reload)
		t.Setenv("XDG_DATA_HOME", dataHome)
		xdg.Reload()

		cmd := newFlagTestCmd()
		if err := cmd.ParseFlags([]string{"--json", "--output", "report.json"}); err != nil {
			t.Fatal(err)
		}

		_, cleanup, err := newReportWriter(cmd, false)
		if err != nil {
			t.Fatalf("newReportWriter() error = %v", err)
		}
		if err := cleanup(); err != nil {
			t.Errorf("cleanup error: %v", err)
		}

		want := filepath.Join(dataHome, config.AppName, "report.json")
		if _, err := os.Stat(want); err != nil {
			t.Errorf("report not created at %s: %v", want, err)
		}
	})

	t.Run("output flag creates nested directories", func(t *testing.T) {
		outPath := filepath.Join(t.TempDir(), "reports", "deep", "out.json")
		cmd := newFlagTestCmd()
		if err := cmd.ParseFlags([]string{"--json", "--output", outPath}); err != nil {
			t.Fatal(err)
		}

		_, cleanup, err := newReportWriter(cmd, false)
		if err != nil {
			t.Fatalf("newReportWriter() error = %v", err)
		}
		if err := cleanup(); err != nil {
			t.Errorf("cleanup error: %v", err)
		}
		if _, err := os.Stat(outPath); err != nil {
			t.Errorf("output file not created: %v", err)
		}
	})
}
