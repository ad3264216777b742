package main

import (
	"testing"
)

// TestNewServeCmd tests the serve command definition.
func TestNewServeCmd(t *testing.T) {
	t.Parallel()

	cmd := NewServeCmd()

	if cmd.Use != "serve" {
		t.Errorf("unexpected use: %q", cmd.Use)
	}

	t.Run("has listen flag with default", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("listen")
		if flag == nil {
			t.Fatal("expected listen flag")
		}
		if flag.DefValue != ":8080" {
			t.Errorf("listen default = %q, want :8080", flag.DefValue)
		}
	})

	t.Run("has run flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"threads", "timeout", "user-agent", "max-body-size", "config", "json-log"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %q flag", name)
			}
		}
	})

	t.Run("takes no arguments", func(t *testing.T) {
		t.Parallel()
		if err := cmd.Args(cmd, []string{"extra"}); err == nil {
			t.Error("expected error for positional argument")
		}
	})
}

// TestSetupServeLogger tests logger construction for both output modes.
func TestSetupServeLogger(t *testing.T) {
	t.Parallel()

	if setupServeLogger(false, false) == nil {
		t.Error("expected text logger")
	}
	if setupServeLogger(true, true) == nil {
		t.Error("expected json logger")
	}
}
