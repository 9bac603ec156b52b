package main

import (
	"testing"
)

// TestNewRootCmd tests the root command creation.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "spdrs <url>" {
			t.Errorf("expected use 'spdrs <url>', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("has version", func(t *testing.T) {
		t.Parallel()
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("has verbose flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.PersistentFlags().Lookup("verbose")
		if flag == nil {
			t.Fatal("expected verbose flag")
		}
		if flag.Shorthand != "v" {
			t.Errorf("expected shorthand 'v', got %q", flag.Shorthand)
		}
		if flag.DefValue != "false" {
			t.Errorf("expected default 'false', got %q", flag.DefValue)
		}
	})

	t.Run("has timeout flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("timeout")
		if flag == nil {
			t.Fatal("expected timeout flag")
		}
		if flag.Shorthand != "t" {
			t.Errorf("expected shorthand 't', got %q", flag.Shorthand)
		}
	})

	t.Run("has concurrency flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("concurrency")
		if flag == nil {
			t.Fatal("expected concurrency flag")
		}
		if flag.Shorthand != "n" {
			t.Errorf("expected shorthand 'n', got %q", flag.Shorthand)
		}
		if flag.DefValue != "0" {
			t.Errorf("expected default '0', got %q", flag.DefValue)
		}
	})

	t.Run("has user-agent flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("user-agent")
		if flag == nil {
			t.Fatal("expected user-agent flag")
		}
		if flag.Shorthand != "u" {
			t.Errorf("expected shorthand 'u', got %q", flag.Shorthand)
		}
	})

	t.Run("has max-body-size flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("max-body-size") == nil {
			t.Fatal("expected max-body-size flag")
		}
	})

	t.Run("has config flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("config")
		if flag == nil {
			t.Fatal("expected config flag")
		}
		if flag.Shorthand != "c" {
			t.Errorf("expected shorthand 'c', got %q", flag.Shorthand)
		}
	})

	t.Run("has report flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"json", "markdown", "output", "no-save"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %s flag", name)
			}
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()
		names := make(map[string]bool)
		for _, sub := range cmd.Commands() {
			names[sub.Name()] = true
		}
		for _, want := range []string{"history", "version"} {
			if !names[want] {
				t.Errorf("expected %s subcommand", want)
			}
		}
	})
}

// TestRootCmdArgs tests the positional argument validation.
func TestRootCmdArgs(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("rejects zero arguments", func(t *testing.T) {
		t.Parallel()
		err := cmd.Args(cmd, []string{})
		if err == nil {
			t.Fatal("expected error for zero arguments")
		}
		if err.Error() != "usage: spdrs <url>" {
			t.Errorf("expected usage message, got %q", err.Error())
		}
	})

	t.Run("rejects two arguments", func(t *testing.T) {
		t.Parallel()
		if err := cmd.Args(cmd, []string{"https://a.example", "https://b.example"}); err == nil {
			t.Fatal("expected error for two arguments")
		}
	})

	t.Run("accepts one argument", func(t *testing.T) {
		t.Parallel()
		if err := cmd.Args(cmd, []string{"https://example.com"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
