// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestDispatchToSubcommand(t *testing.T) {
	t.Parallel()

	ran := false
	root := &Command{
		Name: "portal",
		Subcommands: []*Command{
			{
				Name: "plugins",
				Subcommands: []*Command{
					{
						Name: "list",
						Run: func(_ context.Context, args []string, _ *slog.Logger) error {
							ran = true
							if len(args) != 1 || args[0] != "extra" {
								t.Errorf("args = %v, want [extra]", args)
							}
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"plugins", "list", "extra"}, testLogger()); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !ran {
		t.Fatal("nested subcommand did not run")
	}
}

func TestUnknownCommandSuggestion(t *testing.T) {
	t.Parallel()

	root := &Command{
		Name: "portal",
		Subcommands: []*Command{
			{Name: "plugins"},
			{Name: "users"},
		},
	}

	err := root.Execute(context.Background(), []string{"plugin"}, testLogger())
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "plugins"`) {
		t.Errorf("error lacks suggestion: %v", err)
	}
}

func TestUnknownFlagSuggestion(t *testing.T) {
	t.Parallel()

	command := &Command{
		Name: "list",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flags.String("query", "", "search filter")
			return flags
		},
		Run: func(context.Context, []string, *slog.Logger) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--qeury", "x"}, testLogger())
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "--query") {
		t.Errorf("error lacks flag suggestion: %v", err)
	}
}

func TestFlagParsingStripsFlagsFromArgs(t *testing.T) {
	t.Parallel()

	var query string
	var got []string
	command := &Command{
		Name: "list",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flags.StringVar(&query, "query", "", "search filter")
			return flags
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			got = args
			return nil
		},
	}

	if err := command.Execute(context.Background(), []string{"--query", "weather", "positional"}, testLogger()); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if query != "weather" {
		t.Errorf("query = %q", query)
	}
	if len(got) != 1 || got[0] != "positional" {
		t.Errorf("positional args = %v", got)
	}
}

func TestLevenshtein(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"plugins", "plugins", 0},
		{"plugin", "plugins", 1},
		{"uesrs", "users", 2},
		{"audit", "users", 5},
	}
	for _, test := range tests {
		if got := levenshtein(test.a, test.b); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}
