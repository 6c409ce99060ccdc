// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/streamline-portal/portal/cmd/portal/cli"
	"github.com/streamline-portal/portal/lib/portalui"
)

func browseCommand() *cli.Command {
	var serverURL string
	var startFragment string

	return &cli.Command{
		Name:    "browse",
		Summary: "Open the interactive terminal UI",
		Description: `Open the interactive portal browser.

Navigation uses the number keys shown in the top bar; j/k move within
lists, enter opens the selected item, r reloads the current screen,
and q quits. The saved session is restored on startup, so signing in
once via "portal login" is enough.`,
		Usage: "portal browse [flags]",
		Examples: []cli.Example{
			{
				Description: "Open at the plugin listing",
				Command:     "portal browse --page '#/plugins'",
			},
			{
				Description: "Jump straight to the admin review queue",
				Command:     "portal browse --page '#/admin/queue'",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("browse", pflag.ContinueOnError)
			flags.StringVar(&serverURL, "server", "", "portal API base URL (default: from config)")
			flags.StringVar(&startFragment, "page", "", "page fragment to open first (default: home)")
			return flags
		},
		Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}

			// Route log output into the TUI status line instead of
			// stderr, which the alternate screen would garble.
			handler := portalui.NewLogHandler(slog.LevelWarn)
			logger := slog.New(handler)

			connection, err := cli.Connect(ctx, serverURL, logger)
			if err != nil {
				return err
			}

			model := portalui.NewModel(connection.Client, connection.Store, startFragment)
			program := tea.NewProgram(model, tea.WithAltScreen())
			handler.SetProgram(program)

			if _, err := program.Run(); err != nil {
				return cli.Internal("run UI: %w", err)
			}
			return nil
		},
	}
}
