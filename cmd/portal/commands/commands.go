// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete portal CLI command tree: the
// scriptable commands plus the interactive browse TUI. main is a thin
// shell around [Root].
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streamline-portal/portal/cmd/portal/cli"
	"github.com/streamline-portal/portal/lib/version"
)

// Root builds and returns the complete portal CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "portal",
		Description: `Streamline Portal: plugin marketplace client.

Browse published plugins, submit and manage your own, and (for
admins) review submissions, manage accounts, and inspect the audit
trail. Run "portal browse" for the interactive terminal UI, or use
the subcommands directly for scripting.`,
		Subcommands: []*cli.Command{
			loginCommand(),
			logoutCommand(),
			whoAmICommand(),
			browseCommand(),
			pluginsCommand(),
			usersCommand(),
			auditCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					fmt.Printf("portal %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Authenticate (saves the session locally)",
				Command:     "portal login casey",
			},
			{
				Description: "Open the interactive browser",
				Command:     "portal browse",
			},
			{
				Description: "Search published plugins",
				Command:     "portal plugins list --query weather",
			},
			{
				Description: "Submit a draft plugin for review",
				Command:     "portal plugins submit weather-widget",
			},
			{
				Description: "Reject a submission with a reason",
				Command:     "portal plugins reject weather-widget --reason 'missing signature'",
			},
			{
				Description: "Inspect the audit trail as JSON",
				Command:     "portal audit --json",
			},
		},
	}
}
