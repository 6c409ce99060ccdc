// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/streamline-portal/portal/cmd/portal/cli"
)

func auditCommand() *cli.Command {
	var outputJSON bool
	var limit int

	return &cli.Command{
		Name:    "audit",
		Summary: "Show the audit trail (admin)",
		Description: `Show the server's audit trail, newest first.

Every lifecycle decision, role change, and deletion is recorded with
its actor, target, and optional reason.`,
		Usage: "portal audit [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("audit", pflag.ContinueOnError)
			flags.BoolVar(&outputJSON, "json", false, "output as JSON")
			flags.IntVar(&limit, "limit", 0, "show at most this many entries (0 = all)")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			connection, err := cli.Connect(ctx, "", logger)
			if err != nil {
				return err
			}
			if err := connection.RequireSession(); err != nil {
				return err
			}
			entries, err := connection.Client.AuditLogs(ctx)
			if err != nil {
				return cli.APIError(err)
			}
			slices.Reverse(entries)
			if limit > 0 && limit < len(entries) {
				entries = entries[:limit]
			}
			if done, err := cli.EmitJSON(connection.JSONOutput(outputJSON), entries); done {
				return err
			}
			writer := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(writer, "WHEN\tACTOR\tACTION\tTARGET\tREASON")
			for _, entry := range entries {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
					entry.Timestamp, entry.Actor, entry.Action, entry.Target, entry.Reason)
			}
			return writer.Flush()
		},
	}
}
