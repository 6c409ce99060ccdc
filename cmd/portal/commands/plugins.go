// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/streamline-portal/portal/cmd/portal/cli"
	"github.com/streamline-portal/portal/lib/lifecycle"
	"github.com/streamline-portal/portal/lib/portalclient"
	"github.com/streamline-portal/portal/lib/schema"
)

func pluginsCommand() *cli.Command {
	return &cli.Command{
		Name:    "plugins",
		Summary: "Browse and manage plugins",
		Subcommands: []*cli.Command{
			pluginsListCommand(),
			pluginsShowCommand(),
			pluginsVersionsCommand(),
			pluginsMineCommand(),
			pluginsCreateCommand(),
			pluginsUpdateCommand(),
			pluginsDeleteCommand(),
			transitionCommand(lifecycle.ActionSubmit, "Submit a plugin for review",
				"Move a draft, rejected, or unpublished plugin into the review queue."),
			transitionCommand(lifecycle.ActionApprove, "Approve a submitted plugin (admin)",
				"Approve a submitted plugin. Approved plugins can then be published."),
			transitionCommand(lifecycle.ActionReject, "Reject a submitted plugin (admin)",
				"Reject a submitted plugin. The optional --reason lands in the audit log\nand is the only transition that takes one."),
			transitionCommand(lifecycle.ActionPublish, "Publish an approved plugin (admin)",
				"Publish an approved plugin, making it visible in the public listing."),
			transitionCommand(lifecycle.ActionUnpublish, "Unpublish a published plugin (admin)",
				"Withdraw a published plugin from the public listing. It can be\nresubmitted later."),
			pluginsDownloadCommand(),
		},
	}
}

func pluginsListCommand() *cli.Command {
	var query string
	var outputJSON bool

	return &cli.Command{
		Name:    "list",
		Summary: "List published plugins",
		Usage:   "portal plugins list [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flags.StringVar(&query, "query", "", "filter by name or ID substring")
			flags.BoolVar(&outputJSON, "json", false, "output as JSON")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			connection, err := cli.Connect(ctx, "", logger)
			if err != nil {
				return err
			}
			plugins, err := connection.Client.Plugins(ctx, query)
			if err != nil {
				return cli.APIError(err)
			}
			if done, err := cli.EmitJSON(connection.JSONOutput(outputJSON), plugins); done {
				return err
			}
			printMetadataTable(plugins)
			return nil
		},
	}
}

func pluginsShowCommand() *cli.Command {
	var outputJSON bool

	return &cli.Command{
		Name:    "show",
		Summary: "Show one plugin's details",
		Usage:   "portal plugins show <plugin-id> [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("show", pflag.ContinueOnError)
			flags.BoolVar(&outputJSON, "json", false, "output as JSON")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			pluginID, err := singlePluginArg(args)
			if err != nil {
				return err
			}
			connection, err := cli.Connect(ctx, "", logger)
			if err != nil {
				return err
			}

			plugin, err := connection.Client.Plugin(ctx, pluginID)
			if err != nil {
				return cli.APIError(err)
			}

			// Owners and admins also get the manage view; for everyone
			// else the probe fails and the public detail is shown alone.
			var record *schema.PluginRecord
			if connection.Store.Current().Authenticated() {
				record, _ = connection.Client.Manage(ctx, pluginID)
			}

			if connection.JSONOutput(outputJSON) {
				if record != nil {
					return cli.WriteJSON(record)
				}
				return cli.WriteJSON(plugin)
			}

			fmt.Printf("%s (%s)\n", plugin.Name, plugin.ID)
			fmt.Printf("  version:       %s\n", plugin.Version)
			fmt.Printf("  compatibility: %s\n", plugin.Compatibility)
			if plugin.PackageURL != "" {
				fmt.Printf("  package:       %s\n", plugin.PackageURL)
			}
			if plugin.SHA256 != "" {
				fmt.Printf("  sha256:        %s\n", plugin.SHA256)
			}
			if record != nil {
				fmt.Printf("  owner:         %s\n", record.Owner)
				fmt.Printf("  status:        %s\n", record.Status)
			}
			return nil
		},
	}
}

func pluginsVersionsCommand() *cli.Command {
	var outputJSON bool

	return &cli.Command{
		Name:    "versions",
		Summary: "List a plugin's release history",
		Usage:   "portal plugins versions <plugin-id> [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("versions", pflag.ContinueOnError)
			flags.BoolVar(&outputJSON, "json", false, "output as JSON")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			pluginID, err := singlePluginArg(args)
			if err != nil {
				return err
			}
			connection, err := cli.Connect(ctx, "", logger)
			if err != nil {
				return err
			}
			versions, err := connection.Client.PluginVersions(ctx, pluginID)
			if err != nil {
				return cli.APIError(err)
			}
			if done, err := cli.EmitJSON(connection.JSONOutput(outputJSON), versions); done {
				return err
			}
			writer := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(writer, "VERSION\tCOMPATIBILITY\tSHA256")
			for _, release := range versions {
				fmt.Fprintf(writer, "%s\t%s\t%s\n", release.Version, release.Compatibility, release.SHA256)
			}
			return writer.Flush()
		},
	}
}

func pluginsMineCommand() *cli.Command {
	var outputJSON bool

	return &cli.Command{
		Name:    "mine",
		Summary: "List your own plugins with lifecycle status",
		Description: `List the plugins you own, with their lifecycle status.

Admins see every plugin; that listing is also where the review queue
comes from (everything in status "submitted").`,
		Usage: "portal plugins mine [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("mine", pflag.ContinueOnError)
			flags.BoolVar(&outputJSON, "json", false, "output as JSON")
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
			records, err := connection.Client.MyPlugins(ctx)
			if err != nil {
				return cli.APIError(err)
			}
			if done, err := cli.EmitJSON(connection.JSONOutput(outputJSON), records); done {
				return err
			}
			printRecordTable(records)
			return nil
		},
	}
}

func pluginsCreateCommand() *cli.Command {
	var name string
	var compatibility string

	return &cli.Command{
		Name:    "create",
		Summary: "Register a new plugin (starts as draft)",
		Usage:   "portal plugins create <plugin-id> --name <name> [flags]",
		Examples: []cli.Example{
			{
				Description: "Register a plugin and immediately submit it",
				Command:     "portal plugins create weather-widget --name 'Weather Widget' --compatibility '>=2.0' && portal plugins submit weather-widget",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("create", pflag.ContinueOnError)
			flags.StringVar(&name, "name", "", "display name (required)")
			flags.StringVar(&compatibility, "compatibility", "", "compatible host versions")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			pluginID, err := singlePluginArg(args)
			if err != nil {
				return err
			}
			if name == "" {
				return cli.Validation("--name is required")
			}
			connection, err := cli.Connect(ctx, "", logger)
			if err != nil {
				return err
			}
			if err := connection.RequireSession(); err != nil {
				return err
			}
			record, err := connection.Client.CreatePlugin(ctx, portalclient.CreatePluginRequest{
				ID:            pluginID,
				Name:          name,
				Compatibility: compatibility,
			})
			if err != nil {
				return cli.APIError(err)
			}
			fmt.Printf("created %s (%s)\n", record.ID, record.Status)
			return nil
		},
	}
}

func pluginsUpdateCommand() *cli.Command {
	var name string
	var compatibility string

	return &cli.Command{
		Name:    "update",
		Summary: "Edit a plugin's name or compatibility",
		Usage:   "portal plugins update <plugin-id> [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("update", pflag.ContinueOnError)
			flags.StringVar(&name, "name", "", "new display name")
			flags.StringVar(&compatibility, "compatibility", "", "new compatibility range")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			pluginID, err := singlePluginArg(args)
			if err != nil {
				return err
			}
			if name == "" && compatibility == "" {
				return cli.Validation("nothing to update (set --name or --compatibility)")
			}
			connection, err := cli.Connect(ctx, "", logger)
			if err != nil {
				return err
			}
			if err := connection.RequireSession(); err != nil {
				return err
			}

			// Unset fields keep their current values; fetch them so the
			// full-replacement update does not blank anything.
			current, err := connection.Client.Manage(ctx, pluginID)
			if err != nil {
				return cli.APIError(err)
			}
			if name == "" {
				name = current.Name
			}
			if compatibility == "" {
				compatibility = current.Compatibility
			}

			record, err := connection.Client.UpdatePlugin(ctx, pluginID, portalclient.UpdatePluginRequest{
				Name:          name,
				Compatibility: compatibility,
			})
			if err != nil {
				return cli.APIError(err)
			}
			fmt.Printf("updated %s\n", record.ID)
			return nil
		},
	}
}

func pluginsDeleteCommand() *cli.Command {
	var reason string

	return &cli.Command{
		Name:    "delete",
		Summary: "Delete a plugin",
		Usage:   "portal plugins delete <plugin-id> [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("delete", pflag.ContinueOnError)
			flags.StringVar(&reason, "reason", "", "reason recorded in the audit log")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			pluginID, err := singlePluginArg(args)
			if err != nil {
				return err
			}
			connection, err := cli.Connect(ctx, "", logger)
			if err != nil {
				return err
			}
			if err := connection.RequireSession(); err != nil {
				return err
			}
			if err := connection.Client.DeletePlugin(ctx, pluginID, reason); err != nil {
				return cli.APIError(err)
			}
			fmt.Printf("deleted %s\n", pluginID)
			return nil
		},
	}
}

// transitionCommand builds one lifecycle command (submit, approve,
// reject, publish, unpublish). Only reject accepts --reason; the
// others do not define the flag at all, so passing one is a flag
// error rather than a silently dropped value.
func transitionCommand(action lifecycle.Action, summary, description string) *cli.Command {
	var reason string

	command := &cli.Command{
		Name:        string(action),
		Summary:     summary,
		Description: description,
		Usage:       fmt.Sprintf("portal plugins %s <plugin-id>", action),
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			pluginID, err := singlePluginArg(args)
			if err != nil {
				return err
			}
			connection, err := cli.Connect(ctx, "", logger)
			if err != nil {
				return err
			}
			if err := connection.RequireSession(); err != nil {
				return err
			}
			controller := lifecycle.NewController(connection.Client)
			record, err := controller.Apply(ctx, pluginID, action, reason)
			if err != nil {
				return cli.APIError(err)
			}
			fmt.Printf("%s: %s is now %s\n", action, record.ID, record.Status)
			return nil
		},
	}
	if action.TakesReason() {
		command.Usage += " [flags]"
		command.Flags = func() *pflag.FlagSet {
			flags := pflag.NewFlagSet(string(action), pflag.ContinueOnError)
			flags.StringVar(&reason, "reason", "", "reason recorded in the audit log")
			return flags
		}
	}
	return command
}

func pluginsDownloadCommand() *cli.Command {
	var version string
	var outputPath string

	return &cli.Command{
		Name:    "download",
		Summary: "Download a plugin's release package",
		Usage:   "portal plugins download <plugin-id> --version <version> [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("download", pflag.ContinueOnError)
			flags.StringVar(&version, "version", "", "release version to download (required)")
			flags.StringVar(&outputPath, "output", "", "destination file (default: <plugin-id>-<version>.pkg)")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			pluginID, err := singlePluginArg(args)
			if err != nil {
				return err
			}
			if version == "" {
				return cli.Validation("--version is required")
			}
			if outputPath == "" {
				outputPath = fmt.Sprintf("%s-%s.pkg", pluginID, version)
			}

			connection, err := cli.Connect(ctx, "", logger)
			if err != nil {
				return err
			}

			destination, err := os.Create(outputPath)
			if err != nil {
				return cli.Internal("create %s: %w", outputPath, err)
			}
			defer destination.Close()

			if err := connection.Client.DownloadPackage(ctx, pluginID, version, destination); err != nil {
				os.Remove(outputPath)
				return cli.APIError(err)
			}
			fmt.Fprintf(os.Stderr, "wrote %s\n", outputPath)
			return nil
		},
	}
}

// singlePluginArg extracts the one required plugin-id argument.
func singlePluginArg(args []string) (string, error) {
	if len(args) < 1 {
		return "", cli.Validation("plugin ID is required")
	}
	if len(args) > 1 {
		return "", cli.Validation("unexpected argument: %s", args[1])
	}
	return args[0], nil
}

func printMetadataTable(plugins []schema.PluginMetadata) {
	writer := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintln(writer, "ID\tNAME\tVERSION\tCOMPATIBILITY")
	for _, plugin := range plugins {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", plugin.ID, plugin.Name, plugin.Version, plugin.Compatibility)
	}
	writer.Flush()
}

func printRecordTable(records []schema.PluginRecord) {
	writer := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintln(writer, "ID\tNAME\tVERSION\tSTATUS\tOWNER")
	for _, record := range records {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n", record.ID, record.Name, record.Version, record.Status, record.Owner)
	}
	writer.Flush()
}
