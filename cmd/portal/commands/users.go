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
	"github.com/streamline-portal/portal/lib/portalclient"
	"github.com/streamline-portal/portal/lib/schema"
)

func usersCommand() *cli.Command {
	return &cli.Command{
		Name:    "users",
		Summary: "Manage accounts (admin)",
		Subcommands: []*cli.Command{
			usersListCommand(),
			usersCreateCommand(),
			usersUpdateCommand(),
			usersDeleteCommand(),
		},
	}
}

func usersListCommand() *cli.Command {
	var outputJSON bool

	return &cli.Command{
		Name:    "list",
		Summary: "List all accounts",
		Usage:   "portal users list [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
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
			users, err := connection.Client.Users(ctx)
			if err != nil {
				return cli.APIError(err)
			}
			if done, err := cli.EmitJSON(connection.JSONOutput(outputJSON), users); done {
				return err
			}
			writer := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(writer, "USERNAME\tROLE\tSTATE")
			for _, user := range users {
				state := "active"
				if !user.Active {
					state = "inactive"
				}
				fmt.Fprintf(writer, "%s\t%s\t%s\n", user.Username, user.Role, state)
			}
			return writer.Flush()
		},
	}
}

func usersCreateCommand() *cli.Command {
	var role string
	var passwordFile string
	var inactive bool

	return &cli.Command{
		Name:    "create",
		Summary: "Create an account",
		Usage:   "portal users create <username> --role <role> [flags]",
		Examples: []cli.Example{
			{
				Description: "Create a developer account, prompting for the password",
				Command:     "portal users create casey --role developer",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("create", pflag.ContinueOnError)
			flags.StringVar(&role, "role", string(schema.RoleUser), "account role: user, developer, or admin")
			flags.StringVar(&passwordFile, "password-file", "", "path to file containing password, or - to prompt interactively (default: prompt)")
			flags.BoolVar(&inactive, "inactive", false, "create the account deactivated")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			username, err := singleUserArg(args)
			if err != nil {
				return err
			}
			accountRole := schema.Role(role)
			if !accountRole.Valid() {
				return cli.Validation("unknown role %q (want user, developer, or admin)", role)
			}
			password, err := cli.ReadPassword(passwordFile)
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
			user, err := connection.Client.CreateUser(ctx, portalclient.CreateUserRequest{
				Username: username,
				Password: password,
				Role:     accountRole,
				Active:   !inactive,
			})
			if err != nil {
				return cli.APIError(err)
			}
			fmt.Printf("created %s (%s)\n", user.Username, user.Role)
			return nil
		},
	}
}

func usersUpdateCommand() *cli.Command {
	var role string
	var passwordFile string
	var activate bool
	var deactivate bool
	var reason string

	return &cli.Command{
		Name:    "update",
		Summary: "Change an account's role, password, or active state",
		Description: `Change an account's role, password, or active state.

Only the fields you set are sent; everything else keeps its current
value. Role changes record --reason in the audit log. There is no
self-modification guard: an admin demoting or deactivating their own
account is accepted, after which their next admin request fails.`,
		Usage: "portal users update <username> [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("update", pflag.ContinueOnError)
			flags.StringVar(&role, "role", "", "new role: user, developer, or admin")
			flags.StringVar(&passwordFile, "password-file", "", "path to file containing the new password, or - to prompt")
			flags.BoolVar(&activate, "activate", false, "reactivate the account")
			flags.BoolVar(&deactivate, "deactivate", false, "deactivate the account")
			flags.StringVar(&reason, "reason", "", "reason recorded in the audit log (role changes)")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			username, err := singleUserArg(args)
			if err != nil {
				return err
			}
			if activate && deactivate {
				return cli.Validation("--activate and --deactivate are mutually exclusive")
			}

			request := portalclient.UpdateUserRequest{}
			changed := false
			if role != "" {
				accountRole := schema.Role(role)
				if !accountRole.Valid() {
					return cli.Validation("unknown role %q (want user, developer, or admin)", role)
				}
				request.Role = accountRole
				changed = true
			}
			if passwordFile != "" {
				password, err := cli.ReadPassword(passwordFile)
				if err != nil {
					return err
				}
				request.Password = password
				changed = true
			}
			if activate || deactivate {
				active := activate
				request.Active = &active
				changed = true
			}
			if !changed {
				return cli.Validation("nothing to update (set --role, --password-file, --activate, or --deactivate)")
			}

			connection, err := cli.Connect(ctx, "", logger)
			if err != nil {
				return err
			}
			if err := connection.RequireSession(); err != nil {
				return err
			}
			user, err := connection.Client.UpdateUser(ctx, username, request, reason)
			if err != nil {
				return cli.APIError(err)
			}
			state := "active"
			if !user.Active {
				state = "inactive"
			}
			fmt.Printf("updated %s (%s, %s)\n", user.Username, user.Role, state)
			return nil
		},
	}
}

func usersDeleteCommand() *cli.Command {
	var reason string

	return &cli.Command{
		Name:    "delete",
		Summary: "Delete an account",
		Usage:   "portal users delete <username> [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("delete", pflag.ContinueOnError)
			flags.StringVar(&reason, "reason", "", "reason recorded in the audit log")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			username, err := singleUserArg(args)
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
			if err := connection.Client.DeleteUser(ctx, username, reason); err != nil {
				return cli.APIError(err)
			}
			fmt.Printf("deleted %s\n", username)
			return nil
		},
	}
}

// singleUserArg extracts the one required username argument.
func singleUserArg(args []string) (string, error) {
	if len(args) < 1 {
		return "", cli.Validation("username is required")
	}
	if len(args) > 1 {
		return "", cli.Validation("unexpected argument: %s", args[1])
	}
	return args[0], nil
}
