// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/streamline-portal/portal/cmd/portal/cli"
	"github.com/streamline-portal/portal/lib/session"
)

func loginCommand() *cli.Command {
	var serverURL string
	var passwordFile string

	return &cli.Command{
		Name:    "login",
		Summary: "Authenticate and save the session locally",
		Description: `Sign in to a portal server and save the session locally.

After login, every other command uses the saved session transparently.
The session file is stored at ~/.config/portal/session.json (or
$PORTAL_SESSION_FILE if set, or $XDG_CONFIG_HOME/portal/session.json)
with mode 0600, since it contains an access token.

The password can be provided via --password-file (a path to a file
containing the password) or prompted interactively if --password-file
is "-" or omitted.`,
		Usage: "portal login <username> [flags]",
		Examples: []cli.Example{
			{
				Description: "Log in interactively (prompts for password)",
				Command:     "portal login casey",
			},
			{
				Description: "Log in against an explicit server",
				Command:     "portal login casey --server http://portal.example.com/portal/api",
			},
			{
				Description: "Log in with password from file",
				Command:     "portal login casey --password-file /path/to/password",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("login", pflag.ContinueOnError)
			flags.StringVar(&serverURL, "server", "", "portal API base URL (default: from config)")
			flags.StringVar(&passwordFile, "password-file", "", "path to file containing password, or - to prompt interactively (default: prompt)")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) < 1 {
				return cli.Validation("username is required\n\nUsage: portal login <username> [flags]")
			}
			username := args[0]
			if len(args) > 1 {
				return cli.Validation("unexpected argument: %s", args[1])
			}

			password, err := cli.ReadPassword(passwordFile)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()

			connection, err := cli.Connect(ctx, serverURL, logger)
			if err != nil {
				return err
			}

			if err := connection.Store.Login(ctx, connection.Client, username, password); err != nil {
				return cli.APIError(err)
			}

			current := connection.Store.Current()
			fmt.Fprintf(os.Stderr, "Logged in as %s (%s)\n", current.Username, current.Role)
			fmt.Fprintf(os.Stderr, "Session saved to %s\n", session.FilePath())
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:    "logout",
		Summary: "Discard the saved session",
		Description: `Discard the saved session token.

Sign-out is purely local: the session file is removed and no request
is made to the server. The token itself is not revoked server-side.`,
		Usage: "portal logout",
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			store := session.NewStore(session.FilePath(), logger)
			store.Logout()
			fmt.Fprintln(os.Stderr, "Signed out")
			return nil
		},
	}
}

func whoAmICommand() *cli.Command {
	var outputJSON bool

	return &cli.Command{
		Name:    "whoami",
		Summary: "Show the current session",
		Description: `Show who is signed in, verified against the server.

The saved token is presented to the account endpoint. A token the
server no longer accepts is cleared, and the command reports the
anonymous state.`,
		Usage: "portal whoami [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("whoami", pflag.ContinueOnError)
			flags.BoolVar(&outputJSON, "json", false, "output as JSON")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			connection, err := cli.Connect(ctx, "", logger)
			if err != nil {
				return err
			}

			current := connection.Store.Current()
			if done, err := cli.EmitJSON(connection.JSONOutput(outputJSON), map[string]any{
				"authenticated": current.Authenticated(),
				"username":      current.Username,
				"role":          current.Role,
			}); done {
				return err
			}

			if !current.Authenticated() {
				fmt.Println("not signed in")
				return &cli.ExitError{Code: 1}
			}
			fmt.Printf("%s (%s)\n", current.Username, current.Role)
			return nil
		},
	}
}
