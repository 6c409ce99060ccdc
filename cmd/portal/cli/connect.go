// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"log/slog"

	"github.com/streamline-portal/portal/lib/config"
	"github.com/streamline-portal/portal/lib/portalclient"
	"github.com/streamline-portal/portal/lib/session"
)

// Connection is a portal client plus the session store backing it,
// built once per command invocation.
type Connection struct {
	Config config.Config
	Store  *session.Store
	Client *portalclient.Client
}

// Connect loads the config file, builds the API client, and restores
// the persisted session if one exists and the server still accepts
// its token. An invalid persisted session is cleared and the command
// proceeds anonymously; the server rejects requests that actually
// need authentication, which produces a clearer error than failing
// here.
//
// baseURL overrides the configured server URL when non-empty (the
// --server flag).
func Connect(ctx context.Context, baseURL string, logger *slog.Logger) (*Connection, error) {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return nil, Validation("load config: %v", err)
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	store := session.NewStore(session.FilePath(), logger)
	client := portalclient.New(cfg.BaseURL, store, logger)
	if err := store.Restore(ctx, client); err != nil {
		return nil, Internal("restore session: %w", err)
	}
	return &Connection{Config: cfg, Store: store, Client: client}, nil
}

// JSONOutput reports whether a command should emit JSON: either its
// --json flag is set or the config file defaults output to "json".
func (connection *Connection) JSONOutput(flag bool) bool {
	return flag || connection.Config.Output == "json"
}

// RequireSession returns a forbidden error when no user is signed in.
// Commands that would only produce a server-side 401 anyway can use
// this for a friendlier message.
func (connection *Connection) RequireSession() error {
	if !connection.Store.Current().Authenticated() {
		return Forbidden("not signed in (run 'portal login <username>' first)")
	}
	return nil
}
