// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

// Package session holds the client's authentication state: the current
// bearer token, identity, and role, plus the session file that lets a
// login survive process restarts.
//
// Exactly one Store exists per client instance. The TUI's data-fetch
// commands read the token from other goroutines, so the in-memory
// session is guarded by a mutex; the session file is only touched by
// Restore, Login, and Logout.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/streamline-portal/portal/lib/portalclient"
	"github.com/streamline-portal/portal/lib/schema"
)

// Session is the current authentication state. The zero value is the
// anonymous session. Token, Username, and Role are either all set or
// all empty — Restore, Login, and Logout maintain that invariant.
type Session struct {
	Token    string
	Username string
	Role     schema.Role
}

// Authenticated reports whether a user is signed in.
func (session Session) Authenticated() bool {
	return session.Token != ""
}

// fileFormat is the on-disk session file layout. The refresh token is
// persisted for a future token-refresh flow but is not used yet.
type fileFormat struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token,omitempty"`
	Username     string      `json:"username"`
	Role         schema.Role `json:"role"`
}

// Store owns the single active session and its persisted form.
type Store struct {
	mu      sync.RWMutex
	current Session
	path    string
	logger  *slog.Logger
}

// NewStore creates a Store persisting to the given file path. Use
// FilePath for the standard location.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{path: path, logger: logger}
}

// FilePath returns the standard session file location. Checks the
// PORTAL_SESSION_FILE environment variable first, then falls back to
// $XDG_CONFIG_HOME/portal/session.json or ~/.config/portal/session.json.
func FilePath() string {
	if envPath := os.Getenv("PORTAL_SESSION_FILE"); envPath != "" {
		return envPath
	}
	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join("/tmp", "portal-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "portal", "session.json")
}

// Current returns a copy of the active session.
func (store *Store) Current() Session {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.current
}

// Token implements portalclient.TokenProvider.
func (store *Store) Token() string {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.current.Token
}

// Restore reads the persisted session file and exchanges its token for
// the current identity via GET /account/me. On success the session is
// {token, user, role}. On any failure — a rejected token, an
// unreadable file, a server that cannot be reached — the persisted
// token is removed and the session reset to anonymous, so a stale
// token never causes repeated failed requests. Restoring twice with
// the same bad token yields the same empty session both times.
//
// A missing session file is not an error: the session is simply
// anonymous.
func (store *Store) Restore(ctx context.Context, client *portalclient.Client) error {
	data, err := os.ReadFile(store.path)
	if os.IsNotExist(err) {
		store.reset()
		return nil
	}
	if err != nil {
		store.clearPersisted()
		return nil
	}

	var persisted fileFormat
	if err := json.Unmarshal(data, &persisted); err != nil || persisted.AccessToken == "" {
		store.clearPersisted()
		return nil
	}

	// Install the token so the account lookup authenticates with it.
	store.mu.Lock()
	store.current = Session{Token: persisted.AccessToken}
	store.mu.Unlock()

	account, err := client.Account(ctx)
	if err != nil {
		store.logger.Debug("session restore failed", "error", err)
		store.clearPersisted()
		return nil
	}

	store.mu.Lock()
	store.current = Session{
		Token:    persisted.AccessToken,
		Username: account.Username,
		Role:     account.Role,
	}
	store.mu.Unlock()
	return nil
}

// Login authenticates against the portal and, on success, persists
// the token and sets the session from the returned identity. On
// failure the prior session is left untouched and the error carries
// the server's failure message.
func (store *Store) Login(ctx context.Context, client *portalclient.Client, username, password string) error {
	grant, err := client.Login(ctx, username, password)
	if err != nil {
		return err
	}

	persisted := fileFormat{
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		Username:     grant.Username,
		Role:         grant.Role,
	}
	if err := store.writeFile(persisted); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}

	store.mu.Lock()
	store.current = Session{
		Token:    grant.AccessToken,
		Username: grant.Username,
		Role:     grant.Role,
	}
	store.mu.Unlock()
	return nil
}

// Logout clears the in-memory session and removes the session file.
// No network call is involved; logout always succeeds locally.
func (store *Store) Logout() {
	store.clearPersisted()
}

// reset clears the in-memory session only.
func (store *Store) reset() {
	store.mu.Lock()
	store.current = Session{}
	store.mu.Unlock()
}

// clearPersisted resets the session and removes the session file.
// Removal errors are ignored: a file that is already gone is the
// desired end state.
func (store *Store) clearPersisted() {
	store.reset()
	if err := os.Remove(store.path); err != nil && !os.IsNotExist(err) {
		store.logger.Warn("removing session file", "path", store.path, "error", err)
	}
}

// writeFile persists the session with owner-only permissions, creating
// the parent directory if needed. The file contains an access token,
// hence 0600.
func (store *Store) writeFile(persisted fileFormat) error {
	data, err := json.MarshalIndent(persisted, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(store.path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("creating session directory %s: %w", directory, err)
	}
	if err := os.WriteFile(store.path, data, 0600); err != nil {
		return fmt.Errorf("writing session file %s: %w", store.path, err)
	}
	return nil
}
