// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/streamline-portal/portal/lib/portalclient"
	"github.com/streamline-portal/portal/lib/schema"
)

// portalStub builds an httptest server with a login endpoint accepting
// admin/admin and an account endpoint accepting the issued token.
func portalStub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(writer http.ResponseWriter, request *http.Request) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		json.NewDecoder(request.Body).Decode(&body)
		if body.Username != "admin" || body.Password != "admin" {
			writer.Header().Set("Content-Type", "application/json")
			writer.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(writer).Encode(map[string]string{"detail": "Invalid credentials"})
			return
		}
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(schema.TokenGrant{
			Username:    "admin",
			Role:        schema.RoleAdmin,
			AccessToken: "good-token",
		})
	})
	mux.HandleFunc("GET /account/me", func(writer http.ResponseWriter, request *http.Request) {
		if request.Header.Get("Authorization") != "Bearer good-token" {
			writer.Header().Set("Content-Type", "application/json")
			writer.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(writer).Encode(map[string]string{"detail": "Unauthorized"})
			return
		}
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(schema.Account{Username: "admin", Role: schema.RoleAdmin})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestStore(t *testing.T) (*Store, *portalclient.Client, string) {
	t.Helper()
	server := portalStub(t)
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path, nil)
	client := portalclient.New(server.URL, store, nil)
	return store, client, path
}

func TestLoginPersistsSession(t *testing.T) {
	t.Parallel()

	store, client, path := newTestStore(t)
	if err := store.Login(context.Background(), client, "admin", "admin"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	current := store.Current()
	if !current.Authenticated() {
		t.Fatal("session not authenticated after login")
	}
	if current.Role != schema.RoleAdmin {
		t.Errorf("Role = %q, want admin", current.Role)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("session file not written: %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		t.Errorf("session file mode = %o, want 600", mode)
	}
}

func TestLoginFailureLeavesSessionUntouched(t *testing.T) {
	t.Parallel()

	store, client, _ := newTestStore(t)
	if err := store.Login(context.Background(), client, "admin", "admin"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	err := store.Login(context.Background(), client, "admin", "wrong")
	if err == nil {
		t.Fatal("expected error for bad credentials")
	}
	failure := portalclient.AsStatusError(err)
	if failure == nil || failure.Detail != "Invalid credentials" {
		t.Errorf("failure = %v, want detail Invalid credentials", err)
	}
	if got := store.Current(); got.Username != "admin" || !got.Authenticated() {
		t.Errorf("prior session disturbed by failed login: %+v", got)
	}
}

func TestRestore(t *testing.T) {
	t.Parallel()

	store, client, _ := newTestStore(t)
	if err := store.Login(context.Background(), client, "admin", "admin"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// A fresh store over the same file restores the identity.
	restored := NewStore(store.path, nil)
	restoredClient := portalclient.New(client.BaseURL(), restored, nil)
	if err := restored.Restore(context.Background(), restoredClient); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	current := restored.Current()
	if current.Username != "admin" || current.Role != schema.RoleAdmin {
		t.Errorf("restored session = %+v, want admin/admin", current)
	}
}

func TestRestoreWithRejectedTokenClearsFile(t *testing.T) {
	t.Parallel()

	server := portalStub(t)
	path := filepath.Join(t.TempDir(), "session.json")
	stale, _ := json.Marshal(fileFormat{AccessToken: "expired-token", Username: "admin", Role: schema.RoleAdmin})
	if err := os.WriteFile(path, stale, 0600); err != nil {
		t.Fatal(err)
	}

	store := NewStore(path, nil)
	client := portalclient.New(server.URL, store, nil)

	// Restoring twice with the same bad token yields the same empty
	// session both times.
	for attempt := 0; attempt < 2; attempt++ {
		if err := store.Restore(context.Background(), client); err != nil {
			t.Fatalf("Restore attempt %d: %v", attempt, err)
		}
		if store.Current().Authenticated() {
			t.Fatalf("attempt %d: session should be anonymous after rejected token", attempt)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Fatalf("attempt %d: session file should be removed", attempt)
		}
	}
}

func TestRestoreMissingFileIsAnonymous(t *testing.T) {
	t.Parallel()

	store, client, _ := newTestStore(t)
	if err := store.Restore(context.Background(), client); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if store.Current().Authenticated() {
		t.Error("session should be anonymous without a session file")
	}
}

func TestLogoutNeedsNoNetwork(t *testing.T) {
	t.Parallel()

	store, client, path := newTestStore(t)
	if err := store.Login(context.Background(), client, "admin", "admin"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Logout is purely local: it must succeed even with no server.
	store.Logout()
	if store.Current().Authenticated() {
		t.Error("session still authenticated after logout")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("session file should be removed on logout")
	}
}
