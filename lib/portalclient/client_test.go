// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package portalclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/streamline-portal/portal/lib/schema"
)

// staticToken is a TokenProvider returning a fixed token.
type staticToken string

func (token staticToken) Token() string { return string(token) }

// testServer creates a test HTTP server that mimics the portal API
// and returns a Client connected to it. The server is cleaned up when
// the test completes.
func testServer(t *testing.T, handler http.Handler, tokens TokenProvider) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewForTesting(&testServerTransport{
		server:    server,
		transport: http.DefaultTransport,
	}, tokens)
	return client
}

// testServerTransport rewrites requests to target the test server.
type testServerTransport struct {
	server    *httptest.Server
	transport http.RoundTripper
}

func (transport *testServerTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	request.URL.Scheme = "http"
	request.URL.Host = transport.server.Listener.Addr().String()
	return transport.transport.RoundTrip(request)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(writer http.ResponseWriter, request *http.Request) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
			writer.WriteHeader(http.StatusBadRequest)
			return
		}
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
			AccessToken: "token-123",
		})
	})

	client := testServer(t, mux, nil)

	grant, err := client.Login(context.Background(), "admin", "admin")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if grant.AccessToken != "token-123" {
		t.Errorf("AccessToken = %q, want token-123", grant.AccessToken)
	}
	if grant.Role != schema.RoleAdmin {
		t.Errorf("Role = %q, want admin", grant.Role)
	}

	_, err = client.Login(context.Background(), "admin", "wrong")
	if err == nil {
		t.Fatal("expected error for bad credentials")
	}
	failure := AsStatusError(err)
	if failure == nil {
		t.Fatalf("error %v is not a StatusError", err)
	}
	if failure.Detail != "Invalid credentials" {
		t.Errorf("Detail = %q, want Invalid credentials", failure.Detail)
	}
	if !failure.Unauthorized() {
		t.Error("Unauthorized() = false, want true")
	}
}

func TestBearerHeaderAttachment(t *testing.T) {
	t.Parallel()

	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /account/me", func(writer http.ResponseWriter, request *http.Request) {
		gotAuth = request.Header.Get("Authorization")
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(schema.Account{Username: "dev", Role: schema.RoleDeveloper})
	})

	client := testServer(t, mux, staticToken("secret"))
	if _, err := client.Account(context.Background()); err != nil {
		t.Fatalf("Account: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q, want Bearer secret", gotAuth)
	}

	// Without a token the header is omitted entirely.
	client = testServer(t, mux, staticToken(""))
	if _, err := client.Account(context.Background()); err != nil {
		t.Fatalf("Account: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}

func TestNoContentResponse(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /plugins/stale", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	})

	client := testServer(t, mux, staticToken("secret"))
	if err := client.DeletePlugin(context.Background(), "stale", ""); err != nil {
		t.Fatalf("DeletePlugin: %v", err)
	}
}

func TestDetailExtractionFallbacks(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /plugins/json-detail", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusNotFound)
		fmt.Fprint(writer, `{"detail":"Plugin not found"}`)
	})
	mux.HandleFunc("GET /plugins/raw-body", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "text/plain")
		writer.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(writer, "upstream exploded")
	})
	mux.HandleFunc("GET /plugins/empty-body", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusServiceUnavailable)
	})

	client := testServer(t, mux, nil)

	_, err := client.Plugin(context.Background(), "json-detail")
	if failure := AsStatusError(err); failure == nil || failure.Detail != "Plugin not found" {
		t.Errorf("json-detail failure = %v, want detail Plugin not found", err)
	}

	_, err = client.Plugin(context.Background(), "raw-body")
	if failure := AsStatusError(err); failure == nil || failure.Detail != "upstream exploded" {
		t.Errorf("raw-body failure = %v, want raw payload detail", err)
	}

	_, err = client.Plugin(context.Background(), "empty-body")
	if failure := AsStatusError(err); failure == nil || failure.Detail != "Service Unavailable" {
		t.Errorf("empty-body failure = %v, want status text detail", err)
	}
}

func TestNetworkFailureIsNotStatusError(t *testing.T) {
	t.Parallel()

	// Point at a closed port: the request never obtains a response.
	server := httptest.NewServer(http.NewServeMux())
	server.Close()
	client := NewForTesting(http.DefaultTransport, nil)
	client.baseURL = server.URL

	_, err := client.Plugins(context.Background(), "")
	if err == nil {
		t.Fatal("expected transport error")
	}
	if AsStatusError(err) != nil {
		t.Errorf("transport failure classified as StatusError: %v", err)
	}
}

func TestPluginsQueryEscaping(t *testing.T) {
	t.Parallel()

	var gotQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /plugins", func(writer http.ResponseWriter, request *http.Request) {
		gotQuery = request.URL.Query().Get("query")
		writer.Header().Set("Content-Type", "application/json")
		fmt.Fprint(writer, "[]")
	})

	client := testServer(t, mux, nil)
	if _, err := client.Plugins(context.Background(), "scene switcher & co"); err != nil {
		t.Fatalf("Plugins: %v", err)
	}
	if gotQuery != "scene switcher & co" {
		t.Errorf("query = %q, want scene switcher & co", gotQuery)
	}
}

func TestTransitionCarriesReason(t *testing.T) {
	t.Parallel()

	var gotReason string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /plugins/scene-switcher/reject", func(writer http.ResponseWriter, request *http.Request) {
		gotReason = request.URL.Query().Get("reason")
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(schema.PluginRecord{
			ID:     "scene-switcher",
			Status: schema.StatusRejected,
		})
	})

	client := testServer(t, mux, staticToken("admin-token"))
	record, err := client.Transition(context.Background(), "scene-switcher", "reject", "missing signature")
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if record.Status != schema.StatusRejected {
		t.Errorf("Status = %q, want rejected", record.Status)
	}
	if gotReason != "missing signature" {
		t.Errorf("reason = %q, want missing signature", gotReason)
	}
}

func TestUpdateUserOmitsUnsetFields(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /admin/users/casey", func(writer http.ResponseWriter, request *http.Request) {
		json.NewDecoder(request.Body).Decode(&gotBody)
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(schema.User{Username: "casey", Role: schema.RoleDeveloper, Active: true})
	})

	client := testServer(t, mux, staticToken("admin-token"))
	_, err := client.UpdateUser(context.Background(), "casey", UpdateUserRequest{
		Role: schema.RoleDeveloper,
	}, "promotion")
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if gotBody["role"] != "developer" {
		t.Errorf("role = %v, want developer", gotBody["role"])
	}
	if _, present := gotBody["password"]; present {
		t.Error("password should be omitted when unset")
	}
	if _, present := gotBody["active"]; present {
		t.Error("active should be omitted when unset")
	}
}

func TestCreateThenManageStartsAsDraft(t *testing.T) {
	t.Parallel()

	var stored *schema.PluginRecord
	mux := http.NewServeMux()
	mux.HandleFunc("POST /plugins", func(writer http.ResponseWriter, request *http.Request) {
		var body CreatePluginRequest
		if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
			writer.WriteHeader(http.StatusBadRequest)
			return
		}
		stored = &schema.PluginRecord{
			ID:            body.ID,
			Name:          body.Name,
			Compatibility: body.Compatibility,
			Version:       "0.1.0",
			Owner:         "casey",
			Status:        schema.StatusDraft,
		}
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(stored)
	})
	mux.HandleFunc("GET /plugins/foo/manage", func(writer http.ResponseWriter, request *http.Request) {
		if stored == nil {
			writer.WriteHeader(http.StatusNotFound)
			return
		}
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(stored)
	})

	client := testServer(t, mux, staticToken("tok"))

	created, err := client.CreatePlugin(context.Background(), CreatePluginRequest{ID: "foo", Name: "Foo"})
	if err != nil {
		t.Fatalf("CreatePlugin: %v", err)
	}
	if created.Status != schema.StatusDraft {
		t.Errorf("created status = %s, want draft", created.Status)
	}

	record, err := client.Manage(context.Background(), "foo")
	if err != nil {
		t.Fatalf("Manage: %v", err)
	}
	if record.Status != schema.StatusDraft || record.Owner != "casey" {
		t.Errorf("manage view = %+v", record)
	}
}
