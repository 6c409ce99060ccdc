// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package portalclient

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/streamline-portal/portal/lib/netutil"
)

// TokenProvider supplies the current bearer token, or "" when no
// session is active. The session store implements this; the client
// reads it on every request so a login or logout takes effect
// immediately without rebuilding the client.
type TokenProvider interface {
	Token() string
}

// Client is a typed HTTP client for the Streamline Portal API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenProvider
	logger     *slog.Logger
}

// New creates a Client for the portal API rooted at baseURL (e.g.
// "http://localhost:8080/portal/api"). The tokens provider may be nil
// for unauthenticated use.
func New(baseURL string, tokens TokenProvider, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		logger:     logger,
	}
}

// NewForTesting creates a Client with a custom transport. Used by
// tests that redirect requests to an httptest.Server.
func NewForTesting(transport http.RoundTripper, tokens TokenProvider) *Client {
	return &Client{
		httpClient: &http.Client{Transport: transport},
		baseURL:    "http://portal",
		tokens:     tokens,
		logger:     slog.New(slog.DiscardHandler),
	}
}

// BaseURL returns the API base URL this client was configured with.
func (client *Client) BaseURL() string {
	return client.baseURL
}

// call is the single entry point for every API request. It attaches
// the Accept and Authorization headers, JSON-encodes the body when
// present, and normalizes the response:
//
//   - 204 (or any empty success body) leaves out untouched.
//   - A JSON success body is decoded into out when out is non-nil.
//   - A non-JSON success body is returned as a string when out points
//     to one; otherwise it is ignored.
//   - Any non-success status yields a *StatusError with the detail
//     extracted per the fallback order in statusError.
//
// Transport failures (the request never produced a response) are
// returned wrapped, not as *StatusError.
func (client *Client) call(ctx context.Context, method, path string, body any, out any) error {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, payload)
	if err != nil {
		return err
	}
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if client.tokens != nil {
		if token := client.tokens.Token(); token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
	}
	request.Header.Set("X-Request-ID", requestID())

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNoContent {
		return nil
	}

	responseBody, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return fmt.Errorf("%s %s: reading response: %w", method, path, err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		failure := statusError(response, responseBody)
		client.logger.Debug("portal request failed",
			"method", method, "path", path,
			"status", response.StatusCode, "detail", failure.Detail)
		return failure
	}

	if out == nil || len(responseBody) == 0 {
		return nil
	}
	if netutil.IsJSON(response.Header.Get("Content-Type")) {
		if err := json.Unmarshal(responseBody, out); err != nil {
			return fmt.Errorf("%s %s: decoding response: %w", method, path, err)
		}
		return nil
	}
	if text, ok := out.(*string); ok {
		*text = string(responseBody)
		return nil
	}
	return fmt.Errorf("%s %s: unexpected content type %q", method, path, response.Header.Get("Content-Type"))
}

// requestID generates a random 16-byte hex correlation ID attached to
// every request so server logs can be matched to client operations.
func requestID() string {
	var buffer [16]byte
	if _, err := rand.Read(buffer[:]); err != nil {
		return "unknown"
	}
	return hex.EncodeToString(buffer[:])
}
