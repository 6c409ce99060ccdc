// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"strings"
	"testing"
)

func TestDecodeResponse(t *testing.T) {
	t.Parallel()

	var decoded struct {
		Detail string `json:"detail"`
	}
	if err := DecodeResponse(strings.NewReader(`{"detail":"Forbidden"}`), &decoded); err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	if decoded.Detail != "Forbidden" {
		t.Errorf("Detail = %q, want Forbidden", decoded.Detail)
	}
}

func TestDecodeResponseInvalidJSON(t *testing.T) {
	t.Parallel()

	var decoded map[string]any
	if err := DecodeResponse(strings.NewReader("not json"), &decoded); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestErrorBody(t *testing.T) {
	t.Parallel()

	if got := ErrorBody(strings.NewReader("bad request")); got != "bad request" {
		t.Errorf("ErrorBody = %q, want bad request", got)
	}
}

func TestIsJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		contentType string
		want        bool
	}{
		{"application/json", true},
		{"application/json; charset=utf-8", true},
		{"application/problem+json", true},
		{"text/plain", false},
		{"text/html; charset=utf-8", false},
		{"", false},
	}
	for _, test := range tests {
		if got := IsJSON(test.contentType); got != test.want {
			t.Errorf("IsJSON(%q) = %v, want %v", test.contentType, got, test.want)
		}
	}
}
