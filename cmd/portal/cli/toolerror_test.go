// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/streamline-portal/portal/lib/portalclient"
)

func TestAPIErrorCategorization(t *testing.T) {
	t.Parallel()

	statusError := func(code int) error {
		return fmt.Errorf("wrapped: %w", &portalclient.StatusError{StatusCode: code, Detail: "detail"})
	}

	tests := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"unauthorized", statusError(401), CategoryForbidden},
		{"forbidden", statusError(403), CategoryForbidden},
		{"not found", statusError(404), CategoryNotFound},
		{"conflict", statusError(409), CategoryConflict},
		{"bad request", statusError(400), CategoryValidation},
		{"unprocessable", statusError(422), CategoryValidation},
		{"server error", statusError(503), CategoryTransient},
		{"teapot", statusError(418), CategoryInternal},
		{"network failure", errors.New("dial tcp: connection refused"), CategoryTransient},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			toolErr := APIError(test.err)
			if toolErr.Category != test.want {
				t.Errorf("category = %s, want %s", toolErr.Category, test.want)
			}
			// The original error chain must survive the wrapping.
			if portalclient.AsStatusError(test.err) != nil && portalclient.AsStatusError(toolErr) == nil {
				t.Error("StatusError lost from the chain")
			}
		})
	}
}

func TestToolErrorUnwrap(t *testing.T) {
	t.Parallel()

	inner := errors.New("boom")
	toolErr := Internal("context: %w", inner)
	if !errors.Is(toolErr, inner) {
		t.Error("errors.Is failed through ToolError")
	}
	if toolErr.Error() != "context: boom" {
		t.Errorf("Error() = %q", toolErr.Error())
	}
}
