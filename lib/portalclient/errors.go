// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package portalclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/streamline-portal/portal/lib/netutil"
)

// StatusError is an HTTP-level failure: the server responded with a
// non-success status. Detail is the normalized human-readable message
// extracted from the response in preference order: the structured
// "detail" field of a JSON body, then the raw body, then the status
// text.
type StatusError struct {
	// StatusCode is the HTTP status the server responded with.
	StatusCode int

	// Detail is the human-readable failure message.
	Detail string
}

func (e *StatusError) Error() string {
	return e.Detail
}

// Unauthorized reports whether the failure is a 401. The session store
// treats 401 during restore specially (forced logout); everywhere else
// it surfaces like any other status failure.
func (e *StatusError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// AsStatusError unwraps err to a *StatusError if the failure was an
// HTTP status failure. Returns nil for transport errors, so callers
// can distinguish "server rejected request" from "could not reach
// server".
func AsStatusError(err error) *StatusError {
	var statusError *StatusError
	if errors.As(err, &statusError) {
		return statusError
	}
	return nil
}

// statusError builds a *StatusError from a non-success response. The
// body has already been read; contentType is the response's
// Content-Type header.
func statusError(response *http.Response, body []byte) *StatusError {
	detail := ""

	if netutil.IsJSON(response.Header.Get("Content-Type")) {
		var structured struct {
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(body, &structured); err == nil && structured.Detail != "" {
			detail = structured.Detail
		}
	}
	if detail == "" {
		detail = string(body)
	}
	if detail == "" {
		detail = http.StatusText(response.StatusCode)
	}
	if detail == "" {
		detail = fmt.Sprintf("HTTP %d", response.StatusCode)
	}

	return &StatusError{StatusCode: response.StatusCode, Detail: detail}
}
