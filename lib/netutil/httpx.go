// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides HTTP response helpers for the portal client.
//
// Body readers (ReadResponse, DecodeResponse, ErrorBody) bound every
// read at MaxResponseSize so a misbehaving server cannot exhaust
// client memory. They are for JSON API responses — package downloads
// stream through io.Copy instead.
package netutil

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"strings"
)

// MaxResponseSize bounds JSON API response body reads: 64 MB.
// Legitimate portal responses are orders of magnitude smaller; the
// limit only exists to cap pathological responses.
const MaxResponseSize int64 = 64 << 20

// ReadResponse reads an API response body up to MaxResponseSize bytes.
// Use instead of io.ReadAll when reading HTTP response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// DecodeResponse reads an API response body (up to MaxResponseSize
// bytes) and JSON-decodes it into v.
func DecodeResponse(body io.Reader, v any) error {
	data, err := io.ReadAll(io.LimitReader(body, MaxResponseSize))
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	return json.Unmarshal(data, v)
}

// ErrorBody reads an HTTP error response body for diagnostic error
// messages. Read errors are silently ignored — a partial or empty
// body is still useful in an error message.
func ErrorBody(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, MaxResponseSize))
	return string(data)
}

// IsJSON reports whether an HTTP Content-Type header value denotes a
// JSON payload. Parameters (charset) and structured-syntax suffixes
// (application/problem+json) are accepted.
func IsJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
