// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

// Package portalclient provides a typed HTTP client for the Streamline
// Portal REST API. It is the single chokepoint for every backend call:
// bearer-token attachment, JSON negotiation, and error normalization
// all happen here, so no caller re-implements error extraction.
//
// Failures come in two distinct kinds. A server response with a
// non-success status yields a *StatusError carrying the status code
// and a normalized human-readable detail. A request that never reached
// the server (DNS failure, refused connection, canceled context)
// yields a plain wrapped transport error. Callers distinguish the two
// with errors.As.
//
// The client has no retry policy and enforces no timeouts of its own:
// callers observe exactly one attempt and bound requests with a
// context if they need to.
package portalclient
