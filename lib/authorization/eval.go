// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

// Package authorization evaluates role-based visibility for the portal
// client. It is stateless and side-effect free: the same function
// gates navigation links and action buttons, so what the navigation
// shows is always consistent with what the views allow.
//
// The server independently authorizes every request — this package
// only decides what the UI offers.
package authorization

import (
	"github.com/streamline-portal/portal/lib/schema"
	"github.com/streamline-portal/portal/lib/session"
)

// Decision is the outcome of a visibility check.
type Decision int

const (
	// Deny means the link or action is not offered.
	Deny Decision = iota

	// Allow means the link or action is offered.
	Allow
)

// String returns "allow" or "deny".
func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Check returns Allow iff the session carries a role and that role is
// in the allowed set. An empty allowed set means the item is public:
// always Allow.
func Check(current session.Session, allowed ...schema.Role) Decision {
	if len(allowed) == 0 {
		return Allow
	}
	if current.Role == "" {
		return Deny
	}
	for _, role := range allowed {
		if current.Role == role {
			return Allow
		}
	}
	return Deny
}

// HasRole is the boolean form of Check.
func HasRole(current session.Session, allowed ...schema.Role) bool {
	return Check(current, allowed...) == Allow
}
