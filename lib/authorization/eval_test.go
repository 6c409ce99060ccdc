// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package authorization

import (
	"testing"

	"github.com/streamline-portal/portal/lib/schema"
	"github.com/streamline-portal/portal/lib/session"
)

func sessionWithRole(role schema.Role) session.Session {
	if role == "" {
		return session.Session{}
	}
	return session.Session{Token: "t", Username: "someone", Role: role}
}

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		role    schema.Role
		allowed []schema.Role
		want    Decision
	}{
		{"admin in admin set", schema.RoleAdmin, []schema.Role{schema.RoleAdmin}, Allow},
		{"developer in dev+admin set", schema.RoleDeveloper, []schema.Role{schema.RoleDeveloper, schema.RoleAdmin}, Allow},
		{"user not in dev+admin set", schema.RoleUser, []schema.Role{schema.RoleDeveloper, schema.RoleAdmin}, Deny},
		{"anonymous denied", "", []schema.Role{schema.RoleUser}, Deny},
		{"empty allowed set is public", schema.RoleUser, nil, Allow},
		{"anonymous allowed on public", "", nil, Allow},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got := Check(sessionWithRole(test.role), test.allowed...)
			if got != test.want {
				t.Errorf("Check(%q, %v) = %v, want %v", test.role, test.allowed, got, test.want)
			}
		})
	}
}

func TestDecisionString(t *testing.T) {
	t.Parallel()

	if Allow.String() != "allow" || Deny.String() != "deny" {
		t.Errorf("Decision strings = %q/%q, want allow/deny", Allow, Deny)
	}
}
