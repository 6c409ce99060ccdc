// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "testing"

func TestRoleValid(t *testing.T) {
	t.Parallel()

	for _, role := range Roles {
		if !role.Valid() {
			t.Errorf("Role(%q).Valid() = false, want true", role)
		}
	}
	for _, bad := range []Role{"", "root", "Admin", "superuser"} {
		if bad.Valid() {
			t.Errorf("Role(%q).Valid() = true, want false", bad)
		}
	}
}

func TestStatusValid(t *testing.T) {
	t.Parallel()

	for _, status := range Statuses {
		if !status.Valid() {
			t.Errorf("Status(%q).Valid() = false, want true", status)
		}
	}
	for _, bad := range []Status{"", "pending", "Draft", "live"} {
		if bad.Valid() {
			t.Errorf("Status(%q).Valid() = true, want false", bad)
		}
	}
}
