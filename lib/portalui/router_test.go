// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"fmt"
	"testing"
)

func TestRouteResolution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		fragment string
		want     string
	}{
		{"", "home"},
		{"#/", "home"},
		{"#/home", "home"},
		{"#/plugins", "list"},
		{"#/plugins/", "list"},
		{"#/plugins/new", "form:"},
		{"#/plugins/weather-widget", "detail:weather-widget"},
		{"#/plugins/weather-widget/edit", "form:weather-widget"},
		{"#/my-plugins", "mine"},
		{"#/admin/queue", "queue"},
		{"#/admin/users", "users"},
		{"#/admin/audit", "audit"},
		{"#/login", "login"},
		// Unroutable fragments fall back to the public listing.
		{"#/no-such-page", "list"},
		{"#garbage", "list"},
	}
	for _, test := range tests {
		if got := describeView(resolve(test.fragment)); got != test.want {
			t.Errorf("resolve(%q) = %s, want %s", test.fragment, got, test.want)
		}
	}
}

// TestSpecificRoutesWinOverParameterized guards the route order: the
// literal "new" segment must not be captured as a plugin ID.
func TestSpecificRoutesWinOverParameterized(t *testing.T) {
	t.Parallel()

	if _, ok := resolve("#/plugins/new").(*formView); !ok {
		t.Fatalf("#/plugins/new resolved to %T, want *formView", resolve("#/plugins/new"))
	}
	detail, ok := resolve("#/plugins/42").(*detailView)
	if !ok {
		t.Fatalf("#/plugins/42 resolved to %T, want *detailView", resolve("#/plugins/42"))
	}
	if detail.pluginID != "42" {
		t.Errorf("captured plugin ID = %q, want %q", detail.pluginID, "42")
	}
}

// describeView names a view and its routing parameter for assertions.
func describeView(view View) string {
	switch view := view.(type) {
	case *homeView:
		return "home"
	case *listView:
		return "list"
	case *detailView:
		return "detail:" + view.pluginID
	case *formView:
		return "form:" + view.pluginID
	case *mineView:
		return "mine"
	case *queueView:
		return "queue"
	case *usersView:
		return "users"
	case *auditView:
		return "audit"
	case *loginView:
		return "login"
	default:
		return fmt.Sprintf("%T", view)
	}
}
