// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/streamline-portal/portal/lib/schema"
	"github.com/streamline-portal/portal/lib/session"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"), nil)
	return NewModel(nil, store, "#/home")
}

// TestStaleFetchDropped pins the navigation contract: a fetch started
// by an earlier navigation must have no effect once the user has
// navigated again, even when both navigations target the same view.
func TestStaleFetchDropped(t *testing.T) {
	t.Parallel()

	model := newTestModel(t)
	(&model).navigate("#/plugins")
	staleGeneration := model.generation
	(&model).navigate("#/plugins")

	updated, _ := model.Update(listLoadedMsg{
		generation: staleGeneration,
		plugins:    []schema.PluginMetadata{{ID: "stale"}},
	})
	model = updated.(Model)

	list, ok := model.current.(*listView)
	if !ok {
		t.Fatalf("current view is %T, want *listView", model.current)
	}
	if len(list.plugins) != 0 {
		t.Fatalf("stale load populated the view: %v", list.plugins)
	}
	if !list.loading {
		t.Fatal("stale load cleared the loading state")
	}

	updated, _ = model.Update(listLoadedMsg{
		generation: model.generation,
		plugins:    []schema.PluginMetadata{{ID: "fresh"}},
	})
	model = updated.(Model)

	list = model.current.(*listView)
	if list.loading {
		t.Fatal("current-generation load left the view loading")
	}
	if len(list.plugins) != 1 || list.plugins[0].ID != "fresh" {
		t.Fatalf("current-generation load not applied: %v", list.plugins)
	}
}

// TestStaleFetchDroppedAcrossViews covers the cross-view case: the
// result of a listing fetch arriving after the user opened a detail
// page must not disturb the detail view.
func TestStaleFetchDroppedAcrossViews(t *testing.T) {
	t.Parallel()

	model := newTestModel(t)
	(&model).navigate("#/plugins")
	staleGeneration := model.generation
	(&model).navigate("#/plugins/weather-widget")

	updated, _ := model.Update(listLoadedMsg{
		generation: staleGeneration,
		plugins:    []schema.PluginMetadata{{ID: "stale"}},
	})
	model = updated.(Model)

	detail, ok := model.current.(*detailView)
	if !ok {
		t.Fatalf("current view is %T, want *detailView", model.current)
	}
	if detail.pluginID != "weather-widget" {
		t.Fatalf("detail view is for %q", detail.pluginID)
	}
}

func TestNavigateClearsStatus(t *testing.T) {
	t.Parallel()

	model := newTestModel(t)
	(&model).setStatus("something happened", toneWarning)
	(&model).navigate("#/plugins")
	if model.status != "" {
		t.Fatalf("status survived navigation: %q", model.status)
	}
}

func TestNavLinksByRole(t *testing.T) {
	t.Parallel()

	labels := func(current session.Session) []string {
		links := navLinks(current)
		names := make([]string, len(links))
		for i, link := range links {
			names[i] = link.label
		}
		return names
	}

	tests := []struct {
		name    string
		session session.Session
		want    []string
	}{
		{
			name:    "anonymous",
			session: session.Session{},
			want:    []string{"Home", "Plugins", "Sign In"},
		},
		{
			name:    "user",
			session: session.Session{Token: "t", Username: "casey", Role: schema.RoleUser},
			want:    []string{"Home", "Plugins", "Session"},
		},
		{
			name:    "developer",
			session: session.Session{Token: "t", Username: "dev", Role: schema.RoleDeveloper},
			want:    []string{"Home", "Plugins", "My Plugins", "Submit Plugin", "Session"},
		},
		{
			name:    "admin",
			session: session.Session{Token: "t", Username: "root", Role: schema.RoleAdmin},
			want: []string{
				"Home", "Plugins", "My Plugins", "Submit Plugin",
				"Approval Queue", "Users", "Audit Logs", "Session",
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if got := labels(test.session); !reflect.DeepEqual(got, test.want) {
				t.Errorf("nav links = %v, want %v", got, test.want)
			}
		})
	}
}

func TestNavShortcut(t *testing.T) {
	t.Parallel()

	anonymous := session.Session{}
	link, ok := navShortcut("2", anonymous)
	if !ok || link.fragment != "#/plugins" {
		t.Errorf("shortcut 2 = %v %v, want #/plugins", link, ok)
	}
	// Anonymous users only see three links.
	if _, ok := navShortcut("4", anonymous); ok {
		t.Error("shortcut 4 resolved for an anonymous session")
	}
	if _, ok := navShortcut("x", anonymous); ok {
		t.Error("non-digit key resolved to a link")
	}

	admin := session.Session{Token: "t", Username: "root", Role: schema.RoleAdmin}
	link, ok = navShortcut("5", admin)
	if !ok || link.fragment != "#/admin/queue" {
		t.Errorf("admin shortcut 5 = %v %v, want #/admin/queue", link, ok)
	}
}
