// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import "regexp"

// routeEntry pairs a fragment pattern with a view constructor. The
// pattern matches the full fragment; capture groups become positional
// parameters passed to build.
type routeEntry struct {
	pattern *regexp.Regexp
	build   func(params []string) View
}

// routeTable is the ordered route list. Patterns are tried top to
// bottom and the first match wins, so more specific patterns
// ("#/plugins/new") are declared before the general ones
// ("#/plugins/([^/]+)"). Declaration order is load-bearing.
func routeTable() []routeEntry {
	return []routeEntry{
		{regexp.MustCompile(`^#/home$`), func([]string) View { return newHomeView() }},
		{regexp.MustCompile(`^#/plugins$`), func([]string) View { return newListView() }},
		{regexp.MustCompile(`^#/plugins/$`), func([]string) View { return newListView() }},
		{regexp.MustCompile(`^#/$`), func([]string) View { return newHomeView() }},
		{regexp.MustCompile(`^#/plugins/new$`), func([]string) View { return newFormView("") }},
		{regexp.MustCompile(`^#/plugins/([^/]+)/edit$`), func(params []string) View { return newFormView(params[0]) }},
		{regexp.MustCompile(`^#/plugins/([^/]+)$`), func(params []string) View { return newDetailView(params[0]) }},
		{regexp.MustCompile(`^#/my-plugins$`), func([]string) View { return newMineView() }},
		{regexp.MustCompile(`^#/admin/queue$`), func([]string) View { return newQueueView() }},
		{regexp.MustCompile(`^#/admin/users$`), func([]string) View { return newUsersView() }},
		{regexp.MustCompile(`^#/admin/audit$`), func([]string) View { return newAuditView() }},
		{regexp.MustCompile(`^#/login$`), func([]string) View { return newLoginView() }},
	}
}

// resolve matches a fragment against the route table and returns the
// view for the first matching entry. An empty fragment resolves to
// "#/home"; a fragment matching nothing falls back to the plugin
// listing.
func resolve(fragment string) View {
	if fragment == "" {
		fragment = "#/home"
	}
	for _, entry := range routeTable() {
		if match := entry.pattern.FindStringSubmatch(fragment); match != nil {
			return entry.build(match[1:])
		}
	}
	return newListView()
}
