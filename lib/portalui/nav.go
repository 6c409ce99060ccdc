// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/streamline-portal/portal/lib/authorization"
	"github.com/streamline-portal/portal/lib/schema"
	"github.com/streamline-portal/portal/lib/session"
)

// navLink is one entry in the navigation bar. An empty roles slice
// means the link is visible to everyone, including anonymous users.
type navLink struct {
	fragment string
	label    string
	roles    []schema.Role
}

// navLinks returns the links visible to the current session, in
// display order. Role-gated links disappear entirely for sessions
// that lack the role; they are not shown disabled.
func navLinks(current session.Session) []navLink {
	all := []navLink{
		{fragment: "#/home", label: "Home"},
		{fragment: "#/plugins", label: "Plugins"},
		{fragment: "#/my-plugins", label: "My Plugins", roles: []schema.Role{schema.RoleDeveloper, schema.RoleAdmin}},
		{fragment: "#/plugins/new", label: "Submit Plugin", roles: []schema.Role{schema.RoleDeveloper, schema.RoleAdmin}},
		{fragment: "#/admin/queue", label: "Approval Queue", roles: []schema.Role{schema.RoleAdmin}},
		{fragment: "#/admin/users", label: "Users", roles: []schema.Role{schema.RoleAdmin}},
		{fragment: "#/admin/audit", label: "Audit Logs", roles: []schema.Role{schema.RoleAdmin}},
	}
	visible := make([]navLink, 0, len(all)+1)
	for _, link := range all {
		if authorization.Check(current, link.roles...) == authorization.Allow {
			visible = append(visible, link)
		}
	}
	label := "Sign In"
	if current.Authenticated() {
		label = "Session"
	}
	visible = append(visible, navLink{fragment: "#/login", label: label})
	return visible
}

// navShortcut maps a digit key to the matching visible link.
func navShortcut(key string, current session.Session) (navLink, bool) {
	index, err := strconv.Atoi(key)
	if err != nil || index < 1 {
		return navLink{}, false
	}
	links := navLinks(current)
	if index > len(links) {
		return navLink{}, false
	}
	return links[index-1], true
}

// renderNav draws the navigation bar, highlighting the link whose
// fragment matches the current view.
func renderNav(m Model) string {
	theme := m.theme
	activeStyle := lipgloss.NewStyle().Foreground(theme.ActiveNav).Bold(true)
	idleStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	numberStyle := lipgloss.NewStyle().Foreground(theme.HelpText)

	active := ""
	if m.current != nil {
		active = m.current.Fragment()
	}

	parts := make([]string, 0, 8)
	for i, link := range navLinks(m.store.Current()) {
		style := idleStyle
		if link.fragment == active {
			style = activeStyle
		}
		parts = append(parts, numberStyle.Render(strconv.Itoa(i+1))+" "+style.Render(link.label))
	}
	return strings.Join(parts, "   ")
}
