// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"context"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/streamline-portal/portal/lib/schema"
)

// auditLoadedMsg carries the audit trail, already newest-first.
type auditLoadedMsg struct {
	generation int
	entries    []schema.AuditEntry
	err        error
}

func (msg auditLoadedMsg) gen() int { return msg.generation }

// auditView shows the admin audit trail newest-first. The server
// returns entries in append order; the reversal happens here.
type auditView struct {
	loading bool
	loadErr string
	entries []schema.AuditEntry
	cursor  int
}

func newAuditView() View {
	return &auditView{}
}

func (view *auditView) Fragment() string { return "#/admin/audit" }

func (view *auditView) Init(model *Model) tea.Cmd {
	view.loading = true
	view.loadErr = ""
	generation := model.generation
	client := model.client
	return func() tea.Msg {
		entries, err := client.AuditLogs(context.Background())
		if err != nil {
			return auditLoadedMsg{generation: generation, err: err}
		}
		slices.Reverse(entries)
		return auditLoadedMsg{generation: generation, entries: entries}
	}
}

func (view *auditView) Update(model *Model, msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case auditLoadedMsg:
		view.loading = false
		if msg.err != nil {
			view.loadErr = errorMessage(msg.err)
			return view, nil
		}
		view.entries = msg.entries
		view.cursor = 0
		return view, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			view.cursor = moveCursor(view.cursor, -1, len(view.entries))
		case "down", "j":
			view.cursor = moveCursor(view.cursor, 1, len(view.entries))
		}
	}
	return view, nil
}

func (view *auditView) Render(model *Model) string {
	theme := model.theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	switch {
	case view.loading:
		return "\n" + faint.Render("loading audit trail...")
	case view.loadErr != "":
		return "\n" + lipgloss.NewStyle().Foreground(theme.ToneDanger).Render(view.loadErr)
	case len(view.entries) == 0:
		return "\n" + faint.Render("the audit trail is empty")
	}

	rows := make([][]string, len(view.entries))
	for i, entry := range view.entries {
		rows[i] = []string{entry.Timestamp, entry.Actor, entry.Action, entry.Target, entry.Reason}
	}
	out := "\n" + renderTable(theme, []string{"WHEN", "ACTOR", "ACTION", "TARGET", "REASON"}, rows, view.cursor)
	out += "\n" + lipgloss.NewStyle().Foreground(theme.HelpText).Render("j/k move")
	return out
}

func (view *auditView) Editing() bool { return false }
