// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/streamline-portal/portal/lib/schema"
)

// mineLoadedMsg carries the caller's own plugins.
type mineLoadedMsg struct {
	generation int
	records    []schema.PluginRecord
	err        error
}

func (msg mineLoadedMsg) gen() int { return msg.generation }

// mineView lists the plugins the signed-in developer owns, with their
// lifecycle status. Admins see every plugin here.
type mineView struct {
	loading bool
	loadErr string
	records []schema.PluginRecord
	cursor  int
}

func newMineView() View {
	return &mineView{}
}

func (view *mineView) Fragment() string { return "#/my-plugins" }

func (view *mineView) Init(model *Model) tea.Cmd {
	view.loading = true
	view.loadErr = ""
	generation := model.generation
	client := model.client
	return func() tea.Msg {
		records, err := client.MyPlugins(context.Background())
		return mineLoadedMsg{generation: generation, records: records, err: err}
	}
}

func (view *mineView) Update(model *Model, msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case mineLoadedMsg:
		view.loading = false
		if msg.err != nil {
			view.loadErr = errorMessage(msg.err)
			return view, nil
		}
		view.records = msg.records
		view.cursor = 0
		return view, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			view.cursor = moveCursor(view.cursor, -1, len(view.records))
		case "down", "j":
			view.cursor = moveCursor(view.cursor, 1, len(view.records))
		case "enter":
			if view.cursor < len(view.records) {
				return view, model.navigate("#/plugins/" + view.records[view.cursor].ID)
			}
		case "e":
			if view.cursor < len(view.records) {
				return view, model.navigate("#/plugins/" + view.records[view.cursor].ID + "/edit")
			}
		case "n":
			return view, model.navigate("#/plugins/new")
		}
	}
	return view, nil
}

func (view *mineView) Render(model *Model) string {
	theme := model.theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	switch {
	case view.loading:
		return "\n" + faint.Render("loading your plugins...")
	case view.loadErr != "":
		return "\n" + lipgloss.NewStyle().Foreground(theme.ToneDanger).Render(view.loadErr)
	case len(view.records) == 0:
		return "\n" + faint.Render("you have no plugins yet — press n to submit one")
	}

	rows := make([][]string, len(view.records))
	for i, record := range view.records {
		rows[i] = []string{record.Name, record.ID, record.Version, string(record.Status)}
	}
	out := "\n" + renderTable(theme, []string{"NAME", "ID", "VERSION", "STATUS"}, rows, view.cursor)
	out += "\n" + lipgloss.NewStyle().Foreground(theme.HelpText).
		Render("enter open · e edit · n new · j/k move")
	return out
}

func (view *mineView) Editing() bool { return false }
