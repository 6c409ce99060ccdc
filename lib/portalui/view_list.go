// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/streamline-portal/portal/lib/schema"
)

// listLoadedMsg carries the result of the public plugin listing.
type listLoadedMsg struct {
	generation int
	plugins    []schema.PluginMetadata
	err        error
}

func (msg listLoadedMsg) gen() int { return msg.generation }

// listView is the public catalog of published plugins with an
// incremental search box.
type listView struct {
	search    textinput.Model
	searching bool
	loading   bool
	loadErr   string
	plugins   []schema.PluginMetadata
	cursor    int
}

func newListView() View {
	search := textinput.New()
	search.Placeholder = "search by name or id"
	search.Prompt = "/ "
	search.CharLimit = 120
	return &listView{search: search}
}

func (view *listView) Fragment() string { return "#/plugins" }

func (view *listView) Init(model *Model) tea.Cmd {
	view.loading = true
	view.loadErr = ""
	generation := model.generation
	client := model.client
	query := view.search.Value()
	return func() tea.Msg {
		plugins, err := client.Plugins(context.Background(), query)
		return listLoadedMsg{generation: generation, plugins: plugins, err: err}
	}
}

func (view *listView) Update(model *Model, msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case listLoadedMsg:
		view.loading = false
		if msg.err != nil {
			view.loadErr = errorMessage(msg.err)
			return view, nil
		}
		view.plugins = msg.plugins
		view.cursor = 0
		return view, nil

	case tea.KeyMsg:
		if view.searching {
			switch msg.String() {
			case "esc":
				view.searching = false
				view.search.Blur()
				return view, nil
			case "enter":
				view.searching = false
				view.search.Blur()
				return view, view.Init(model)
			default:
				var cmd tea.Cmd
				view.search, cmd = view.search.Update(msg)
				return view, cmd
			}
		}
		switch msg.String() {
		case "/":
			view.searching = true
			return view, view.search.Focus()
		case "up", "k":
			view.cursor = moveCursor(view.cursor, -1, len(view.plugins))
		case "down", "j":
			view.cursor = moveCursor(view.cursor, 1, len(view.plugins))
		case "enter":
			if view.cursor < len(view.plugins) {
				return view, model.navigate("#/plugins/" + view.plugins[view.cursor].ID)
			}
		}
	}
	return view, nil
}

func (view *listView) Render(model *Model) string {
	theme := model.theme
	out := "\n" + view.search.View() + "\n\n"

	switch {
	case view.loading:
		return out + lipgloss.NewStyle().Foreground(theme.FaintText).Render("loading plugins...")
	case view.loadErr != "":
		return out + lipgloss.NewStyle().Foreground(theme.ToneDanger).Render(view.loadErr)
	case len(view.plugins) == 0:
		return out + lipgloss.NewStyle().Foreground(theme.FaintText).Render("no published plugins match")
	}

	rows := make([][]string, len(view.plugins))
	for i, plugin := range view.plugins {
		rows[i] = []string{plugin.Name, plugin.ID, plugin.Version, plugin.Compatibility}
	}
	out += renderTable(theme, []string{"NAME", "ID", "VERSION", "COMPATIBILITY"}, rows, view.cursor)
	out += "\n" + lipgloss.NewStyle().Foreground(theme.HelpText).
		Render("enter open · / search · j/k move")
	return out
}

func (view *listView) Editing() bool { return view.searching }
