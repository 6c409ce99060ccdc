// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/streamline-portal/portal/lib/lifecycle"
	"github.com/streamline-portal/portal/lib/schema"
)

// queueLoadedMsg carries the submitted plugins awaiting review.
type queueLoadedMsg struct {
	generation int
	records    []schema.PluginRecord
	err        error
}

func (msg queueLoadedMsg) gen() int { return msg.generation }

// queueDecidedMsg carries the result of an approve or reject.
type queueDecidedMsg struct {
	generation int
	pluginID   string
	action     lifecycle.Action
	err        error
}

func (msg queueDecidedMsg) gen() int { return msg.generation }

// queueView is the admin review queue. It is derived from the full
// plugin listing an admin receives: only submitted plugins appear.
type queueView struct {
	loading bool
	loadErr string
	records []schema.PluginRecord
	cursor  int

	prompting bool
	reason    textinput.Model
}

func newQueueView() View {
	reason := textinput.New()
	reason.Placeholder = "rejection reason"
	reason.Prompt = "> "
	reason.CharLimit = 500
	return &queueView{reason: reason}
}

func (view *queueView) Fragment() string { return "#/admin/queue" }

func (view *queueView) Init(model *Model) tea.Cmd {
	view.loading = true
	view.loadErr = ""
	generation := model.generation
	client := model.client
	return func() tea.Msg {
		records, err := client.MyPlugins(context.Background())
		if err != nil {
			return queueLoadedMsg{generation: generation, err: err}
		}
		submitted := make([]schema.PluginRecord, 0, len(records))
		for _, record := range records {
			if record.Status == schema.StatusSubmitted {
				submitted = append(submitted, record)
			}
		}
		return queueLoadedMsg{generation: generation, records: submitted}
	}
}

func (view *queueView) Update(model *Model, msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case queueLoadedMsg:
		view.loading = false
		if msg.err != nil {
			view.loadErr = errorMessage(msg.err)
			return view, nil
		}
		view.records = msg.records
		view.cursor = 0
		return view, nil

	case queueDecidedMsg:
		if msg.err != nil {
			model.setStatus(errorMessage(msg.err), toneWarning)
			return view, nil
		}
		view.removeRecord(msg.pluginID)
		decided := "approved"
		if msg.action == lifecycle.ActionReject {
			decided = "rejected"
		}
		model.setStatus("Plugin "+msg.pluginID+" "+decided, toneSuccess)
		return view, nil

	case tea.KeyMsg:
		if view.prompting {
			switch msg.String() {
			case "esc":
				view.prompting = false
				view.reason.Blur()
				view.reason.SetValue("")
				return view, nil
			case "enter":
				reasonText := view.reason.Value()
				view.prompting = false
				view.reason.Blur()
				view.reason.SetValue("")
				return view, view.decide(model, lifecycle.ActionReject, reasonText)
			default:
				var cmd tea.Cmd
				view.reason, cmd = view.reason.Update(msg)
				return view, cmd
			}
		}
		switch msg.String() {
		case "up", "k":
			view.cursor = moveCursor(view.cursor, -1, len(view.records))
		case "down", "j":
			view.cursor = moveCursor(view.cursor, 1, len(view.records))
		case "enter":
			if view.cursor < len(view.records) {
				return view, model.navigate("#/plugins/" + view.records[view.cursor].ID)
			}
		case "a":
			if view.cursor < len(view.records) {
				return view, view.decide(model, lifecycle.ActionApprove, "")
			}
		case "x":
			if view.cursor < len(view.records) {
				view.prompting = true
				return view, view.reason.Focus()
			}
		}
	}
	return view, nil
}

func (view *queueView) removeRecord(pluginID string) {
	kept := view.records[:0]
	for _, record := range view.records {
		if record.ID != pluginID {
			kept = append(kept, record)
		}
	}
	view.records = kept
	view.cursor = moveCursor(view.cursor, 0, len(view.records))
}

func (view *queueView) decide(model *Model, action lifecycle.Action, reason string) tea.Cmd {
	if view.cursor >= len(view.records) {
		return nil
	}
	generation := model.generation
	controller := model.controller
	pluginID := view.records[view.cursor].ID
	return func() tea.Msg {
		_, err := controller.Apply(context.Background(), pluginID, action, reason)
		return queueDecidedMsg{generation: generation, pluginID: pluginID, action: action, err: err}
	}
}

func (view *queueView) Render(model *Model) string {
	theme := model.theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	switch {
	case view.loading:
		return "\n" + faint.Render("loading review queue...")
	case view.loadErr != "":
		return "\n" + lipgloss.NewStyle().Foreground(theme.ToneDanger).Render(view.loadErr)
	case len(view.records) == 0:
		return "\n" + faint.Render("nothing awaiting review")
	}

	rows := make([][]string, len(view.records))
	for i, record := range view.records {
		rows[i] = []string{record.Name, record.ID, record.Owner, record.Version}
	}
	out := "\n" + renderTable(theme, []string{"NAME", "ID", "OWNER", "VERSION"}, rows, view.cursor)

	if view.prompting {
		out += "\n" + faint.Render("Reject — enter a reason, esc to cancel") + "\n" + view.reason.View()
		return out
	}
	out += "\n" + lipgloss.NewStyle().Foreground(theme.HelpText).
		Render("a approve · x reject · enter open · j/k move")
	return out
}

func (view *queueView) Editing() bool { return view.prompting }
