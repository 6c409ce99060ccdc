// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/streamline-portal/portal/lib/portalclient"
	"github.com/streamline-portal/portal/lib/schema"
)

// formLoadedMsg carries the existing record when editing.
type formLoadedMsg struct {
	generation int
	record     *schema.PluginRecord
	err        error
}

func (msg formLoadedMsg) gen() int { return msg.generation }

// formSavedMsg carries the result of a create or update.
type formSavedMsg struct {
	generation int
	created    bool
	record     *schema.PluginRecord
	err        error
}

func (msg formSavedMsg) gen() int { return msg.generation }

// formView registers a new plugin or edits an existing one. The
// plugin ID is only writable on create; editing shows it as a fixed
// label because the server treats it as immutable.
type formView struct {
	pluginID string // empty means create
	loading  bool
	loadErr  string
	saving   bool

	inputs []textinput.Model
	labels []string
	focus  int
}

func newFormView(pluginID string) View {
	view := &formView{pluginID: pluginID}
	newInput := func(placeholder string) textinput.Model {
		input := textinput.New()
		input.Placeholder = placeholder
		input.Prompt = "> "
		input.CharLimit = 200
		return input
	}
	if pluginID == "" {
		view.labels = []string{"ID", "Name", "Compatibility"}
		view.inputs = []textinput.Model{
			newInput("unique plugin id, e.g. my-plugin"),
			newInput("display name"),
			newInput("compatible host versions, e.g. >=2.0"),
		}
	} else {
		view.labels = []string{"Name", "Compatibility"}
		view.inputs = []textinput.Model{
			newInput("display name"),
			newInput("compatible host versions"),
		}
	}
	return view
}

func (view *formView) Fragment() string {
	if view.pluginID == "" {
		return "#/plugins/new"
	}
	return "#/plugins/" + view.pluginID + "/edit"
}

func (view *formView) Init(model *Model) tea.Cmd {
	focusCmd := view.inputs[0].Focus()
	if view.pluginID == "" {
		return focusCmd
	}
	view.loading = true
	view.loadErr = ""
	generation := model.generation
	client := model.client
	pluginID := view.pluginID
	return tea.Batch(focusCmd, func() tea.Msg {
		record, err := client.Manage(context.Background(), pluginID)
		return formLoadedMsg{generation: generation, record: record, err: err}
	})
}

func (view *formView) Update(model *Model, msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case formLoadedMsg:
		view.loading = false
		if msg.err != nil {
			view.loadErr = errorMessage(msg.err)
			return view, nil
		}
		view.inputs[0].SetValue(msg.record.Name)
		view.inputs[1].SetValue(msg.record.Compatibility)
		return view, nil

	case formSavedMsg:
		view.saving = false
		if msg.err != nil {
			model.setStatus(errorMessage(msg.err), toneWarning)
			return view, nil
		}
		if msg.created {
			cmd := model.navigate("#/my-plugins")
			model.setStatus("Plugin "+msg.record.ID+" created as draft", toneSuccess)
			return view, cmd
		}
		cmd := model.navigate("#/plugins/" + msg.record.ID)
		model.setStatus("Plugin "+msg.record.ID+" updated", toneSuccess)
		return view, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			if view.pluginID == "" {
				return view, model.navigate("#/my-plugins")
			}
			return view, model.navigate("#/plugins/" + view.pluginID)
		case "tab", "down", "enter":
			if msg.String() == "enter" && view.focus == len(view.inputs)-1 {
				return view, view.save(model)
			}
			return view, view.setFocus(view.focus + 1)
		case "shift+tab", "up":
			return view, view.setFocus(view.focus - 1)
		case "ctrl+s":
			return view, view.save(model)
		default:
			var cmd tea.Cmd
			view.inputs[view.focus], cmd = view.inputs[view.focus].Update(msg)
			return view, cmd
		}
	}
	return view, nil
}

func (view *formView) setFocus(index int) tea.Cmd {
	if index < 0 {
		index = len(view.inputs) - 1
	}
	if index >= len(view.inputs) {
		index = 0
	}
	for i := range view.inputs {
		view.inputs[i].Blur()
	}
	view.focus = index
	return view.inputs[index].Focus()
}

func (view *formView) save(model *Model) tea.Cmd {
	if view.saving {
		return nil
	}
	view.saving = true
	generation := model.generation
	client := model.client
	if view.pluginID == "" {
		request := portalclient.CreatePluginRequest{
			ID:            strings.TrimSpace(view.inputs[0].Value()),
			Name:          strings.TrimSpace(view.inputs[1].Value()),
			Compatibility: strings.TrimSpace(view.inputs[2].Value()),
		}
		return func() tea.Msg {
			record, err := client.CreatePlugin(context.Background(), request)
			return formSavedMsg{generation: generation, created: true, record: record, err: err}
		}
	}
	pluginID := view.pluginID
	request := portalclient.UpdatePluginRequest{
		Name:          strings.TrimSpace(view.inputs[0].Value()),
		Compatibility: strings.TrimSpace(view.inputs[1].Value()),
	}
	return func() tea.Msg {
		record, err := client.UpdatePlugin(context.Background(), pluginID, request)
		return formSavedMsg{generation: generation, record: record, err: err}
	}
}

func (view *formView) Render(model *Model) string {
	theme := model.theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	title := "Submit a new plugin"
	if view.pluginID != "" {
		title = "Edit plugin " + view.pluginID
	}

	var b strings.Builder
	b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.NormalText).Bold(true).Render(title) + "\n\n")

	switch {
	case view.loading:
		return b.String() + faint.Render("loading plugin...")
	case view.loadErr != "":
		return b.String() + lipgloss.NewStyle().Foreground(theme.ToneDanger).Render(view.loadErr)
	}

	if view.pluginID != "" {
		b.WriteString("  " + faint.Render("ID:") + " " + view.pluginID + " " + faint.Render("(immutable)") + "\n\n")
	}
	for i, input := range view.inputs {
		b.WriteString("  " + faint.Render(view.labels[i]) + "\n  " + input.View() + "\n\n")
	}
	if view.saving {
		b.WriteString(faint.Render("saving...") + "\n")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.HelpText).
		Render("tab next field · ctrl+s save · esc cancel"))
	return b.String()
}

func (view *formView) Editing() bool { return true }
