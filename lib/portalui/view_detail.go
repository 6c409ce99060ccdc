// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/streamline-portal/portal/lib/lifecycle"
	"github.com/streamline-portal/portal/lib/schema"
)

// detailLoadedMsg carries the public detail plus, when the caller is
// the owner or an admin, the manage view. The manage probe is
// best-effort: a 403 just means the viewer gets the public page.
type detailLoadedMsg struct {
	generation int
	plugin     *schema.PluginMetadata
	versions   []schema.PluginMetadata
	manage     *schema.PluginRecord
	err        error
}

func (msg detailLoadedMsg) gen() int { return msg.generation }

// transitionMsg carries the result of a lifecycle action.
type transitionMsg struct {
	generation int
	action     lifecycle.Action
	record     *schema.PluginRecord
	err        error
}

func (msg transitionMsg) gen() int { return msg.generation }

// detailView shows one plugin: public metadata, release history, and,
// for owners and admins, the lifecycle controls for its status.
type detailView struct {
	pluginID string
	loading  bool
	loadErr  string

	plugin   *schema.PluginMetadata
	versions []schema.PluginMetadata
	manage   *schema.PluginRecord

	// Reason prompt shown while a reject is pending.
	prompting bool
	pending   lifecycle.Action
	reason    textinput.Model
}

func newDetailView(pluginID string) View {
	reason := textinput.New()
	reason.Placeholder = "reason (recorded in the audit log)"
	reason.Prompt = "> "
	reason.CharLimit = 500
	return &detailView{pluginID: pluginID, reason: reason}
}

func (view *detailView) Fragment() string { return "#/plugins/" + view.pluginID }

func (view *detailView) Init(model *Model) tea.Cmd {
	view.loading = true
	view.loadErr = ""
	generation := model.generation
	client := model.client
	pluginID := view.pluginID
	authenticated := model.store.Current().Authenticated()
	return func() tea.Msg {
		ctx := context.Background()
		plugin, err := client.Plugin(ctx, pluginID)
		if err != nil {
			return detailLoadedMsg{generation: generation, err: err}
		}
		versions, err := client.PluginVersions(ctx, pluginID)
		if err != nil {
			return detailLoadedMsg{generation: generation, err: err}
		}
		msg := detailLoadedMsg{generation: generation, plugin: plugin, versions: versions}
		if authenticated {
			// Probe the manage view. Failure means the viewer is not
			// the owner and not an admin; the public page is enough.
			if record, err := client.Manage(ctx, pluginID); err == nil {
				msg.manage = record
			}
		}
		return msg
	}
}

func (view *detailView) Update(model *Model, msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case detailLoadedMsg:
		view.loading = false
		if msg.err != nil {
			view.loadErr = errorMessage(msg.err)
			return view, nil
		}
		view.plugin = msg.plugin
		view.versions = msg.versions
		view.manage = msg.manage
		return view, nil

	case transitionMsg:
		if msg.err != nil {
			model.setStatus(errorMessage(msg.err), toneWarning)
			return view, nil
		}
		view.manage = msg.record
		model.setStatus(fmt.Sprintf("%s: plugin is now %s", msg.action.Label(), msg.record.Status), toneSuccess)
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
				action := view.pending
				reasonText := view.reason.Value()
				view.prompting = false
				view.reason.Blur()
				view.reason.SetValue("")
				return view, view.apply(model, action, reasonText)
			default:
				var cmd tea.Cmd
				view.reason, cmd = view.reason.Update(msg)
				return view, cmd
			}
		}
		return view.handleKey(model, msg.String())
	}
	return view, nil
}

// handleKey dispatches lifecycle and editing shortcuts. Only actions
// legal for the plugin's current status and the session's role are
// accepted; everything else falls through silently.
func (view *detailView) handleKey(model *Model, key string) (View, tea.Cmd) {
	if view.manage == nil {
		return view, nil
	}
	if key == "e" {
		return view, model.navigate("#/plugins/" + view.pluginID + "/edit")
	}

	var requested lifecycle.Action
	switch key {
	case "s":
		requested = lifecycle.ActionSubmit
	case "a":
		requested = lifecycle.ActionApprove
	case "x":
		requested = lifecycle.ActionReject
	case "p":
		requested = lifecycle.ActionPublish
	case "u":
		requested = lifecycle.ActionUnpublish
	default:
		return view, nil
	}

	allowed := lifecycle.ActionsFor(view.manage.Status, model.store.Current().Role)
	for _, action := range allowed {
		if action == requested {
			if action.TakesReason() {
				view.prompting = true
				view.pending = action
				return view, view.reason.Focus()
			}
			return view, view.apply(model, action, "")
		}
	}
	return view, nil
}

func (view *detailView) apply(model *Model, action lifecycle.Action, reason string) tea.Cmd {
	generation := model.generation
	controller := model.controller
	pluginID := view.pluginID
	return func() tea.Msg {
		record, err := controller.Apply(context.Background(), pluginID, action, reason)
		return transitionMsg{generation: generation, action: action, record: record, err: err}
	}
}

func (view *detailView) Render(model *Model) string {
	theme := model.theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	switch {
	case view.loading:
		return "\n" + faint.Render("loading plugin "+view.pluginID+"...")
	case view.loadErr != "":
		return "\n" + lipgloss.NewStyle().Foreground(theme.ToneDanger).Render(view.loadErr)
	case view.plugin == nil:
		return ""
	}

	var b strings.Builder
	title := lipgloss.NewStyle().Foreground(theme.NormalText).Bold(true)
	b.WriteString("\n" + title.Render(view.plugin.Name) + "  " + faint.Render(view.plugin.ID) + "\n\n")

	field := func(label, value string) {
		if value == "" {
			value = "-"
		}
		b.WriteString("  " + faint.Render(label+":") + " " + value + "\n")
	}
	field("Version", view.plugin.Version)
	field("Compatibility", view.plugin.Compatibility)
	field("Package", view.plugin.PackageURL)
	field("SHA-256", view.plugin.SHA256)

	if view.manage != nil {
		statusStyle := lipgloss.NewStyle().Foreground(theme.StatusColor(view.manage.Status)).Bold(true)
		b.WriteString("  " + faint.Render("Owner:") + " " + view.manage.Owner + "\n")
		b.WriteString("  " + faint.Render("Status:") + " " + statusStyle.Render(string(view.manage.Status)) + "\n")
	}

	if len(view.versions) > 0 {
		b.WriteString("\n" + faint.Render("Releases") + "\n")
		for _, release := range view.versions {
			b.WriteString("  " + release.Version + "  " + faint.Render(release.Compatibility) + "\n")
		}
	}

	if view.prompting {
		b.WriteString("\n" + faint.Render(view.pending.Label()+" — enter a reason, esc to cancel") + "\n")
		b.WriteString(view.reason.View() + "\n")
		return b.String()
	}

	if view.manage != nil {
		hints := []string{"e edit"}
		for _, action := range lifecycle.ActionsFor(view.manage.Status, model.store.Current().Role) {
			key := actionKey(action)
			style := lipgloss.NewStyle().Foreground(theme.ToneColor(action.Tone()))
			hints = append(hints, key+" "+style.Render(strings.ToLower(action.Label())))
		}
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.HelpText).Render(strings.Join(hints, " · ")))
	}
	return b.String()
}

// actionKey returns the keyboard shortcut for a lifecycle action.
func actionKey(action lifecycle.Action) string {
	switch action {
	case lifecycle.ActionSubmit:
		return "s"
	case lifecycle.ActionApprove:
		return "a"
	case lifecycle.ActionReject:
		return "x"
	case lifecycle.ActionPublish:
		return "p"
	case lifecycle.ActionUnpublish:
		return "u"
	default:
		return "?"
	}
}

func (view *detailView) Editing() bool { return view.prompting }
