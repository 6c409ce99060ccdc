// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// loginDoneMsg carries the outcome of a sign-in attempt.
type loginDoneMsg struct {
	generation int
	username   string
	err        error
}

func (msg loginDoneMsg) gen() int { return msg.generation }

// loginView signs a user in, or shows the current session with a
// sign-out shortcut when one is active. Sign-out is purely local:
// the persisted token is discarded and no request is made.
type loginView struct {
	username textinput.Model
	password textinput.Model
	focus    int
	signing  bool

	// Snapshot of session state taken at Init. When a session is
	// active this view is a read-only summary and the global keymap
	// stays live; anonymous it is a form that captures keystrokes.
	authenticated bool
}

func newLoginView() View {
	username := textinput.New()
	username.Placeholder = "username"
	username.Prompt = "> "
	username.CharLimit = 120

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "> "
	password.CharLimit = 200
	password.EchoMode = textinput.EchoPassword

	return &loginView{username: username, password: password}
}

func (view *loginView) Fragment() string { return "#/login" }

func (view *loginView) Init(model *Model) tea.Cmd {
	view.authenticated = model.store.Current().Authenticated()
	if view.authenticated {
		return nil
	}
	return view.username.Focus()
}

func (view *loginView) Update(model *Model, msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		view.signing = false
		if msg.err != nil {
			view.password.SetValue("")
			model.setStatus(errorMessage(msg.err), toneWarning)
			return view, nil
		}
		cmd := model.navigate("#/home")
		model.setStatus("Signed in as "+msg.username, toneSuccess)
		return view, cmd

	case tea.KeyMsg:
		if model.store.Current().Authenticated() {
			if msg.String() == "o" {
				model.store.Logout()
				cmd := model.navigate("#/home")
				model.setStatus("Signed out", toneInfo)
				return view, cmd
			}
			return view, nil
		}
		switch msg.String() {
		case "tab", "down":
			return view, view.setFocus(view.focus + 1)
		case "shift+tab", "up":
			return view, view.setFocus(view.focus - 1)
		case "enter":
			if view.focus == 0 {
				return view, view.setFocus(1)
			}
			return view, view.signIn(model)
		default:
			var cmd tea.Cmd
			if view.focus == 0 {
				view.username, cmd = view.username.Update(msg)
			} else {
				view.password, cmd = view.password.Update(msg)
			}
			return view, cmd
		}
	}
	return view, nil
}

func (view *loginView) setFocus(index int) tea.Cmd {
	view.username.Blur()
	view.password.Blur()
	if index < 0 {
		index = 1
	}
	view.focus = index % 2
	if view.focus == 0 {
		return view.username.Focus()
	}
	return view.password.Focus()
}

func (view *loginView) signIn(model *Model) tea.Cmd {
	if view.signing {
		return nil
	}
	view.signing = true
	generation := model.generation
	client := model.client
	store := model.store
	username := strings.TrimSpace(view.username.Value())
	password := view.password.Value()
	return func() tea.Msg {
		err := store.Login(context.Background(), client, username, password)
		return loginDoneMsg{generation: generation, username: username, err: err}
	}
}

func (view *loginView) Render(model *Model) string {
	theme := model.theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	title := lipgloss.NewStyle().Foreground(theme.NormalText).Bold(true)

	current := model.store.Current()
	if current.Authenticated() {
		var b strings.Builder
		b.WriteString("\n" + title.Render("Active session") + "\n\n")
		b.WriteString("  " + faint.Render("Username:") + " " + current.Username + "\n")
		b.WriteString("  " + faint.Render("Role:") + " " + string(current.Role) + "\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.HelpText).Render("o sign out"))
		return b.String()
	}

	var b strings.Builder
	b.WriteString("\n" + title.Render("Sign in") + "\n\n")
	b.WriteString("  " + faint.Render("Username") + "\n  " + view.username.View() + "\n\n")
	b.WriteString("  " + faint.Render("Password") + "\n  " + view.password.View() + "\n\n")
	if view.signing {
		b.WriteString(faint.Render("signing in...") + "\n")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.HelpText).Render("enter sign in · tab switch field"))
	return b.String()
}

func (view *loginView) Editing() bool {
	return !view.authenticated
}
