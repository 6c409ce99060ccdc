// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// homeView is the landing screen. It fetches nothing; it exists so
// that signing in does not dump the user straight into a data view.
type homeView struct{}

func newHomeView() View {
	return &homeView{}
}

func (view *homeView) Fragment() string { return "#/home" }

func (view *homeView) Init(*Model) tea.Cmd { return nil }

func (view *homeView) Update(model *Model, msg tea.Msg) (View, tea.Cmd) {
	return view, nil
}

func (view *homeView) Render(model *Model) string {
	theme := model.theme
	title := lipgloss.NewStyle().Foreground(theme.NormalText).Bold(true).
		Render("Welcome to the Streamline plugin portal.")

	lines := []string{
		"",
		title,
		"",
		"Browse published plugins, or sign in to manage your own.",
		"Developers submit plugins for review; admins approve and publish them.",
		"",
	}
	if !model.store.Current().Authenticated() {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.FaintText).
			Render("Press the number next to Sign In to authenticate."))
	}
	return strings.Join(lines, "\n")
}

func (view *homeView) Editing() bool { return false }
