// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/streamline-portal/portal/lib/lifecycle"
	"github.com/streamline-portal/portal/lib/portalclient"
	"github.com/streamline-portal/portal/lib/session"
)

// View is one routed screen of the TUI. Views are self-contained:
// they own their data, loading state, and keybindings, and a
// navigation replaces the current view wholesale.
type View interface {
	// Fragment is the canonical fragment for this view, used to
	// highlight the matching navigation link.
	Fragment() string

	// Init returns the command that loads the view's data. Called
	// once per navigation; the returned command is stamped with the
	// navigation's generation.
	Init(model *Model) tea.Cmd

	// Update handles a message and returns the (possibly replaced)
	// view plus a follow-up command.
	Update(model *Model, msg tea.Msg) (View, tea.Cmd)

	// Render draws the view body.
	Render(model *Model) string

	// Editing reports whether keystrokes currently go to a text
	// input, which suspends the global keymap.
	Editing() bool
}

// supersedable is implemented by every data-fetch message. Messages
// whose generation is not the model's current one belong to a
// navigation the user has since left and are dropped without effect.
type supersedable interface {
	gen() int
}

// statusTone styles the transient status line.
type statusTone int

const (
	toneInfo statusTone = iota
	toneSuccess
	toneWarning
)

// Model is the top-level bubbletea model for the portal TUI.
type Model struct {
	client     *portalclient.Client
	store      *session.Store
	controller *lifecycle.Controller
	theme      Theme

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int

	// Navigation state. generation increments on every navigation;
	// in-flight fetches stamped with an older generation resolve into
	// dropped messages.
	fragment   string
	generation int
	current    View

	// Transient status line, cleared on navigation.
	status     string
	statusTone statusTone

	quitting bool
}

// NewModel creates the TUI model. startFragment selects the initial
// view ("" means home). The session store should already be restored.
func NewModel(client *portalclient.Client, store *session.Store, startFragment string) Model {
	model := Model{
		client:     client,
		store:      store,
		controller: lifecycle.NewController(client),
		theme:      DefaultTheme,
		generation: 1,
		fragment:   startFragment,
		current:    resolve(startFragment),
	}
	return model
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.current.Init(&m)
}

// navigate clears the status line, supersedes in-flight fetches,
// resolves the fragment through the route table, and starts the new
// view's data load. This is the single navigation entry point.
func (m *Model) navigate(fragment string) tea.Cmd {
	m.status = ""
	m.statusTone = toneInfo
	m.generation++
	m.fragment = fragment
	m.current = resolve(fragment)
	return m.current.Init(m)
}

// setStatus sets the transient status line.
func (m *Model) setStatus(message string, tone statusTone) {
	m.status = message
	m.statusTone = tone
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case logRecordMsg:
		tone := toneInfo
		if msg.level >= slog.LevelWarn {
			tone = toneWarning
		}
		m.setStatus(msg.summary, tone)
		return m, nil

	case tea.KeyMsg:
		if m.current == nil || !m.current.Editing() {
			switch msg.String() {
			case "ctrl+c", "q":
				m.quitting = true
				return m, tea.Quit
			case "r":
				// Reload the current view. Counts as a navigation so
				// stale fetches from before the reload are dropped.
				return m, m.navigate(m.fragment)
			default:
				if link, ok := navShortcut(msg.String(), m.store.Current()); ok {
					return m, m.navigate(link.fragment)
				}
			}
		} else if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	default:
		if stamped, ok := msg.(supersedable); ok && stamped.gen() != m.generation {
			// A fetch from a superseded navigation. The view it was
			// loading is gone; discard the result.
			return m, nil
		}
	}

	if m.current == nil {
		return m, nil
	}
	view, cmd := m.current.Update(&m, msg)
	m.current = view
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	theme := m.theme
	header := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true).
		Render("Streamline Portal")
	sessionInfo := lipgloss.NewStyle().Foreground(theme.FaintText).Render(sessionLine(m.store.Current()))

	var b strings.Builder
	b.WriteString(header + "  " + sessionInfo + "\n")
	b.WriteString(renderNav(m) + "\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.BorderColor).Render(strings.Repeat("─", max(m.width, 20))) + "\n")

	if m.current != nil {
		b.WriteString(m.current.Render(&m))
	}

	if m.status != "" {
		color := theme.FaintText
		switch m.statusTone {
		case toneSuccess:
			color = theme.ToneSuccess
		case toneWarning:
			color = theme.ToneWarning
		}
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(color).Render(m.status) + "\n")
	}

	help := "q quit · r reload · 1-9 navigate"
	b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.HelpText).Render(help))
	return b.String()
}

// sessionLine formats the session summary shown next to the title.
func sessionLine(current session.Session) string {
	if !current.Authenticated() {
		return "no active session"
	}
	return "signed in as " + current.Username + " (" + string(current.Role) + ")"
}
