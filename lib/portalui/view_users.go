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

// usersLoadedMsg carries the account listing.
type usersLoadedMsg struct {
	generation int
	users      []schema.User
	err        error
}

func (msg usersLoadedMsg) gen() int { return msg.generation }

// userMutatedMsg carries the result of a create, update, or delete.
type userMutatedMsg struct {
	generation int
	verb       string
	username   string
	err        error
}

func (msg userMutatedMsg) gen() int { return msg.generation }

type usersMode int

const (
	usersModeList usersMode = iota
	usersModeCreate
	usersModeEdit
	usersModeDelete
)

// usersView is the admin account manager: list, create, edit role and
// password, toggle active, and delete. Role changes and deletions
// carry an optional reason that lands in the audit log. There is no
// guard against an admin demoting or deactivating themself; the next
// request simply fails authorization.
type usersView struct {
	loading bool
	loadErr string
	users   []schema.User
	cursor  int

	mode   usersMode
	inputs []textinput.Model
	labels []string
	focus  int
}

func newUsersView() View {
	return &usersView{}
}

func (view *usersView) Fragment() string { return "#/admin/users" }

func (view *usersView) Init(model *Model) tea.Cmd {
	view.loading = true
	view.loadErr = ""
	generation := model.generation
	client := model.client
	return func() tea.Msg {
		users, err := client.Users(context.Background())
		return usersLoadedMsg{generation: generation, users: users, err: err}
	}
}

func (view *usersView) Update(model *Model, msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		view.loading = false
		if msg.err != nil {
			view.loadErr = errorMessage(msg.err)
			return view, nil
		}
		view.users = msg.users
		view.cursor = moveCursor(view.cursor, 0, len(view.users))
		return view, nil

	case userMutatedMsg:
		if msg.err != nil {
			model.setStatus(errorMessage(msg.err), toneWarning)
			return view, nil
		}
		model.setStatus("User "+msg.username+" "+msg.verb, toneSuccess)
		view.mode = usersModeList
		return view, view.Init(model)

	case tea.KeyMsg:
		if view.mode != usersModeList {
			return view.updateForm(model, msg)
		}
		switch msg.String() {
		case "up", "k":
			view.cursor = moveCursor(view.cursor, -1, len(view.users))
		case "down", "j":
			view.cursor = moveCursor(view.cursor, 1, len(view.users))
		case "n":
			view.openForm(usersModeCreate,
				[]string{"Username", "Password", "Role (user, developer, admin)"},
				[]string{"", "", string(schema.RoleUser)})
			return view, view.inputs[0].Focus()
		case "e":
			if view.cursor < len(view.users) {
				selected := view.users[view.cursor]
				view.openForm(usersModeEdit,
					[]string{"Role (user, developer, admin)", "New password (blank keeps current)", "Reason (for role changes)"},
					[]string{string(selected.Role), "", ""})
				return view, view.inputs[0].Focus()
			}
		case "t":
			if view.cursor < len(view.users) {
				return view, view.toggleActive(model, view.users[view.cursor])
			}
		case "d":
			if view.cursor < len(view.users) {
				view.openForm(usersModeDelete, []string{"Reason"}, []string{""})
				return view, view.inputs[0].Focus()
			}
		}
	}
	return view, nil
}

// openForm switches to a modal form with the given fields.
func (view *usersView) openForm(mode usersMode, labels, values []string) {
	view.mode = mode
	view.labels = labels
	view.focus = 0
	view.inputs = make([]textinput.Model, len(labels))
	for i := range labels {
		input := textinput.New()
		input.Prompt = "> "
		input.CharLimit = 200
		input.SetValue(values[i])
		if strings.HasPrefix(labels[i], "Password") || strings.HasPrefix(labels[i], "New password") {
			input.EchoMode = textinput.EchoPassword
		}
		view.inputs[i] = input
	}
}

func (view *usersView) updateForm(model *Model, msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		view.mode = usersModeList
		return view, nil
	case "tab", "down":
		return view, view.setFocus(view.focus + 1)
	case "shift+tab", "up":
		return view, view.setFocus(view.focus - 1)
	case "enter":
		if view.focus < len(view.inputs)-1 {
			return view, view.setFocus(view.focus + 1)
		}
		return view.submitForm(model)
	default:
		var cmd tea.Cmd
		view.inputs[view.focus], cmd = view.inputs[view.focus].Update(msg)
		return view, cmd
	}
}

func (view *usersView) setFocus(index int) tea.Cmd {
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

func (view *usersView) submitForm(model *Model) (View, tea.Cmd) {
	generation := model.generation
	client := model.client

	switch view.mode {
	case usersModeCreate:
		request := portalclient.CreateUserRequest{
			Username: strings.TrimSpace(view.inputs[0].Value()),
			Password: view.inputs[1].Value(),
			Role:     schema.Role(strings.TrimSpace(view.inputs[2].Value())),
			Active:   true,
		}
		if !request.Role.Valid() {
			model.setStatus("unknown role "+string(request.Role), toneWarning)
			return view, nil
		}
		return view, func() tea.Msg {
			_, err := client.CreateUser(context.Background(), request)
			return userMutatedMsg{generation: generation, verb: "created", username: request.Username, err: err}
		}

	case usersModeEdit:
		selected := view.users[view.cursor]
		role := schema.Role(strings.TrimSpace(view.inputs[0].Value()))
		if !role.Valid() {
			model.setStatus("unknown role "+string(role), toneWarning)
			return view, nil
		}
		request := portalclient.UpdateUserRequest{Password: view.inputs[1].Value()}
		reason := ""
		if role != selected.Role {
			request.Role = role
			reason = strings.TrimSpace(view.inputs[2].Value())
		}
		return view, func() tea.Msg {
			_, err := client.UpdateUser(context.Background(), selected.Username, request, reason)
			return userMutatedMsg{generation: generation, verb: "updated", username: selected.Username, err: err}
		}

	case usersModeDelete:
		selected := view.users[view.cursor]
		reason := strings.TrimSpace(view.inputs[0].Value())
		return view, func() tea.Msg {
			err := client.DeleteUser(context.Background(), selected.Username, reason)
			return userMutatedMsg{generation: generation, verb: "deleted", username: selected.Username, err: err}
		}
	}
	return view, nil
}

func (view *usersView) toggleActive(model *Model, user schema.User) tea.Cmd {
	generation := model.generation
	client := model.client
	active := !user.Active
	verb := "deactivated"
	if active {
		verb = "activated"
	}
	return func() tea.Msg {
		request := portalclient.UpdateUserRequest{Active: &active}
		_, err := client.UpdateUser(context.Background(), user.Username, request, "")
		return userMutatedMsg{generation: generation, verb: verb, username: user.Username, err: err}
	}
}

func (view *usersView) Render(model *Model) string {
	theme := model.theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	switch {
	case view.loading:
		return "\n" + faint.Render("loading accounts...")
	case view.loadErr != "":
		return "\n" + lipgloss.NewStyle().Foreground(theme.ToneDanger).Render(view.loadErr)
	}

	if view.mode != usersModeList {
		title := map[usersMode]string{
			usersModeCreate: "Create account",
			usersModeEdit:   "Edit " + view.selectedUsername(),
			usersModeDelete: "Delete " + view.selectedUsername() + "? enter confirms, esc cancels",
		}[view.mode]
		var b strings.Builder
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.NormalText).Bold(true).Render(title) + "\n\n")
		for i, input := range view.inputs {
			b.WriteString("  " + faint.Render(view.labels[i]) + "\n  " + input.View() + "\n\n")
		}
		return b.String()
	}

	rows := make([][]string, len(view.users))
	for i, user := range view.users {
		state := "active"
		if !user.Active {
			state = "inactive"
		}
		rows[i] = []string{user.Username, string(user.Role), state}
	}
	out := "\n" + renderTable(theme, []string{"USERNAME", "ROLE", "STATE"}, rows, view.cursor)
	out += "\n" + lipgloss.NewStyle().Foreground(theme.HelpText).
		Render("n new · e edit · t toggle active · d delete · j/k move")
	return out
}

func (view *usersView) selectedUsername() string {
	if view.cursor < len(view.users) {
		return view.users[view.cursor].Username
	}
	return ""
}

func (view *usersView) Editing() bool { return view.mode != usersModeList }
