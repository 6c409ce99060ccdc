// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/streamline-portal/portal/lib/portalclient"
)

// errorMessage extracts the user-facing text from an API error. HTTP
// failures carry the server's normalized detail; everything else
// (network failures, cancelled contexts) reports the transport error.
func errorMessage(err error) string {
	if statusErr := portalclient.AsStatusError(err); statusErr != nil {
		return statusErr.Detail
	}
	return err.Error()
}

// renderTable draws rows under a header, padding each column to its
// widest cell. cursor selects the highlighted row; pass -1 for none.
func renderTable(theme Theme, headers []string, rows [][]string, cursor int) string {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	pad := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = cell + strings.Repeat(" ", widths[i]-len(cell))
		}
		return strings.Join(parts, "  ")
	}

	headerStyle := lipgloss.NewStyle().Foreground(theme.FaintText).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	selectedStyle := lipgloss.NewStyle().
		Foreground(theme.SelectedForeground).
		Background(theme.SelectedBackground)

	var b strings.Builder
	b.WriteString("  " + headerStyle.Render(pad(headers)) + "\n")
	for i, row := range rows {
		if i == cursor {
			b.WriteString("> " + selectedStyle.Render(pad(row)) + "\n")
		} else {
			b.WriteString("  " + rowStyle.Render(pad(row)) + "\n")
		}
	}
	return b.String()
}

// moveCursor clamps cursor movement over a list of the given length.
func moveCursor(cursor, delta, length int) int {
	cursor += delta
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= length {
		cursor = length - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
