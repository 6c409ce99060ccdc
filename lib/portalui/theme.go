// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/streamline-portal/portal/lib/lifecycle"
	"github.com/streamline-portal/portal/lib/schema"
)

// Theme defines the color palette for the portal TUI. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Lifecycle status colors.
	StatusDraft       lipgloss.Color
	StatusSubmitted   lipgloss.Color
	StatusApproved    lipgloss.Color
	StatusRejected    lipgloss.Color
	StatusPublished   lipgloss.Color
	StatusUnpublished lipgloss.Color

	// Action tones.
	ToneSuccess lipgloss.Color
	ToneDanger  lipgloss.Color
	ToneWarning lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	ActiveNav        lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
}

// StatusColor returns the color for a plugin lifecycle status.
// Unknown values render as faint text.
func (theme Theme) StatusColor(status schema.Status) lipgloss.Color {
	switch status {
	case schema.StatusDraft:
		return theme.StatusDraft
	case schema.StatusSubmitted:
		return theme.StatusSubmitted
	case schema.StatusApproved:
		return theme.StatusApproved
	case schema.StatusRejected:
		return theme.StatusRejected
	case schema.StatusPublished:
		return theme.StatusPublished
	case schema.StatusUnpublished:
		return theme.StatusUnpublished
	default:
		return theme.FaintText
	}
}

// ToneColor returns the color for an action tone.
func (theme Theme) ToneColor(tone lifecycle.Tone) lipgloss.Color {
	switch tone {
	case lifecycle.ToneDanger:
		return theme.ToneDanger
	case lifecycle.ToneWarning:
		return theme.ToneWarning
	default:
		return theme.ToneSuccess
	}
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	StatusDraft:       lipgloss.Color("245"),
	StatusSubmitted:   lipgloss.Color("179"),
	StatusApproved:    lipgloss.Color("114"),
	StatusRejected:    lipgloss.Color("167"),
	StatusPublished:   lipgloss.Color("75"),
	StatusUnpublished: lipgloss.Color("138"),

	ToneSuccess: lipgloss.Color("114"),
	ToneDanger:  lipgloss.Color("167"),
	ToneWarning: lipgloss.Color("179"),

	HeaderForeground: lipgloss.Color("81"),
	ActiveNav:        lipgloss.Color("215"),
	BorderColor:      lipgloss.Color("238"),
	HelpText:         lipgloss.Color("243"),
}
