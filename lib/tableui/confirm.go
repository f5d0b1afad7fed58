// Copyright 2026 The Taverna Authors
// SPDX-License-Identifier: Apache-2.0

package tableui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// confirmAction identifies what a confirm dialog decides.
type confirmAction int

const (
	// confirmComplete asks before clearing and archiving the selected
	// table's order.
	confirmComplete confirmAction = iota
	// confirmQuit asks before the final save and exit.
	confirmQuit
)

// confirmDialog is a modal yes/no question. While active it captures
// all keyboard input: y or enter confirms, n or escape cancels.
type confirmDialog struct {
	question string
	action   confirmAction
	tableID  int // Target table for confirmComplete.
}

// Render produces the dialog box. The caller centers it over the
// regular view.
func (dialog *confirmDialog) Render(theme Theme) string {
	hint := "[y] Ναι   [n] Όχι"

	width := ansi.StringWidth(dialog.question)
	if hintWidth := ansi.StringWidth(hint); hintWidth > width {
		width = hintWidth
	}

	questionStyle := lipgloss.NewStyle().
		Foreground(theme.NormalText).
		Background(theme.DialogBackground)
	hintStyle := lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Background(theme.DialogBackground)

	body := strings.Join([]string{
		questionStyle.Render(padToWidth(dialog.question, width)),
		hintStyle.Render(padToWidth("", width)),
		hintStyle.Render(padToWidth(hint, width)),
	}, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.DialogBorder).
		Background(theme.DialogBackground).
		Padding(0, 2).
		Render(body)
}

// padToWidth right-pads s with spaces to the given display width.
func padToWidth(s string, width int) string {
	gap := width - ansi.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
