// Copyright 2026 The Taverna Authors
// SPDX-License-Identifier: Apache-2.0

package tableui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the table manager TUI. Colors
// use lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// TableAccents cycle across the table grid so neighboring tables
	// are visually distinct. Indexed by table position modulo the
	// palette length.
	TableAccents []lipgloss.Color

	// Selected table and menu cursor.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Occupied-table highlight (tables with an active order).
	OccupiedText lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Status line error text (failed saves).
	ErrorText lipgloss.Color

	// Confirm dialog.
	DialogBorder     lipgloss.Color
	DialogBackground lipgloss.Color
}

// DefaultTheme is the built-in palette. The table accents follow the
// warm pastel cycle of the desktop original.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("243"),

	TableAccents: []lipgloss.Color{
		"203", // tomato
		"117", // sky blue
		"120", // pale green
		"218", // pink
		"214", // orange
		"228", // khaki
		"209", // salmon
		"183", // plum
		"152", // light blue
		"120", // pale green
		"220", // gold
		"182", // thistle
		"250", // light gray
		"230", // lemon chiffon
	},

	SelectedBackground: lipgloss.Color("24"),
	SelectedForeground: lipgloss.Color("255"),

	OccupiedText: lipgloss.Color("215"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("243"),

	ErrorText: lipgloss.Color("203"),

	DialogBorder:     lipgloss.Color("203"),
	DialogBackground: lipgloss.Color("236"),
}

// Accent returns the accent color for a table at the given grid
// position.
func (theme Theme) Accent(position int) lipgloss.Color {
	if len(theme.TableAccents) == 0 {
		return theme.NormalText
	}
	return theme.TableAccents[position%len(theme.TableAccents)]
}
