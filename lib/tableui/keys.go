// Copyright 2026 The Taverna Authors
// SPDX-License-Identifier: Apache-2.0

package tableui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the table manager TUI.
type KeyMap struct {
	// Navigation (context-sensitive: grid movement when the table
	// pane has focus, menu cursor movement otherwise).
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Focus switching between the table grid and the menu pane.
	FocusToggle key.Binding

	// Table operations.
	Select   key.Binding // Select or deselect the table under the cursor.
	Unselect key.Binding // Drop the current selection.
	Complete key.Binding // Complete the selected table's order (confirmed).

	// Menu operations against the selected table.
	AddItem    key.Binding
	RemoveItem key.Binding

	// Persistence.
	SaveNow key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (h/j/k/l) alongside the arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "right"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch pane"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "select table"),
	),
	Unselect: key.NewBinding(
		key.WithKeys("u", "esc"),
		key.WithHelp("u", "unselect"),
	),
	Complete: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "complete order"),
	),
	AddItem: key.NewBinding(
		key.WithKeys("+", "a", "enter"),
		key.WithHelp("+", "add item"),
	),
	RemoveItem: key.NewBinding(
		key.WithKeys("-", "x"),
		key.WithHelp("-", "remove item"),
	),
	SaveNow: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
