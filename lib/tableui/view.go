// Copyright 2026 The Taverna Authors
// SPDX-License-Identifier: Apache-2.0

package tableui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	tableBoxWidth  = 24
	menuPaneWidth  = 36
	shortTimeForm  = "15:04"
	statusTimeForm = "15:04:05"
)

// View renders the full screen: table grid, menu pane, status line,
// and the confirm dialog overlay when one is open.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, m.renderTables(), m.renderMenu())
	view := lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatus())

	if m.confirm != nil {
		dialogLines := strings.Split(m.confirm.Render(m.theme), "\n")
		anchorX := (m.width - ansi.StringWidth(dialogLines[0])) / 2
		anchorY := (m.height - len(dialogLines)) / 2
		if anchorX < 0 {
			anchorX = 0
		}
		if anchorY < 0 {
			anchorY = 0
		}
		view = spliceOverlay(view, dialogLines, anchorX, anchorY)
	}
	return view
}

// renderTables draws the four-column table grid.
func (m *Model) renderTables() string {
	var rows []string
	var currentRow []string

	for position, id := range m.tableIDs {
		currentRow = append(currentRow, m.renderTableBox(position, id))
		if len(currentRow) == gridColumns {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, currentRow...))
			currentRow = nil
		}
	}
	if len(currentRow) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, currentRow...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderTableBox draws one table: id, start time, order lines, total.
func (m *Model) renderTableBox(position, id int) string {
	view, err := m.ledger.View(id)
	if err != nil {
		// Table ids come from the ledger itself, so this is
		// unreachable short of a programming error.
		m.logger.Error("viewing table", "table", id, "error", err)
		return ""
	}

	accent := m.theme.Accent(position)

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	title := titleStyle.Render(fmt.Sprintf("Τραπέζι %d", id))
	if id == m.selectedID {
		title = lipgloss.NewStyle().
			Bold(true).
			Background(m.theme.SelectedBackground).
			Foreground(m.theme.SelectedForeground).
			Render(fmt.Sprintf(" Τραπέζι %d ", id))
	}

	lines := []string{title}
	if view.Occupied() {
		faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)
		lines = append(lines, faint.Render("Έναρξη "+view.StartTime.Format(shortTimeForm)))
		itemStyle := lipgloss.NewStyle().Foreground(m.theme.OccupiedText)
		for _, line := range view.Lines {
			text := fmt.Sprintf("%dx %s", line.Quantity, line.ItemName)
			lines = append(lines, itemStyle.Render(truncateTo(text, tableBoxWidth-4)))
		}
		totalStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.NormalText)
		lines = append(lines, totalStyle.Render("Σύνολο: €"+view.Total.StringFixed(2)))
	} else {
		lines = append(lines, lipgloss.NewStyle().Foreground(m.theme.FaintText).Render("ελεύθερο"))
	}

	borderColor := accent
	border := lipgloss.NormalBorder()
	if m.focus == FocusTables && position == m.tableCursor {
		border = lipgloss.ThickBorder()
		borderColor = m.theme.HeaderForeground
	}

	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(borderColor).
		Width(tableBoxWidth - 2).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// renderMenu draws the catalog pane: category headers with their
// priced items, and the item cursor.
func (m *Model) renderMenu() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.theme.HeaderForeground)
	categoryStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.OccupiedText)
	itemStyle := lipgloss.NewStyle().Foreground(m.theme.NormalText)
	cursorStyle := lipgloss.NewStyle().
		Background(m.theme.SelectedBackground).
		Foreground(m.theme.SelectedForeground)

	innerWidth := menuPaneWidth - 4

	lines := []string{headerStyle.Render("ΚΑΤΑΛΟΓΟΣ"), ""}
	if len(m.menuRows) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(m.theme.FaintText).Render("(κενός κατάλογος)"))
	}
	for _, row := range m.menuRows {
		if row.itemIndex < 0 {
			lines = append(lines, "", categoryStyle.Render(truncateTo(row.header, innerWidth)))
			continue
		}

		price := row.item.Price.StringFixed(2) + " €"
		name := truncateTo(row.item.Name, innerWidth-ansi.StringWidth(price)-1)
		gap := innerWidth - ansi.StringWidth(name) - ansi.StringWidth(price)
		if gap < 1 {
			gap = 1
		}
		text := name + strings.Repeat(" ", gap) + price

		if row.itemIndex == m.menuCursor {
			lines = append(lines, cursorStyle.Render(text))
		} else {
			lines = append(lines, itemStyle.Render(text))
		}
	}

	borderColor := m.theme.BorderColor
	if m.focus == FocusMenu {
		borderColor = m.theme.HeaderForeground
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Width(menuPaneWidth - 2).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// renderStatus draws the bottom line: selection state, the last
// status message, save health, and key help.
func (m *Model) renderStatus() string {
	faint := lipgloss.NewStyle().Foreground(m.theme.HelpText)

	var parts []string
	if m.selectedID != 0 {
		parts = append(parts, fmt.Sprintf("Τραπέζι %d", m.selectedID))
	} else {
		parts = append(parts, "κανένα τραπέζι")
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	switch {
	case m.saveError != nil:
		errorStyle := lipgloss.NewStyle().Foreground(m.theme.ErrorText)
		parts = append(parts, errorStyle.Render(fmt.Sprintf("σφάλμα αποθήκευσης: %v", m.saveError)))
	case !m.lastSaved.IsZero():
		parts = append(parts, "αποθηκεύτηκε "+m.lastSaved.Format(statusTimeForm))
	}

	help := "tab εστίαση · enter επιλογή · +/- είδος · c ολοκλήρωση · s αποθήκευση · q έξοδος"
	line := strings.Join(parts, "  │  ") + "   " + faint.Render(help)
	if m.width > 0 {
		line = ansi.Truncate(line, m.width, "…")
	}
	return line
}

// truncateTo clips s to the given display width with an ellipsis.
func truncateTo(s string, width int) string {
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width-1, "…")
}
