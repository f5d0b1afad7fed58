// Copyright 2026 The Taverna Authors
// SPDX-License-Identifier: Apache-2.0

// Package tableui is the terminal presentation layer over the order
// ledger: a grid of tables on the left, the menu on the right, and a
// status line at the bottom.
//
// The package holds no order state of its own. Every mutation goes
// through the ledger's public operations, and destructive actions
// (order completion, quit) are gated behind a confirm dialog. A
// clock-driven ticker saves the live-orders snapshot on a fixed
// interval; quitting saves first.
package tableui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kapoukapou/taverna/lib/catalog"
	"github.com/kapoukapou/taverna/lib/clock"
	"github.com/kapoukapou/taverna/lib/ledger"
	"github.com/kapoukapou/taverna/lib/orderstore"
)

// FocusRegion identifies which pane receives navigation keys.
type FocusRegion int

const (
	// FocusTables means navigation moves the table grid cursor.
	FocusTables FocusRegion = iota
	// FocusMenu means navigation moves the menu item cursor.
	FocusMenu
)

// gridColumns matches the desktop original's four-wide table grid.
const gridColumns = 4

// DefaultSaveInterval is the auto-save period.
const DefaultSaveInterval = 120 * time.Second

// saveTickMsg is delivered on every auto-save ticker tick.
type saveTickMsg time.Time

// saveResultMsg reports an asynchronous snapshot save.
type saveResultMsg struct {
	when time.Time
	err  error
}

// Config wires the model's collaborators. Ledger, Catalog, Store, and
// Clock are required; a nil Logger discards diagnostics; a zero
// SaveInterval uses DefaultSaveInterval.
type Config struct {
	Ledger       *ledger.Ledger
	Catalog      *catalog.Catalog
	Store        *orderstore.Store
	Clock        clock.Clock
	Logger       *slog.Logger
	SaveInterval time.Duration
}

// menuRow is one rendered row of the menu pane: either a category
// header or a priced item. Item rows are numbered consecutively so
// the cursor skips headers.
type menuRow struct {
	header    string
	item      catalog.Item
	itemIndex int // -1 for header rows.
}

// Model is the bubbletea model for the table manager.
type Model struct {
	ledger *ledger.Ledger
	store  *orderstore.Store
	clock  clock.Clock
	logger *slog.Logger

	keys  KeyMap
	theme Theme

	tableIDs  []int
	menuRows  []menuRow
	itemCount int

	width  int
	height int

	focus       FocusRegion
	tableCursor int // Index into tableIDs.
	selectedID  int // Selected table id; 0 means none.
	menuCursor  int // Item index in menu order.

	confirm *confirmDialog

	ticker    *clock.Ticker
	lastSaved time.Time
	saveError error
	status    string

	quitting bool
}

// New builds the model and starts the auto-save ticker.
func New(cfg Config) *Model {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	interval := cfg.SaveInterval
	if interval <= 0 {
		interval = DefaultSaveInterval
	}

	var rows []menuRow
	itemCount := 0
	for _, category := range cfg.Catalog.Categories {
		rows = append(rows, menuRow{header: category.Label, itemIndex: -1})
		for _, item := range category.Items {
			rows = append(rows, menuRow{item: item, itemIndex: itemCount})
			itemCount++
		}
	}

	return &Model{
		ledger:    cfg.Ledger,
		store:     cfg.Store,
		clock:     cfg.Clock,
		logger:    logger,
		keys:      DefaultKeyMap,
		theme:     DefaultTheme,
		tableIDs:  cfg.Ledger.TableIDs(),
		menuRows:  rows,
		itemCount: itemCount,
		ticker:    cfg.Clock.NewTicker(interval),
	}
}

// Init starts listening for auto-save ticks.
func (m *Model) Init() tea.Cmd {
	return m.listenForSaveTicks()
}

// listenForSaveTicks blocks on the ticker and converts the next tick
// into a message. Re-issued after every tick.
func (m *Model) listenForSaveTicks() tea.Cmd {
	return func() tea.Msg {
		return saveTickMsg(<-m.ticker.C)
	}
}

// saveCmd snapshots the ledger to the orders file off the UI loop.
// The ledger's own mutex orders the save against interactive
// mutations.
func (m *Model) saveCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.store.Save(m.ledger)
		return saveResultMsg{when: m.clock.Now(), err: err}
	}
}

// Update is the bubbletea update loop.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case saveTickMsg:
		return m, tea.Batch(m.saveCmd(), m.listenForSaveTicks())

	case saveResultMsg:
		if msg.err != nil {
			// In-memory state is unaffected; the next tick retries.
			m.saveError = msg.err
			m.logger.Error("saving live orders", "error", msg.err)
		} else {
			m.saveError = nil
			m.lastSaved = msg.when
		}
		return m, nil

	case tea.KeyMsg:
		if m.confirm != nil {
			return m.updateConfirm(msg)
		}
		return m.updateKey(msg)
	}
	return m, nil
}

// updateConfirm routes keys while a confirm dialog is open.
func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		dialog := m.confirm
		m.confirm = nil
		switch dialog.action {
		case confirmComplete:
			m.completeOrder(dialog.tableID)
			return m, nil
		case confirmQuit:
			return m.quit()
		}
	case "n", "N", "esc", "q":
		m.confirm = nil
	}
	return m, nil
}

// updateKey handles regular keyboard input.
func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.confirm = &confirmDialog{
			question: "Είστε σίγουρος/η ότι θέλετε να κλείσετε την εφαρμογή;",
			action:   confirmQuit,
		}
		return m, nil

	case key.Matches(msg, m.keys.SaveNow):
		return m, m.saveCmd()

	case key.Matches(msg, m.keys.FocusToggle):
		if m.focus == FocusTables {
			m.focus = FocusMenu
		} else {
			m.focus = FocusTables
		}
		return m, nil

	case key.Matches(msg, m.keys.Unselect):
		m.selectedID = 0
		return m, nil
	}

	if m.focus == FocusTables {
		return m.updateTablesKey(msg)
	}
	return m.updateMenuKey(msg)
}

// updateTablesKey handles input while the table grid has focus.
func (m *Model) updateTablesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.tableCursor-gridColumns >= 0 {
			m.tableCursor -= gridColumns
		}
	case key.Matches(msg, m.keys.Down):
		if m.tableCursor+gridColumns < len(m.tableIDs) {
			m.tableCursor += gridColumns
		}
	case key.Matches(msg, m.keys.Left):
		if m.tableCursor > 0 {
			m.tableCursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.tableCursor < len(m.tableIDs)-1 {
			m.tableCursor++
		}
	case key.Matches(msg, m.keys.Select):
		id := m.tableIDs[m.tableCursor]
		if m.selectedID == id {
			m.selectedID = 0
		} else {
			m.selectedID = id
			m.status = fmt.Sprintf("Τραπέζι %d επιλέχθηκε", id)
		}
	case key.Matches(msg, m.keys.Complete):
		id := m.tableIDs[m.tableCursor]
		view, err := m.ledger.View(id)
		if err != nil {
			m.logger.Error("viewing table", "table", id, "error", err)
			return m, nil
		}
		if !view.Occupied() {
			m.status = fmt.Sprintf("Τραπέζι %d δεν έχει παραγγελία", id)
			return m, nil
		}
		m.confirm = &confirmDialog{
			question: fmt.Sprintf("Ολοκλήρωση παραγγελίας για το τραπέζι %d;", id),
			action:   confirmComplete,
			tableID:  id,
		}
	}
	return m, nil
}

// updateMenuKey handles input while the menu pane has focus. Add and
// remove act on the selected table.
func (m *Model) updateMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.menuCursor < m.itemCount-1 {
			m.menuCursor++
		}
	case key.Matches(msg, m.keys.AddItem):
		m.adjustSelected(1)
	case key.Matches(msg, m.keys.RemoveItem):
		m.adjustSelected(-1)
	}
	return m, nil
}

// adjustSelected applies a ±1 quantity delta for the menu item under
// the cursor to the selected table. Without a selection, or with an
// empty menu, it is a no-op. Removals of items the table does not
// have are ignored.
func (m *Model) adjustSelected(delta int) {
	if m.selectedID == 0 || m.itemCount == 0 {
		return
	}
	item, ok := m.itemUnderCursor()
	if !ok {
		return
	}

	if delta < 0 {
		view, err := m.ledger.View(m.selectedID)
		if err != nil {
			m.logger.Error("viewing table", "table", m.selectedID, "error", err)
			return
		}
		if !hasLine(view, item.Name) {
			return
		}
	}

	if err := m.ledger.AddItem(m.selectedID, item.Name, delta); err != nil {
		m.logger.Error("updating order", "table", m.selectedID, "item", item.Name, "error", err)
		return
	}
	sign := "+1"
	if delta < 0 {
		sign = "-1"
	}
	m.status = fmt.Sprintf("Τραπέζι %d => %s %s %s€",
		m.selectedID, sign, item.Name, item.Price.StringFixed(2))
}

// itemUnderCursor resolves the menu cursor to its item.
func (m *Model) itemUnderCursor() (catalog.Item, bool) {
	for _, row := range m.menuRows {
		if row.itemIndex == m.menuCursor {
			return row.item, true
		}
	}
	return catalog.Item{}, false
}

func hasLine(view ledger.TableView, itemName string) bool {
	for _, line := range view.Lines {
		if line.ItemName == itemName {
			return true
		}
	}
	return false
}

// completeOrder clears the table and archives the receipt. Runs after
// the user confirmed.
func (m *Model) completeOrder(tableID int) {
	completed, err := m.ledger.CompleteOrder(tableID)
	if err != nil {
		m.logger.Error("completing order", "table", tableID, "error", err)
		return
	}
	if len(completed.Lines) > 0 {
		if err := m.store.Archive(completed); err != nil {
			// The order is already cleared; the receipt is lost but
			// live state stays consistent.
			m.logger.Error("archiving completed order", "table", tableID, "error", err)
			m.status = fmt.Sprintf("Σφάλμα αρχειοθέτησης: %v", err)
		} else {
			m.status = fmt.Sprintf("Τραπέζι %d: παραγγελία ολοκληρώθηκε, €%s",
				tableID, completed.Total.StringFixed(2))
		}
	}
	if m.selectedID == tableID {
		m.selectedID = 0
	}
}

// quit performs the final save and exits. Runs after the user
// confirmed. The save is synchronous so the snapshot is on disk
// before the program stops; a failed save is logged and quitting
// proceeds, leaving the previous on-disk snapshot in place.
func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.ticker.Stop()
	if err := m.store.Save(m.ledger); err != nil {
		m.logger.Error("final save before exit", "error", err)
	}
	m.quitting = true
	return m, tea.Quit
}
