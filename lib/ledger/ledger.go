// Copyright 2026 The Taverna Authors
// SPDX-License-Identifier: Apache-2.0

package ledger

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kapoukapou/taverna/lib/catalog"
	"github.com/kapoukapou/taverna/lib/clock"
)

// ErrUnknownTable reports a mutation or query against a table id that
// is not in the ledger's pool. Table ids are fixed at construction,
// so this is always a caller bug, not a runtime condition.
var ErrUnknownTable = errors.New("unknown table")

// OrderLine is one priced line of a table's order: the quantity, the
// unit price from the catalog (zero for unknown items), and their
// product at full precision.
type OrderLine struct {
	ItemName  string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// TableView is a read-only snapshot of one table: its lines sorted by
// item name, the order total, and the start time (zero when the table
// has no active order).
type TableView struct {
	ID        int
	StartTime time.Time
	Lines     []OrderLine
	Total     decimal.Decimal
}

// Occupied reports whether the table has an active order.
func (v TableView) Occupied() bool { return len(v.Lines) > 0 }

// CompletedOrder is the state CompleteOrder captured immediately
// before clearing a table, plus the completion timestamp. The archive
// writer records it; an empty table completes to an empty record.
type CompletedOrder struct {
	TableID     int
	StartTime   time.Time
	Lines       []OrderLine
	Total       decimal.Decimal
	CompletedAt time.Time
}

// Line is one record of the live-orders snapshot: a single order line
// together with its table's id and start time.
type Line struct {
	TableID   int
	ItemName  string
	Quantity  int
	StartTime time.Time
}

// Ledger owns the fixed table pool and prices orders against the
// catalog's index. Safe for concurrent use.
type Ledger struct {
	mu     sync.Mutex
	tables map[int]*table
	ids    []int
	prices catalog.PriceIndex
	clock  clock.Clock
}

// New creates a ledger with tables numbered 1..tableCount. The price
// index is shared read-only with the catalog's owner.
func New(tableCount int, prices catalog.PriceIndex, clk clock.Clock) *Ledger {
	ledger := &Ledger{
		tables: make(map[int]*table, tableCount),
		ids:    make([]int, 0, tableCount),
		prices: prices,
		clock:  clk,
	}
	for id := 1; id <= tableCount; id++ {
		ledger.tables[id] = newTable(id)
		ledger.ids = append(ledger.ids, id)
	}
	return ledger
}

// TableIDs returns every table id in ascending order.
func (l *Ledger) TableIDs() []int {
	ids := make([]int, len(l.ids))
	copy(ids, l.ids)
	return ids
}

// TableCount returns the size of the table pool.
func (l *Ledger) TableCount() int { return len(l.ids) }

// AddItem applies a quantity delta to one of the table's order lines.
// A negative quantity removes. Adding the first items to an empty
// table stamps its start time; a removal that empties the order
// clears it. Item names need not exist in the catalog.
func (l *Ledger) AddItem(tableID int, itemName string, quantity int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	target, ok := l.tables[tableID]
	if !ok {
		return fmt.Errorf("adding %q to table %d: %w", itemName, tableID, ErrUnknownTable)
	}

	if len(target.orders) == 0 && quantity > 0 {
		target.startTime = l.clock.Now()
	}
	target.apply(itemName, quantity)
	return nil
}

// RemoveItem is AddItem with the sign flipped.
func (l *Ledger) RemoveItem(tableID int, itemName string, quantity int) error {
	return l.AddItem(tableID, itemName, -quantity)
}

// Total returns the table's order total: the sum of quantity times
// catalog price over its lines, at full precision.
func (l *Ledger) Total(tableID int) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	target, ok := l.tables[tableID]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("totaling table %d: %w", tableID, ErrUnknownTable)
	}
	return l.totalLocked(target), nil
}

// View returns a snapshot of one table for display.
func (l *Ledger) View(tableID int) (TableView, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	target, ok := l.tables[tableID]
	if !ok {
		return TableView{}, fmt.Errorf("viewing table %d: %w", tableID, ErrUnknownTable)
	}
	return l.viewLocked(target), nil
}

// CompleteOrder atomically clears the table's order and start time,
// returning the lines and total in effect immediately before the
// clear so the caller can archive them. Completing an empty table is
// a legal no-op that returns an empty record.
func (l *Ledger) CompleteOrder(tableID int) (CompletedOrder, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	target, ok := l.tables[tableID]
	if !ok {
		return CompletedOrder{}, fmt.Errorf("completing table %d: %w", tableID, ErrUnknownTable)
	}

	view := l.viewLocked(target)
	completed := CompletedOrder{
		TableID:     tableID,
		StartTime:   view.StartTime,
		Lines:       view.Lines,
		Total:       view.Total,
		CompletedAt: l.clock.Now(),
	}
	target.clear()
	return completed, nil
}

// Snapshot returns every active order line for persistence: tables in
// ascending id order, each table's lines in ascending item-name
// order. Tables with no active order contribute nothing.
func (l *Ledger) Snapshot() []Line {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lines []Line
	for _, id := range l.ids {
		target := l.tables[id]
		if target.startTime.IsZero() || len(target.orders) == 0 {
			continue
		}
		for _, itemName := range sortedItemNames(target.orders) {
			lines = append(lines, Line{
				TableID:   id,
				ItemName:  itemName,
				Quantity:  target.orders[itemName],
				StartTime: target.startTime,
			})
		}
	}
	return lines
}

// Restore replaces the ledger's entire live state with the given
// snapshot records. Every table is cleared first, including tables
// with no records. Each record sets its exact quantity directly,
// bypassing the AddItem delta rule; a table's start time becomes the
// timestamp of its first record in slice order. Records for unknown
// table ids, with quantities below 1, or with zero start times are
// ignored: applying them would break the order invariants.
func (l *Ledger) Restore(lines []Line) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, target := range l.tables {
		target.clear()
	}
	for _, line := range lines {
		target, ok := l.tables[line.TableID]
		if !ok {
			continue
		}
		if line.Quantity < 1 || line.StartTime.IsZero() {
			continue
		}
		target.orders[line.ItemName] = line.Quantity
		if target.startTime.IsZero() {
			target.startTime = line.StartTime
		}
	}
}

func (l *Ledger) totalLocked(target *table) decimal.Decimal {
	total := decimal.Zero
	for itemName, quantity := range target.orders {
		total = total.Add(l.prices.Price(itemName).Mul(decimal.NewFromInt(int64(quantity))))
	}
	return total
}

func (l *Ledger) viewLocked(target *table) TableView {
	view := TableView{
		ID:        target.id,
		StartTime: target.startTime,
		Total:     decimal.Zero,
	}
	for _, itemName := range sortedItemNames(target.orders) {
		quantity := target.orders[itemName]
		unitPrice := l.prices.Price(itemName)
		lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
		view.Lines = append(view.Lines, OrderLine{
			ItemName:  itemName,
			Quantity:  quantity,
			UnitPrice: unitPrice,
			LineTotal: lineTotal,
		})
		view.Total = view.Total.Add(lineTotal)
	}
	return view
}

func sortedItemNames(orders map[string]int) []string {
	names := make([]string, 0, len(orders))
	for name := range orders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
