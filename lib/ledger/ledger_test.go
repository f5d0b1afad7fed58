// Copyright 2026 The Taverna Authors
// SPDX-License-Identifier: Apache-2.0

package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kapoukapou/taverna/lib/catalog"
	"github.com/kapoukapou/taverna/lib/clock"
)

var openingTime = time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testPrices() catalog.PriceIndex {
	return catalog.PriceIndex{
		"Greek Salad": price("6.50"),
		"Water":       price("1.00"),
		"Τσίπουρο":    price("4.50"),
	}
}

func newTestLedger(t *testing.T, tableCount int) (*Ledger, *clock.FakeClock) {
	t.Helper()
	fake := clock.Fake(openingTime)
	return New(tableCount, testPrices(), fake), fake
}

// mustView fetches a table view or fails the test.
func mustView(t *testing.T, l *Ledger, tableID int) TableView {
	t.Helper()
	view, err := l.View(tableID)
	if err != nil {
		t.Fatalf("View(%d): %v", tableID, err)
	}
	return view
}

// requireInvariant checks that orders-empty and start-time-absent
// agree for every table.
func requireInvariant(t *testing.T, l *Ledger) {
	t.Helper()
	for _, id := range l.TableIDs() {
		view := mustView(t, l, id)
		if (len(view.Lines) == 0) != view.StartTime.IsZero() {
			t.Fatalf("table %d: %d lines but startTime=%v", id, len(view.Lines), view.StartTime)
		}
	}
}

func TestNewCreatesFixedPool(t *testing.T) {
	l, _ := newTestLedger(t, 5)

	ids := l.TableIDs()
	if len(ids) != 5 {
		t.Fatalf("got %d tables, want 5", len(ids))
	}
	for i, id := range ids {
		if id != i+1 {
			t.Fatalf("TableIDs() = %v, want 1..5 ascending", ids)
		}
	}
	requireInvariant(t, l)
}

func TestAddItemStampsStartTimeOnFirstItem(t *testing.T) {
	l, fake := newTestLedger(t, 2)

	if err := l.AddItem(1, "Greek Salad", 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	view := mustView(t, l, 1)
	if !view.StartTime.Equal(openingTime) {
		t.Errorf("startTime = %v, want %v", view.StartTime, openingTime)
	}

	// A later addition must not move the start time.
	fake.Advance(10 * time.Minute)
	if err := l.AddItem(1, "Water", 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if got := mustView(t, l, 1).StartTime; !got.Equal(openingTime) {
		t.Errorf("startTime moved to %v after second item", got)
	}
	requireInvariant(t, l)
}

func TestAddThenRemoveRestoresEmptyTable(t *testing.T) {
	l, _ := newTestLedger(t, 1)

	if err := l.AddItem(1, "Greek Salad", 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := l.RemoveItem(1, "Greek Salad", 2); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}

	view := mustView(t, l, 1)
	if len(view.Lines) != 0 {
		t.Errorf("lines = %v, want none", view.Lines)
	}
	if !view.StartTime.IsZero() {
		t.Errorf("startTime = %v, want cleared", view.StartTime)
	}
	requireInvariant(t, l)
}

func TestRemoveBelowZeroDeletesLine(t *testing.T) {
	l, _ := newTestLedger(t, 1)

	if err := l.AddItem(1, "Water", 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := l.AddItem(1, "Greek Salad", 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	// Over-removal still deletes the line outright.
	if err := l.RemoveItem(1, "Water", 5); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}

	view := mustView(t, l, 1)
	if len(view.Lines) != 1 || view.Lines[0].ItemName != "Greek Salad" {
		t.Errorf("lines = %v, want only Greek Salad", view.Lines)
	}
	requireInvariant(t, l)
}

func TestRemovalOnEmptyTableDoesNotStampStartTime(t *testing.T) {
	l, _ := newTestLedger(t, 1)

	if err := l.RemoveItem(1, "Water", 1); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if err := l.AddItem(1, "Water", 0); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	view := mustView(t, l, 1)
	if !view.StartTime.IsZero() || len(view.Lines) != 0 {
		t.Errorf("non-positive deltas on an empty table must be no-ops, got %+v", view)
	}
}

func TestTotalIsLinearInQuantity(t *testing.T) {
	l, _ := newTestLedger(t, 1)

	if err := l.AddItem(1, "Water", 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	before, err := l.Total(1)
	if err != nil {
		t.Fatalf("Total: %v", err)
	}

	if err := l.AddItem(1, "Greek Salad", 3); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	after, err := l.Total(1)
	if err != nil {
		t.Fatalf("Total: %v", err)
	}

	want := before.Add(price("6.50").Mul(decimal.NewFromInt(3)))
	if !after.Equal(want) {
		t.Errorf("total = %s, want %s", after, want)
	}
}

func TestTotalUnknownItemContributesZero(t *testing.T) {
	l, _ := newTestLedger(t, 1)

	if err := l.AddItem(1, "Greek Salad", 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := l.AddItem(1, "Off Menu Special", 4); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	total, err := l.Total(1)
	if err != nil {
		t.Fatalf("Total: %v", err)
	}
	if !total.Equal(price("13.00")) {
		t.Errorf("total = %s, want 13.00 (unknown item priced at zero)", total)
	}
}

func TestCompleteOrderReturnsStateBeforeClear(t *testing.T) {
	l, fake := newTestLedger(t, 3)

	if err := l.AddItem(2, "Greek Salad", 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := l.AddItem(2, "Water", 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	fake.Advance(45 * time.Minute)

	completed, err := l.CompleteOrder(2)
	if err != nil {
		t.Fatalf("CompleteOrder: %v", err)
	}

	if completed.TableID != 2 {
		t.Errorf("TableID = %d, want 2", completed.TableID)
	}
	if !completed.Total.Equal(price("14.00")) {
		t.Errorf("total = %s, want 14.00", completed.Total)
	}
	if !completed.StartTime.Equal(openingTime) {
		t.Errorf("StartTime = %v, want %v", completed.StartTime, openingTime)
	}
	if !completed.CompletedAt.Equal(openingTime.Add(45 * time.Minute)) {
		t.Errorf("CompletedAt = %v, want %v", completed.CompletedAt, openingTime.Add(45*time.Minute))
	}
	if len(completed.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(completed.Lines))
	}
	// Lines come back sorted by item name.
	if completed.Lines[0].ItemName != "Greek Salad" || completed.Lines[1].ItemName != "Water" {
		t.Errorf("line order = %q, %q", completed.Lines[0].ItemName, completed.Lines[1].ItemName)
	}
	if completed.Lines[0].Quantity != 2 || !completed.Lines[0].LineTotal.Equal(price("13.00")) {
		t.Errorf("Greek Salad line = %+v", completed.Lines[0])
	}

	view := mustView(t, l, 2)
	if len(view.Lines) != 0 || !view.StartTime.IsZero() {
		t.Errorf("table not cleared after completion: %+v", view)
	}
	requireInvariant(t, l)
}

func TestCompleteOrderOnEmptyTableIsNoOp(t *testing.T) {
	l, _ := newTestLedger(t, 1)

	completed, err := l.CompleteOrder(1)
	if err != nil {
		t.Fatalf("CompleteOrder: %v", err)
	}
	if len(completed.Lines) != 0 || !completed.Total.IsZero() || !completed.StartTime.IsZero() {
		t.Errorf("empty completion = %+v, want empty record", completed)
	}
}

func TestUnknownTableIsReportedError(t *testing.T) {
	l, _ := newTestLedger(t, 2)

	if err := l.AddItem(99, "Water", 1); !errors.Is(err, ErrUnknownTable) {
		t.Errorf("AddItem unknown table: err = %v, want ErrUnknownTable", err)
	}
	if _, err := l.Total(0); !errors.Is(err, ErrUnknownTable) {
		t.Errorf("Total unknown table: err = %v, want ErrUnknownTable", err)
	}
	if _, err := l.CompleteOrder(-1); !errors.Is(err, ErrUnknownTable) {
		t.Errorf("CompleteOrder unknown table: err = %v, want ErrUnknownTable", err)
	}
	if _, err := l.View(3); !errors.Is(err, ErrUnknownTable) {
		t.Errorf("View unknown table: err = %v, want ErrUnknownTable", err)
	}
}

func TestSnapshotSkipsIdleTables(t *testing.T) {
	l, _ := newTestLedger(t, 4)

	if err := l.AddItem(3, "Water", 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := l.AddItem(1, "Greek Salad", 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	lines := l.Snapshot()
	if len(lines) != 2 {
		t.Fatalf("got %d snapshot lines, want 2", len(lines))
	}
	// Ascending table id order.
	if lines[0].TableID != 1 || lines[1].TableID != 3 {
		t.Errorf("snapshot table order = %d, %d; want 1, 3", lines[0].TableID, lines[1].TableID)
	}
}

func TestRestoreReplacesAllState(t *testing.T) {
	l, _ := newTestLedger(t, 3)

	// Pre-existing state on a table absent from the snapshot must be
	// wiped.
	if err := l.AddItem(3, "Τσίπουρο", 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	restoredStart := openingTime.Add(-2 * time.Hour)
	l.Restore([]Line{
		{TableID: 1, ItemName: "Greek Salad", Quantity: 2, StartTime: restoredStart},
		{TableID: 1, ItemName: "Water", Quantity: 1, StartTime: restoredStart.Add(time.Minute)},
		{TableID: 99, ItemName: "Water", Quantity: 1, StartTime: restoredStart},
		{TableID: 2, ItemName: "Water", Quantity: 0, StartTime: restoredStart},
	})

	one := mustView(t, l, 1)
	if len(one.Lines) != 2 {
		t.Fatalf("table 1 has %d lines, want 2", len(one.Lines))
	}
	// First record in slice order sets the start time.
	if !one.StartTime.Equal(restoredStart) {
		t.Errorf("table 1 startTime = %v, want %v", one.StartTime, restoredStart)
	}
	if got := mustView(t, l, 2); len(got.Lines) != 0 {
		t.Errorf("table 2 restored a quantity-0 record: %+v", got)
	}
	if got := mustView(t, l, 3); len(got.Lines) != 0 || !got.StartTime.IsZero() {
		t.Errorf("table 3 not wiped by restore: %+v", got)
	}
	requireInvariant(t, l)
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	l, fake := newTestLedger(t, 4)

	if err := l.AddItem(2, "Greek Salad", 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	fake.Advance(5 * time.Minute)
	if err := l.AddItem(2, "Water", 3); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := l.AddItem(4, "Τσίπουρο", 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	fresh := New(4, testPrices(), clock.Fake(openingTime.Add(24*time.Hour)))
	fresh.Restore(l.Snapshot())

	for _, id := range l.TableIDs() {
		want := mustView(t, l, id)
		got := mustView(t, fresh, id)
		if len(got.Lines) != len(want.Lines) {
			t.Fatalf("table %d: %d lines after round trip, want %d", id, len(got.Lines), len(want.Lines))
		}
		for i := range want.Lines {
			if got.Lines[i].ItemName != want.Lines[i].ItemName ||
				got.Lines[i].Quantity != want.Lines[i].Quantity ||
				!got.Lines[i].LineTotal.Equal(want.Lines[i].LineTotal) {
				t.Errorf("table %d line %d = %+v, want %+v", id, i, got.Lines[i], want.Lines[i])
			}
		}
		if !got.StartTime.Equal(want.StartTime) {
			t.Errorf("table %d startTime = %v, want %v", id, got.StartTime, want.StartTime)
		}
		if !got.Total.Equal(want.Total) {
			t.Errorf("table %d total = %s, want %s", id, got.Total, want.Total)
		}
	}
}
