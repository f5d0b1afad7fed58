// Copyright 2026 The Taverna Authors
// SPDX-License-Identifier: Apache-2.0

package ledger

import "time"

// table is one seating unit. Quantities in orders are always >= 1;
// startTime is the zero value exactly when orders is empty.
type table struct {
	id        int
	startTime time.Time
	orders    map[string]int
}

func newTable(id int) *table {
	return &table{id: id, orders: make(map[string]int)}
}

// apply adds delta to the item's quantity, creating the line at zero
// first if absent and deleting it when the result drops to zero or
// below. When the order empties, the start time is cleared; the
// caller stamps the start time before calling apply for a positive
// delta on an empty order.
func (t *table) apply(itemName string, delta int) {
	t.orders[itemName] += delta
	if t.orders[itemName] <= 0 {
		delete(t.orders, itemName)
		if len(t.orders) == 0 {
			t.startTime = time.Time{}
		}
	}
}

// clear empties the order and resets the start time.
func (t *table) clear() {
	clear(t.orders)
	t.startTime = time.Time{}
}
