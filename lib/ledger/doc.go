// Copyright 2026 The Taverna Authors
// SPDX-License-Identifier: Apache-2.0

// Package ledger is the in-memory authority over the restaurant's
// live order state.
//
// A Ledger owns a fixed pool of tables, created once at startup from
// the configured table count and never grown or destroyed while the
// process runs. Each table carries at most one active order: a map of
// item name to quantity plus the time the first item was ordered.
// Two invariants hold after every mutation:
//
//   - a table's order is empty exactly when its start time is absent
//   - every order line's quantity is at least 1
//
// Totals are priced against a catalog.PriceIndex captured at
// construction; item names absent from the index price at zero, so
// restored orders that reference a since-removed menu item still
// total instead of failing.
//
// All operations take the ledger's mutex: the presentation layer
// mutates interactively while the auto-save snapshots from a
// background goroutine.
package ledger
