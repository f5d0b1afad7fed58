// Copyright 2026 The Taverna Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction.
//
// The ledger stamps a table's start time when its first item is
// ordered, and the UI saves the order snapshot on a fixed interval.
// Both read time through a Clock instead of calling time.Now or
// time.NewTicker directly: Real() in production, Fake() in tests.
//
// A FakeClock stands still until Advance is called. Goroutines that
// register tickers or After waiters can be synchronized with
// WaitForTimers before advancing, which removes the usual race
// between timer registration and time advancement.
package clock
