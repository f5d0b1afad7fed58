// Copyright 2026 The Taverna Authors
// SPDX-License-Identifier: Apache-2.0

package orderstore

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/kapoukapou/taverna/lib/ledger"
)

// separatorWidth is the dash rule closing each archive block.
const separatorWidth = 40

// Archive appends one receipt block for a completed order. Orders
// with no lines (completing an already-empty table) write nothing.
// Prices round to two decimals here, at serialization time only.
func (s *Store) Archive(order ledger.CompletedOrder) error {
	if len(order.Lines) == 0 {
		return nil
	}

	var block bytes.Buffer
	fmt.Fprintf(&block, "Τραπέζι %d\n", order.TableID)
	fmt.Fprintf(&block, "Έναρξη: %s\n", order.StartTime.Format(TimeLayout))
	block.WriteString("Παραγγελίες:\n")
	for _, line := range order.Lines {
		fmt.Fprintf(&block, " - %s: %d x %s€ = %s€\n",
			line.ItemName, line.Quantity,
			line.UnitPrice.StringFixed(2), line.LineTotal.StringFixed(2))
	}
	fmt.Fprintf(&block, "Σύνολο: €%s\n", order.Total.StringFixed(2))
	fmt.Fprintf(&block, "Ολοκλήρωση: %s\n", order.CompletedAt.Format(TimeLayout))
	block.WriteString(strings.Repeat("-", separatorWidth) + "\n")

	file, err := os.OpenFile(s.archivePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	if _, err := file.Write(block.Bytes()); err != nil {
		file.Close()
		return fmt.Errorf("appending to archive: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	return nil
}
