// Copyright 2026 The Taverna Authors
// SPDX-License-Identifier: Apache-2.0

// Package orderstore persists the ledger's live state and archives
// completed orders.
//
// The live-orders file holds one pipe-separated record per active
// order line (table id, item name, quantity, start time) and is fully
// rewritten on every save, atomically, via a temporary file renamed
// into place. Restoring replaces the ledger's entire live state with
// the file's contents; malformed records are skipped individually.
//
// The archive is append-only and write-only: one human-readable block
// per completed order, never parsed back.
package orderstore

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kapoukapou/taverna/lib/ledger"
)

// TimeLayout is the timestamp form used in both the live-orders file
// and the archive.
const TimeLayout = "2006-01-02 15:04:05"

// fieldsPerRecord is the live-orders record shape:
// tableId|itemName|quantity|startTime.
const fieldsPerRecord = 4

// Store reads and writes the live-orders file and appends to the
// completed-orders archive. This process is the single writer of
// both files.
type Store struct {
	ordersPath  string
	archivePath string
	logger      *slog.Logger
}

// New creates a store over the two file paths. A nil logger discards
// diagnostics.
func New(ordersPath, archivePath string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		ordersPath:  ordersPath,
		archivePath: archivePath,
		logger:      logger,
	}
}

// Save overwrites the live-orders file with the ledger's current
// snapshot. The write goes to a temporary file first and is renamed
// into place, so a failed save leaves the previous on-disk state
// untouched and the in-memory ledger unaffected.
func (s *Store) Save(led *ledger.Ledger) error {
	var buffer bytes.Buffer
	for _, line := range led.Snapshot() {
		fmt.Fprintf(&buffer, "%d|%s|%d|%s\n",
			line.TableID, line.ItemName, line.Quantity,
			line.StartTime.Format(TimeLayout))
	}

	temporaryPath := s.ordersPath + ".tmp"
	file, err := os.OpenFile(temporaryPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating temporary orders file: %w", err)
	}

	// Write, sync, close, rename. If any step fails, remove the
	// temporary file and report the first error.
	if _, err := file.Write(buffer.Bytes()); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing temporary orders file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("syncing temporary orders file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing temporary orders file: %w", err)
	}
	if err := os.Rename(temporaryPath, s.ordersPath); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("renaming orders file into place: %w", err)
	}
	return nil
}

// Restore loads the live-orders file into the ledger, replacing its
// entire live state. A missing file is a silent no-op: the ledger's
// freshly initialized tables stand. Any other read error is returned
// with the ledger untouched.
func (s *Store) Restore(led *ledger.Ledger) error {
	file, err := os.Open(s.ordersPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening orders file: %w", err)
	}
	defer file.Close()

	lines, err := s.parseRecords(file)
	if err != nil {
		return fmt.Errorf("reading orders file: %w", err)
	}
	led.Restore(lines)
	return nil
}

// parseRecords decodes live-orders records from r. Malformed records
// (wrong field count, non-numeric id or quantity, unparseable
// timestamp, quantity below 1) are skipped with a diagnostic; the
// rest still load.
func (s *Store) parseRecords(r io.Reader) ([]ledger.Line, error) {
	var lines []ledger.Line
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		record := strings.TrimSpace(scanner.Text())
		if record == "" {
			continue
		}

		fields := strings.Split(record, "|")
		if len(fields) != fieldsPerRecord {
			s.logger.Warn("skipping orders record with wrong field count",
				"record", record, "fields", len(fields))
			continue
		}

		tableID, err := strconv.Atoi(fields[0])
		if err != nil {
			s.logger.Warn("skipping orders record with non-numeric table id",
				"record", record)
			continue
		}
		quantity, err := strconv.Atoi(fields[2])
		if err != nil {
			s.logger.Warn("skipping orders record with non-numeric quantity",
				"record", record)
			continue
		}
		if quantity < 1 {
			s.logger.Warn("skipping orders record with non-positive quantity",
				"record", record)
			continue
		}
		startTime, err := time.ParseInLocation(TimeLayout, fields[3], time.Local)
		if err != nil {
			s.logger.Warn("skipping orders record with unparseable start time",
				"record", record)
			continue
		}

		lines = append(lines, ledger.Line{
			TableID:   tableID,
			ItemName:  fields[1],
			Quantity:  quantity,
			StartTime: startTime,
		})
	}
	return lines, scanner.Err()
}
