// Copyright 2026 The Taverna Authors
// SPDX-License-Identifier: Apache-2.0

// Package settings loads the key=value settings file read once at
// startup. The only key the ledger bootstrap consumes is the table
// count.
package settings

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// TableCountKey names the setting that fixes the size of the table
// pool.
const TableCountKey = "ARITHMOS_TRAPEZION"

// DefaultTableCount is used when the setting is absent or does not
// parse as a positive integer.
const DefaultTableCount = 12

// Settings is the raw key-to-value mapping from the settings file.
type Settings map[string]string

// Load reads the settings file at path. A missing or unreadable file
// is a soft condition: it logs a diagnostic and returns defaults with
// the table count pre-populated, exactly as if the file had contained
// only that entry.
func Load(path string, logger *slog.Logger) Settings {
	file, err := os.Open(path)
	if err != nil {
		logger.Warn("settings file not available, using defaults",
			"path", path, "error", err)
		return Settings{TableCountKey: strconv.Itoa(DefaultTableCount)}
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads key=value lines from r. Whitespace around keys and
// values is trimmed; lines without an equals sign are ignored.
func Parse(r io.Reader) Settings {
	parsed := Settings{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		parsed[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return parsed
}

// TableCount returns the configured number of tables, falling back to
// DefaultTableCount when the value is missing, non-numeric, or not
// positive.
func (s Settings) TableCount() int {
	count, err := strconv.Atoi(s[TableCountKey])
	if err != nil || count < 1 {
		return DefaultTableCount
	}
	return count
}
