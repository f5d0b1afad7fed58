// Copyright 2026 The Taverna Authors
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestParseTrimsKeysAndValues(t *testing.T) {
	parsed := Parse(strings.NewReader("  ARITHMOS_TRAPEZION = 8 \nGLOSSA=el\n"))

	if parsed[TableCountKey] != "8" {
		t.Errorf("table count value = %q, want %q", parsed[TableCountKey], "8")
	}
	if parsed["GLOSSA"] != "el" {
		t.Errorf("GLOSSA = %q, want %q", parsed["GLOSSA"], "el")
	}
}

func TestParseIgnoresLinesWithoutEquals(t *testing.T) {
	parsed := Parse(strings.NewReader("just a comment\nARITHMOS_TRAPEZION=5\n\n"))

	if len(parsed) != 1 {
		t.Fatalf("got %d entries, want 1", len(parsed))
	}
	if parsed[TableCountKey] != "5" {
		t.Errorf("table count value = %q, want %q", parsed[TableCountKey], "5")
	}
}

func TestParseValueMayContainEquals(t *testing.T) {
	parsed := Parse(strings.NewReader("MOTO=a=b\n"))

	if parsed["MOTO"] != "a=b" {
		t.Errorf("MOTO = %q, want %q", parsed["MOTO"], "a=b")
	}
}

func TestLoadMissingFileYieldsDefaultEntry(t *testing.T) {
	loaded := Load(filepath.Join(t.TempDir(), "no-such-settings.txt"), testLogger())

	if len(loaded) != 1 {
		t.Fatalf("got %d entries, want exactly the table-count default", len(loaded))
	}
	if loaded[TableCountKey] != "12" {
		t.Errorf("default table count = %q, want %q", loaded[TableCountKey], "12")
	}
	if loaded.TableCount() != 12 {
		t.Errorf("TableCount() = %d, want 12", loaded.TableCount())
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.txt")
	if err := os.WriteFile(path, []byte("ARITHMOS_TRAPEZION=20\n"), 0o644); err != nil {
		t.Fatalf("writing settings fixture: %v", err)
	}

	if got := Load(path, testLogger()).TableCount(); got != 20 {
		t.Errorf("TableCount() = %d, want 20", got)
	}
}

func TestTableCountFallsBackOnBadValues(t *testing.T) {
	cases := []struct {
		name  string
		value string
	}{
		{"missing", ""},
		{"non-numeric", "many"},
		{"zero", "0"},
		{"negative", "-3"},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			s := Settings{}
			if testCase.value != "" {
				s[TableCountKey] = testCase.value
			}
			if got := s.TableCount(); got != DefaultTableCount {
				t.Errorf("TableCount() = %d, want %d", got, DefaultTableCount)
			}
		})
	}
}
