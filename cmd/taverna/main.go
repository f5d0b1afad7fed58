// Copyright 2026 The Taverna Authors
// SPDX-License-Identifier: Apache-2.0

// taverna is the restaurant table manager: a terminal UI over a
// fixed pool of tables, the menu, and each table's running order.
//
// State lives in plain text files next to the binary (or under
// --data-dir): menu.txt and settings.txt are read once at startup,
// orders.txt holds the live snapshot and is rewritten on a fixed
// interval and at exit, and completed_orders.txt collects one receipt
// block per completed order.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/kapoukapou/taverna/lib/catalog"
	"github.com/kapoukapou/taverna/lib/clock"
	"github.com/kapoukapou/taverna/lib/ledger"
	"github.com/kapoukapou/taverna/lib/orderstore"
	"github.com/kapoukapou/taverna/lib/settings"
	"github.com/kapoukapou/taverna/lib/tableui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var dataDirectory string
	var menuPath, settingsPath, ordersPath, archivePath string
	var saveInterval time.Duration
	var logOutput string

	flagSet := pflag.NewFlagSet("taverna", pflag.ContinueOnError)
	flagSet.StringVar(&dataDirectory, "data-dir", ".", "directory holding the data files")
	flagSet.StringVar(&menuPath, "menu", "", "menu file (default <data-dir>/menu.txt)")
	flagSet.StringVar(&settingsPath, "settings", "", "settings file (default <data-dir>/settings.txt)")
	flagSet.StringVar(&ordersPath, "orders", "", "live orders file (default <data-dir>/orders.txt)")
	flagSet.StringVar(&archivePath, "archive", "", "completed orders archive (default <data-dir>/completed_orders.txt)")
	flagSet.DurationVar(&saveInterval, "save-interval", tableui.DefaultSaveInterval, "auto-save period for the live orders file")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file (the TUI owns the terminal)")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	// Diagnostics go to a file when requested; otherwise they are
	// discarded rather than scribbled over the TUI.
	logger := slog.New(slog.DiscardHandler)
	if logOutput != "" {
		logFile, err := os.OpenFile(logOutput, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log output: %w", err)
		}
		defer logFile.Close()
		logger = slog.New(slog.NewJSONHandler(logFile, nil))
	}

	resolve := func(explicit, name string) string {
		if explicit != "" {
			return explicit
		}
		return filepath.Join(dataDirectory, name)
	}
	menuPath = resolve(menuPath, "menu.txt")
	settingsPath = resolve(settingsPath, "settings.txt")
	ordersPath = resolve(ordersPath, "orders.txt")
	archivePath = resolve(archivePath, "completed_orders.txt")

	loadedSettings := settings.Load(settingsPath, logger)
	loadedCatalog := catalog.Load(menuPath, logger)

	realClock := clock.Real()
	led := ledger.New(loadedSettings.TableCount(), loadedCatalog.PriceIndex(), realClock)
	store := orderstore.New(ordersPath, archivePath, logger)
	if err := store.Restore(led); err != nil {
		logger.Warn("restoring live orders", "error", err)
	}

	model := tableui.New(tableui.Config{
		Ledger:       led,
		Catalog:      loadedCatalog,
		Store:        store,
		Clock:        realClock,
		Logger:       logger,
		SaveInterval: saveInterval,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		// The confirmed-quit path saves before exiting; on an
		// abnormal UI stop, try once more so the snapshot is not
		// older than it has to be.
		if saveErr := store.Save(led); saveErr != nil {
			logger.Error("final save after UI failure", "error", saveErr)
		}
		return fmt.Errorf("running table manager: %w", err)
	}
	return nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `taverna — terminal table manager for the taverna floor.

Reads menu.txt and settings.txt at startup, restores orders.txt, and
keeps it current with an auto-save every two minutes and a final save
on exit. Completed orders append receipt blocks to
completed_orders.txt.

Usage:
  taverna [flags]

Flags:
%s`, flagSet.FlagUsages())
}
