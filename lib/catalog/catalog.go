// Copyright 2026 The Taverna Authors
// SPDX-License-Identifier: Apache-2.0

// Package catalog loads the menu file: a category-tagged price list
// that the ledger prices orders against.
//
// The format is line oriented. A non-empty line without a dash starts
// a new category and becomes its label. A line with a dash is an item:
// the text before the first dash is the item name, the text between
// the first and second dash (or the end of the line) is the price.
// Blank lines are skipped; item lines whose price does not parse are
// skipped with a diagnostic and loading continues.
package catalog

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// Item is a single purchasable menu entry. Items are created at load
// time and never mutated.
type Item struct {
	Name  string
	Price decimal.Decimal
}

// Category groups the items listed under one label in the menu file,
// in file order.
type Category struct {
	Label string
	Items []Item
}

// Catalog is the loaded menu: categories in file-encounter order plus
// a flat view of every item in file order. Read-only after load.
type Catalog struct {
	Categories []Category
	Items      []Item
}

// PriceIndex maps item names to prices for total computation. When
// two items share a name the later one in file order wins.
type PriceIndex map[string]decimal.Decimal

// Price returns the price for an item name, or zero for names not in
// the index. The zero default keeps totals computable for persisted
// orders that reference a since-removed menu item.
func (index PriceIndex) Price(name string) decimal.Decimal {
	return index[name]
}

// PriceIndex derives the name-to-price lookup from the flat item list.
func (c *Catalog) PriceIndex() PriceIndex {
	index := make(PriceIndex, len(c.Items))
	for _, item := range c.Items {
		index[item.Name] = item.Price
	}
	return index
}

// Load reads the menu file at path. A missing or unreadable file is a
// soft condition: it logs a diagnostic and returns an empty catalog.
func Load(path string, logger *slog.Logger) *Catalog {
	file, err := os.Open(path)
	if err != nil {
		logger.Warn("menu file not available, starting with an empty catalog",
			"path", path, "error", err)
		return &Catalog{}
	}
	defer file.Close()

	return Parse(file, logger)
}

// Parse reads menu content from r. Malformed item lines are skipped
// individually with a diagnostic; the rest of the input still loads.
func Parse(r io.Reader, logger *slog.Logger) *Catalog {
	loaded := &Catalog{}

	scanner := bufio.NewScanner(r)
	currentCategory := -1
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if !strings.Contains(line, "-") {
			// Category label. A repeated label reopens the existing
			// category so later items append to it.
			currentCategory = -1
			for i, category := range loaded.Categories {
				if category.Label == line {
					currentCategory = i
					break
				}
			}
			if currentCategory < 0 {
				loaded.Categories = append(loaded.Categories, Category{Label: line})
				currentCategory = len(loaded.Categories) - 1
			}
			continue
		}

		parts := strings.Split(line, "-")
		name := strings.TrimSpace(parts[0])
		priceText := strings.TrimSpace(parts[1])

		// A negative price cannot occur here: the dash doubles as the
		// field separator, so a leading minus sign never reaches the
		// price field.
		price, err := decimal.NewFromString(priceText)
		if err != nil {
			logger.Warn("skipping menu line with unparseable price",
				"line", line, "error", err)
			continue
		}

		item := Item{Name: name, Price: price}
		loaded.Items = append(loaded.Items, item)
		if currentCategory >= 0 {
			loaded.Categories[currentCategory].Items = append(
				loaded.Categories[currentCategory].Items, item)
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Warn("reading menu content", "error", err)
	}

	return loaded
}
