// Copyright 2026 The Taverna Authors
// SPDX-License-Identifier: Apache-2.0

package tableui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// spliceOverlay replaces a rectangular region of a rendered view with
// overlay content, starting at (anchorX, anchorY) in screen
// coordinates. Truncation is ANSI-aware so escape sequences in the
// underlying view survive on both sides of the overlay.
func spliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	overlayWidth := ansi.StringWidth(overlayLines[0])

	for index, overlayLine := range overlayLines {
		viewLineIndex := anchorY + index
		if viewLineIndex < 0 || viewLineIndex >= len(viewLines) {
			continue
		}

		viewLine := viewLines[viewLineIndex]
		viewLineWidth := ansi.StringWidth(viewLine)

		var result strings.Builder
		if anchorX > 0 {
			result.WriteString(ansi.Truncate(viewLine, anchorX, ""))
		}
		result.WriteString("\x1b[0m")
		result.WriteString(overlayLine)
		result.WriteString("\x1b[0m")

		suffixStart := anchorX + overlayWidth
		if suffixStart < viewLineWidth {
			result.WriteString(ansi.TruncateLeft(viewLine, suffixStart, ""))
		}

		viewLines[viewLineIndex] = result.String()
	}

	return strings.Join(viewLines, "\n")
}
