package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// columnCell fits text into a fixed-width listing column: shorter text is
// padded with spaces, longer text is truncated with a trailing ellipsis that
// stays inside the width.
func columnCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if w := xansi.StringWidth(text); w <= width {
		return text + strings.Repeat(" ", width-w)
	}
	if width <= 3 {
		return strings.Repeat(".", width)
	}
	return xansi.Cut(text, 0, width-3) + "..."
}

func columnRow(cells ...string) string {
	return strings.Join(cells, "|")
}
