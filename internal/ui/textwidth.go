package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TextWidth provides Unicode-aware text width calculations for proper handling
// of wide characters (emoji, CJK, combining marks, etc.)
// All functions work with display width (screen columns) not byte length

// Ellipsis marks text cut short by truncation
const Ellipsis = "…"

// RuneWidth returns the display width of a single rune
// - ASCII and most Unicode: 1 column
// - Wide characters (emoji, CJK): 2 columns
// - Combining marks, zero-width spaces: 0 columns
// - Control characters: 0 columns
func RuneWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w < 0 {
		return 0
	}
	return w
}

// StringWidth returns the display width of a string
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateToWidth safely truncates a string to fit within maxWidth columns
// Properly handles multi-byte characters without splitting them
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	width := 0
	for i, r := range s {
		rw := RuneWidth(r)
		if width+rw > maxWidth {
			return s[:i]
		}
		width += rw
	}

	return s
}

// TruncateWithEllipsis truncates a string to maxWidth columns, ending it with
// an ellipsis when anything was cut
func TruncateWithEllipsis(s string, maxWidth int) string {
	if StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 1 {
		return TruncateToWidth(Ellipsis, maxWidth)
	}
	return TruncateToWidth(s, maxWidth-1) + Ellipsis
}

// TruncateAtColumn appends runes of s starting at screen column col for as
// long as the column stays within limit. When s does not fit, the kept part
// is followed by an ellipsis, which takes one more column. It returns the
// text to draw and the column after it.
func TruncateAtColumn(s string, col, limit int) (string, int) {
	for i, r := range s {
		rw := RuneWidth(r)
		if col+rw > limit {
			return s[:i] + Ellipsis, col + 1
		}
		col += rw
	}
	return s, col
}

// PadStringToWidth pads a string to a specific display width with spaces
// If string is already wider, returns unchanged
func PadStringToWidth(s string, width int) string {
	current := StringWidth(s)
	if current >= width {
		return s
	}
	return s + strings.Repeat(" ", width-current)
}
