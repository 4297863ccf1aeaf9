package pretty

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DisplayWidth returns the number of terminal cells text occupies.
// Call it on unstyled text; ANSI sequences are not skipped.
func DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadRight pads text with spaces on the right to width cells.
// This must be called BEFORE applying ANSI styles.
func PadRight(text string, width int) string {
	if gap := width - DisplayWidth(text); gap > 0 {
		return text + strings.Repeat(" ", gap)
	}
	return text
}

// PadLeft pads text with spaces on the left to width cells.
// This must be called BEFORE applying ANSI styles.
func PadLeft(text string, width int) string {
	if gap := width - DisplayWidth(text); gap > 0 {
		return strings.Repeat(" ", gap) + text
	}
	return text
}

// Truncate shortens text to at most width cells, ending with an ellipsis.
func Truncate(text string, width int) string {
	return runewidth.Truncate(text, width, "…")
}

// TruncateLeft shortens text to at most width cells by dropping leading
// characters, which keeps the file name of long paths visible.
func TruncateLeft(text string, width int) string {
	if DisplayWidth(text) <= width {
		return text
	}
	return "…" + runewidth.TruncateLeft(text, DisplayWidth(text)-width+1, "")
}

// ExpandTabs replaces each tab with spaces up to the next multiple of tabWidth.
// A tabWidth below 1 leaves the text unchanged.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth < 1 || !strings.Contains(text, "\t") {
		return text
	}

	var builder strings.Builder
	col := 0
	for _, r := range text {
		if r == '\t' {
			spaces := tabWidth - col%tabWidth
			builder.WriteString(strings.Repeat(" ", spaces))
			col += spaces
			continue
		}
		builder.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return builder.String()
}

// CaretOffset returns the display cell at which the 1-based character column
// starts in text, expanding tabs the same way as ExpandTabs.
func CaretOffset(text string, column, tabWidth int) int {
	col := 0
	idx := 1
	for _, r := range text {
		if idx >= column {
			break
		}
		if r == '\t' && tabWidth >= 1 {
			col += tabWidth - col%tabWidth
		} else {
			col += runewidth.RuneWidth(r)
		}
		idx++
	}
	// Columns past the end of the text sit one cell per column.
	if idx < column {
		col += column - idx
	}
	return col
}
