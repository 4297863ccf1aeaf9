// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// DefaultTerminalWidth is used when the writer is not a terminal.
const DefaultTerminalWidth = 100

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Severity styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Violation components
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	Rule       lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style
	// Marker shows otherwise invisible characters such as CR.
	Marker lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableWarnRow   lipgloss.Style
	TableInfoRow   lipgloss.Style
	TableSeparator lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// ANSI palette shared by every colored style.
const (
	colorRed    = lipgloss.Color("9")
	colorGreen  = lipgloss.Color("10")
	colorYellow = lipgloss.Color("11")
	colorBlue   = lipgloss.Color("12")
	colorCyan   = lipgloss.Color("14")
	colorLight  = lipgloss.Color("7")
	colorGray   = lipgloss.Color("8")
)

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func newColorStyles() *Styles {
	bold := lipgloss.NewStyle().Bold(true)
	return &Styles{
		Error:   fg(colorRed).Bold(true),
		Warning: fg(colorYellow).Bold(true),
		Info:    fg(colorBlue).Bold(true),

		FilePath:   bold,
		Location:   fg(colorGray),
		Rule:       fg(colorCyan),
		Message:    lipgloss.NewStyle(),
		SourceLine: fg(colorLight),
		Caret:      fg(colorRed),

		DiffHeader:  bold,
		DiffHunk:    fg(colorCyan),
		DiffAdd:     fg(colorGreen),
		DiffRemove:  fg(colorRed),
		DiffContext: fg(colorGray),
		Marker:      fg(colorYellow).Faint(true),

		SummaryTitle: bold,
		SummaryValue: lipgloss.NewStyle(),
		Success:      fg(colorGreen).Bold(true),
		Failure:      fg(colorRed).Bold(true),

		TableHeader:    fg(colorLight).Bold(true),
		TableErrorRow:  fg(colorRed),
		TableWarnRow:   fg(colorYellow),
		TableInfoRow:   fg(colorBlue),
		TableSeparator: fg(colorGray),

		Dim:  fg(colorGray),
		Bold: bold,
	}
}

// newNoColorStyles leaves every style plain, so Render returns its input.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error: plain, Warning: plain, Info: plain,
		FilePath: plain, Location: plain, Rule: plain, Message: plain, SourceLine: plain, Caret: plain,
		DiffHeader: plain, DiffHunk: plain, DiffAdd: plain, DiffRemove: plain, DiffContext: plain, Marker: plain,
		SummaryTitle: plain, SummaryValue: plain, Success: plain, Failure: plain,
		TableHeader: plain, TableErrorRow: plain, TableWarnRow: plain, TableInfoRow: plain, TableSeparator: plain,
		Dim: plain, Bold: plain,
	}
}

// IsColorEnabled reports whether output to writer is colored. mode is
// "always", "never" or "auto"; anything else means auto. Auto colors a
// terminal unless NO_COLOR is set, and CLICOLOR_FORCE forces color on.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force := os.Getenv("CLICOLOR_FORCE"); force != "" && force != "0" {
		return true
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// TerminalWidth returns the column count of the terminal behind writer,
// or DefaultTerminalWidth when writer is not a terminal.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd())) //nolint:gosec // File descriptors fit in int.
		if err == nil && width > 0 {
			return width
		}
	}
	return DefaultTerminalWidth
}
