package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/goeclint/pkg/config"
	"github.com/yaklabco/goeclint/pkg/lint"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// defaultTabWidth expands tabs in source context when a file's settings
// carry neither tab_width nor a numeric indent_size.
const defaultTabWidth = 4

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format config.OutputFormat

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowContext includes the offending source line in text output.
	ShowContext bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// GroupByFile groups violations by file (default: true for text format).
	GroupByFile bool

	// Compact uses compact/minified output where applicable.
	Compact bool

	// SummaryOrder controls the order of tables in summary output.
	SummaryOrder config.SummaryOrder

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string

	// Rules supplies rule descriptions for SARIF output. Optional.
	Rules *lint.Table

	// ToolVersion is reported in SARIF output.
	ToolVersion string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		ErrorWriter:  os.Stderr,
		Format:       config.FormatText,
		Color:        "auto",
		ShowContext:  true,
		ShowSummary:  true,
		GroupByFile:  true,
		Compact:      false,
		SummaryOrder: config.SummaryOrderRules,
		ToolVersion:  "dev",
	}
}

// tabWidthFor picks the tab stop used to display a file's source lines.
func tabWidthFor(settings config.Settings) int {
	if width, ok := settings.Int(config.KeyTabWidth); ok && width > 0 {
		return width
	}
	if size, ok := settings.Int(config.KeyIndentSize); ok && size > 0 {
		return size
	}
	return defaultTabWidth
}
