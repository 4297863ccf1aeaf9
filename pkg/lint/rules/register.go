package rules

import "github.com/yaklabco/goeclint/pkg/lint"

// NewTable returns the built-in rules in evaluation order. Fixes run in
// the same order, so indentation is settled before trailing whitespace
// and line endings, and final newline handling sees the chosen terminator.
func NewTable() *lint.Table {
	return lint.NewTable(
		NewCharsetRule(),
		NewIndentStyleRule(),
		NewIndentSizeRule(),
		NewTabWidthRule(),
		NewTrimTrailingWhitespaceRule(),
		NewEndOfLineRule(),
		NewInsertFinalNewlineRule(),
		NewMaxLineLengthRule(),
	)
}
