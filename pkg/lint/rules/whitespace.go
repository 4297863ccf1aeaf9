package rules

import (
	"strings"

	"github.com/yaklabco/goeclint/pkg/config"
	"github.com/yaklabco/goeclint/pkg/document"
	"github.com/yaklabco/goeclint/pkg/lint"
)

// TrimTrailingWhitespaceRule checks for spaces and tabs before the line terminator.
type TrimTrailingWhitespaceRule struct {
	lint.BaseRule
}

// NewTrimTrailingWhitespaceRule creates a new trim_trailing_whitespace rule.
func NewTrimTrailingWhitespaceRule() *TrimTrailingWhitespaceRule {
	return &TrimTrailingWhitespaceRule{
		BaseRule: lint.NewBaseRule(
			config.KeyTrimTrailingWhitespace,
			"Lines must not end with spaces or tabs",
			lint.ScopeLine,
			true,
		),
	}
}

// Resolve accepts a boolean.
func (r *TrimTrailingWhitespaceRule) Resolve(settings config.Settings) (any, bool) {
	return boolSetting(settings, config.KeyTrimTrailingWhitespace)
}

// trailingStart returns the byte offset where trailing whitespace begins,
// or -1 when there is none.
func trailingStart(text string) int {
	trimmed := strings.TrimRight(text, " \t")
	if len(trimmed) == len(text) {
		return -1
	}
	return len(trimmed)
}

// InferLine reports false for a line with trailing whitespace, true otherwise.
func (r *TrimTrailingWhitespaceRule) InferLine(line *document.Line) (any, bool) {
	if !line.HasText() {
		return nil, false
	}
	return trailingStart(line.Text()) < 0, true
}

// CheckLine flags trailing whitespace when trimming is required.
func (r *TrimTrailingWhitespaceRule) CheckLine(rc *lint.RuleContext, line *document.Line) []lint.Violation {
	if !rc.ValueBool(false) {
		return nil
	}

	text := line.Text()
	start := trailingStart(text)
	if start < 0 {
		return nil
	}

	return []lint.Violation{
		lint.NewViolationAt(rc, r.Name(), line.Number(), text, start, "unexpected trailing whitespace").
			WithSource(text[start:]).
			Fixable(true).
			Build(),
	}
}

// FixLine strips trailing whitespace when trimming is required.
func (r *TrimTrailingWhitespaceRule) FixLine(rc *lint.RuleContext, line *document.Line) {
	if !rc.ValueBool(false) {
		return
	}
	if start := trailingStart(line.Text()); start >= 0 {
		line.SetText(line.Text()[:start])
	}
}

func boolSetting(settings config.Settings, key string) (any, bool) {
	b, ok := settings.Bool(key)
	if !ok {
		return nil, false
	}
	return b, true
}
