package rules

import (
	"fmt"
	"unicode/utf8"

	"github.com/yaklabco/goeclint/pkg/config"
	"github.com/yaklabco/goeclint/pkg/document"
	"github.com/yaklabco/goeclint/pkg/lint"
)

// MaxLineLengthRule checks that lines do not exceed a character count.
// It never rewrites lines.
type MaxLineLengthRule struct {
	lint.BaseRule
}

// NewMaxLineLengthRule creates a new max_line_length rule.
func NewMaxLineLengthRule() *MaxLineLengthRule {
	return &MaxLineLengthRule{
		BaseRule: lint.NewBaseRule(
			config.KeyMaxLineLength,
			"Lines must not exceed the configured number of characters",
			lint.ScopeLine,
			false,
		),
	}
}

// TallyMode keeps the longest line, rounded up to a multiple of 10.
func (r *MaxLineLengthRule) TallyMode() lint.TallyMode {
	return lint.TallyMaxRounded
}

// Resolve accepts a positive integer; "off" and other strings do not resolve.
func (r *MaxLineLengthRule) Resolve(settings config.Settings) (any, bool) {
	limit, ok := settings.Int(config.KeyMaxLineLength)
	return limit, ok && limit > 0
}

// InferLine reports the character count of the line.
func (r *MaxLineLengthRule) InferLine(line *document.Line) (any, bool) {
	if !line.HasText() {
		return nil, false
	}
	return utf8.RuneCountInString(line.Text()), true
}

// CheckLine flags lines longer than the limit at the first excess character.
func (r *MaxLineLengthRule) CheckLine(rc *lint.RuleContext, line *document.Line) []lint.Violation {
	limit := rc.ValueInt(0)
	text := line.Text()
	length := utf8.RuneCountInString(text)
	if limit <= 0 || length <= limit {
		return nil
	}

	overflow := runeOffset(text, limit)
	return []lint.Violation{
		lint.NewViolationAt(rc, r.Name(), line.Number(), text, overflow,
			fmt.Sprintf("line length: %d, exceeds: %d", length, limit)).
			WithSource(text[overflow:]).
			Build(),
	}
}

// FixLine never mutates: long lines are not wrapped.
func (r *MaxLineLengthRule) FixLine(*lint.RuleContext, *document.Line) {}

// runeOffset returns the byte offset of the n-th character of text.
func runeOffset(text string, n int) int {
	count := 0
	for offset := range text {
		if count == n {
			return offset
		}
		count++
	}
	return len(text)
}
