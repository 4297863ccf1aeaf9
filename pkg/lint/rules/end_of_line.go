package rules

import (
	"fmt"
	"unicode/utf8"

	"github.com/yaklabco/goeclint/pkg/config"
	"github.com/yaklabco/goeclint/pkg/document"
	"github.com/yaklabco/goeclint/pkg/lint"
)

// EndOfLineRule checks line terminators.
type EndOfLineRule struct {
	lint.BaseRule
}

// NewEndOfLineRule creates a new end_of_line rule.
func NewEndOfLineRule() *EndOfLineRule {
	return &EndOfLineRule{
		BaseRule: lint.NewBaseRule(
			config.KeyEndOfLine,
			"Lines must end with the configured terminator",
			lint.ScopeLine,
			true,
		),
	}
}

// Resolve accepts "lf", "crlf" and "cr".
func (r *EndOfLineRule) Resolve(settings config.Settings) (any, bool) {
	name, ok := settings.String(config.KeyEndOfLine)
	if !ok {
		return nil, false
	}
	ending, ok := document.ParseNewline(name)
	if !ok {
		return nil, false
	}
	return ending, true
}

// InferLine reports the terminator of a terminated line.
func (r *EndOfLineRule) InferLine(line *document.Line) (any, bool) {
	if line.Ending() == document.None {
		return nil, false
	}
	return line.Ending().String(), true
}

// CheckLine flags a terminator other than the configured one.
func (r *EndOfLineRule) CheckLine(rc *lint.RuleContext, line *document.Line) []lint.Violation {
	want, ok := rc.Value.(document.Newline)
	found := line.Ending()
	if !ok || found == document.None || found == want {
		return nil
	}

	text := line.Text()
	return []lint.Violation{
		lint.NewViolation(r.Name(), line.Number(), utf8.RuneCountInString(text)+1,
			fmt.Sprintf("invalid newline: %s, expected: %s", found, want)).
			WithPath(rc.Path).
			WithSeverity(rc.Severity).
			WithSource(found.Literal()).
			Fixable(true).
			Build(),
	}
}

// FixLine replaces a terminator other than the configured one. Unterminated
// lines are left to insert_final_newline.
func (r *EndOfLineRule) FixLine(rc *lint.RuleContext, line *document.Line) {
	want, ok := rc.Value.(document.Newline)
	if !ok || line.Ending() == document.None {
		return
	}
	line.SetEnding(want)
}

// configuredNewline returns the end_of_line terminator of settings, or LF.
func configuredNewline(settings config.Settings) document.Newline {
	if name, ok := settings.String(config.KeyEndOfLine); ok {
		if ending, ok := document.ParseNewline(name); ok {
			return ending
		}
	}
	return document.LF
}
