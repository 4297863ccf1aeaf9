package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/goeclint/pkg/config"
	"github.com/yaklabco/goeclint/pkg/document"
	"github.com/yaklabco/goeclint/pkg/lint"
)

const (
	styleTab   = "tab"
	styleSpace = "space"
)

// leadingWhitespace returns the run of spaces and tabs that starts text.
func leadingWhitespace(text string) string {
	return text[:len(text)-len(strings.TrimLeft(text, " \t"))]
}

// visualWidth returns the display width of a whitespace run with tab stops
// every tabStop columns.
func visualWidth(run string, tabStop int) int {
	width := 0
	for idx := range len(run) {
		if run[idx] == '\t' {
			width += tabStop - width%tabStop
			continue
		}
		width++
	}
	return width
}

// isCommentContinuation reports whether run ends with the single space that
// aligns a " * " block comment line under its opening "/*".
func isCommentContinuation(text, run string) bool {
	return strings.HasSuffix(run, " ") && strings.HasPrefix(text[len(run):], "*")
}

// IndentStyleRule checks that indentation uses only tabs or only spaces.
type IndentStyleRule struct {
	lint.BaseRule
}

// NewIndentStyleRule creates a new indent_style rule.
func NewIndentStyleRule() *IndentStyleRule {
	return &IndentStyleRule{
		BaseRule: lint.NewBaseRule(
			config.KeyIndentStyle,
			"Indentation must use the configured character",
			lint.ScopeLine,
			true,
		),
	}
}

// Resolve accepts "tab" and "space".
func (r *IndentStyleRule) Resolve(settings config.Settings) (any, bool) {
	style, ok := settings.String(config.KeyIndentStyle)
	if !ok || (style != styleTab && style != styleSpace) {
		return nil, false
	}
	return style, true
}

// InferLine reports the character the indentation starts with.
func (r *IndentStyleRule) InferLine(line *document.Line) (any, bool) {
	if line.IsBlank() {
		return nil, false
	}
	run := leadingWhitespace(line.Text())
	switch {
	case strings.HasPrefix(run, "\t"):
		return styleTab, true
	case strings.HasPrefix(run, " ") && !isCommentContinuation(line.Text(), run):
		return styleSpace, true
	default:
		return nil, false
	}
}

// CheckLine flags a leading tab under "space" and a leading space under "tab".
func (r *IndentStyleRule) CheckLine(rc *lint.RuleContext, line *document.Line) []lint.Violation {
	if line.IsBlank() {
		return nil
	}

	text := line.Text()
	run := leadingWhitespace(text)

	switch rc.ValueString("") {
	case styleSpace:
		if tab := strings.IndexByte(run, '\t'); tab >= 0 {
			return []lint.Violation{
				lint.NewViolationAt(rc, r.Name(), line.Number(), text, tab,
					"invalid indent style: found a leading tab, expected: space").
					WithSource(run).
					Fixable(true).
					Build(),
			}
		}
	case styleTab:
		if violatesTabStyle(text, run) {
			return []lint.Violation{
				lint.NewViolationAt(rc, r.Name(), line.Number(), text, 0,
					"invalid indent style: found a leading space, expected: tab").
					WithSource(run).
					Fixable(true).
					Build(),
			}
		}
	}

	return nil
}

func violatesTabStyle(text, run string) bool {
	if !strings.HasPrefix(run, " ") {
		return false
	}
	return run != " " || !isCommentContinuation(text, run)
}

// FixLine re-emits the indentation at its visual width in the configured
// character. Under "tab" a remainder narrower than one tab stop stays as
// spaces after at least one tab.
func (r *IndentStyleRule) FixLine(rc *lint.RuleContext, line *document.Line) {
	if line.IsBlank() {
		return
	}

	text := line.Text()
	run := leadingWhitespace(text)
	stop := rc.IndentWidth()
	width := visualWidth(run, stop)

	var indent string
	switch rc.ValueString("") {
	case styleSpace:
		if !strings.Contains(run, "\t") {
			return
		}
		indent = strings.Repeat(" ", width)
	case styleTab:
		if !violatesTabStyle(text, run) {
			return
		}
		tabs, spaces := width/stop, width%stop
		if tabs == 0 {
			tabs, spaces = 1, 0
		}
		indent = strings.Repeat("\t", tabs) + strings.Repeat(" ", spaces)
	default:
		return
	}

	line.SetText(indent + text[len(run):])
}

// IndentSizeRule checks that space indentation is a multiple of indent_size.
type IndentSizeRule struct {
	lint.BaseRule
}

// NewIndentSizeRule creates a new indent_size rule.
func NewIndentSizeRule() *IndentSizeRule {
	return &IndentSizeRule{
		BaseRule: lint.NewBaseRule(
			config.KeyIndentSize,
			"Space indentation must be a multiple of the indent size",
			lint.ScopeLine,
			true,
		),
	}
}

// Resolve accepts a positive integer, or "tab" which takes tab_width.
func (r *IndentSizeRule) Resolve(settings config.Settings) (any, bool) {
	if size, ok := settings.Int(config.KeyIndentSize); ok {
		return size, size > 0
	}
	if style, ok := settings.String(config.KeyIndentSize); ok && style == styleTab {
		if width, ok := settings.Int(config.KeyTabWidth); ok && width > 0 {
			return width, true
		}
	}
	return nil, false
}

// spaceIndent returns the leading spaces of line when its indentation is
// made of spaces only and is not a comment continuation.
func spaceIndent(line *document.Line) (string, bool) {
	if line.IsBlank() {
		return "", false
	}
	text := line.Text()
	run := leadingWhitespace(text)
	if run == "" || strings.Contains(run, "\t") {
		return "", false
	}
	return run, true
}

// InferLine reports the number of leading spaces.
func (r *IndentSizeRule) InferLine(line *document.Line) (any, bool) {
	run, ok := spaceIndent(line)
	if !ok || isCommentContinuation(line.Text(), run) {
		return nil, false
	}
	return len(run), true
}

// CheckLine flags space indentation that is not a multiple of the size.
func (r *IndentSizeRule) CheckLine(rc *lint.RuleContext, line *document.Line) []lint.Violation {
	size := rc.ValueInt(0)
	run, ok := spaceIndent(line)
	if size <= 0 || !ok || !misaligned(line.Text(), run, size) {
		return nil
	}

	return []lint.Violation{
		lint.NewViolationAt(rc, r.Name(), line.Number(), line.Text(), 0,
			fmt.Sprintf("invalid indent size: found %d, expected multiple of %d", len(run), size)).
			WithSource(run).
			Fixable(true).
			Build(),
	}
}

func misaligned(text, run string, size int) bool {
	rem := len(run) % size
	if rem == 0 {
		return false
	}
	return rem != 1 || !isCommentContinuation(text, run)
}

// FixLine pads the indentation up to the next multiple of the size.
func (r *IndentSizeRule) FixLine(rc *lint.RuleContext, line *document.Line) {
	size := rc.ValueInt(0)
	run, ok := spaceIndent(line)
	if size <= 0 || !ok || !misaligned(line.Text(), run, size) {
		return
	}
	pad := size - len(run)%size
	line.SetText(strings.Repeat(" ", pad) + line.Text())
}

// TabWidthRule carries tab_width. It has no check or fix of its own; the
// value feeds indent_size = tab and the tab stops of indent_style.
type TabWidthRule struct {
	lint.BaseRule
}

// NewTabWidthRule creates a new tab_width rule.
func NewTabWidthRule() *TabWidthRule {
	return &TabWidthRule{
		BaseRule: lint.NewBaseRule(
			config.KeyTabWidth,
			"Width of a tab stop, used by the indentation rules",
			lint.ScopeLine,
			false,
		),
	}
}

// Resolve accepts a positive integer.
func (r *TabWidthRule) Resolve(settings config.Settings) (any, bool) {
	width, ok := settings.Int(config.KeyTabWidth)
	return width, ok && width > 0
}

// InferLine never infers a tab width.
func (r *TabWidthRule) InferLine(*document.Line) (any, bool) {
	return nil, false
}

// CheckLine reports nothing.
func (r *TabWidthRule) CheckLine(*lint.RuleContext, *document.Line) []lint.Violation {
	return nil
}

// FixLine does nothing.
func (r *TabWidthRule) FixLine(*lint.RuleContext, *document.Line) {}
