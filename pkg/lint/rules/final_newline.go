package rules

import (
	"unicode/utf8"

	"github.com/yaklabco/goeclint/pkg/config"
	"github.com/yaklabco/goeclint/pkg/document"
	"github.com/yaklabco/goeclint/pkg/lint"
)

// InsertFinalNewlineRule checks whether the last line is terminated.
type InsertFinalNewlineRule struct {
	lint.BaseRule
}

// NewInsertFinalNewlineRule creates a new insert_final_newline rule.
func NewInsertFinalNewlineRule() *InsertFinalNewlineRule {
	return &InsertFinalNewlineRule{
		BaseRule: lint.NewBaseRule(
			config.KeyInsertFinalNewline,
			"The file must (or must not) end with a line terminator",
			lint.ScopeDocument,
			true,
		),
	}
}

// Resolve accepts a boolean.
func (r *InsertFinalNewlineRule) Resolve(settings config.Settings) (any, bool) {
	return boolSetting(settings, config.KeyInsertFinalNewline)
}

// InferDocument reports whether the last line is terminated. An empty
// document infers false.
func (r *InsertFinalNewlineRule) InferDocument(doc *document.Document) (any, bool) {
	last := doc.Last()
	return last != nil && last.Ending() != document.None, true
}

// CheckDocument reports a missing or unexpected final terminator at the end
// of the last line.
func (r *InsertFinalNewlineRule) CheckDocument(rc *lint.RuleContext, doc *document.Document) []lint.Violation {
	want, ok := rc.Value.(bool)
	if !ok {
		return nil
	}

	inferred, ok := r.InferDocument(doc)
	if !ok || inferred == want {
		return nil
	}

	message := "unexpected final newline"
	if want {
		message = "expected final newline"
	}

	line, column := 1, 1
	if last := doc.Last(); last != nil {
		line, column = last.Number(), utf8.RuneCountInString(last.Text())+1
	}
	return []lint.Violation{
		lint.NewViolation(r.Name(), line, column, message).
			WithPath(rc.Path).
			WithSeverity(rc.Severity).
			Fixable(true).
			Build(),
	}
}

// FixDocument adds or removes the final terminator.
func (r *InsertFinalNewlineRule) FixDocument(rc *lint.RuleContext, doc *document.Document) {
	want, ok := rc.Value.(bool)
	if !ok {
		return
	}

	if want {
		r.insert(rc, doc)
		return
	}
	r.remove(doc)
}

func (r *InsertFinalNewlineRule) insert(rc *lint.RuleContext, doc *document.Document) {
	ending := configuredNewline(rc.Settings)

	if doc.Len() == 0 {
		line, err := document.NewLine(1, nil, "", ending)
		if err == nil {
			doc.Push(line)
		}
		return
	}

	if last := doc.Last(); last.Ending() == document.None {
		last.SetEnding(ending)
	}
}

// remove pops trailing empty lines, then clears the terminator of the last
// line. A document of only empty lines ends as a single empty line.
func (r *InsertFinalNewlineRule) remove(doc *document.Document) {
	for doc.Len() > 1 && doc.Last().Text() == "" {
		doc.Pop()
	}

	last := doc.Last()
	if last == nil {
		return
	}
	last.SetEnding(document.None)
	if last.Text() == "" {
		last.ClearText()
	}
}
