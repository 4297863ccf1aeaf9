// Package lint provides the rule contract, rule table, evaluation engine and
// file pipeline for goeclint.
package lint

import (
	"github.com/yaklabco/goeclint/pkg/config"
	"github.com/yaklabco/goeclint/pkg/document"
)

// Violation is a single breach of a configured setting.
type Violation struct {
	// Message is the human-readable description of the issue.
	Message string

	// Line is the 1-based line number.
	Line int

	// Column is the 1-based column, counted in characters.
	Column int

	// Rule is the setting name that produced this violation (e.g., "end_of_line").
	Rule string

	// Source is the offending substring, when there is one.
	Source string

	// FilePath is the path of the file containing the issue.
	FilePath string

	// Severity comes from the tool configuration.
	Severity config.Severity

	// Fixable reports whether fix can remove this violation.
	Fixable bool
}

// Scope tags which part of a document a rule evaluates.
type Scope int

const (
	// ScopeLine rules run once per line.
	ScopeLine Scope = iota
	// ScopeDocument rules run once per document.
	ScopeDocument
)

// String returns the scope name.
func (s Scope) String() string {
	if s == ScopeDocument {
		return "document"
	}
	return "line"
}

// TallyMode selects how inferred values of a rule are combined.
type TallyMode int

const (
	// TallyMajority keeps the most frequent value.
	TallyMajority TallyMode = iota
	// TallyMaxRounded keeps the largest integer, rounded up to a multiple of 10.
	TallyMaxRounded
)

// Rule defines the metadata shared by every rule. A rule is also either a
// LineRule or a DocumentRule, as reported by Scope.
type Rule interface {
	// Name returns the setting name the rule enforces (e.g., "indent_style").
	Name() string

	// Description returns what the rule checks.
	Description() string

	// Scope reports whether the rule runs per line or per document.
	Scope() Scope

	// CanFix returns whether the rule mutates documents when fixing.
	CanFix() bool

	// DefaultSeverity returns the severity used when the configuration gives none.
	DefaultSeverity() config.Severity

	// TallyMode returns how inferred values are combined across files.
	TallyMode() TallyMode

	// Resolve extracts the rule's configured value from settings.
	// It returns false when the setting is absent or its value is not usable.
	Resolve(settings config.Settings) (any, bool)
}

// LineRule is evaluated once per line.
type LineRule interface {
	Rule

	// CheckLine returns the violations of line against rc.Value.
	CheckLine(rc *RuleContext, line *document.Line) []Violation

	// FixLine mutates line to conform to rc.Value.
	FixLine(rc *RuleContext, line *document.Line)

	// InferLine derives the value this line suggests, if any.
	InferLine(line *document.Line) (any, bool)
}

// DocumentRule is evaluated once per document.
type DocumentRule interface {
	Rule

	// CheckDocument returns the violations of doc against rc.Value.
	CheckDocument(rc *RuleContext, doc *document.Document) []Violation

	// FixDocument mutates doc to conform to rc.Value.
	FixDocument(rc *RuleContext, doc *document.Document)

	// InferDocument derives the value the document suggests, if any.
	InferDocument(doc *document.Document) (any, bool)
}
