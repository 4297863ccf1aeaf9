package lint

import (
	"unicode/utf8"

	"github.com/yaklabco/goeclint/pkg/config"
)

// ViolationBuilder helps construct Violation values.
type ViolationBuilder struct {
	v Violation
}

// NewViolation starts building a violation for rule at a 1-based line and column.
func NewViolation(rule string, line, column int, message string) *ViolationBuilder {
	return &ViolationBuilder{
		v: Violation{
			Rule:    rule,
			Line:    line,
			Column:  column,
			Message: message,
		},
	}
}

// NewViolationAt starts a violation positioned at byte offset within text.
// The column is counted in characters.
func NewViolationAt(rc *RuleContext, rule string, line int, text string, offset int, message string) *ViolationBuilder {
	offset = min(max(offset, 0), len(text))
	b := NewViolation(rule, line, utf8.RuneCountInString(text[:offset])+1, message)
	if rc != nil {
		b.v.FilePath = rc.Path
		b.v.Severity = rc.Severity
	}
	return b
}

// WithSource sets the offending substring.
func (b *ViolationBuilder) WithSource(source string) *ViolationBuilder {
	b.v.Source = source
	return b
}

// WithSeverity sets the severity.
func (b *ViolationBuilder) WithSeverity(s config.Severity) *ViolationBuilder {
	b.v.Severity = s
	return b
}

// WithPath sets the file path.
func (b *ViolationBuilder) WithPath(path string) *ViolationBuilder {
	b.v.FilePath = path
	return b
}

// Fixable marks whether fix removes the violation.
func (b *ViolationBuilder) Fixable(fixable bool) *ViolationBuilder {
	b.v.Fixable = fixable
	return b
}

// Build returns the constructed Violation.
func (b *ViolationBuilder) Build() Violation {
	return b.v
}
