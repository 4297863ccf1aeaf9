package lint

import (
	"github.com/yaklabco/goeclint/pkg/config"
	"github.com/yaklabco/goeclint/pkg/document"
)

// mockLineRule flags every line whose text equals its resolved value.
type mockLineRule struct {
	BaseRule
	key string
}

func newMockLineRule(key string) *mockLineRule {
	return &mockLineRule{
		BaseRule: NewBaseRule(key, "mock line rule", ScopeLine, true),
		key:      key,
	}
}

func (m *mockLineRule) Resolve(settings config.Settings) (any, bool) {
	s, ok := settings.String(m.key)
	return s, ok
}

func (m *mockLineRule) CheckLine(rc *RuleContext, line *document.Line) []Violation {
	if line.Text() != rc.ValueString("") {
		return nil
	}
	return []Violation{NewViolation("", line.Number(), 1, "matched").Fixable(true).Build()}
}

func (m *mockLineRule) FixLine(rc *RuleContext, line *document.Line) {
	if line.Text() == rc.ValueString("") {
		line.SetText("fixed")
	}
}

func (m *mockLineRule) InferLine(line *document.Line) (any, bool) {
	return line.Text(), line.HasText()
}

// mockDocRule counts lines.
type mockDocRule struct {
	BaseRule
}

func newMockDocRule(name string) *mockDocRule {
	return &mockDocRule{BaseRule: NewBaseRule(name, "mock document rule", ScopeDocument, false)}
}

func (m *mockDocRule) Resolve(settings config.Settings) (any, bool) {
	n, ok := settings.Int(m.Name())
	return n, ok
}

func (m *mockDocRule) CheckDocument(rc *RuleContext, doc *document.Document) []Violation {
	if doc.Len() <= rc.ValueInt(0) {
		return nil
	}
	return []Violation{NewViolation(m.Name(), doc.Len(), 1, "too many lines").Build()}
}

func (m *mockDocRule) FixDocument(*RuleContext, *document.Document) {}

func (m *mockDocRule) InferDocument(doc *document.Document) (any, bool) {
	return doc.Len(), true
}

// halfRule claims line scope without implementing LineRule.
type halfRule struct {
	BaseRule
}

func (h *halfRule) Resolve(config.Settings) (any, bool) { return nil, false }
