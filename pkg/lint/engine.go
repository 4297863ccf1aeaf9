package lint

import (
	"context"
	"fmt"

	"github.com/yaklabco/goeclint/pkg/config"
	"github.com/yaklabco/goeclint/pkg/document"
)

// FileResult contains the results of checking a single file.
type FileResult struct {
	// Document is the built (and, after a fix, mutated) document.
	Document *document.Document

	// Violations contains all issues found, ordered by rule then line.
	Violations []Violation
}

// HasIssues returns true if any violations were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Violations) > 0
}

// IssueCount returns the total number of violations.
func (fr *FileResult) IssueCount() int {
	return len(fr.Violations)
}

// FixableCount returns the number of violations fix can remove.
func (fr *FileResult) FixableCount() int {
	count := 0
	for _, v := range fr.Violations {
		if v.Fixable {
			count++
		}
	}
	return count
}

// Engine dispatches the rules of a Table over documents.
type Engine struct {
	// Table holds the rules in evaluation order.
	Table *Table

	// Config supplies per-rule enablement, severity and auto-fix (may be nil).
	Config *config.Config
}

// NewEngine creates a new Engine with the given rule table and tool configuration.
func NewEngine(table *Table, cfg *config.Config) *Engine {
	return &Engine{
		Table:  table,
		Config: cfg,
	}
}

// Check evaluates every configured rule against doc and collects all violations.
// Only context cancellation produces an error.
func (e *Engine) Check(
	ctx context.Context,
	path string,
	settings config.Settings,
	doc *document.Document,
) ([]Violation, error) {
	var violations []Violation

	for _, rr := range ResolveRules(e.Table, settings, e.Config) {
		select {
		case <-ctx.Done():
			return violations, fmt.Errorf("check cancelled: %w", ctx.Err())
		default:
		}

		rc := NewRuleContext(ctx, path, settings, rr.Value)
		rc.Severity = rr.Severity

		found := checkRule(rc, rr.Rule, doc)
		for idx := range found {
			found[idx].Severity = rr.Severity
			if found[idx].FilePath == "" {
				found[idx].FilePath = path
			}
			if found[idx].Rule == "" {
				found[idx].Rule = rr.Rule.Name()
			}
			found[idx].Fixable = found[idx].Fixable && rr.AutoFix
		}
		violations = append(violations, found...)
	}

	return violations, nil
}

// Fix applies every configured, auto-fixable rule to doc in table order.
// Later rules observe the mutations of earlier ones.
func (e *Engine) Fix(ctx context.Context, settings config.Settings, doc *document.Document) error {
	for _, rr := range ResolveRules(e.Table, settings, e.Config) {
		if !rr.AutoFix {
			continue
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("fix cancelled: %w", ctx.Err())
		default:
		}

		rc := NewRuleContext(ctx, "", settings, rr.Value)
		fixRule(rc, rr.Rule, doc)
	}

	return nil
}

// Infer feeds the value each rule derives from doc into tally.
func (e *Engine) Infer(ctx context.Context, doc *document.Document, tally *Tally) error {
	tally.AddFile()

	for _, rule := range e.Table.Rules() {
		select {
		case <-ctx.Done():
			return fmt.Errorf("infer cancelled: %w", ctx.Err())
		default:
		}

		switch rule.Scope() {
		case ScopeDocument:
			if value, ok := rule.(DocumentRule).InferDocument(doc); ok {
				tally.Add(rule.Name(), rule.TallyMode(), value)
			}
		case ScopeLine:
			lineRule := rule.(LineRule)
			for _, line := range doc.Lines() {
				if value, ok := lineRule.InferLine(line); ok {
					tally.Add(rule.Name(), rule.TallyMode(), value)
				}
			}
		}
	}

	return nil
}

// CheckContent builds content into a document and checks it.
func (e *Engine) CheckContent(
	ctx context.Context,
	path string,
	settings config.Settings,
	content []byte,
) (*FileResult, error) {
	doc := document.Build(content)

	violations, err := e.Check(ctx, path, settings, doc)
	if err != nil {
		return nil, err
	}

	return &FileResult{
		Document:   doc,
		Violations: violations,
	}, nil
}

// FixContent builds content, fixes it and serializes the result. When no
// rule mutates anything the output equals content byte for byte.
func (e *Engine) FixContent(ctx context.Context, settings config.Settings, content []byte) ([]byte, error) {
	doc := document.Build(content)
	if err := e.Fix(ctx, settings, doc); err != nil {
		return nil, err
	}
	return doc.Bytes(), nil
}

func checkRule(rc *RuleContext, rule Rule, doc *document.Document) []Violation {
	switch rule.Scope() {
	case ScopeDocument:
		return rule.(DocumentRule).CheckDocument(rc, doc)
	case ScopeLine:
		lineRule := rule.(LineRule)
		var violations []Violation
		for _, line := range doc.Lines() {
			violations = append(violations, lineRule.CheckLine(rc, line)...)
		}
		return violations
	default:
		return nil
	}
}

func fixRule(rc *RuleContext, rule Rule, doc *document.Document) {
	switch rule.Scope() {
	case ScopeDocument:
		rule.(DocumentRule).FixDocument(rc, doc)
	case ScopeLine:
		lineRule := rule.(LineRule)
		for _, line := range doc.Lines() {
			lineRule.FixLine(rc, line)
		}
	}
}
