package rules

import (
	"bytes"
	"fmt"

	"github.com/yaklabco/goeclint/pkg/config"
	"github.com/yaklabco/goeclint/pkg/document"
	"github.com/yaklabco/goeclint/pkg/lint"
)

// latin1Max is the last code point accepted under charset = latin1.
const latin1Max = 0x7F

// CharsetRule checks the byte-order mark against the configured charset.
type CharsetRule struct {
	lint.BaseRule
}

// NewCharsetRule creates a new charset rule.
func NewCharsetRule() *CharsetRule {
	return &CharsetRule{
		BaseRule: lint.NewBaseRule(
			config.KeyCharset,
			"File byte-order mark must match the configured charset",
			lint.ScopeDocument,
			true,
		),
	}
}

// Resolve accepts any known charset name.
func (r *CharsetRule) Resolve(settings config.Settings) (any, bool) {
	name, ok := settings.String(config.KeyCharset)
	if !ok {
		return nil, false
	}
	charset, ok := document.ParseCharset(name)
	if !ok {
		return nil, false
	}
	return charset, true
}

// InferDocument reports the charset named by the byte-order mark, if any.
func (r *CharsetRule) InferDocument(doc *document.Document) (any, bool) {
	first := doc.Line(1)
	if first == nil || first.Charset() == "" {
		return nil, false
	}
	return first.Charset().String(), true
}

// CheckDocument compares the detected charset with the configured one.
// A mismatch is reported alone; the latin1 scan only runs when the
// byte-order mark agrees.
func (r *CharsetRule) CheckDocument(rc *lint.RuleContext, doc *document.Document) []lint.Violation {
	configured, ok := rc.Value.(document.Charset)
	if !ok {
		return nil
	}

	first := doc.Line(1)
	if first == nil {
		return nil
	}
	detected := first.Charset()

	if detected != "" && detected != configured {
		return []lint.Violation{
			lint.NewViolationAt(rc, r.Name(), 1, first.Text(), 0,
				fmt.Sprintf("invalid charset: %s, expected: %s", detected, configured)).
				WithSource(detected.String()).
				Fixable(readsBackAs(configured, first, doc)).
				Build(),
		}
	}

	if detected == "" && configured.HasBOM() {
		return []lint.Violation{
			lint.NewViolationAt(rc, r.Name(), 1, first.Text(), 0,
				fmt.Sprintf("expected charset: %s", configured)).
				Fixable(readsBackAs(configured, first, doc)).
				Build(),
		}
	}

	if configured == document.Latin1 {
		return r.checkLatin1(rc, doc)
	}

	return nil
}

func (r *CharsetRule) checkLatin1(rc *lint.RuleContext, doc *document.Document) []lint.Violation {
	var violations []lint.Violation

	for _, line := range doc.Lines() {
		text := line.Text()
		for offset, char := range text {
			if char <= latin1Max {
				continue
			}
			violations = append(violations,
				lint.NewViolationAt(rc, r.Name(), line.Number(), text, offset,
					fmt.Sprintf("character out of latin1 range: %c", char)).
					WithSource(string(char)).
					Build())
		}
	}

	return violations
}

// FixDocument replaces the byte-order mark with the configured charset's.
// Text is not transcoded, so the swap is skipped when the new mark followed
// by the existing bytes would read back as another charset (a UTF-16LE mark
// in front of two NUL bytes reads as UTF-32LE).
func (r *CharsetRule) FixDocument(rc *lint.RuleContext, doc *document.Document) {
	configured, ok := rc.Value.(document.Charset)
	if !ok {
		return
	}
	first := doc.Line(1)
	if first != nil && first.Charset() == configured {
		return
	}
	if first != nil && !readsBackAs(configured, first, doc) {
		return
	}
	doc.SetCharset(configured)
}

// readsBackAs reports whether the document, with its mark replaced by
// configured's, would be detected as configured again.
func readsBackAs(configured document.Charset, first *document.Line, doc *document.Document) bool {
	body := bytes.TrimPrefix(doc.Bytes(), first.Charset().BOM())
	sniffed, _ := document.SniffBOM(append(bytes.Clone(configured.BOM()), body...))
	if configured.HasBOM() {
		return sniffed == configured
	}
	return sniffed == ""
}
