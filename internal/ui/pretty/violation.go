package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/goeclint/pkg/config"
	"github.com/yaklabco/goeclint/pkg/lint"
)

// contextIndent aligns source context beneath the violation line.
const contextIndent = "        "

// FormatViolation formats a single violation for terminal output.
// sourceLine is the text of the offending line; it is shown with a caret
// under the reported column when showContext is set. Tabs in the source
// are expanded to tabWidth columns.
func (s *Styles) FormatViolation(v *lint.Violation, showContext bool, sourceLine string, tabWidth int) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(v.FilePath), v.Line, v.Column)

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(v.Severity),
		s.Message.Render(v.Message),
		s.Rule.Render("("+v.Rule+")"),
	)

	if showContext && v.Line > 0 {
		builder.WriteString(s.FormatSourceContext(sourceLine, v.Column, tabWidth))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	case "":
		return s.Error.Render("error")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column, tabWidth int) string {
	var builder strings.Builder

	builder.WriteString(contextIndent + s.SourceLine.Render(ExpandTabs(line, tabWidth)) + "\n")

	if column > 0 {
		padding := contextIndent + strings.Repeat(" ", CaretOffset(line, column, tabWidth))
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		noun := "issues"
		if issueCount == 1 {
			noun = "issue"
		}
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", issueCount, noun))
	}
	return header
}
