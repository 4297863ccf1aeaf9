package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/goeclint/internal/ui/pretty"
	"github.com/yaklabco/goeclint/pkg/analysis"
	"github.com/yaklabco/goeclint/pkg/config"
)

// Table layout for summary output. The name column takes whatever width the
// terminal leaves after the numeric columns, within these bounds.
const (
	minNameColWidth = 24
	maxNameColWidth = 80
	numColWidth     = 7 // Count and Errors columns.
	warnColWidth    = 8
	fixableColWidth = 8
	columnGaps      = 4
)

// SummaryRenderer formats results as aggregated summary tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
	width  int
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
		width:  pretty.TerminalWidth(opts.Writer),
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Issues == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No issues found"))
		return nil
	}

	if r.opts.SummaryOrder == config.SummaryOrderFiles {
		r.renderFileTable(report.ByFile)
		fmt.Fprintln(r.out)
		r.renderRuleTable(report.ByRule)
	} else {
		r.renderRuleTable(report.ByRule)
		fmt.Fprintln(r.out)
		r.renderFileTable(report.ByFile)
	}

	fmt.Fprintln(r.out)
	r.renderTotals(report.Totals)

	return nil
}

// nameColWidth sizes the first column to the terminal.
func (r *SummaryRenderer) nameColWidth() int {
	avail := r.width - numColWidth*2 - warnColWidth - fixableColWidth - columnGaps
	return min(max(avail, minNameColWidth), maxNameColWidth)
}

func (r *SummaryRenderer) separator(nameWidth int) string {
	total := nameWidth + numColWidth*2 + warnColWidth + fixableColWidth + columnGaps
	return r.styles.TableSeparator.Render(strings.Repeat("─", total))
}

func (r *SummaryRenderer) rowStyle(errors, warnings, infos int, text string) string {
	switch {
	case errors > 0:
		return r.styles.TableErrorRow.Render(text)
	case warnings > 0:
		return r.styles.TableWarnRow.Render(text)
	case infos > 0:
		return r.styles.TableInfoRow.Render(text)
	default:
		return text
	}
}

func (r *SummaryRenderer) renderRuleTable(rules []analysis.RuleAnalysis) {
	if len(rules) == 0 {
		return
	}

	nameWidth := r.nameColWidth()

	fmt.Fprintln(r.out, r.styles.Bold.Render("Rules Summary"))
	fmt.Fprintln(r.out, r.separator(nameWidth))

	// Pad first, then style.
	fmt.Fprintf(r.out, "%s %s %s %s %s\n",
		r.styles.TableHeader.Render(pretty.PadRight("Rule", nameWidth)),
		r.styles.TableHeader.Render(pretty.PadLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(pretty.PadLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(pretty.PadLeft("Warnings", warnColWidth)),
		r.styles.TableHeader.Render(pretty.PadLeft("Fixable", fixableColWidth)),
	)
	fmt.Fprintln(r.out, r.separator(nameWidth))

	for _, rule := range rules {
		name := pretty.PadRight(pretty.Truncate(rule.Rule, nameWidth), nameWidth)

		fixable := pretty.PadLeft("", fixableColWidth)
		if rule.Fixable {
			fixable = r.styles.Success.Render(pretty.PadLeft("✓", fixableColWidth))
		}

		fmt.Fprintf(r.out, "%s %s %s %s %s\n",
			r.rowStyle(rule.Errors, rule.Warnings, rule.Infos, name),
			pretty.PadLeft(strconv.Itoa(rule.Issues), numColWidth),
			pretty.PadLeft(strconv.Itoa(rule.Errors), numColWidth),
			pretty.PadLeft(strconv.Itoa(rule.Warnings), warnColWidth),
			fixable,
		)
	}
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	nameWidth := r.nameColWidth()

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files Summary"))
	fmt.Fprintln(r.out, r.separator(nameWidth))

	fmt.Fprintf(r.out, "%s %s %s %s\n",
		r.styles.TableHeader.Render(pretty.PadRight("File", nameWidth)),
		r.styles.TableHeader.Render(pretty.PadLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(pretty.PadLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(pretty.PadLeft("Warnings", warnColWidth)),
	)
	fmt.Fprintln(r.out, r.separator(nameWidth))

	for _, file := range files {
		path := pretty.PadRight(pretty.TruncateLeft(file.Path, nameWidth), nameWidth)

		fmt.Fprintf(r.out, "%s %s %s %s\n",
			r.rowStyle(file.Errors, file.Warnings, file.Infos, path),
			pretty.PadLeft(strconv.Itoa(file.Issues), numColWidth),
			pretty.PadLeft(strconv.Itoa(file.Errors), numColWidth),
			pretty.PadLeft(strconv.Itoa(file.Warnings), warnColWidth),
		)
	}
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	head := countNoun(totals.Issues, "issue", "issues")

	var severityParts []string
	if totals.Errors > 0 {
		severityParts = append(severityParts, r.styles.Error.Render(countNoun(totals.Errors, "error", "errors")))
	}
	if totals.Warnings > 0 {
		severityParts = append(severityParts, r.styles.Warning.Render(countNoun(totals.Warnings, "warning", "warnings")))
	}
	if totals.Infos > 0 {
		severityParts = append(severityParts, r.styles.Info.Render(fmt.Sprintf("%d info", totals.Infos)))
	}
	if len(severityParts) > 0 {
		head = fmt.Sprintf("%s (%s)", head, strings.Join(severityParts, ", "))
	}

	line := fmt.Sprintf("%s in %s", head, countNoun(totals.FilesWithIssues, "file", "files"))
	if totals.Fixable > 0 {
		line += ", " + r.styles.Success.Render(fmt.Sprintf("%d fixable", totals.Fixable))
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+line)
}

func countNoun(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
