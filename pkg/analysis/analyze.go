// Package analysis aggregates runner results into per-file and per-setting
// views shared by the reporters.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/goeclint/pkg/config"
	"github.com/yaklabco/goeclint/pkg/lint"
	"github.com/yaklabco/goeclint/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// RelativePath converts path to one relative to workDir. If workDir is
// empty or the conversion fails, path is returned unchanged.
func RelativePath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	relPath, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return relPath
}

type counts struct {
	issues, errors, warnings, infos int
}

func (c *counts) add(severity config.Severity) {
	c.issues++
	switch severity {
	case config.SeverityWarning:
		c.warnings++
	case config.SeverityInfo:
		c.infos++
	default:
		c.errors++
	}
}

type accumulator struct {
	files     map[string]*FileAnalysis
	rules     map[string]*RuleAnalysis
	fileRules map[string]map[string]bool
	ruleFiles map[string]map[string]bool
}

func newAccumulator() *accumulator {
	return &accumulator{
		files:     make(map[string]*FileAnalysis),
		rules:     make(map[string]*RuleAnalysis),
		fileRules: make(map[string]map[string]bool),
		ruleFiles: make(map[string]map[string]bool),
	}
}

func (acc *accumulator) add(path string, v lint.Violation) {
	fa, ok := acc.files[path]
	if !ok {
		fa = &FileAnalysis{Path: path}
		acc.files[path] = fa
		acc.fileRules[path] = make(map[string]bool)
	}
	ra, ok := acc.rules[v.Rule]
	if !ok {
		ra = &RuleAnalysis{Rule: v.Rule}
		acc.rules[v.Rule] = ra
		acc.ruleFiles[v.Rule] = make(map[string]bool)
	}

	fc := counts{fa.Issues, fa.Errors, fa.Warnings, fa.Infos}
	fc.add(v.Severity)
	fa.Issues, fa.Errors, fa.Warnings, fa.Infos = fc.issues, fc.errors, fc.warnings, fc.infos

	rc := counts{ra.Issues, ra.Errors, ra.Warnings, ra.Infos}
	rc.add(v.Severity)
	ra.Issues, ra.Errors, ra.Warnings, ra.Infos = rc.issues, rc.errors, rc.warnings, rc.infos
	ra.Fixable = ra.Fixable || v.Fixable

	acc.fileRules[path][v.Rule] = true
	acc.ruleFiles[v.Rule][path] = true
}

func (acc *accumulator) byFile(opts Options) []FileAnalysis {
	result := make([]FileAnalysis, 0, len(acc.files))
	for path, fa := range acc.files {
		for rule := range acc.fileRules[path] {
			fa.Rules = append(fa.Rules, rule)
		}
		slices.Sort(fa.Rules)
		result = append(result, *fa)
	}
	sortAnalysis(result, opts, func(fa FileAnalysis) (string, counts) {
		return fa.Path, counts{fa.Issues, fa.Errors, fa.Warnings, fa.Infos}
	})
	return result
}

func (acc *accumulator) byRule(opts Options) []RuleAnalysis {
	result := make([]RuleAnalysis, 0, len(acc.rules))
	for rule, ra := range acc.rules {
		for path := range acc.ruleFiles[rule] {
			ra.Files = append(ra.Files, path)
		}
		slices.Sort(ra.Files)
		result = append(result, *ra)
	}
	sortAnalysis(result, opts, func(ra RuleAnalysis) (string, counts) {
		return ra.Rule, counts{ra.Issues, ra.Errors, ra.Warnings, ra.Infos}
	})
	return result
}

// Analyze transforms a runner.Result into a Report in a single pass.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	acc := newAccumulator()
	totals := counts{}

	for _, file := range result.Files {
		report.Totals.Files++
		if file.Error != nil {
			report.Totals.FilesErrored++
			continue
		}
		if file.Result == nil {
			continue
		}
		if file.Result.Skipped {
			report.Totals.FilesSkipped++
		}
		if file.Result.FileResult == nil || !file.Result.HasIssues() {
			continue
		}

		report.Totals.FilesWithIssues++
		displayPath := RelativePath(file.Path, opts.WorkingDir)

		for _, v := range file.Result.Violations {
			totals.add(v.Severity)
			if v.Fixable {
				report.Totals.Fixable++
			}
			acc.add(displayPath, v)

			if opts.IncludeViolations {
				report.Violations = append(report.Violations, ViolationEntry{
					FilePath: displayPath,
					Rule:     v.Rule,
					Severity: string(severityOrDefault(v.Severity)),
					Message:  v.Message,
					Line:     v.Line,
					Column:   v.Column,
					Source:   v.Source,
					Fixable:  v.Fixable,
				})
			}
		}
	}

	report.Totals.Issues = totals.issues
	report.Totals.Errors = totals.errors
	report.Totals.Warnings = totals.warnings
	report.Totals.Infos = totals.infos

	if opts.IncludeByRule {
		report.ByRule = acc.byRule(opts)
	}
	if opts.IncludeByFile {
		report.ByFile = acc.byFile(opts)
	}

	return report
}

func severityOrDefault(severity config.Severity) config.Severity {
	if severity == "" {
		return config.SeverityError
	}
	return severity
}

// sortAnalysis orders rows. Alphabetical order is always ascending and
// severity order always puts errors first; ties fall back to the name so
// output is stable.
func sortAnalysis[T any](rows []T, opts Options, key func(T) (string, counts)) {
	slices.SortFunc(rows, func(left, right T) int {
		leftName, lc := key(left)
		rightName, rc := key(right)

		var result int
		switch opts.SortBy {
		case SortByAlpha:
			return cmp.Compare(leftName, rightName)
		case SortBySeverity:
			result = cmp.Or(
				cmp.Compare(rc.errors, lc.errors),
				cmp.Compare(rc.warnings, lc.warnings),
				cmp.Compare(rc.issues, lc.issues),
			)
		default:
			result = cmp.Compare(lc.issues, rc.issues)
			if opts.SortDesc {
				result = -result
			}
		}
		return cmp.Or(result, cmp.Compare(leftName, rightName))
	})
}
