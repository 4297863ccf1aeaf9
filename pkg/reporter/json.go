package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/goeclint/pkg/config"
	"github.com/yaklabco/goeclint/pkg/runner"
)

// jsonVersion is the JSON report format version.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path       string          `json:"path"`
	Language   string          `json:"language,omitempty"`
	Settings   config.Settings `json:"settings,omitempty"`
	Violations []JSONViolation `json:"violations"`
	Modified   bool            `json:"modified,omitempty"`
	Fixed      int             `json:"fixed,omitempty"`
	Skipped    string          `json:"skipped,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// JSONViolation represents a single violation.
type JSONViolation struct {
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Source   string `json:"source,omitempty"`
	Fixable  bool   `json:"fixable"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesModified   int            `json:"filesModified"`
	FilesSkipped    int            `json:"filesSkipped"`
	FilesErrored    int            `json:"filesErrored"`
	TotalIssues     int            `json:"totalIssues"`
	Fixable         int            `json:"fixable"`
	Fixed           int            `json:"fixed"`
	BySeverity      map[string]int `json:"bySeverity"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			BySeverity: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:       r.opts.displayPath(file.Path),
			Violations: make([]JSONViolation, 0),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
			output.Summary.FilesErrored++
		}

		if pr := file.Result; pr != nil {
			fileResult.Language = pr.Language
			fileResult.Settings = pr.Settings
			fileResult.Modified = pr.Written
			fileResult.Fixed = pr.FixedCount
			fileResult.Skipped = pr.SkipReason
			if pr.Skipped {
				output.Summary.FilesSkipped++
			}
			output.Summary.Fixed += pr.FixedCount

			if pr.FileResult != nil {
				for _, v := range pr.Violations {
					severity := v.Severity
					if severity == "" {
						severity = config.SeverityError
					}

					fileResult.Violations = append(fileResult.Violations, JSONViolation{
						Rule:     v.Rule,
						Severity: string(severity),
						Message:  v.Message,
						Line:     v.Line,
						Column:   v.Column,
						Source:   v.Source,
						Fixable:  v.Fixable,
					})
					output.Summary.TotalIssues++
					output.Summary.BySeverity[string(severity)]++
					if v.Fixable {
						output.Summary.Fixable++
					}
				}
			}
		}

		if len(fileResult.Violations) > 0 {
			output.Summary.FilesWithIssues++
		}
		if fileResult.Modified {
			output.Summary.FilesModified++
		}

		output.Files = append(output.Files, fileResult)
		output.Summary.FilesChecked++
	}

	return output
}
