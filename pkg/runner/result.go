package runner

import (
	"errors"

	"github.com/yaklabco/goeclint/pkg/config"
	"github.com/yaklabco/goeclint/pkg/lint"
)

// FileOutcome wraps PipelineResult with resolved path metadata.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result contains the pipeline result for this file.
	// May be nil if the file encountered an error during processing.
	Result *lint.PipelineResult

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesSkipped is the number of binary or concurrently modified files.
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// ViolationsTotal is the total number of violations across all files.
	ViolationsTotal int

	// ViolationsFixable is the number of violations fix can remove.
	ViolationsFixable int

	// ViolationsBySeverity maps severity levels to counts.
	ViolationsBySeverity map[config.Severity]int

	// FilesWithIssues is the number of files with at least one violation.
	FilesWithIssues int

	// FilesModified is the number of files that were modified by fixes.
	FilesModified int

	// ViolationsFixed is the total number of violations fixed across all files.
	ViolationsFixed int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasFailures reports whether any violations with error severity occurred.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.ViolationsBySeverity[config.SeverityError] > 0
}

// HasWarnings reports whether any violations with warning severity occurred.
func (r *Result) HasWarnings() bool {
	if r == nil {
		return false
	}
	return r.Stats.ViolationsBySeverity[config.SeverityWarning] > 0
}

// HasIssues reports whether any violations were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.ViolationsTotal > 0
}

// Err joins the errors of files that could not be processed.
func (r *Result) Err() error {
	if r == nil {
		return nil
	}
	errs := append([]error(nil), r.Errors...)
	for _, file := range r.Files {
		if file.Error != nil {
			errs = append(errs, file.Error)
		}
	}
	return errors.Join(errs...)
}

func newStats() Stats {
	return Stats{
		ViolationsBySeverity: make(map[config.Severity]int),
	}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++

	if outcome.Result.Skipped {
		r.Stats.FilesSkipped++
	}

	if outcome.Result.Written {
		r.Stats.FilesModified++
		r.Stats.ViolationsFixed += outcome.Result.FixedCount
	}

	if outcome.Result.FileResult == nil {
		return
	}

	count := outcome.Result.IssueCount()
	r.Stats.ViolationsTotal += count
	r.Stats.ViolationsFixable += outcome.Result.FixableCount()

	if count > 0 {
		r.Stats.FilesWithIssues++
	}

	for _, v := range outcome.Result.Violations {
		severity := v.Severity
		if severity == "" {
			severity = config.SeverityError
		}
		r.Stats.ViolationsBySeverity[severity]++
	}
}

// InferStats captures aggregate information about an infer run.
type InferStats struct {
	FilesDiscovered int
	FilesInferred   int
	FilesSkipped    int
	FilesErrored    int
}

// InferResult is the outcome of inferring settings over many files.
type InferResult struct {
	// Settings are the resolved settings, one value per setting.
	Settings config.Settings

	// Scores is the per-setting frequency table.
	Scores map[string][]lint.Score

	// Stats contains aggregate statistics for the run.
	Stats InferStats

	// Errors contains the files that could not be read.
	Errors []error
}
