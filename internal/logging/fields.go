package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldConfig     = "config"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldCommand    = "command"

	// Run option fields.
	FieldFix    = "fix"
	FieldDryRun = "dry_run"
	FieldJobs   = "jobs"
	FieldFormat = "format"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesSkipped    = "files_skipped"
	FieldFilesWithIssues = "files_with_issues"
	FieldViolations      = "violations"
	FieldFilesModified   = "files_modified"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rule and setting fields.
	FieldRule     = "rule"
	FieldSetting  = "setting"
	FieldValue    = "value"
	FieldSeverity = "severity"
	FieldFixable  = "fixable"
	FieldScope    = "scope"
	FieldOverride = "override"
)
