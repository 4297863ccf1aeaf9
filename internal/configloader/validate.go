package configloader

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/goeclint/pkg/config"
	"github.com/yaklabco/goeclint/pkg/lint"
	"github.com/yaklabco/goeclint/pkg/lint/rules"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.indent_style.severity").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// Unwrap lets callers match validation failures with errors.Is.
func (e *ValidationError) Unwrap() error {
	return config.ErrInvalidConfiguration
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown rules).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	config.BackupModeSidecar: true,
	"none":                   true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}
	table := rules.NewTable()

	if cfg.SeverityDefault != "" && !IsValidSeverity(cfg.SeverityDefault) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "severity_default",
			Value:   cfg.SeverityDefault,
			Message: fmt.Sprintf("invalid severity %q; must be one of: error, warning, info", cfg.SeverityDefault),
		})
	}

	if cfg.Format != "" {
		if _, err := config.ParseOutputFormat(string(cfg.Format)); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "format",
				Value:   cfg.Format,
				Message: fmt.Sprintf("invalid format %q; must be one of: text, json, sarif, diff, summary", cfg.Format),
			})
		}
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "backups.mode",
			Value:   cfg.Backups.Mode,
			Message: fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode),
		})
	}

	if strings.ContainsAny(cfg.EditorConfigName, `/\`) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "editorconfig_name",
			Value:   cfg.EditorConfigName,
			Message: "must be a file name, not a path",
		})
	}

	validateRules(cfg, table, result)
	validateSettings("settings", cfg.Settings, table, result)
	validateSettings("overrides", cfg.Overrides, table, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validateRules checks rule configurations for errors and warnings.
func validateRules(cfg *config.Config, table *lint.Table, result *ValidationResult) {
	for name, ruleCfg := range cfg.Rules {
		if _, exists := table.Get(name); !exists {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "rules." + name,
				Value:   name,
				Message: fmt.Sprintf("unknown rule %q; it will be ignored", name),
			})
		}

		if ruleCfg.Severity != nil && !IsValidSeverity(*ruleCfg.Severity) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "rules." + name + ".severity",
				Value:   *ruleCfg.Severity,
				Message: fmt.Sprintf("invalid severity %q; must be one of: error, warning, info", *ruleCfg.Severity),
			})
		}
	}
}

// validateSettings checks the values of known settings against the rule
// that reads them. Unknown keys are legal editorconfig properties and only
// draw a warning.
func validateSettings(field string, settings config.Settings, table *lint.Table, result *ValidationResult) {
	for _, key := range settings.Keys() {
		value := settings[key]

		rule, known := table.Get(key)
		if !known {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field + "." + key,
				Value:   value,
				Message: fmt.Sprintf("unknown setting %q; no rule checks it", key),
			})
			continue
		}

		if acceptsSpecial(key, value) {
			continue
		}

		if _, ok := rule.Resolve(config.Settings{key: value}); !ok {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field + "." + key,
				Value:   value,
				Message: fmt.Sprintf("invalid value %v for %s", value, key),
			})
		}
	}
}

// acceptsSpecial reports values that are valid editorconfig but that a
// rule cannot resolve on its own: "unset", indent_size = tab and
// max_line_length = off.
func acceptsSpecial(key string, value any) bool {
	str, ok := value.(string)
	if !ok {
		return false
	}
	switch {
	case str == config.Unset:
		return true
	case key == config.KeyIndentSize && str == "tab":
		return true
	case key == config.KeyMaxLineLength && str == "off":
		return true
	default:
		return false
	}
}

// validateIgnorePatterns checks that ignore patterns compile with the
// same glob engine the runner uses.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidSeverity returns true if the severity string is valid.
func IsValidSeverity(s string) bool {
	return config.Severity(s).IsValid()
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}
