// Package config defines core configuration types for goeclint.
// These types are pure data structures with no dependency on a particular config loader.
package config

import "errors"

// ErrInvalidConfiguration is returned for configuration that cannot be acted on,
// such as an unknown output format or a malformed setting override.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Severity represents the severity level of a violation.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid returns true if the severity is known.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// RuleConfig holds per-rule configuration. Rules are keyed by setting name.
type RuleConfig struct {
	Enabled  *bool   `yaml:"enabled,omitempty"`
	Severity *string `yaml:"severity,omitempty"`
	AutoFix  *bool   `yaml:"auto_fix,omitempty"`
}

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // only "sidecar" is supported
}

// BackupModeSidecar writes the backup next to the original file.
const BackupModeSidecar = "sidecar"

// OutputFormat specifies the output format for violations.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// InferFormat specifies how inferred settings are written.
type InferFormat string

const (
	InferJSON InferFormat = "json"
	InferYAML InferFormat = "yaml"
	InferINI  InferFormat = "ini"
)

// SummaryOrder controls the order of tables in summary output.
type SummaryOrder string

const (
	// SummaryOrderRules shows rules table first (default).
	SummaryOrderRules SummaryOrder = "rules"
	// SummaryOrderFiles shows files table first.
	SummaryOrderFiles SummaryOrder = "files"
)

// IsValid returns true if the summary order is valid.
func (s SummaryOrder) IsValid() bool {
	switch s {
	case SummaryOrderRules, SummaryOrderFiles:
		return true
	default:
		return false
	}
}

// DefaultEditorConfigName is the file consulted for per-file settings.
const DefaultEditorConfigName = ".editorconfig"

// Config is the root configuration structure for goeclint.
type Config struct {
	// SeverityDefault is the default severity for rules that don't specify one.
	SeverityDefault string `yaml:"severity_default"`

	// Settings are editorconfig defaults applied beneath every .editorconfig match.
	Settings Settings `yaml:"settings,omitempty"`

	// Rules contains per-rule configuration keyed by setting name.
	Rules map[string]RuleConfig `yaml:"rules,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore,omitempty"`

	// Backups configures backup behavior when fixing.
	Backups BackupsConfig `yaml:"backups"`

	// SkipVendored excludes vendored paths (vendor/, node_modules/, ...) during discovery.
	SkipVendored bool `yaml:"skip_vendored"`

	// EditorConfigName overrides the name of the editorconfig file.
	EditorConfigName string `yaml:"editorconfig_name,omitempty"`

	// CLI-level options (not persisted to config files).

	// Fix enables rewriting files.
	Fix bool `yaml:"-"`

	// DryRun shows what would be fixed without making changes.
	DryRun bool `yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// Overrides are settings from --set, applied over every .editorconfig match.
	Overrides Settings `yaml:"-"`

	// NoBackups disables backup creation when fixing.
	NoBackups bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		SeverityDefault: string(SeverityError),
		Settings:        make(Settings),
		Rules:           make(map[string]RuleConfig),
		Ignore:          nil,
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    BackupModeSidecar,
		},
		SkipVendored:     true,
		EditorConfigName: DefaultEditorConfigName,
		Format:           FormatText,
		Jobs:             0, // 0 means use GOMAXPROCS
	}
}
