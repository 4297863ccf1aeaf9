package lint

import (
	"context"

	"github.com/yaklabco/goeclint/pkg/config"
)

// DefaultIndentWidth is the tab stop used when neither indent_size nor
// tab_width resolves to a number.
const DefaultIndentWidth = 4

// RuleContext carries what a rule needs for one evaluation.
//
// RuleContext stores context.Context as a field (Ctx) because it is a
// short-lived parameter object created per rule invocation.
type RuleContext struct {
	// Ctx is the context for cancellation.
	Ctx context.Context

	// Path is the file being evaluated (empty for in-memory content).
	Path string

	// Settings are the resolved editorconfig settings for the file.
	Settings config.Settings

	// Value is the rule's own resolved setting value.
	Value any

	// Severity is assigned to violations built through the context.
	Severity config.Severity
}

// NewRuleContext creates a RuleContext for the given file and settings.
func NewRuleContext(ctx context.Context, path string, settings config.Settings, value any) *RuleContext {
	return &RuleContext{
		Ctx:      ctx,
		Path:     path,
		Settings: settings,
		Value:    value,
		Severity: config.SeverityError,
	}
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// ValueString returns the resolved value as a string, or the default.
func (rc *RuleContext) ValueString(defaultValue string) string {
	if s, ok := rc.Value.(string); ok {
		return s
	}
	return defaultValue
}

// ValueInt returns the resolved value as an int, or the default.
func (rc *RuleContext) ValueInt(defaultValue int) int {
	switch val := rc.Value.(type) {
	case int:
		return val
	case float64:
		return int(val)
	default:
		return defaultValue
	}
}

// ValueBool returns the resolved value as a bool, or the default.
func (rc *RuleContext) ValueBool(defaultValue bool) bool {
	if b, ok := rc.Value.(bool); ok {
		return b
	}
	return defaultValue
}

// SettingString returns another setting as a string, or the default.
func (rc *RuleContext) SettingString(key, defaultValue string) string {
	if s, ok := rc.Settings.String(key); ok {
		return s
	}
	return defaultValue
}

// SettingInt returns another setting as an int, or the default.
func (rc *RuleContext) SettingInt(key string, defaultValue int) int {
	if n, ok := rc.Settings.Int(key); ok {
		return n
	}
	return defaultValue
}

// IndentWidth returns the width of one indentation level: indent_size when
// numeric, else tab_width, else DefaultIndentWidth.
func (rc *RuleContext) IndentWidth() int {
	if n, ok := rc.Settings.Int(config.KeyIndentSize); ok && n > 0 {
		return n
	}
	if n, ok := rc.Settings.Int(config.KeyTabWidth); ok && n > 0 {
		return n
	}
	return DefaultIndentWidth
}
