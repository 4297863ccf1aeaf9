package configloader

import (
	"maps"

	"github.com/yaklabco/goeclint/pkg/config"
)

// fieldSet records which keys a config file spelled out, as dotted paths
// such as "skip_vendored" or "backups.enabled". A nil fieldSet means the
// source cannot say, and only non-zero values override.
type fieldSet map[string]bool

// has reports whether key was set. Without presence information it falls
// back to nonZero.
func (f fieldSet) has(key string, nonZero bool) bool {
	if f == nil {
		return nonZero
	}
	return f[key]
}

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is set
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Unset values in override do not override values in base
func merge(base, override *config.Config, present fieldSet) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.SeverityDefault != "" {
		result.SeverityDefault = override.SeverityDefault
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.EditorConfigName != "" {
		result.EditorConfigName = override.EditorConfigName
	}

	// CLI-only switches can only be turned on.
	if override.Fix {
		result.Fix = true
	}
	if override.DryRun {
		result.DryRun = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}

	if present.has("skip_vendored", override.SkipVendored) {
		result.SkipVendored = override.SkipVendored
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if present.has("backups.enabled", override.Backups.Enabled) {
		result.Backups.Enabled = override.Backups.Enabled
	}

	result.Settings = base.Settings.Merge(override.Settings)
	result.Overrides = overlay(base.Overrides, override.Overrides)
	result.Rules = mergeRules(base.Rules, override.Rules)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// overlay copies over onto a clone of base. Unlike Settings.Merge it keeps
// "unset" values, which overrides need to remove .editorconfig keys.
func overlay(base, over config.Settings) config.Settings {
	if base == nil && over == nil {
		return nil
	}
	result := base.Clone()
	maps.Copy(result, over)
	return result
}

// mergeRules performs deep merge of rule configurations.
// Both maps are iterated, with override's values taking precedence.
func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.RuleConfig, len(base)+len(override))
	maps.Copy(result, base)

	for key, val := range override {
		if existing, ok := result[key]; ok {
			result[key] = mergeRuleConfig(existing, val)
		} else {
			result[key] = val
		}
	}

	return result
}

// mergeRuleConfig merges individual rule configurations.
// override's values take precedence over base's values.
func mergeRuleConfig(base, override config.RuleConfig) config.RuleConfig {
	result := base

	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}
	if override.Severity != nil {
		result.Severity = override.Severity
	}
	if override.AutoFix != nil {
		result.AutoFix = override.AutoFix
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i], nil)
	}
	return result
}
