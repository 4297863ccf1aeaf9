package lint

import "github.com/yaklabco/goeclint/pkg/config"

// ResolvedRule pairs a Rule with its configured value and tool configuration.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Value is the setting value resolved from the file's settings.
	Value any

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Severity is the resolved severity for violations from this rule.
	Severity config.Severity

	// AutoFix indicates whether fix mutates documents for this rule.
	AutoFix bool
}

// ResolveRules determines which rules apply to a file, in table order.
// A rule applies when its setting resolves and the tool configuration does
// not disable it.
func ResolveRules(table *Table, settings config.Settings, cfg *config.Config) []ResolvedRule {
	var resolved []ResolvedRule

	for _, rule := range table.Rules() {
		rr := resolveRule(rule, settings, cfg)
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

func resolveRule(rule Rule, settings config.Settings, cfg *config.Config) ResolvedRule {
	value, ok := rule.Resolve(settings)

	rr := ResolvedRule{
		Rule:     rule,
		Value:    value,
		Enabled:  ok,
		Severity: rule.DefaultSeverity(),
		AutoFix:  rule.CanFix(),
	}

	if cfg == nil {
		return rr
	}

	if cfg.SeverityDefault != "" {
		rr.Severity = config.Severity(cfg.SeverityDefault)
	}

	if ruleCfg, found := cfg.Rules[rule.Name()]; found {
		if ruleCfg.Enabled != nil && !*ruleCfg.Enabled {
			rr.Enabled = false
		}
		if ruleCfg.Severity != nil {
			rr.Severity = config.Severity(*ruleCfg.Severity)
		}
		if ruleCfg.AutoFix != nil {
			rr.AutoFix = *ruleCfg.AutoFix && rule.CanFix()
		}
	}

	return rr
}
