package lint

import "github.com/yaklabco/goeclint/pkg/config"

// BaseRule provides the metadata half of the Rule interface.
// Embed it in rule implementations and add Resolve plus the scope methods.
//
// Fields are unexported to avoid stutter and name collisions with interface methods.
type BaseRule struct {
	name    string
	desc    string
	scope   Scope
	fixable bool
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(name, desc string, scope Scope, fixable bool) BaseRule {
	return BaseRule{
		name:    name,
		desc:    desc,
		scope:   scope,
		fixable: fixable,
	}
}

// Name returns the setting name of this rule.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns a description of what the rule checks.
func (r *BaseRule) Description() string {
	return r.desc
}

// Scope returns the evaluation scope.
func (r *BaseRule) Scope() Scope {
	return r.scope
}

// CanFix returns whether this rule can auto-fix issues.
func (r *BaseRule) CanFix() bool {
	return r.fixable
}

// DefaultSeverity returns the default severity for this rule.
// Override this method to change the default.
func (r *BaseRule) DefaultSeverity() config.Severity {
	return config.SeverityError
}

// TallyMode returns TallyMajority. Override for other tally behavior.
func (r *BaseRule) TallyMode() TallyMode {
	return TallyMajority
}
