package lint

import (
	"fmt"

	"github.com/yaklabco/goeclint/pkg/config"
)

// Table is the ordered, immutable set of rules the engine evaluates.
// Rules run in the order they were given to NewTable.
type Table struct {
	rules  []Rule
	byName map[string]Rule
}

// NewTable builds a table. It panics if a rule is neither a LineRule nor a
// DocumentRule matching its Scope, or if two rules share a name: both are
// programming errors in the table definition.
func NewTable(rules ...Rule) *Table {
	table := &Table{
		rules:  make([]Rule, 0, len(rules)),
		byName: make(map[string]Rule, len(rules)),
	}

	for _, rule := range rules {
		if _, dup := table.byName[rule.Name()]; dup {
			panic(fmt.Sprintf("lint: duplicate rule %q", rule.Name()))
		}
		if !scopeMatches(rule) {
			panic(fmt.Sprintf("lint: rule %q does not implement its %s scope", rule.Name(), rule.Scope()))
		}
		table.rules = append(table.rules, rule)
		table.byName[rule.Name()] = rule
	}

	return table
}

func scopeMatches(rule Rule) bool {
	switch rule.Scope() {
	case ScopeLine:
		_, ok := rule.(LineRule)
		return ok
	case ScopeDocument:
		_, ok := rule.(DocumentRule)
		return ok
	default:
		return false
	}
}

// Get retrieves a rule by setting name.
func (t *Table) Get(name string) (Rule, bool) {
	rule, ok := t.byName[name]
	return rule, ok
}

// Rules returns the rules in evaluation order. The slice must not be modified.
func (t *Table) Rules() []Rule {
	return t.rules
}

// Names returns the rule names in evaluation order.
func (t *Table) Names() []string {
	names := make([]string, len(t.rules))
	for idx, rule := range t.rules {
		names[idx] = rule.Name()
	}
	return names
}

// Len returns the number of rules.
func (t *Table) Len() int {
	return len(t.rules)
}

// Infos describes the rules for configuration templates.
func (t *Table) Infos() []config.RuleInfo {
	infos := make([]config.RuleInfo, len(t.rules))
	for idx, rule := range t.rules {
		infos[idx] = config.RuleInfo{
			Name:        rule.Name(),
			Description: rule.Description(),
			Scope:       rule.Scope().String(),
			CanFix:      rule.CanFix(),
		}
	}
	return infos
}
