package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/goeclint/pkg/config"
)

func TestResolveRules(t *testing.T) {
	t.Parallel()

	table := NewTable(newMockLineRule("a"), newMockDocRule("b"), newMockLineRule("c"))
	settings := config.Settings{"a": "x", "b": 3}

	t.Run("only resolvable settings apply", func(t *testing.T) {
		t.Parallel()

		resolved := ResolveRules(table, settings, nil)
		require.Len(t, resolved, 2)
		assert.Equal(t, "a", resolved[0].Rule.Name())
		assert.Equal(t, "x", resolved[0].Value)
		assert.Equal(t, "b", resolved[1].Rule.Name())
		assert.Equal(t, 3, resolved[1].Value)
		assert.Equal(t, config.SeverityError, resolved[0].Severity)
		assert.True(t, resolved[0].AutoFix)
		assert.False(t, resolved[1].AutoFix)
	})

	t.Run("tool configuration", func(t *testing.T) {
		t.Parallel()

		disabled := false
		info := string(config.SeverityInfo)
		autoFix := true
		cfg := &config.Config{
			SeverityDefault: string(config.SeverityWarning),
			Rules: map[string]config.RuleConfig{
				"a": {Enabled: &disabled},
				"b": {Severity: &info, AutoFix: &autoFix},
			},
		}

		resolved := ResolveRules(table, settings, cfg)
		require.Len(t, resolved, 1)
		assert.Equal(t, "b", resolved[0].Rule.Name())
		assert.Equal(t, config.SeverityInfo, resolved[0].Severity)
		assert.False(t, resolved[0].AutoFix, "auto_fix cannot enable a rule that cannot fix")
	})

	t.Run("enabled does not force an unset setting", func(t *testing.T) {
		t.Parallel()

		enabled := true
		cfg := &config.Config{Rules: map[string]config.RuleConfig{"c": {Enabled: &enabled}}}
		for _, rr := range ResolveRules(table, settings, cfg) {
			assert.NotEqual(t, "c", rr.Rule.Name())
		}
	})
}
