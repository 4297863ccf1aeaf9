package rules_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/goeclint/pkg/config"
	"github.com/yaklabco/goeclint/pkg/document"
	"github.com/yaklabco/goeclint/pkg/lint"
	"github.com/yaklabco/goeclint/pkg/lint/rules"
)

func newEngine() *lint.Engine {
	return lint.NewEngine(rules.NewTable(), nil)
}

func check(t *testing.T, settings config.Settings, input string) []lint.Violation {
	t.Helper()

	violations, err := newEngine().Check(context.Background(), "test.txt", settings, document.Build([]byte(input)))
	require.NoError(t, err)
	return violations
}

func fix(t *testing.T, settings config.Settings, input string) string {
	t.Helper()

	out, err := newEngine().FixContent(context.Background(), settings, []byte(input))
	require.NoError(t, err)
	return string(out)
}

func infer(t *testing.T, inputs ...string) *lint.Tally {
	t.Helper()

	engine := newEngine()
	tally := lint.NewTally()
	for _, input := range inputs {
		require.NoError(t, engine.Infer(context.Background(), document.Build([]byte(input)), tally))
	}
	return tally
}

func messages(violations []lint.Violation) []string {
	out := make([]string, len(violations))
	for idx, v := range violations {
		out[idx] = v.Message
	}
	return out
}
