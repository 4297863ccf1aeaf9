package rules_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/goeclint/pkg/config"
	"github.com/yaklabco/goeclint/pkg/document"
	"github.com/yaklabco/goeclint/pkg/lint"
	"github.com/yaklabco/goeclint/pkg/lint/rules"
)

func fullSettings() config.Settings {
	return config.Settings{
		config.KeyCharset:                "utf-8",
		config.KeyIndentStyle:            "space",
		config.KeyIndentSize:             2,
		config.KeyTabWidth:               2,
		config.KeyTrimTrailingWhitespace: true,
		config.KeyEndOfLine:              "lf",
		config.KeyInsertFinalNewline:     true,
		config.KeyMaxLineLength:          80,
	}
}

func TestNewTable_Order(t *testing.T) {
	t.Parallel()

	table := rules.NewTable()
	assert.Equal(t, config.SettingKeys(), table.Names())

	for _, rule := range table.Rules() {
		switch rule.Scope() {
		case lint.ScopeDocument:
			assert.Contains(t, []string{config.KeyCharset, config.KeyInsertFinalNewline}, rule.Name())
		case lint.ScopeLine:
			assert.NotContains(t, []string{config.KeyCharset, config.KeyInsertFinalNewline}, rule.Name())
		}
	}
}

func TestFix_NoOpIsByteExact(t *testing.T) {
	t.Parallel()

	input := "package main\n\nfunc main() {\n  println(\"hi\")\n}\n"
	assert.Empty(t, check(t, fullSettings(), input))
	assert.Equal(t, input, fix(t, fullSettings(), input))
}

func TestFix_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"\xEF\xBB\xBF\tfunc() {  \r\n\t\treturn\t\r\n}",
		"   odd\n\n\n",
		"",
		"\r\r\r",
		"/*\n * comment \n */",
	}

	for _, input := range inputs {
		once := fix(t, fullSettings(), input)
		twice := fix(t, fullSettings(), once)
		assert.Equal(t, once, twice, "%q", input)
		assert.Empty(t, check(t, fullSettings(), once), "%q", input)
	}
}

func TestFix_AllRules(t *testing.T) {
	t.Parallel()

	got := fix(t, fullSettings(), "\xEF\xBB\xBF\tfunc() {  \r\n\t\treturn\t\r\n}")
	assert.Equal(t, "  func() {\n    return\n}\n", got)
}

func TestCheck_OrderedByRuleThenLine(t *testing.T) {
	t.Parallel()

	violations := check(t, fullSettings(), "\tx \r\n\ty \r\nz")

	var got []string
	for _, v := range violations {
		got = append(got, v.Rule)
	}
	assert.Equal(t, []string{
		config.KeyIndentStyle, config.KeyIndentStyle,
		config.KeyTrimTrailingWhitespace, config.KeyTrimTrailingWhitespace,
		config.KeyEndOfLine, config.KeyEndOfLine,
		config.KeyInsertFinalNewline,
	}, got)

	assert.Equal(t, 1, violations[0].Line)
	assert.Equal(t, 2, violations[1].Line)
	for _, v := range violations {
		assert.Equal(t, "test.txt", v.FilePath)
		assert.Equal(t, config.SeverityError, v.Severity)
		assert.True(t, v.Fixable)
	}
}

func TestCheck_ToolConfig(t *testing.T) {
	t.Parallel()

	disabled := false
	warning := string(config.SeverityWarning)
	noFix := false
	cfg := config.NewConfig()
	cfg.Rules[config.KeyEndOfLine] = config.RuleConfig{Enabled: &disabled}
	cfg.Rules[config.KeyTrimTrailingWhitespace] = config.RuleConfig{Severity: &warning, AutoFix: &noFix}

	engine := lint.NewEngine(rules.NewTable(), cfg)
	doc := document.Build([]byte("a \r\n"))
	violations, err := engine.Check(context.Background(), "x", fullSettings(), doc)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, config.KeyTrimTrailingWhitespace, violations[0].Rule)
	assert.Equal(t, config.SeverityWarning, violations[0].Severity)
	assert.False(t, violations[0].Fixable)

	out, err := engine.FixContent(context.Background(), fullSettings(), []byte("a \r\n"))
	require.NoError(t, err)
	assert.Equal(t, "a \r\n", string(out))
}

func TestInfer_MajorityVote(t *testing.T) {
	t.Parallel()

	tally := infer(t,
		"a\n\tb\n",
		"c\n\td\n",
		"\xEF\xBB\xBFe\r\n    f\r\n",
	)

	resolved := tally.Resolve()
	assert.Equal(t, "lf", resolved[config.KeyEndOfLine])
	assert.Equal(t, "tab", resolved[config.KeyIndentStyle])
	assert.Equal(t, "utf-8-bom", resolved[config.KeyCharset])
	assert.Equal(t, true, resolved[config.KeyInsertFinalNewline])
	assert.Equal(t, true, resolved[config.KeyTrimTrailingWhitespace])
	assert.Equal(t, 10, resolved[config.KeyMaxLineLength])
	assert.Equal(t, 3, tally.Files())

	scores := tally.Scores()
	assert.Equal(t, []lint.Score{{Value: "lf", Count: 4}, {Value: "crlf", Count: 2}}, scores[config.KeyEndOfLine])
}

func TestInfer_TieGoesToFirstSeen(t *testing.T) {
	t.Parallel()

	tally := infer(t, "a\r\n", "b\n")
	assert.Equal(t, "crlf", tally.Resolve()[config.KeyEndOfLine])

	tally = infer(t, "b\n", "a\r\n")
	assert.Equal(t, "lf", tally.Resolve()[config.KeyEndOfLine])
}

func TestCheck_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newEngine().Check(ctx, "x", fullSettings(), document.Build([]byte("a")))
	require.ErrorIs(t, err, context.Canceled)
}
