package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/goeclint/pkg/config"
)

// projectDir returns a temp directory marked as a VCS root so the upward
// config search stops there.
func projectDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(projectDir(t)))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, string(config.SeverityError), result.Config.SeverityDefault)
	assert.True(t, result.Config.SkipVendored)
	assert.True(t, result.Config.Backups.Enabled)
	assert.Equal(t, config.DefaultEditorConfigName, result.Config.EditorConfigName)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeFile(t, filepath.Join(dir, ".goeclint.yml"), `
settings:
  indent_style: space
  indent_size: "2"
rules:
  max_line_length:
    enabled: false
skip_vendored: false
backups:
  enabled: false
`)

	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := Load(context.Background(), isolated(nested))
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, "space", cfg.Settings[config.KeyIndentStyle])
	assert.Equal(t, 2, cfg.Settings[config.KeyIndentSize])
	require.Contains(t, cfg.Rules, config.KeyMaxLineLength)
	require.NotNil(t, cfg.Rules[config.KeyMaxLineLength].Enabled)
	assert.False(t, *cfg.Rules[config.KeyMaxLineLength].Enabled)

	// Explicit false values override the true defaults.
	assert.False(t, cfg.SkipVendored)
	assert.False(t, cfg.Backups.Enabled)
	assert.Equal(t, config.BackupModeSidecar, cfg.Backups.Mode)

	require.Len(t, result.LoadedFrom, 1)
	assert.Equal(t, filepath.Join(dir, ".goeclint.yml"), result.LoadedFrom[0])
}

func TestLoad_ExplicitConfigOverridesProject(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeFile(t, filepath.Join(dir, ".goeclint.yml"), `
severity_default: info
settings:
  end_of_line: lf
  charset: utf-8
`)
	custom := filepath.Join(dir, "custom.yml")
	writeFile(t, custom, `
severity_default: warning
settings:
  end_of_line: crlf
  charset: unset
`)

	opts := isolated(dir)
	opts.ExplicitPath = custom

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, "warning", result.Config.SeverityDefault)
	assert.Equal(t, "crlf", result.Config.Settings[config.KeyEndOfLine])
	assert.NotContains(t, result.Config.Settings, config.KeyCharset)
	assert.Equal(t, []string{filepath.Join(dir, ".goeclint.yml"), custom}, result.LoadedFrom)
	assert.Equal(t, custom, result.Paths.Explicit)
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeFile(t, filepath.Join(dir, ".goeclint.yml"), "settings:\n  indent_style: tab\n")

	cli := &config.Config{
		Format:    config.FormatJSON,
		Jobs:      3,
		Fix:       true,
		Overrides: config.Settings{"indent-style": "space", config.KeyTabWidth: config.Unset},
	}
	opts := isolated(dir)
	opts.CLIConfig = cli

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, config.FormatJSON, cfg.Format)
	assert.Equal(t, 3, cfg.Jobs)
	assert.True(t, cfg.Fix)
	assert.Equal(t, "tab", cfg.Settings[config.KeyIndentStyle])
	assert.Equal(t, "space", cfg.Overrides[config.KeyIndentStyle])
	assert.Equal(t, config.Unset, cfg.Overrides[config.KeyTabWidth])

	// The caller's config is not rewritten.
	assert.Contains(t, cli.Overrides, "indent-style")
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"bad severity", "severity_default: fatal\n"},
		{"bad setting value", "settings:\n  indent_style: tabs\n"},
		{"bad boolean setting", "settings:\n  insert_final_newline: maybe\n"},
		{"bad backup mode", "backups:\n  mode: cloud\n"},
		{"bad glob", "ignore:\n  - \"[abc\"\n"},
		{"path as editorconfig name", "editorconfig_name: sub/.editorconfig\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := projectDir(t)
			writeFile(t, filepath.Join(dir, ".goeclint.yml"), tt.content)

			_, err := Load(context.Background(), isolated(dir))
			require.Error(t, err)
			assert.ErrorIs(t, err, config.ErrInvalidConfiguration)
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeFile(t, filepath.Join(dir, ".goeclint.yml"), "settings: [unclosed\n")

	_, err := Load(context.Background(), isolated(dir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project config")
}

func TestLoad_SpecialSettingValues(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeFile(t, filepath.Join(dir, ".goeclint.yml"), `
settings:
  indent_size: tab
  tab_width: 8
  max_line_length: "off"
  spelling_language: en-US
`)

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	assert.Equal(t, "tab", result.Config.Settings[config.KeyIndentSize])
	assert.Contains(t, result.Warnings, `unknown setting "spelling_language"; no rule checks it`)
}

func TestLoad_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(projectDir(t)))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoad_KeyNormalization(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeFile(t, filepath.Join(dir, ".goeclint.yml"), `
settings:
  End-Of-Line: lf
  final_newline: true
rules:
  trailing-whitespace:
    severity: warning
  trim_trailing_whitespace:
    severity: info
`)

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, "lf", cfg.Settings[config.KeyEndOfLine])
	assert.Equal(t, true, cfg.Settings[config.KeyInsertFinalNewline])

	require.Contains(t, cfg.Rules, config.KeyTrimTrailingWhitespace)
	assert.NotContains(t, cfg.Rules, "trailing-whitespace")
	// Keys are visited in sorted order, so the canonical spelling wins.
	require.NotNil(t, cfg.Rules[config.KeyTrimTrailingWhitespace].Severity)
	assert.Equal(t, "info", *cfg.Rules[config.KeyTrimTrailingWhitespace].Severity)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "both refer to trim_trailing_whitespace")
}

func TestLoad_UnknownRuleWarns(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	writeFile(t, filepath.Join(dir, ".goeclint.yml"), "rules:\n  spelling:\n    enabled: false\n")

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	assert.Contains(t, result.Warnings, `unknown rule "spelling"; it will be ignored`)
}

func TestLoad_Environment(t *testing.T) {
	dir := projectDir(t)
	t.Setenv("GOECLINT_JOBS", "4")
	t.Setenv("GOECLINT_SKIP_VENDORED", "false")
	t.Setenv("GOECLINT_SET", "end_of_line=crlf, indent_size=unset")
	t.Setenv("GOECLINT_IGNORE", "dist/**, *.min.js")

	opts := isolated(dir)
	opts.IgnoreEnv = false
	opts.CLIConfig = &config.Config{Jobs: 2}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, 2, cfg.Jobs, "flags beat the environment")
	assert.False(t, cfg.SkipVendored)
	assert.Equal(t, "crlf", cfg.Overrides[config.KeyEndOfLine])
	assert.Equal(t, config.Unset, cfg.Overrides[config.KeyIndentSize])
	assert.Equal(t, []string{"dist/**", "*.min.js"}, cfg.Ignore)
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	t.Setenv("GOECLINT_FIX", "perhaps")
	err := LoadFromEnv(config.NewConfig())
	require.ErrorIs(t, err, config.ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), "GOECLINT_FIX")

	t.Setenv("GOECLINT_FIX", "")
	t.Setenv("GOECLINT_SET", "novalue")
	err = LoadFromEnv(config.NewConfig())
	require.ErrorIs(t, err, config.ErrInvalidConfiguration)
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	assert.Len(t, vars, len(envVars))
	assert.Contains(t, vars, "GOECLINT_SET")
	assert.Contains(t, vars, "GOECLINT_EDITORCONFIG_NAME")
}

func TestMerge(t *testing.T) {
	t.Parallel()

	yes, no := true, false
	warning := "warning"

	base := config.NewConfig()
	base.Settings = config.Settings{config.KeyIndentStyle: "tab", config.KeyEndOfLine: "lf"}
	base.Rules = map[string]config.RuleConfig{
		config.KeyIndentStyle: {Enabled: &yes, Severity: &warning},
	}
	base.Ignore = []string{"a"}

	override := &config.Config{
		Settings: config.Settings{config.KeyEndOfLine: "unset", config.KeyTabWidth: 4},
		Rules: map[string]config.RuleConfig{
			config.KeyIndentStyle: {Enabled: &no},
		},
		Ignore: []string{"b"},
	}

	got := MergeAll(base, override)

	assert.Equal(t, config.Settings{config.KeyIndentStyle: "tab", config.KeyTabWidth: 4}, got.Settings)
	assert.False(t, *got.Rules[config.KeyIndentStyle].Enabled)
	assert.Equal(t, "warning", *got.Rules[config.KeyIndentStyle].Severity)
	assert.Equal(t, []string{"b"}, got.Ignore)

	// Without presence information zero values never override.
	assert.True(t, got.SkipVendored)
	assert.True(t, got.Backups.Enabled)

	got = merge(base, &config.Config{}, fieldSet{"skip_vendored": true})
	assert.False(t, got.SkipVendored)
	assert.True(t, got.Backups.Enabled)

	assert.Same(t, base, MergeAll(base))
	assert.Nil(t, MergeAll())
}

func TestNormalizeSettingName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"indent_style":  config.KeyIndentStyle,
		"Indent-Size":   config.KeyIndentSize,
		"EOL":           config.KeyEndOfLine,
		"line-length":   config.KeyMaxLineLength,
		"final_newline": config.KeyInsertFinalNewline,
		"spelling":      "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeSettingName(in), in)
	}

	assert.ElementsMatch(t, []string{"eol", "line_ending"}, GetAliasesForSetting(config.KeyEndOfLine))
}

func TestParseOverrides(t *testing.T) {
	t.Parallel()

	got, err := ParseOverrides([]string{"indent-style=space", "indent_size=4", "x_custom=Yes", "charset=unset"})
	require.NoError(t, err)
	assert.Equal(t, config.Settings{
		config.KeyIndentStyle: "space",
		config.KeyIndentSize:  4,
		"x_custom":            "yes",
		config.KeyCharset:     config.Unset,
	}, got)

	_, err = ParseOverrides([]string{"=lf"})
	require.ErrorIs(t, err, config.ErrInvalidConfiguration)
}

func TestFindProjectConfig(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	nested := filepath.Join(dir, "x", "y")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := FindProjectConfig(context.Background(), nested)
	require.NoError(t, err)
	assert.Empty(t, found, "search stops at the VCS root")

	writeFile(t, filepath.Join(dir, "goeclint.yaml"), "")
	writeFile(t, filepath.Join(dir, ".goeclint.yml"), "")

	found, err = FindProjectConfig(context.Background(), nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".goeclint.yml"), found)
}
