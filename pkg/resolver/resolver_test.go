package resolver_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/goeclint/pkg/config"
	"github.com/yaklabco/goeclint/pkg/resolver"
)

const rootEditorConfig = `root = true

[*]
indent_style = space
indent_size = 4
end_of_line = lf
insert_final_newline = true

[*.go]
indent_style = tab

[Makefile]
indent_style = tab
max_line_length = unset
`

func setup(t *testing.T, editorconfig string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".editorconfig"), []byte(editorconfig), 0o644))
	return dir
}

func TestResolver_Sections(t *testing.T) {
	t.Parallel()

	dir := setup(t, rootEditorConfig)
	res := resolver.New(nil)

	settings, err := res.Resolve(context.Background(), filepath.Join(dir, "README.txt"))
	require.NoError(t, err)
	assert.Equal(t, "space", settings[config.KeyIndentStyle])
	assert.Equal(t, 4, settings[config.KeyIndentSize])
	assert.Equal(t, "lf", settings[config.KeyEndOfLine])
	assert.Equal(t, true, settings[config.KeyInsertFinalNewline])

	settings, err = res.Resolve(context.Background(), filepath.Join(dir, "main.go"))
	require.NoError(t, err)
	assert.Equal(t, "tab", settings[config.KeyIndentStyle])
}

func TestResolver_Layering(t *testing.T) {
	t.Parallel()

	dir := setup(t, rootEditorConfig)

	cfg := config.NewConfig()
	cfg.Settings = config.Settings{
		config.KeyIndentSize:             "8",
		config.KeyTrimTrailingWhitespace: true,
	}
	cfg.Overrides = config.Settings{config.KeyEndOfLine: "CRLF"}

	settings, err := resolver.New(cfg).Resolve(context.Background(), filepath.Join(dir, "notes.txt"))
	require.NoError(t, err)

	assert.Equal(t, 4, settings[config.KeyIndentSize], ".editorconfig beats tool defaults")
	assert.Equal(t, true, settings[config.KeyTrimTrailingWhitespace], "tool default applies when not set")
	assert.Equal(t, "crlf", settings[config.KeyEndOfLine], "override beats .editorconfig")
}

func TestResolver_UnsetRemovesDefault(t *testing.T) {
	t.Parallel()

	dir := setup(t, rootEditorConfig)

	cfg := config.NewConfig()
	cfg.Settings = config.Settings{config.KeyMaxLineLength: 80}

	settings, err := resolver.New(cfg).Resolve(context.Background(), filepath.Join(dir, "Makefile"))
	require.NoError(t, err)
	assert.NotContains(t, settings, config.KeyMaxLineLength)
	assert.Equal(t, "tab", settings[config.KeyIndentStyle])
}

func TestResolver_OverrideUnset(t *testing.T) {
	t.Parallel()

	dir := setup(t, rootEditorConfig)

	cfg := config.NewConfig()
	cfg.Overrides = config.Settings{config.KeyEndOfLine: config.Unset}

	settings, err := resolver.New(cfg).Resolve(context.Background(), filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	assert.NotContains(t, settings, config.KeyEndOfLine)
}

func TestResolver_CustomName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".ec"), []byte("root = true\n[*]\ncharset = latin1\n"), 0o644))

	cfg := config.NewConfig()
	cfg.EditorConfigName = ".ec"

	settings, err := resolver.New(cfg).EditorConfig(filepath.Join(dir, "x.txt"))
	require.NoError(t, err)
	assert.Equal(t, "latin1", settings[config.KeyCharset])
}

func TestResolver_Concurrent(t *testing.T) {
	t.Parallel()

	dir := setup(t, rootEditorConfig)
	res := resolver.New(nil)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			settings, err := res.Resolve(context.Background(), filepath.Join(dir, "main.go"))
			assert.NoError(t, err)
			assert.Equal(t, "tab", settings[config.KeyIndentStyle])
		}()
	}
	wg.Wait()
}

func TestResolver_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := resolver.New(nil).Resolve(ctx, "a.txt")
	require.ErrorIs(t, err, context.Canceled)
}
