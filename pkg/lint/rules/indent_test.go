package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/goeclint/pkg/config"
)

func TestIndentStyleRule_Check(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		style string
		input string
		want  []string
	}{
		{"spaces ok", "space", "a\n    b\n", nil},
		{"tab under space", "space", "a\n\tb\n", []string{"invalid indent style: found a leading tab, expected: space"}},
		{"tabs ok", "tab", "a\n\t\tb\n", nil},
		{"space under tab", "tab", "  b\n", []string{"invalid indent style: found a leading space, expected: tab"}},
		{"comment continuation", "tab", "/*\n * doc\n */\n", nil},
		{"tab then alignment spaces", "tab", "\t  b\n", nil},
		{"blank lines ignored", "space", "\t\n", nil},
		{"invalid style does not resolve", "mixed", "\tb\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			violations := check(t, config.Settings{config.KeyIndentStyle: tt.style}, tt.input)
			if tt.want == nil {
				assert.Empty(t, violations)
				return
			}
			assert.Equal(t, tt.want, messages(violations))
		})
	}
}

func TestIndentStyleRule_Column(t *testing.T) {
	t.Parallel()

	violations := check(t, config.Settings{config.KeyIndentStyle: "space"}, "  \tx\n")
	require.Len(t, violations, 1)
	assert.Equal(t, 3, violations[0].Column)
	assert.Equal(t, "  \t", violations[0].Source)
}

func TestIndentStyleRule_Fix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		settings config.Settings
		input    string
		want     string
	}{
		{
			name:     "tabs to spaces default width",
			settings: config.Settings{config.KeyIndentStyle: "space"},
			input:    "\tx\n\t\ty\n",
			want:     "    x\n        y\n",
		},
		{
			name:     "tabs to spaces with indent size",
			settings: config.Settings{config.KeyIndentStyle: "space", config.KeyIndentSize: 2},
			input:    "\tx\n",
			want:     "  x\n",
		},
		{
			name:     "mixed run keeps visual width",
			settings: config.Settings{config.KeyIndentStyle: "space", config.KeyIndentSize: 4},
			input:    "  \tx\n",
			want:     "    x\n",
		},
		{
			name:     "spaces to tabs",
			settings: config.Settings{config.KeyIndentStyle: "tab", config.KeyIndentSize: 4},
			input:    "        x\n",
			want:     "\t\tx\n",
		},
		{
			name:     "spaces to tabs keeps remainder",
			settings: config.Settings{config.KeyIndentStyle: "tab", config.KeyTabWidth: 4},
			input:    "      x\n",
			want:     "\t  x\n",
		},
		{
			name:     "narrow run becomes one tab",
			settings: config.Settings{config.KeyIndentStyle: "tab"},
			input:    "  x\n",
			want:     "\tx\n",
		},
		{
			name:     "comment continuation untouched",
			settings: config.Settings{config.KeyIndentStyle: "tab"},
			input:    "/*\n * x\n */\n",
			want:     "/*\n * x\n */\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := fix(t, tt.settings, tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, fix(t, tt.settings, got))
			assert.Empty(t, check(t, tt.settings, got))
		})
	}
}

func TestIndentSizeRule(t *testing.T) {
	t.Parallel()

	t.Run("check", func(t *testing.T) {
		t.Parallel()

		settings := config.Settings{config.KeyIndentSize: 4}
		assert.Empty(t, check(t, settings, "a\n    b\n        c\n"))
		assert.Equal(t,
			[]string{"invalid indent size: found 3, expected multiple of 4"},
			messages(check(t, settings, "a\n   b\n")))
		assert.Empty(t, check(t, settings, "    /*\n     * doc\n     */\n"))
		assert.Empty(t, check(t, settings, "\t  b\n"))
	})

	t.Run("tab resolves to tab_width", func(t *testing.T) {
		t.Parallel()

		settings := config.Settings{config.KeyIndentSize: "tab", config.KeyTabWidth: 8}
		assert.Equal(t,
			[]string{"invalid indent size: found 4, expected multiple of 8"},
			messages(check(t, settings, "    b\n")))

		assert.Empty(t, check(t, config.Settings{config.KeyIndentSize: "tab"}, "   b\n"))
	})

	t.Run("fix pads to next multiple", func(t *testing.T) {
		t.Parallel()

		settings := config.Settings{config.KeyIndentSize: 4}
		got := fix(t, settings, "   b\n      c\n")
		assert.Equal(t, "    b\n        c\n", got)
		assert.Equal(t, got, fix(t, settings, got))
	})

	t.Run("infer majority", func(t *testing.T) {
		t.Parallel()

		tally := infer(t, "a\n  b\n  c\n    d\n")
		assert.Equal(t, 2, tally.Resolve()[config.KeyIndentSize])
	})
}

func TestIndentStyleRule_Infer(t *testing.T) {
	t.Parallel()

	tally := infer(t, "\ta\n\tb\n", "  c\n")
	resolved := tally.Resolve()
	assert.Equal(t, "tab", resolved[config.KeyIndentStyle])
	assert.NotContains(t, resolved, config.KeyTabWidth)
}

func TestTabWidthRule_NoCheckOrFix(t *testing.T) {
	t.Parallel()

	settings := config.Settings{config.KeyTabWidth: 3}
	input := "\t x \n"
	assert.Empty(t, check(t, settings, input))
	assert.Equal(t, input, fix(t, settings, input))
}
