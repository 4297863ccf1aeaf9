package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/goeclint/pkg/config"
)

func TestParseValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want any
	}{
		{"true", true},
		{"FALSE", false},
		{"4", 4},
		{" 120 ", 120},
		{"Tab", "tab"},
		{"utf-8-bom", "utf-8-bom"},
		{"off", "off"},
		{"-1", "-1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, config.ParseValue(tt.raw), tt.raw)
	}
}

func TestSettings_SetRaw(t *testing.T) {
	t.Parallel()

	settings := config.Settings{}
	settings.SetRaw(config.KeyIndentSize, "2")
	settings.SetRaw(config.KeyInsertFinalNewline, "true")

	size, ok := settings.Int(config.KeyIndentSize)
	require.True(t, ok)
	assert.Equal(t, 2, size)

	final, ok := settings.Bool(config.KeyInsertFinalNewline)
	require.True(t, ok)
	assert.True(t, final)

	settings.SetRaw(config.KeyIndentSize, "unset")
	assert.False(t, settings.Has(config.KeyIndentSize))
}

func TestSettings_TypedAccessors(t *testing.T) {
	t.Parallel()

	settings := config.Settings{
		config.KeyMaxLineLength: float64(100),
		config.KeyIndentSize:    "tab",
	}

	n, ok := settings.Int(config.KeyMaxLineLength)
	require.True(t, ok)
	assert.Equal(t, 100, n)

	_, ok = settings.Int(config.KeyIndentSize)
	assert.False(t, ok)

	_, ok = settings.Bool(config.KeyIndentSize)
	assert.False(t, ok)

	_, ok = settings.String(config.KeyCharset)
	assert.False(t, ok)
}

func TestSettings_Merge(t *testing.T) {
	t.Parallel()

	base := config.Settings{config.KeyIndentStyle: "tab", config.KeyEndOfLine: "lf"}
	merged := base.Merge(config.Settings{config.KeyIndentStyle: "space", config.KeyEndOfLine: "unset"})

	assert.Equal(t, config.Settings{config.KeyIndentStyle: "space"}, merged)
	assert.Equal(t, "tab", base[config.KeyIndentStyle])
}

func TestParseOverride(t *testing.T) {
	t.Parallel()

	key, value, err := config.ParseOverride("Indent_Size = 4")
	require.NoError(t, err)
	assert.Equal(t, config.KeyIndentSize, key)
	assert.Equal(t, "4", value)

	_, _, err = config.ParseOverride("indent_size")
	require.ErrorIs(t, err, config.ErrInvalidConfiguration)

	_, _, err = config.ParseOverride("=4")
	require.ErrorIs(t, err, config.ErrInvalidConfiguration)
}

func TestSettingKeys(t *testing.T) {
	t.Parallel()

	keys := config.SettingKeys()
	require.Len(t, keys, 8)
	assert.Equal(t, config.KeyCharset, keys[0])
	assert.Equal(t, config.KeyMaxLineLength, keys[7])
	assert.True(t, config.IsSettingKey(config.KeyTabWidth))
	assert.False(t, config.IsSettingKey("quote_type"))
}
