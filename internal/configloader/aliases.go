package configloader

import (
	"maps"
	"slices"
	"strings"

	"github.com/yaklabco/goeclint/pkg/config"
)

// settingAliases maps alternative spellings to setting names. Hyphenated and
// upper-case forms are folded before the lookup, so only genuine synonyms
// are listed here.
//
//nolint:gochecknoglobals // Read-only lookup table.
var settingAliases = map[string]string{
	"eol":                 config.KeyEndOfLine,
	"line_ending":         config.KeyEndOfLine,
	"final_newline":       config.KeyInsertFinalNewline,
	"trailing_whitespace": config.KeyTrimTrailingWhitespace,
	"line_length":         config.KeyMaxLineLength,
	"indent":              config.KeyIndentStyle,
	"encoding":            config.KeyCharset,
}

// foldKey lower-cases key and turns hyphens into underscores.
func foldKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
}

// NormalizeSettingName converts an alias or variant spelling of a setting
// to its canonical name. Returns empty string if key names no known setting.
func NormalizeSettingName(key string) string {
	folded := foldKey(key)
	if config.IsSettingKey(folded) {
		return folded
	}
	if name, ok := settingAliases[folded]; ok {
		return name
	}
	return ""
}

// GetAliasesForSetting returns the aliases for a setting name.
func GetAliasesForSetting(name string) []string {
	var aliases []string
	for alias, target := range settingAliases {
		if target == name {
			aliases = append(aliases, alias)
		}
	}
	return aliases
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
