package config

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Recognized editorconfig setting names.
const (
	KeyCharset                = "charset"
	KeyIndentStyle            = "indent_style"
	KeyIndentSize             = "indent_size"
	KeyTabWidth               = "tab_width"
	KeyTrimTrailingWhitespace = "trim_trailing_whitespace"
	KeyEndOfLine              = "end_of_line"
	KeyInsertFinalNewline     = "insert_final_newline"
	KeyMaxLineLength          = "max_line_length"
)

// Unset is the editorconfig value that removes a setting.
const Unset = "unset"

// SettingKeys returns the recognized setting names in rule evaluation order.
func SettingKeys() []string {
	return []string{
		KeyCharset,
		KeyIndentStyle,
		KeyIndentSize,
		KeyTabWidth,
		KeyTrimTrailingWhitespace,
		KeyEndOfLine,
		KeyInsertFinalNewline,
		KeyMaxLineLength,
	}
}

// IsSettingKey reports whether key is a recognized setting name.
func IsSettingKey(key string) bool {
	return slices.Contains(SettingKeys(), key)
}

// Settings maps editorconfig setting names to values. Values are strings,
// ints or bools; unknown keys are carried along and ignored by the rules.
type Settings map[string]any

// ParseValue coerces editorconfig text into a typed value: "true" and "false"
// become bools, decimal digits become ints and everything else is a
// lower-cased string.
func ParseValue(raw string) any {
	value := strings.ToLower(strings.TrimSpace(raw))

	switch value {
	case "true":
		return true
	case "false":
		return false
	}

	if n, err := strconv.Atoi(value); err == nil && n >= 0 {
		return n
	}

	return value
}

// ParseOverride splits a "key=value" command-line override.
func ParseOverride(spec string) (string, string, error) {
	key, value, ok := strings.Cut(spec, "=")
	key = strings.ToLower(strings.TrimSpace(key))
	if !ok || key == "" {
		return "", "", fmt.Errorf("%w: override %q must have the form key=value", ErrInvalidConfiguration, spec)
	}
	return key, strings.TrimSpace(value), nil
}

// SetRaw parses raw and stores it under key. The value "unset" removes the key.
func (s Settings) SetRaw(key, raw string) {
	value := ParseValue(raw)
	if value == Unset {
		delete(s, key)
		return
	}
	s[key] = value
}

// Has reports whether key is present.
func (s Settings) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// String returns the value for key when it is a string.
func (s Settings) String(key string) (string, bool) {
	str, ok := s[key].(string)
	return str, ok
}

// Int returns the value for key when it is numeric.
func (s Settings) Int(key string) (int, bool) {
	switch val := s[key].(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case uint64:
		return int(val), true //nolint:gosec // Setting values are small.
	case float64:
		if val != float64(int(val)) {
			return 0, false
		}
		return int(val), true
	default:
		return 0, false
	}
}

// Bool returns the value for key when it is a bool.
func (s Settings) Bool(key string) (bool, bool) {
	b, ok := s[key].(bool)
	return b, ok
}

// Merge returns a copy of s overlaid with other. Values in other win; an
// "unset" string in other removes the key.
func (s Settings) Merge(other Settings) Settings {
	merged := s.Clone()
	for key, value := range other {
		if str, ok := value.(string); ok && strings.EqualFold(str, Unset) {
			delete(merged, key)
			continue
		}
		merged[key] = value
	}
	return merged
}

// Clone returns a shallow copy. Values are scalars, so the copy is independent.
func (s Settings) Clone() Settings {
	clone := make(Settings, len(s))
	maps.Copy(clone, s)
	return clone
}

// Normalize re-parses string values so settings read from YAML or JSON
// compare the same as settings parsed from editorconfig text. An "unset"
// value is kept so a later Merge can remove the key.
func (s Settings) Normalize() Settings {
	normalized := make(Settings, len(s))
	for key, value := range s {
		key = strings.ToLower(key)
		if str, ok := value.(string); ok {
			normalized[key] = ParseValue(str)
			continue
		}
		normalized[key] = value
	}
	return normalized
}

// Keys returns the keys in sorted order.
func (s Settings) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}
