package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes every rule with its documentation.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// Rules describes the rules to document, in table order.
	Rules []RuleInfo
}

// RuleInfo contains rule metadata for template generation.
// The lint package fills it in, which keeps config free of a lint import.
type RuleInfo struct {
	Name        string
	Description string
	Scope       string
	CanFix      bool
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON(opts)
	}
	if opts.Full {
		return generateFullTemplate(opts), nil
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Default severity for all rules: error, warning, or info
# severity_default: error

# Editorconfig defaults, applied beneath every .editorconfig match
# settings:
#   end_of_line: lf
#   insert_final_newline: true

# File patterns to ignore (glob patterns)
# ignore:
#   - "dist/**"
#   - "*.min.js"

# Skip vendored directories such as vendor/ and node_modules/
# skip_vendored: true

# Per-rule configuration, keyed by setting name
# rules:
#   max_line_length:
#     severity: warning
#   trim_trailing_whitespace:
#     auto_fix: false
`)

	return buf.Bytes()
}

func generateFullTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`
#
# This template lists every rule with its default settings.
# Uncomment and modify settings as needed.

# Default severity for all rules: error, warning, or info
severity_default: error

# Editorconfig defaults, applied beneath every .editorconfig match
settings: {}

# Name of the editorconfig file to consult
editorconfig_name: .editorconfig

# Backup configuration for fix
backups:
  enabled: true
  mode: sidecar

# Skip vendored directories such as vendor/ and node_modules/
skip_vendored: true

# File patterns to ignore (glob patterns)
ignore:
  - ".git/**"

# Per-rule configuration, keyed by setting name
rules:
`)

	for _, rule := range opts.Rules {
		fmt.Fprintf(&buf, "\n  # %s (%s rule)\n", rule.Name, rule.Scope)
		fmt.Fprintf(&buf, "  # %s\n", wrapComment(rule.Description, commentWrapWidth))
		if rule.CanFix {
			buf.WriteString("  # Auto-fix: yes\n")
		}
		fmt.Fprintf(&buf, "  %s:\n", rule.Name)
		buf.WriteString("    enabled: true\n")
		fmt.Fprintf(&buf, "    severity: %s\n", SeverityError)
	}

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

func templateToJSON(opts TemplateOptions) ([]byte, error) {
	cfg := map[string]any{
		"severity_default":  string(SeverityError),
		"settings":          map[string]any{},
		"editorconfig_name": DefaultEditorConfigName,
		"skip_vendored":     true,
		"backups": map[string]any{
			"enabled": true,
			"mode":    BackupModeSidecar,
		},
		"ignore": []string{".git/**"},
	}

	if opts.Full {
		rulesMap := make(map[string]any, len(opts.Rules))
		for _, r := range opts.Rules {
			rulesMap[r.Name] = map[string]any{
				"enabled":  true,
				"severity": string(SeverityError),
			}
		}
		cfg["rules"] = rulesMap
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# goeclint configuration
# See: https://github.com/yaklabco/goeclint`
}
