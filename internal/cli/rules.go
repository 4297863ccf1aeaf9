package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/goeclint/internal/ui/pretty"
	"github.com/yaklabco/goeclint/pkg/lint"
	"github.com/yaklabco/goeclint/pkg/lint/rules"
)

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Scope       string `json:"scope"`
	Severity    string `json:"severity"`
	Fixable     bool   `json:"fixable"`
}

func newRulesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the settings goeclint checks",
		Long: `List every rule with the editorconfig setting it enforces, whether it
runs per line or per file, its default severity, and whether fix can
repair it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := rules.NewTable()
			out := cmd.OutOrStdout()

			switch format {
			case formatJSON:
				return writeRulesJSON(out, table)
			case "text", "":
				color, _ := cmd.Flags().GetString("color")
				return writeRulesText(out, table, pretty.NewStyles(pretty.IsColorEnabled(color, out)))
			default:
				return fmt.Errorf("invalid format %q: must be text or json", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

// writeRulesText writes one aligned row per rule.
func writeRulesText(w io.Writer, table *lint.Table, styles *pretty.Styles) error {
	nameWidth := len("SETTING")
	for _, name := range table.Names() {
		nameWidth = max(nameWidth, pretty.DisplayWidth(name))
	}

	var sb strings.Builder
	sb.WriteString(styles.TableHeader.Render(fmt.Sprintf("%s  %-8s  %-7s  %s",
		pretty.PadRight("SETTING", nameWidth), "SCOPE", "FIXABLE", "DESCRIPTION")))
	sb.WriteByte('\n')

	for _, rule := range table.Rules() {
		fixable := "-"
		if rule.CanFix() {
			fixable = "yes"
		}
		fmt.Fprintf(&sb, "%s  %-8s  %-7s  %s\n",
			styles.Rule.Render(pretty.PadRight(rule.Name(), nameWidth)),
			rule.Scope(),
			fixable,
			rule.Description(),
		)
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}
	return nil
}

// writeRulesJSON outputs rules as a JSON array.
func writeRulesJSON(w io.Writer, table *lint.Table) error {
	infos := make([]ruleInfo, 0, table.Len())
	for _, rule := range table.Rules() {
		infos = append(infos, ruleInfo{
			Name:        rule.Name(),
			Description: rule.Description(),
			Scope:       rule.Scope().String(),
			Severity:    string(rule.DefaultSeverity()),
			Fixable:     rule.CanFix(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
