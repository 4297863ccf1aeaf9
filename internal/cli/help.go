package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/goeclint/internal/configloader"
	"github.com/yaklabco/goeclint/internal/ui/pretty"
	"github.com/yaklabco/goeclint/pkg/config"
)

// helpWrapWidth is where the settings list wraps in root help.
const helpWrapWidth = 76

const helpTemplate = `{{with (or .Long .Short)}}{{trim .}}

{{end}}{{heading "Usage:"}}
{{- if .Runnable}}
  {{command .UseLine}}{{end}}
{{- if .HasAvailableSubCommands}}
  {{command .CommandPath}} [command]{{end}}
{{- if .Aliases}}

{{heading "Aliases:"}}
  {{dim (join .Aliases ", ")}}{{end}}
{{- if .HasExample}}

{{heading "Examples:"}}
{{dim .Example}}{{end}}
{{- if .HasAvailableSubCommands}}

{{heading "Commands:"}}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{name (rpad .Name .NamePadding)}} {{.Short}}{{end}}{{end}}{{end}}
{{- if .HasAvailableLocalFlags}}

{{heading "Flags:"}}
{{flags .LocalFlags}}{{end}}
{{- if .HasAvailableInheritedFlags}}

{{heading "Global Flags:"}}
{{flags .InheritedFlags}}{{end}}
{{- if not .HasParent}}

{{heading "Settings:"}}
{{settings}}

{{heading "Environment:"}}
{{environment}}

{{heading "Exit Status:"}}
{{exitStatus}}{{end}}
{{- if .HasAvailableSubCommands}}

Run "{{command (print .CommandPath " [command] --help")}}" for details on a command.{{end}}
`

// HelpFormatter renders command help with the report styles. Color is
// decided when help is written, after --color has been parsed.
type HelpFormatter struct {
	colorMode *string
}

// NewHelpFormatter returns a formatter reading the color mode from colorMode.
func NewHelpFormatter(colorMode *string) *HelpFormatter {
	return &HelpFormatter{colorMode: colorMode}
}

// ApplyToCommand installs the help and usage functions on cmd. Subcommands
// inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := h.Write(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return h.Write(command.OutOrStderr(), command)
	})
}

// Write renders help for cmd to w.
func (h *HelpFormatter) Write(w io.Writer, cmd *cobra.Command) error {
	mode := "auto"
	if h.colorMode != nil && *h.colorMode != "" {
		mode = *h.colorMode
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(mode, w))

	tmpl, err := template.New("help").Funcs(template.FuncMap{
		"heading":     styles.SummaryTitle.Render,
		"command":     styles.Bold.Render,
		"name":        styles.Rule.Render,
		"dim":         styles.Dim.Render,
		"join":        strings.Join,
		"rpad":        rpad,
		"trim":        trimLines,
		"flags":       func(fs *pflag.FlagSet) string { return flagUsages(styles, fs) },
		"settings":    settingsHelp,
		"environment": func() string { return environmentHelp(styles) },
		"exitStatus":  func() string { return exitStatusHelp(styles) },
	}).Parse(helpTemplate)
	if err != nil {
		return fmt.Errorf("parse help template: %w", err)
	}
	if err := tmpl.Execute(w, cmd); err != nil {
		return fmt.Errorf("render help: %w", err)
	}
	return nil
}

// flagUsages lays out the visible flags of fs in two aligned columns.
func flagUsages(styles *pretty.Styles, fs *pflag.FlagSet) string {
	type flagRow struct {
		names, varname, usage string
	}

	var rows []flagRow
	width := 0
	fs.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}
		names := "    --" + flag.Name
		if flag.Shorthand != "" {
			names = "-" + flag.Shorthand + ", --" + flag.Name
		}
		varname, usage := pflag.UnquoteUsage(flag)
		if def := flagDefault(flag); def != "" {
			usage += " (default " + def + ")"
		}
		rows = append(rows, flagRow{names: names, varname: varname, usage: usage})

		plain := len(names)
		if varname != "" {
			plain += 1 + len(varname)
		}
		width = max(width, plain)
	})

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		plain := len(row.names)
		left := styles.Bold.Render(row.names)
		if row.varname != "" {
			plain += 1 + len(row.varname)
			left += " " + styles.Dim.Render(row.varname)
		}
		lines = append(lines, "  "+left+strings.Repeat(" ", width-plain)+"   "+row.usage)
	}
	return strings.Join(lines, "\n")
}

// flagDefault returns the default worth showing, or "" for zero values.
func flagDefault(flag *pflag.Flag) string {
	switch flag.DefValue {
	case "", "false", "0", "[]":
		return ""
	}
	if flag.Value.Type() == "string" {
		return fmt.Sprintf("%q", flag.DefValue)
	}
	return flag.DefValue
}

func settingsHelp() string {
	return wrapWords(config.SettingKeys(), "  ", helpWrapWidth)
}

func environmentHelp(styles *pretty.Styles) string {
	vars := configloader.ListEnvVars()
	names := make([]string, 0, len(vars))
	width := 0
	for name := range vars {
		names = append(names, name)
		width = max(width, len(name))
	}
	slices.Sort(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, "  "+styles.Bold.Render(rpad(name, width))+"   "+vars[name])
	}
	return strings.Join(lines, "\n")
}

func exitStatusHelp(styles *pretty.Styles) string {
	codes := []struct {
		code int
		desc string
	}{
		{ExitSuccess, "no violations"},
		{ExitViolations, "error violations found, or the command failed"},
		{ExitWarnings, "only warnings found and --strict was given"},
		{ExitInvalidUsage, "invalid flags or arguments"},
		{ExitConfigError, "invalid configuration"},
		{ExitIOError, "files could not be read or written"},
	}

	lines := make([]string, 0, len(codes))
	for _, c := range codes {
		lines = append(lines, fmt.Sprintf("  %s   %s", styles.Bold.Render(fmt.Sprintf("%2d", c.code)), c.desc))
	}
	return strings.Join(lines, "\n")
}

// wrapWords joins words with ", " and breaks lines before width.
func wrapWords(words []string, indent string, width int) string {
	var out strings.Builder
	line := indent
	for i, word := range words {
		piece := word
		if i < len(words)-1 {
			piece += ","
		}
		if len(line) > len(indent) && len(line)+1+len(piece) > width {
			out.WriteString(line + "\n")
			line = indent
		}
		if len(line) > len(indent) {
			line += " "
		}
		line += piece
	}
	out.WriteString(line)
	return out.String()
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
