// Package cli provides the Cobra command structure for goeclint.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/goeclint/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	debug            bool
	configPath       string
	color            string
	set              []string
	ignore           []string
	jobs             int
	editorConfigName string
}

// NewRootCommand creates the root goeclint command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "goeclint",
		Short: "Check, fix and infer editorconfig settings",
		Long: `goeclint enforces the settings of your .editorconfig files.

It checks files against indent_style, indent_size, tab_width, end_of_line,
charset, trim_trailing_whitespace, insert_final_newline and max_line_length,
rewrites files to conform, and infers the settings a set of files already
follows. Fixing is safe: writes are atomic, concurrent edits are detected,
and backups can be kept next to the original.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if flags.debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithCommand(cmd.Context(), cmd.Name()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.StringVar(&flags.configPath, "config", "", "path to config file")
	pf.StringVar(&flags.color, "color", "auto", "colorize output: auto, always, never")
	pf.StringArrayVar(&flags.set, "set", nil, "override a setting for every file, as key=value (repeatable)")
	pf.StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	pf.IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	pf.StringVar(&flags.editorConfigName, "editorconfig-name", "",
		"name of the editorconfig file (default .editorconfig)")

	rootCmd.AddCommand(newCheckCommand(flags, info))
	rootCmd.AddCommand(newFixCommand(flags, info))
	rootCmd.AddCommand(newInferCommand(flags))
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(&flags.color)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
