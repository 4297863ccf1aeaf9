package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/goeclint/internal/logging"
	"github.com/yaklabco/goeclint/pkg/config"
	"github.com/yaklabco/goeclint/pkg/reporter"
)

// reportFlags are the output flags of check and fix.
type reportFlags struct {
	format       string
	strict       bool
	noContext    bool
	compact      bool
	summaryOrder string
}

func addReportFlags(cmd *cobra.Command, flags *reportFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, sarif, diff, summary")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit with status 2 when only warnings are found")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().StringVar(&flags.summaryOrder, "summary-order", "rules",
		"order of tables in summary output: rules, files")
}

func newCheckCommand(global *globalFlags, info BuildInfo) *cobra.Command {
	flags := &reportFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report files that break their editorconfig settings",
		Long: `Check files against the settings their .editorconfig files assign.

By default, checks every file under the current directory. Hidden
directories, backups, binary files and (unless disabled) vendored
directories are skipped. Paths given explicitly are always checked.

Exit status is 1 when error violations are found, and 2 with --strict
when only warnings are found.

Examples:
  goeclint check                          # Check current directory
  goeclint check src/ README.md           # Check specific paths
  goeclint check --set end_of_line=lf     # Override a setting everywhere
  goeclint check --format sarif           # Output SARIF for code scanning
  goeclint check --strict                 # Fail on warnings too`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, global, flags, &config.Config{}, info)
		},
	}

	addReportFlags(cmd, flags)

	return cmd
}

func newFixCommand(global *globalFlags, info BuildInfo) *cobra.Command {
	flags := &reportFlags{}
	cli := &config.Config{Fix: true}

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Rewrite files to follow their editorconfig settings",
		Long: `Fix files so they follow the settings their .editorconfig files assign.

Files are re-checked after fixing, and violations no fix can remove
(such as over-long lines) are still reported. Writes are atomic, files
changed during processing are skipped, and a sidecar backup is kept
unless disabled.

Examples:
  goeclint fix                        # Fix current directory
  goeclint fix --dry-run              # Show a diff of the fixes
  goeclint fix --no-backups src/      # Fix without keeping backups`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cli.DryRun && !cmd.Flags().Changed("format") {
				flags.format = string(config.FormatDiff)
				cli.Format = config.FormatDiff
			}
			return runCheck(cmd, args, global, flags, cli, info)
		},
	}

	addReportFlags(cmd, flags)
	cmd.Flags().BoolVar(&cli.DryRun, "dry-run", false, "show fixes as a diff without writing files")
	cmd.Flags().BoolVar(&cli.NoBackups, "no-backups", false, "disable backup creation")

	return cmd
}

func runCheck(
	cmd *cobra.Command,
	args []string,
	global *globalFlags,
	flags *reportFlags,
	cli *config.Config,
	info BuildInfo,
) error {
	logger := logging.FromContext(cmd.Context())

	format, err := config.ParseOutputFormat(flags.format)
	if err != nil {
		return err
	}
	summaryOrder := config.SummaryOrder(flags.summaryOrder)
	if !summaryOrder.IsValid() {
		return fmt.Errorf("%w: unknown summary order %q", config.ErrInvalidConfiguration, flags.summaryOrder)
	}
	if cmd.Flags().Changed("format") {
		cli.Format = format
	}

	cfg, workDir, err := loadConfig(cmd, global, cli)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	run, table := newRunner(cfg)
	opts := runOptions(cfg, args, workDir)

	logger.Debug("starting run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
	)

	result, err := run.Run(ctx, opts)
	if err != nil {
		return errors.Join(errors.New("run failed"), err)
	}

	logger.Debug("run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesSkipped, result.Stats.FilesSkipped,
		logging.FieldViolations, result.Stats.ViolationsTotal,
		logging.FieldFilesModified, result.Stats.FilesModified,
	)

	rep, err := reporter.New(reporter.Options{
		Writer:       cmd.OutOrStdout(),
		ErrorWriter:  cmd.ErrOrStderr(),
		Format:       cfg.Format,
		Color:        global.color,
		ShowContext:  !flags.noContext,
		ShowSummary:  true,
		GroupByFile:  true,
		Compact:      flags.compact,
		SummaryOrder: summaryOrder,
		WorkingDir:   workDir,
		Rules:        table,
		ToolVersion:  info.Version,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	for _, outcome := range result.Files {
		if outcome.Error != nil {
			logger.Debug("file failed", logging.FieldPath, outcome.Path, logging.FieldError, outcome.Error)
		}
	}

	return resultError(result, flags.strict)
}
