package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/yaklabco/goeclint/internal/logging"
	"github.com/yaklabco/goeclint/pkg/config"
	"github.com/yaklabco/goeclint/pkg/reporter"
)

type inferFlags struct {
	format  string
	root    bool
	score   bool
	compact bool
}

func newInferCommand(global *globalFlags) *cobra.Command {
	flags := &inferFlags{}

	cmd := &cobra.Command{
		Use:   "infer [paths...]",
		Short: "Infer the editorconfig settings files already follow",
		Long: `Infer editorconfig settings from existing files.

Every file votes for the value it suggests for each setting, and the most
common value wins. max_line_length takes the longest line instead, rounded
up to a multiple of 10. Settings no file has an opinion on are left out.

Examples:
  goeclint infer                        # Settings as JSON
  goeclint infer --format ini --root    # A ready-to-use .editorconfig
  goeclint infer --score                # Raw vote counts per setting`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfer(cmd, args, global, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "json", "output format: json, yaml, ini")
	cmd.Flags().BoolVar(&flags.root, "root", false, "add root = true to ini output")
	cmd.Flags().BoolVar(&flags.score, "score", false, "write the vote counts instead of the winning values")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "write json on a single line")

	return cmd
}

func runInfer(cmd *cobra.Command, args []string, global *globalFlags, flags *inferFlags) error {
	logger := logging.FromContext(cmd.Context())

	format, err := config.ParseInferFormat(flags.format)
	if err != nil {
		return err
	}
	if err := config.CheckInferOptions(format, flags.score); err != nil {
		return err
	}

	cfg, workDir, err := loadConfig(cmd, global, &config.Config{})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	run, _ := newRunner(cfg)
	result, err := run.RunInfer(ctx, runOptions(cfg, args, workDir))
	if err != nil {
		return errors.Join(errors.New("infer failed"), err)
	}

	logger.Debug("infer complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesInferred,
		logging.FieldFilesSkipped, result.Stats.FilesSkipped,
	)

	if err := reporter.WriteInfer(result, reporter.InferOptions{
		Writer:  cmd.OutOrStdout(),
		Format:  format,
		Root:    flags.root,
		Scored:  flags.score,
		Compact: flags.compact,
	}); err != nil {
		return err
	}

	for _, fileErr := range result.Errors {
		logger.Error("file failed", logging.FieldError, fileErr)
	}
	if len(result.Errors) > 0 {
		return ErrFilesFailed
	}

	return nil
}
