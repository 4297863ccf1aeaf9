package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/goeclint/internal/configloader"
	"github.com/yaklabco/goeclint/internal/logging"
	"github.com/yaklabco/goeclint/pkg/config"
	"github.com/yaklabco/goeclint/pkg/lint"
	"github.com/yaklabco/goeclint/pkg/lint/rules"
	"github.com/yaklabco/goeclint/pkg/resolver"
	"github.com/yaklabco/goeclint/pkg/runner"
)

// loadConfig merges the configuration sources with the flags in cli.
// Only flags the user changed reach the merge, so config files keep
// their values otherwise.
func loadConfig(cmd *cobra.Command, flags *globalFlags, cli *config.Config) (*config.Config, string, error) {
	logger := logging.FromContext(cmd.Context())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	overrides, err := configloader.ParseOverrides(flags.set)
	if err != nil {
		return nil, "", err
	}
	cli.Overrides = overrides

	if cmd.Flags().Changed("ignore") {
		cli.Ignore = flags.ignore
	}
	if cmd.Flags().Changed("jobs") {
		cli.Jobs = flags.jobs
	}
	if cmd.Flags().Changed("editorconfig-name") {
		cli.EditorConfigName = flags.editorConfigName
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: flags.configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, "", errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldFix, cfg.Fix,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldFormat, cfg.Format,
	)
	for _, key := range cfg.Overrides.Keys() {
		logger.Debug("setting override", logging.FieldSetting, key, logging.FieldValue, cfg.Overrides[key])
	}

	return cfg, workDir, nil
}

// newRunner wires the rule table, settings resolver and pipeline for cfg.
func newRunner(cfg *config.Config) (*runner.Runner, *lint.Table) {
	table := rules.NewTable()
	engine := lint.NewEngine(table, cfg)
	pipeline := lint.NewPipeline(engine, resolver.New(cfg))
	return runner.New(pipeline), table
}

// runOptions builds runner options for the given paths.
func runOptions(cfg *config.Config, paths []string, workDir string) runner.Options {
	opts := runner.OptionsFromConfig(cfg, paths)
	opts.WorkingDir = workDir
	return opts
}
