package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/goeclint/internal/configloader"
	"github.com/yaklabco/goeclint/internal/logging"
	"github.com/yaklabco/goeclint/pkg/config"
	"github.com/yaklabco/goeclint/pkg/lint/rules"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	user   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new goeclint configuration file",
		Long: `Create a new .goeclint.yml configuration file in the current directory.
The file can set default editorconfig settings, change rule severities,
disable rules, and configure ignores and backups.

Examples:
  goeclint init                      Create minimal .goeclint.yml
  goeclint init --full               Document every rule in the template
  goeclint init --format json        Create .goeclint.json instead
  goeclint init --user               Create the per-user config file
  goeclint init --output custom.yml  Write to a custom file path`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all rules documented")
	cmd.Flags().BoolVar(&flags.user, "user", false, "Write the user-level config instead of a project file")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: .goeclint.yml or .goeclint.json)")

	return cmd
}

// initPath picks the file init writes.
func initPath(flags *initFlags) string {
	switch {
	case flags.output != "":
		return flags.output
	case flags.user:
		return filepath.Join(configloader.UserConfigDir(), "config.yaml")
	case flags.format == "json":
		return ".goeclint.json"
	default:
		return ".goeclint.yml"
	}
}

func runInit(flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("%w: init format %q must be yaml or json", config.ErrInvalidConfiguration, flags.format)
	}

	outputPath := initPath(flags)
	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
		Rules:  rules.NewTable().Infos(),
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.full {
		logger.Info("full template documents every rule")
	}
	logger.Info("run 'goeclint rules' to see the settings goeclint checks")

	return nil
}
