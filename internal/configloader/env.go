package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/goeclint/pkg/config"
)

const envVarPrefix = "GOECLINT_"

// envVar binds one GOECLINT_ variable to the config field it sets.
type envVar struct {
	suffix string
	desc   string
	apply  func(cfg *config.Config, value string) error
}

//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{"SEVERITY_DEFAULT", "Default severity: error, warning, or info", func(cfg *config.Config, v string) error {
		cfg.SeverityDefault = v
		return nil
	}},
	{"FIX", "Enable fixing: true or false", boolVar(func(cfg *config.Config) *bool { return &cfg.Fix })},
	{"DRY_RUN", "Dry-run mode: true or false", boolVar(func(cfg *config.Config) *bool { return &cfg.DryRun })},
	{"JOBS", "Number of parallel workers (0 = auto)", func(cfg *config.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %q is not an integer", config.ErrInvalidConfiguration, v)
		}
		cfg.Jobs = n
		return nil
	}},
	{"FORMAT", "Output format: text, json, sarif, diff, or summary", func(cfg *config.Config, v string) error {
		cfg.Format = config.OutputFormat(v)
		return nil
	}},
	{"BACKUPS_ENABLED", "Enable backups when fixing: true or false",
		boolVar(func(cfg *config.Config) *bool { return &cfg.Backups.Enabled })},
	{"BACKUPS_MODE", "Backup mode: sidecar or none", func(cfg *config.Config, v string) error {
		cfg.Backups.Mode = v
		return nil
	}},
	{"IGNORE", "Comma-separated list of ignore patterns", func(cfg *config.Config, v string) error {
		cfg.Ignore = splitList(v)
		return nil
	}},
	{"NO_BACKUPS", "Disable backups: true or false", boolVar(func(cfg *config.Config) *bool { return &cfg.NoBackups })},
	{"SKIP_VENDORED", "Skip vendored directories: true or false",
		boolVar(func(cfg *config.Config) *bool { return &cfg.SkipVendored })},
	{"EDITORCONFIG_NAME", "Name of the editorconfig file", func(cfg *config.Config, v string) error {
		cfg.EditorConfigName = v
		return nil
	}},
	{"SET", "Comma-separated key=value setting overrides", func(cfg *config.Config, v string) error {
		overrides, err := ParseOverrides(splitList(v))
		if err != nil {
			return err
		}
		cfg.Overrides = overlay(cfg.Overrides, overrides)
		return nil
	}},
}

func boolVar(field func(cfg *config.Config) *bool) func(*config.Config, string) error {
	return func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %q is not a boolean (true/false/1/0)", config.ErrInvalidConfiguration, v)
		}
		*field(cfg) = b
		return nil
	}
}

// LoadFromEnv applies the non-empty GOECLINT_ variables to cfg.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, ev := range envVars {
		name := envVarPrefix + ev.suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := ev.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// splitList splits a comma-separated value, dropping empty elements.
func splitList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseOverrides parses "key=value" pairs into settings. Keys are
// normalized through the setting aliases; unknown keys are kept as given so
// custom editorconfig properties pass through. An "unset" value is kept so
// it can remove the key from the .editorconfig layer.
func ParseOverrides(pairs []string) (config.Settings, error) {
	overrides := make(config.Settings, len(pairs))
	for _, pair := range pairs {
		key, value, err := config.ParseOverride(pair)
		if err != nil {
			return nil, err
		}
		if name := NormalizeSettingName(key); name != "" {
			key = name
		}
		overrides[key] = config.ParseValue(value)
	}
	return overrides, nil
}

// ListEnvVars returns every supported variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envVars))
	for _, ev := range envVars {
		vars[envVarPrefix+ev.suffix] = ev.desc
	}
	return vars
}
