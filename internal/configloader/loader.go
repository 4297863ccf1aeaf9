// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support and validation.
package configloader

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/goeclint/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (GOECLINT_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.goeclint.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/goeclint/config.yaml)
//  6. System config (/etc/goeclint/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name    string
		path    string
		skipped bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}

	for _, layer := range layers {
		if layer.skipped || layer.path == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled: %w", err)
		}

		fileCfg, present, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		normalizeKeys(fileCfg, layer.path, result)
		cfg = merge(cfg, fileCfg, present)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cliCfg := opts.CLIConfig.Clone()
		normalizeKeys(cliCfg, "flags", result)
		cfg = merge(cfg, cliCfg, nil)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}

	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file, along with the
// keys the file sets explicitly.
func loadConfigFile(path string) (*config.Config, fieldSet, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	present, err := presentFields(content)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, present, nil
}

// presentFields lists the top-level keys of a YAML document, plus the keys
// of nested mappings as "parent.child".
func presentFields(content []byte) (fieldSet, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	present := make(fieldSet, len(raw))
	for key, value := range raw {
		present[key] = true
		if nested, ok := value.(map[string]any); ok {
			for child := range nested {
				present[key+"."+child] = true
			}
		}
	}
	return present, nil
}

// normalizeKeys converts setting aliases such as "indent-style" or "eol" to
// setting names in the rules, settings and overrides maps. When two keys of
// one source name the same setting it warns and keeps the value that sorts last.
func normalizeKeys(cfg *config.Config, source string, result *LoadResult) {
	if len(cfg.Rules) > 0 {
		rulesOut := make(map[string]config.RuleConfig, len(cfg.Rules))
		seen := make(map[string]string, len(cfg.Rules))
		for _, key := range sortedKeys(cfg.Rules) {
			name := canonicalKey(key)
			warnDuplicate(seen, key, name, source, result)
			rulesOut[name] = cfg.Rules[key]
		}
		cfg.Rules = rulesOut
	}

	cfg.Settings = normalizeSettings(cfg.Settings, source, result)
	cfg.Overrides = normalizeSettings(cfg.Overrides, source, result)
}

func normalizeSettings(settings config.Settings, source string, result *LoadResult) config.Settings {
	if len(settings) == 0 {
		return settings
	}

	out := make(config.Settings, len(settings))
	seen := make(map[string]string, len(settings))
	for _, key := range settings.Keys() {
		name := canonicalKey(key)
		warnDuplicate(seen, key, name, source, result)
		out[name] = settings[key]
	}
	return out
}

// canonicalKey returns the setting name for key, or key unchanged when it
// names no known setting.
func canonicalKey(key string) string {
	if name := NormalizeSettingName(key); name != "" {
		return name
	}
	return key
}

func warnDuplicate(seen map[string]string, key, name, source string, result *LoadResult) {
	if original, exists := seen[name]; exists {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s: %q and %q both refer to %s; using %q", source, original, key, name, key))
	}
	seen[name] = key
}
