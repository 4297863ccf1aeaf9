package reporter

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/goeclint/pkg/config"
	"github.com/yaklabco/goeclint/pkg/lint"
	"github.com/yaklabco/goeclint/pkg/runner"
)

// InferOptions configures how inferred settings are written.
type InferOptions struct {
	// Writer is the destination for output.
	Writer io.Writer

	// Format selects json, yaml or ini.
	Format config.InferFormat

	// Root adds "root = true" to ini output.
	Root bool

	// Scored writes the raw frequency table instead of resolved settings.
	Scored bool

	// Compact disables indentation in json output.
	Compact bool
}

// WriteInfer writes an infer result in the requested format.
func WriteInfer(result *runner.InferResult, opts InferOptions) (err error) {
	format, err := config.ParseInferFormat(string(opts.Format))
	if err != nil {
		return err
	}
	if err := config.CheckInferOptions(format, opts.Scored); err != nil {
		return err
	}

	bw := bufio.NewWriterSize(opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	settings := config.Settings{}
	if result != nil && result.Settings != nil {
		settings = result.Settings
	}

	var payload any = settings
	if opts.Scored {
		scores := map[string][]lint.Score{}
		if result != nil && result.Scores != nil {
			scores = result.Scores
		}
		payload = scores
	}

	switch format {
	case config.InferYAML:
		return writeInferYAML(bw, payload)
	case config.InferINI:
		return writeInferINI(bw, settings, opts.Root)
	case config.InferJSON:
		return writeInferJSON(bw, payload, opts.Compact)
	default:
		return fmt.Errorf("%w: unsupported infer format %q", config.ErrInvalidConfiguration, format)
	}
}

func writeInferJSON(w io.Writer, payload any, compact bool) error {
	encoder := json.NewEncoder(w)
	if !compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(payload); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func writeInferYAML(w io.Writer, payload any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(config.YAMLIndent())
	if err := encoder.Encode(payload); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("close YAML encoder: %w", err)
	}
	return nil
}

// writeInferINI writes settings as an .editorconfig file with a single
// section matching every file. Known settings come first in rule order.
func writeInferINI(w io.Writer, settings config.Settings, root bool) error {
	file := ini.Empty()

	if root {
		if _, err := file.Section(ini.DefaultSection).NewKey("root", "true"); err != nil {
			return fmt.Errorf("write root key: %w", err)
		}
	}

	section, err := file.NewSection("*")
	if err != nil {
		return fmt.Errorf("create section: %w", err)
	}

	for _, key := range orderedKeys(settings) {
		if _, err := section.NewKey(key, fmt.Sprint(settings[key])); err != nil {
			return fmt.Errorf("write key %s: %w", key, err)
		}
	}

	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("write ini: %w", err)
	}
	return nil
}

// orderedKeys lists recognized settings in rule order, then any others sorted.
func orderedKeys(settings config.Settings) []string {
	keys := make([]string, 0, len(settings))
	for _, key := range config.SettingKeys() {
		if settings.Has(key) {
			keys = append(keys, key)
		}
	}
	for _, key := range settings.Keys() {
		if !slices.Contains(keys, key) {
			keys = append(keys, key)
		}
	}
	return keys
}
