// Package resolver computes the editorconfig settings that apply to a file.
//
// Settings are layered, lowest precedence first: defaults from the tool
// configuration, the matching sections of every .editorconfig file between
// the file and the nearest root = true, then command-line overrides. An
// "unset" value in a higher layer removes the key.
package resolver

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/editorconfig/editorconfig-core-go/v2"

	"github.com/yaklabco/goeclint/pkg/config"
)

// Resolver resolves settings through editorconfig-core-go. It is safe for
// concurrent use.
type Resolver struct {
	defaults  config.Settings
	overrides config.Settings

	mu     sync.Mutex
	loader *editorconfig.Config
}

// New creates a Resolver from the tool configuration. A nil cfg resolves
// .editorconfig files only.
func New(cfg *config.Config) *Resolver {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	name := cfg.EditorConfigName
	if name == "" {
		name = config.DefaultEditorConfigName
	}

	return &Resolver{
		defaults:  config.Settings{}.Merge(cfg.Settings.Normalize()),
		overrides: cfg.Overrides.Normalize(),
		loader: &editorconfig.Config{
			Name:   name,
			Parser: editorconfig.NewCachedParser(),
		},
	}
}

// Resolve returns the layered settings for path.
func (r *Resolver) Resolve(ctx context.Context, path string) (config.Settings, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("absolute path of %s: %w", path, err)
	}

	found, err := r.load(abs)
	if err != nil {
		return nil, err
	}

	return r.defaults.Merge(found).Merge(r.overrides), nil
}

// EditorConfig returns only the settings the .editorconfig files give path.
// Unset values are kept as the string "unset".
func (r *Resolver) EditorConfig(path string) (config.Settings, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("absolute path of %s: %w", path, err)
	}
	return r.load(abs)
}

// load serializes access to the cached parser, whose maps are shared
// between calls.
func (r *Resolver) load(abs string) (config.Settings, error) {
	r.mu.Lock()
	def, err := r.loader.Load(abs)
	r.mu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("load %s for %s: %w", r.loader.Name, abs, err)
	}

	settings := make(config.Settings, len(def.Raw))
	for key, raw := range def.Raw {
		settings[key] = config.ParseValue(raw)
	}
	return settings, nil
}
