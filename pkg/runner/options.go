// Package runner provides multi-file orchestration: discovery, a bounded
// worker pool around lint.Pipeline, and deterministic aggregation.
package runner

import "github.com/yaklabco/goeclint/pkg/config"

// Options controls multi-file processing.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions optionally restricts directory walks to these file
	// extensions (lowercase, with leading dot). Empty means every file.
	Extensions []string

	// IncludeGlobs are additional glob patterns to include, relative to WorkingDir.
	// Empty means "include everything".
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	// These merge ignore rules from config and CLI (e.g. --ignore).
	ExcludeGlobs []string

	// SkipVendored skips vendored directories such as vendor/ and node_modules/.
	SkipVendored bool

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// OptionsFromConfig fills the config-derived fields of Options.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	opts := Options{
		Paths:  paths,
		Config: cfg,
	}
	if cfg != nil {
		opts.ExcludeGlobs = append(opts.ExcludeGlobs, cfg.Ignore...)
		opts.SkipVendored = cfg.SkipVendored
		opts.Jobs = cfg.Jobs
	}
	return opts
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
