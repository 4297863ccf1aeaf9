package lint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/goeclint/pkg/config"
	"github.com/yaklabco/goeclint/pkg/diff"
	"github.com/yaklabco/goeclint/pkg/document"
	"github.com/yaklabco/goeclint/pkg/filetype"
	"github.com/yaklabco/goeclint/pkg/fsutil"
)

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrBinaryFile indicates content that is not text. Binary files are skipped.
	ErrBinaryFile = errors.New("binary file")

	// ErrSettings indicates the editorconfig settings for a file could not be resolved.
	ErrSettings = errors.New("resolve settings")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// SettingsResolver computes the editorconfig settings that apply to a file.
type SettingsResolver interface {
	Resolve(ctx context.Context, path string) (config.Settings, error)
}

// StaticSettings is a SettingsResolver that returns the same settings for every path.
type StaticSettings config.Settings

// Resolve returns a copy of the static settings.
func (s StaticSettings) Resolve(context.Context, string) (config.Settings, error) {
	return config.Settings(s).Clone(), nil
}

// PipelineResult contains the result of processing a single file through the safety pipeline.
type PipelineResult struct {
	// FileResult holds the violations that remain. After a fix these come
	// from re-checking the fixed content.
	*FileResult

	// Path is the file path that was processed.
	Path string

	// Language is the detected language of the file, empty when unknown.
	Language string

	// Settings are the editorconfig settings the file was checked against.
	Settings config.Settings

	// OriginalInfo is the file state before processing.
	OriginalInfo *fsutil.FileInfo

	// Modified is true if fixing changed the content.
	Modified bool

	// ModifiedContent is the fixed content (nil if not modified).
	ModifiedContent []byte

	// Diff is the unified diff for dry-run mode (nil if not in dry-run).
	Diff *diff.Diff

	// FixedCount is the number of violations the fix removed.
	FixedCount int

	// Skipped is true if the file was skipped (binary content or concurrent modification).
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// BackupCreated is true if a backup was created for this file.
	BackupCreated bool

	// Written is true if the file was written to disk.
	Written bool
}

// Summary returns a human-readable summary of the pipeline result.
func (pr *PipelineResult) Summary() string {
	if pr.Skipped {
		return "skipped: " + pr.SkipReason
	}
	if pr.Written {
		if pr.BackupCreated {
			return "fixed (backup created)"
		}
		return "fixed"
	}
	if pr.Modified {
		return "changes pending"
	}
	if pr.FileResult != nil && pr.HasIssues() {
		return "issues found"
	}
	return "ok"
}

// PipelineOptions controls safety pipeline behavior.
type PipelineOptions struct {
	// Fix enables auto-fix mode.
	Fix bool

	// DryRun generates diffs without writing files.
	DryRun bool

	// Backup configures backup behavior.
	Backup fsutil.BackupConfig

	// StrictRaceDetection uses hash comparison for modification detection.
	// When false, only mod time and size are checked.
	StrictRaceDetection bool
}

// DefaultPipelineOptions returns check-only options with strict race detection.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Fix:                 false,
		DryRun:              false,
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
	}
}

// Pipeline orchestrates the safe processing of a single file.
type Pipeline struct {
	// Engine runs the rules.
	Engine *Engine

	// Resolver supplies per-file settings. A nil Resolver means no settings,
	// so no rule fires.
	Resolver SettingsResolver
}

// NewPipeline creates a new safety pipeline.
func NewPipeline(engine *Engine, resolver SettingsResolver) *Pipeline {
	return &Pipeline{
		Engine:   engine,
		Resolver: resolver,
	}
}

// ProcessFile runs the full safety pipeline for a single file.
//
// The pipeline performs the following steps:
//  1. Read and hash the original file.
//  2. Skip binary content.
//  3. Resolve settings, build the document and check it.
//  4. With fix mode: fix, serialize and re-check the fixed content.
//  5. Generate a diff (dry-run) or, after a concurrent modification
//     check and an optional backup, write the content atomically.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts PipelineOptions) (*PipelineResult, error) {
	original, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.ProcessContent(ctx, path, original, opts)
	if errors.Is(err, ErrBinaryFile) {
		return &PipelineResult{
			Path:         path,
			OriginalInfo: info,
			Skipped:      true,
			SkipReason:   ErrBinaryFile.Error(),
		}, nil
	}
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info

	if !result.Modified || opts.DryRun {
		return result, nil
	}

	modified, err := fsutil.CheckModified(ctx, info, opts.StrictRaceDetection)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if modified {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, result.ModifiedContent, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// ProcessContent checks (and with opts.Fix, fixes) in-memory content
// without touching the file system. Binary content yields ErrBinaryFile.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	opts PipelineOptions,
) (*PipelineResult, error) {
	info := filetype.Classify(path, content)
	if info.Binary {
		return nil, fmt.Errorf("%w: %s", ErrBinaryFile, path)
	}

	settings, err := p.resolve(ctx, path)
	if err != nil {
		return nil, err
	}

	result := &PipelineResult{
		Path:     path,
		Language: info.Language,
		Settings: settings,
	}

	checked, err := p.Engine.CheckContent(ctx, path, settings, content)
	if err != nil {
		return nil, err
	}
	result.FileResult = checked

	if !opts.Fix {
		return result, nil
	}

	doc := checked.Document
	if err := p.Engine.Fix(ctx, settings, doc); err != nil {
		return nil, err
	}

	fixed := doc.Bytes()
	if bytes.Equal(fixed, content) {
		return result, nil
	}

	rechecked, err := p.Engine.CheckContent(ctx, path, settings, fixed)
	if err != nil {
		return nil, err
	}

	result.FixedCount = max(checked.IssueCount()-rechecked.IssueCount(), 0)
	result.FileResult = rechecked
	result.Modified = true
	result.ModifiedContent = fixed

	if opts.DryRun {
		result.Diff = diff.Generate(path, content, fixed)
	}

	return result, nil
}

// InferFile reads and builds a file for tallying. Binary content yields ErrBinaryFile.
func (p *Pipeline) InferFile(ctx context.Context, path string) (*document.Document, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	if filetype.IsBinary(content) {
		return nil, fmt.Errorf("%w: %s", ErrBinaryFile, path)
	}

	return document.Build(content), nil
}

func (p *Pipeline) resolve(ctx context.Context, path string) (config.Settings, error) {
	if p.Resolver == nil {
		return config.Settings{}, nil
	}

	settings, err := p.Resolver.Resolve(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSettings, path, err)
	}
	return settings, nil
}

// categorizeError wraps an error with the appropriate pipeline error type.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	return err
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrBinaryFile) ||
		errors.Is(err, ErrSettings) ||
		errors.Is(err, ErrWriteFailure)
}

// BackupConfigFromConfig creates an fsutil.BackupConfig from config.Config.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// PipelineOptionsFromConfig creates PipelineOptions from config.Config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return DefaultPipelineOptions()
	}
	return PipelineOptions{
		Fix:                 cfg.Fix,
		DryRun:              cfg.DryRun,
		Backup:              BackupConfigFromConfig(cfg),
		StrictRaceDetection: true,
	}
}
