package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/goeclint/pkg/filetype"
	"github.com/yaklabco/goeclint/pkg/fsutil"
)

// Discover finds the files to process. Paths naming a file are always
// included; directories are walked, skipping hidden directories, excluded
// or vendored paths and goeclint backup files. It returns a sorted list of
// absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	filter, err := newFilter(workDir, opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(found string) {
		if _, ok := seen[found]; !ok {
			seen[found] = struct{}{}
			files = append(files, found)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			add(absPath)
			continue
		}

		discovered, err := walkDirectory(ctx, absPath, filter, opts.FollowSymlinks)
		if err != nil {
			return nil, err
		}
		for _, found := range discovered {
			add(found)
		}
	}

	slices.Sort(files)

	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func walkDirectory(ctx context.Context, root string, filter *filter, followSymlinks bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(current string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if current != root && filter.skipDir(current, entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(current)
			if evalErr != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Inaccessible symlink targets are skipped.
			}
			if info.IsDir() {
				if !followSymlinks {
					return nil
				}
				// Walk the target, not the link, so WalkDir's Lstat cannot recurse forever.
				subFiles, err := walkDirectory(ctx, realPath, filter, followSymlinks)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if filter.matchFile(current) {
			files = append(files, current)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// filter holds the compiled discovery criteria.
type filter struct {
	workDir      string
	extensions   []string
	include      globSet
	exclude      globSet
	skipVendored bool
}

func newFilter(workDir string, opts Options) (*filter, error) {
	include, err := compileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, err
	}
	exclude, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	extensions := make([]string, len(opts.Extensions))
	for idx, ext := range opts.Extensions {
		extensions[idx] = strings.ToLower(ext)
	}

	return &filter{
		workDir:      workDir,
		extensions:   extensions,
		include:      include,
		exclude:      exclude,
		skipVendored: opts.SkipVendored,
	}, nil
}

func (f *filter) rel(current string) string {
	relPath, err := filepath.Rel(f.workDir, current)
	if err != nil {
		relPath = current
	}
	return filepath.ToSlash(relPath)
}

func (f *filter) skipDir(current, name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}

	relPath := f.rel(current)
	if f.exclude.matchDir(relPath) {
		return true
	}
	return f.skipVendored && filetype.IsVendored(relPath+"/")
}

func (f *filter) matchFile(current string) bool {
	if strings.HasSuffix(current, fsutil.BackupSuffix) {
		return false
	}

	if len(f.extensions) > 0 && !slices.Contains(f.extensions, strings.ToLower(filepath.Ext(current))) {
		return false
	}

	relPath := f.rel(current)
	if f.exclude.match(relPath) {
		return false
	}
	if f.skipVendored && filetype.IsVendored(relPath) {
		return false
	}
	if len(f.include) > 0 && !f.include.match(relPath) {
		return false
	}

	return true
}

// globSet matches slash-separated relative paths. A pattern matches the
// whole path or its base name; "dir/**" also matches dir itself and
// "**/name" also matches name at the top level.
type globSet []glob.Glob

func compileGlobs(patterns []string) (globSet, error) {
	set := make(globSet, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}

		variants := []string{pattern}
		if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
			variants = append(variants, rest)
		}

		for _, variant := range variants {
			compiled, err := glob.Compile(variant, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
			}
			set = append(set, compiled)
		}
	}
	return set, nil
}

func (s globSet) match(relPath string) bool {
	base := path.Base(relPath)
	for _, g := range s {
		if g.Match(relPath) || g.Match(base) {
			return true
		}
	}
	return false
}

func (s globSet) matchDir(relPath string) bool {
	return s.match(relPath) || s.match(relPath+"/")
}
