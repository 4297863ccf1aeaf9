package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/goeclint/pkg/document"
	"github.com/yaklabco/goeclint/pkg/lint"
)

// Runner orchestrates multi-file processing using a lint.Pipeline.
type Runner struct {
	// Pipeline handles per-file processing with safety guarantees.
	Pipeline *lint.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and checks (or fixes) them with at
// most opts.Jobs files in flight. Outcomes are ordered by path whatever the
// completion order. A failing file is recorded in its outcome and does not
// stop the run.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	pipelineOpts := lint.PipelineOptionsFromConfig(opts.Config)
	outcomes := make([]FileOutcome, len(files))

	runErr := forEach(ctx, files, jobCount(opts.Jobs, len(files)), func(idx int, path string) {
		pr, err := r.Pipeline.ProcessFile(ctx, path, pipelineOpts)
		outcomes[idx] = FileOutcome{Path: path, Result: pr, Error: err}
	})

	for _, outcome := range outcomes {
		if outcome.Path != "" {
			result.accumulate(outcome)
		}
	}

	if runErr != nil {
		return result, fmt.Errorf("run cancelled: %w", runErr)
	}

	return result, nil
}

// RunInfer builds every discovered file concurrently, then tallies the
// documents one by one in path order so ties resolve the same way on
// every run. Binary files are skipped.
func (r *Runner) RunInfer(ctx context.Context, opts Options) (*InferResult, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &InferResult{}
	result.Stats.FilesDiscovered = len(files)

	docs := make([]*document.Document, len(files))
	errs := make([]error, len(files))

	err = forEach(ctx, files, jobCount(opts.Jobs, len(files)), func(idx int, path string) {
		docs[idx], errs[idx] = r.Pipeline.InferFile(ctx, path)
	})
	if err != nil {
		return nil, fmt.Errorf("infer cancelled: %w", err)
	}

	tally := lint.NewTally()
	for idx, doc := range docs {
		switch {
		case errors.Is(errs[idx], lint.ErrBinaryFile):
			result.Stats.FilesSkipped++
		case errs[idx] != nil:
			result.Stats.FilesErrored++
			result.Errors = append(result.Errors, errs[idx])
		default:
			if err := r.Pipeline.Engine.Infer(ctx, doc, tally); err != nil {
				return nil, err
			}
			result.Stats.FilesInferred++
		}
	}

	result.Settings = tally.Resolve()
	result.Scores = tally.Scores()

	return result, nil
}

func jobCount(jobs, files int) int {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	return max(min(jobs, files), 1)
}

// forEach calls fn for every path with at most jobs calls running. Paths
// not yet started when ctx is cancelled are skipped and the context error
// is returned.
func forEach(ctx context.Context, paths []string, jobs int, fn func(idx int, path string)) error {
	var group errgroup.Group
	group.SetLimit(jobs)

	for idx, path := range paths {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(idx, path)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
