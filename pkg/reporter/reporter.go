// Package reporter writes check, fix and infer results in the supported
// output formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/goeclint/pkg/analysis"
	"github.com/yaklabco/goeclint/pkg/config"
	"github.com/yaklabco/goeclint/pkg/runner"
)

// Compile-time interface check for reporterFacade.
var _ Reporter = (*reporterFacade)(nil)

// Reporter formats and writes check results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of issues reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Renderer writes an already analyzed report. The summary format is the
// only one that needs aggregated totals, so it is the only renderer.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}

// reporterFacade bridges the Reporter interface to Renderer implementations.
type reporterFacade struct {
	renderer     Renderer
	analysisOpts analysis.Options
}

// Report implements Reporter by analyzing the result and rendering it.
func (f *reporterFacade) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, f.analysisOpts)
	if err := f.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Issues, nil
}

// newRendererFacade creates a facade wrapping a Renderer.
func newRendererFacade(renderer Renderer, opts Options) *reporterFacade {
	return &reporterFacade{
		renderer: renderer,
		analysisOpts: analysis.Options{
			IncludeByFile: true,
			IncludeByRule: true,
			SortBy:        analysis.SortByCount,
			SortDesc:      true,
			WorkingDir:    opts.WorkingDir,
		},
	}
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format, err := config.ParseOutputFormat(string(opts.Format))
	if err != nil {
		return nil, err
	}

	switch format {
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	case config.FormatSARIF:
		return NewSARIFReporter(opts), nil
	case config.FormatDiff:
		return NewDiffReporter(opts), nil
	case config.FormatSummary:
		return newRendererFacade(NewSummaryRenderer(opts), opts), nil
	case config.FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", config.ErrInvalidConfiguration, format)
	}
}

// displayPath returns path relative to the configured working directory.
func (o Options) displayPath(path string) string {
	return analysis.RelativePath(path, o.WorkingDir)
}
