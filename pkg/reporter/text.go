package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/goeclint/internal/ui/pretty"
	"github.com/yaklabco/goeclint/pkg/lint"
	"github.com/yaklabco/goeclint/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	total := r.report(ctx, result)

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

func (r *TextReporter) report(_ context.Context, result *runner.Result) int {
	var total int

	for _, file := range result.Files {
		path := r.opts.displayPath(file.Path)

		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}

		violations := file.Result.Violations
		if len(violations) == 0 {
			continue
		}

		if r.opts.GroupByFile {
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(violations)))
		}

		tabWidth := tabWidthFor(file.Result.Settings)
		for idx := range violations {
			violation := violations[idx]
			violation.FilePath = path

			fmt.Fprint(r.bw, r.styles.FormatViolation(&violation, r.opts.ShowContext,
				sourceLine(file.Result.FileResult, violation.Line), tabWidth))
			total++
		}

		if r.opts.GroupByFile {
			fmt.Fprintln(r.bw)
		}
	}

	return total
}

// sourceLine returns the text of the 1-based line, or "" for document-level
// violations and lines past the end.
func sourceLine(fr *lint.FileResult, number int) string {
	if fr == nil || fr.Document == nil || number < 1 {
		return ""
	}
	line := fr.Document.Line(number)
	if line == nil {
		return ""
	}
	return line.Text()
}
