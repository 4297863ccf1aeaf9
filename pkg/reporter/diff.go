package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/goeclint/internal/ui/pretty"
	"github.com/yaklabco/goeclint/pkg/diff"
	"github.com/yaklabco/goeclint/pkg/document"
	"github.com/yaklabco/goeclint/pkg/runner"
)

// Visible stand-ins for line terminators in colored diff output, where a
// changed ending would otherwise look like an unchanged line.
const (
	visibleCR = "␍"
	visibleLF = "␊"
)

// DiffReporter formats dry-run fixes as unified diffs in git style.
//
// Without color the output is a byte-exact patch: line terminators are
// written as they appear in the files. With color, terminators other than
// LF are shown as visible markers.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	color  bool
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		color:  colorEnabled,
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. It returns the number of files with changes.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var filesWithDiffs int
	var totalAdditions, totalDeletions int

	for _, file := range result.Files {
		if file.Error != nil {
			errOut := r.opts.ErrorWriter
			if errOut == nil {
				errOut = r.bw
			}
			fmt.Fprintf(errOut, "%s: %s\n",
				r.styles.FilePath.Render(r.opts.displayPath(file.Path)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		filesWithDiffs++
		totalAdditions += file.Result.Diff.Additions
		totalDeletions += file.Result.Diff.Deletions
		r.writeDiff(file.Path, file.Result.Diff)
	}

	if filesWithDiffs > 0 && r.opts.ShowSummary && r.color {
		r.writeSummary(filesWithDiffs, totalAdditions, totalDeletions)
	}

	return filesWithDiffs, nil
}

// writeDiff outputs a single file's diff.
func (r *DiffReporter) writeDiff(path string, d *diff.Diff) {
	displayPath := filepath.ToSlash(r.opts.displayPath(path))

	fmt.Fprintln(r.bw, r.styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", displayPath, displayPath)))
	fmt.Fprintln(r.bw, r.styles.DiffRemove.Render("--- a/"+displayPath))
	fmt.Fprintln(r.bw, r.styles.DiffAdd.Render("+++ b/"+displayPath))

	for _, hunk := range d.Hunks {
		fmt.Fprintln(r.bw, r.styles.DiffHunk.Render(hunk.Header()))
		for _, line := range hunk.Lines {
			r.writeDiffLine(line)
		}
	}
}

// writeDiffLine formats a single hunk line.
func (r *DiffReporter) writeDiffLine(line diff.Line) {
	text := line.Prefix() + line.Content

	style := r.styles.DiffContext
	switch line.Kind {
	case diff.LineAdd:
		style = r.styles.DiffAdd
	case diff.LineRemove:
		style = r.styles.DiffRemove
	case diff.LineContext:
	}

	if !r.color {
		fmt.Fprint(r.bw, text)
		if line.Ending == document.None {
			fmt.Fprint(r.bw, "\n"+diff.NoNewlineMarker+"\n")
			return
		}
		fmt.Fprint(r.bw, line.Ending.Literal())
		return
	}

	marker := ""
	switch line.Ending {
	case document.CRLF:
		marker = visibleCR + visibleLF
	case document.CR:
		marker = visibleCR
	case document.LF, document.None:
	}
	fmt.Fprintln(r.bw, style.Render(text)+r.styles.Marker.Render(marker))
	if line.Ending == document.None {
		fmt.Fprintln(r.bw, r.styles.Dim.Render(diff.NoNewlineMarker))
	}
}

// writeSummary writes a git-style stat line at the end.
func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	var parts []string

	fileWord := "files"
	if files == 1 {
		fileWord = "file"
	}
	parts = append(parts, fmt.Sprintf("%d %s changed", files, fileWord))

	if additions > 0 {
		insertionWord := "insertions"
		if additions == 1 {
			insertionWord = "insertion"
		}
		parts = append(parts, r.styles.DiffAdd.Render(fmt.Sprintf("%d %s(+)", additions, insertionWord)))
	}

	if deletions > 0 {
		deletionWord := "deletions"
		if deletions == 1 {
			deletionWord = "deletion"
		}
		parts = append(parts, r.styles.DiffRemove.Render(fmt.Sprintf("%d %s(-)", deletions, deletionWord)))
	}

	fmt.Fprintln(r.bw, strings.Join(parts, ", "))
}
