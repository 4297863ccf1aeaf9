// Package diff computes unified diffs between the original and fixed bytes of
// a file. Lines are split the way documents are built, so CRLF and CR endings,
// byte order marks and a missing final newline all show up as changes.
package diff

import (
	"fmt"
	"strings"

	"github.com/yaklabco/goeclint/pkg/document"
)

// Diff represents a unified diff between original and modified content.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Original is the original file content.
	Original []byte

	// Modified is the modified file content.
	Modified []byte

	// Hunks contains the diff hunks.
	Hunks []Hunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// Hunk represents a single hunk in a unified diff.
type Hunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int

	Lines []Line
}

// Line is a single line in a hunk.
type Line struct {
	// Kind indicates whether this is a context, add, or remove line.
	Kind LineKind

	// Content is the line without its terminator. The first line of a file
	// includes its byte order mark.
	Content string

	// Ending is the line terminator, None for the last line of a file
	// without a final newline.
	Ending document.Newline
}

// LineKind indicates the type of diff line.
type LineKind int

const (
	// LineContext is an unchanged context line.
	LineContext LineKind = iota

	// LineAdd is a line added in the modified version.
	LineAdd

	// LineRemove is a line removed from the original version.
	LineRemove
)

const contextLines = 3

// NoNewlineMarker follows a diff line that has no terminator.
const NoNewlineMarker = `\ No newline at end of file`

// Generate creates a unified diff between original and modified content.
// Returns nil if there are no changes.
func Generate(path string, original, modified []byte) *Diff {
	if string(original) == string(modified) {
		return nil
	}

	origLines := splitLines(original)
	modLines := splitLines(modified)

	hunks := computeHunks(origLines, modLines)
	if len(hunks) == 0 {
		return nil
	}

	var additions, deletions int
	for _, hunk := range hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineAdd:
				additions++
			case LineRemove:
				deletions++
			case LineContext:
			}
		}
	}

	return &Diff{
		Path:      path,
		Original:  original,
		Modified:  modified,
		Hunks:     hunks,
		Additions: additions,
		Deletions: deletions,
	}
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String returns the diff in unified diff format (without the git header).
// Line terminators are written as they appear in the file.
func (d *Diff) String() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		builder.WriteString(hunk.Header())
		builder.WriteByte('\n')

		for _, line := range hunk.Lines {
			builder.WriteString(line.Prefix())
			builder.WriteString(line.Content)
			if line.Ending == document.None {
				builder.WriteString("\n" + NoNewlineMarker + "\n")
				continue
			}
			builder.WriteString(line.Ending.Literal())
		}
	}

	return builder.String()
}

// FullString returns the complete diff including the git header.
func (d *Diff) FullString() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// Header returns the "@@ -a,b +c,d @@" range line.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@",
		h.OriginalStart, h.OriginalCount,
		h.ModifiedStart, h.ModifiedCount)
}

// Prefix returns the unified diff marker for the line.
func (l Line) Prefix() string {
	switch l.Kind {
	case LineAdd:
		return "+"
	case LineRemove:
		return "-"
	default:
		return " "
	}
}

func (l Line) key() string {
	return l.Content + l.Ending.Literal()
}

// splitLines builds content into document lines. The line with no text and
// no ending that an empty document holds is dropped.
func splitLines(content []byte) []Line {
	doc := document.Build(content)

	lines := make([]Line, 0, doc.Len())
	for _, line := range doc.Lines() {
		if !line.HasText() && line.Ending() == document.None && len(line.BOM()) == 0 {
			continue
		}
		lines = append(lines, Line{
			Content: string(line.BOM()) + line.Text(),
			Ending:  line.Ending(),
		})
	}
	return lines
}

type op struct {
	kind LineKind
	line Line
}

func computeHunks(orig, mod []Line) []Hunk {
	ops := buildOps(orig, mod, longestCommonSubsequence(orig, mod))
	return groupIntoHunks(ops)
}

func buildOps(orig, mod, lcs []Line) []op {
	var ops []op
	origIdx, modIdx, lcsIdx := 0, 0, 0

	for origIdx < len(orig) || modIdx < len(mod) {
		if lcsIdx < len(lcs) &&
			origIdx < len(orig) && modIdx < len(mod) &&
			orig[origIdx].key() == lcs[lcsIdx].key() && mod[modIdx].key() == lcs[lcsIdx].key() {
			ops = append(ops, op{kind: LineContext, line: orig[origIdx]})
			origIdx++
			modIdx++
			lcsIdx++
			continue
		}

		for origIdx < len(orig) && (lcsIdx >= len(lcs) || orig[origIdx].key() != lcs[lcsIdx].key()) {
			ops = append(ops, op{kind: LineRemove, line: orig[origIdx]})
			origIdx++
		}

		for modIdx < len(mod) && (lcsIdx >= len(lcs) || mod[modIdx].key() != lcs[lcsIdx].key()) {
			ops = append(ops, op{kind: LineAdd, line: mod[modIdx]})
			modIdx++
		}
	}

	return ops
}

func groupIntoHunks(ops []op) []Hunk {
	type changeRange struct {
		start, end int
	}

	var ranges []changeRange
	inChange := false
	rangeStart := 0

	for idx, o := range ops {
		isChange := o.kind != LineContext
		switch {
		case isChange && !inChange:
			rangeStart = idx
			inChange = true
		case !isChange && inChange:
			ranges = append(ranges, changeRange{rangeStart, idx})
			inChange = false
		}
	}
	if inChange {
		ranges = append(ranges, changeRange{rangeStart, len(ops)})
	}

	var hunks []Hunk
	for rangeIdx := 0; rangeIdx < len(ranges); {
		mergeEnd := rangeIdx + 1
		for mergeEnd < len(ranges) && ranges[mergeEnd].start-ranges[mergeEnd-1].end <= contextLines*2 {
			mergeEnd++
		}

		hunks = append(hunks, buildHunk(ops, ranges[rangeIdx].start, ranges[mergeEnd-1].end))
		rangeIdx = mergeEnd
	}

	return hunks
}

func buildHunk(ops []op, changeStart, changeEnd int) Hunk {
	start := max(changeStart-contextLines, 0)
	end := min(changeEnd+contextLines, len(ops))

	hunk := Hunk{OriginalStart: 1, ModifiedStart: 1}
	for _, o := range ops[:start] {
		if o.kind != LineAdd {
			hunk.OriginalStart++
		}
		if o.kind != LineRemove {
			hunk.ModifiedStart++
		}
	}

	for _, o := range ops[start:end] {
		line := o.line
		line.Kind = o.kind
		hunk.Lines = append(hunk.Lines, line)

		switch o.kind {
		case LineContext:
			hunk.OriginalCount++
			hunk.ModifiedCount++
		case LineRemove:
			hunk.OriginalCount++
		case LineAdd:
			hunk.ModifiedCount++
		}
	}

	// An empty side starts at the line before the hunk.
	if hunk.OriginalCount == 0 {
		hunk.OriginalStart--
	}
	if hunk.ModifiedCount == 0 {
		hunk.ModifiedStart--
	}

	return hunk
}

func longestCommonSubsequence(orig, mod []Line) []Line {
	origLen, modLen := len(orig), len(mod)
	if origLen == 0 || modLen == 0 {
		return nil
	}

	dp := make([][]int, origLen+1)
	for idx := range dp {
		dp[idx] = make([]int, modLen+1)
	}

	for row := 1; row <= origLen; row++ {
		for col := 1; col <= modLen; col++ {
			if orig[row-1].key() == mod[col-1].key() {
				dp[row][col] = dp[row-1][col-1] + 1
			} else {
				dp[row][col] = max(dp[row-1][col], dp[row][col-1])
			}
		}
	}

	lcsLen := dp[origLen][modLen]
	if lcsLen == 0 {
		return nil
	}

	lcs := make([]Line, lcsLen)
	row, col, idx := origLen, modLen, lcsLen-1
	for row > 0 && col > 0 {
		switch {
		case orig[row-1].key() == mod[col-1].key():
			lcs[idx] = orig[row-1]
			row--
			col--
			idx--
		case dp[row-1][col] > dp[row][col-1]:
			row--
		default:
			col--
		}
	}

	return lcs
}
