package diff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/goeclint/pkg/diff"
	"github.com/yaklabco/goeclint/pkg/document"
)

func TestGenerate_NoChanges(t *testing.T) {
	t.Parallel()

	assert.Nil(t, diff.Generate("a.txt", nil, nil))
	assert.Nil(t, diff.Generate("a.txt", []byte("x\n"), []byte("x\n")))

	var d *diff.Diff
	assert.False(t, d.HasChanges())
	assert.Empty(t, d.String())
	assert.Empty(t, d.FullString())
}

func TestGenerate_SingleLineChange(t *testing.T) {
	t.Parallel()

	d := diff.Generate("a.txt", []byte("hello\nworld  \n"), []byte("hello\nworld\n"))
	require.True(t, d.HasChanges())
	require.Len(t, d.Hunks, 1)
	assert.Equal(t, 1, d.Additions)
	assert.Equal(t, 1, d.Deletions)

	want := "--- a/a.txt\n" +
		"+++ b/a.txt\n" +
		"@@ -1,2 +1,2 @@\n" +
		" hello\n" +
		"-world  \n" +
		"+world\n"
	assert.Equal(t, want, d.String())
	assert.Equal(t, "diff --git a/a.txt b/a.txt\n"+want, d.FullString())
}

func TestGenerate_LineEndingOnlyChange(t *testing.T) {
	t.Parallel()

	d := diff.Generate("a.txt", []byte("a\r\nb\r\n"), []byte("a\nb\n"))
	require.True(t, d.HasChanges())
	assert.Equal(t, 2, d.Additions)
	assert.Equal(t, 2, d.Deletions)

	removed := d.Hunks[0].Lines[0]
	assert.Equal(t, diff.LineRemove, removed.Kind)
	assert.Equal(t, "a", removed.Content)
	assert.Equal(t, document.CRLF, removed.Ending)
}

func TestGenerate_MissingFinalNewline(t *testing.T) {
	t.Parallel()

	d := diff.Generate("a.txt", []byte("a\nb"), []byte("a\nb\n"))
	require.True(t, d.HasChanges())

	want := "--- a/a.txt\n" +
		"+++ b/a.txt\n" +
		"@@ -1,2 +1,2 @@\n" +
		" a\n" +
		"-b\n" + diff.NoNewlineMarker + "\n" +
		"+b\n"
	assert.Equal(t, want, d.String())
}

func TestGenerate_EmptySide(t *testing.T) {
	t.Parallel()

	d := diff.Generate("a.txt", nil, []byte("new\n"))
	require.True(t, d.HasChanges())
	require.Len(t, d.Hunks, 1)
	assert.Equal(t, "@@ -0,0 +1,1 @@", d.Hunks[0].Header())
	assert.Equal(t, 1, d.Additions)
}

func TestGenerate_BOMChange(t *testing.T) {
	t.Parallel()

	d := diff.Generate("a.txt", []byte("\xEF\xBB\xBFx\n"), []byte("x\n"))
	require.True(t, d.HasChanges())
	assert.Equal(t, "\xEF\xBB\xBFx", d.Hunks[0].Lines[0].Content)
}

func TestGenerate_SeparateHunks(t *testing.T) {
	t.Parallel()

	original := "1 \n2\n3\n4\n5\n6\n7\n8\n9\n10 \n"
	modified := "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n"

	d := diff.Generate("a.txt", []byte(original), []byte(modified))
	require.Len(t, d.Hunks, 2)
	assert.Equal(t, "@@ -1,4 +1,4 @@", d.Hunks[0].Header())
	assert.Equal(t, "@@ -7,4 +7,4 @@", d.Hunks[1].Header())
}
