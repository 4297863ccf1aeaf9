package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/goeclint/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("replaces content and keeps mode", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "script.sh")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o755))

		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("new\r\n"), 0o755))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new\r\n", string(got))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o755), stat.Mode().Perm())

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temp file must not be left behind")
	})

	t.Run("zero mode uses default", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "new.txt")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fsutil.DefaultFileMode, stat.Mode().Perm())
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "no", "such", "dir", "f.txt")
		require.Error(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0))
	})
}
