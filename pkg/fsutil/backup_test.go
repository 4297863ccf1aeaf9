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

func TestBackupPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a.txt.goeclint.bak", fsutil.BackupPath("a.txt", fsutil.BackupModeSidecar))
	assert.Equal(t, "a.txt.goeclint.bak", fsutil.BackupPath("a.txt", "unknown"))
	assert.Empty(t, fsutil.BackupPath("a.txt", fsutil.BackupModeNone))
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	t.Run("creates once", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "a.txt", "original")

		created, err := fsutil.CreateBackup(context.Background(), path, cfg)
		require.NoError(t, err)
		assert.True(t, created)

		require.NoError(t, os.WriteFile(path, []byte("changed"), 0o644))

		created, err = fsutil.CreateBackup(context.Background(), path, cfg)
		require.NoError(t, err)
		assert.False(t, created)

		backup, err := os.ReadFile(path + fsutil.BackupSuffix)
		require.NoError(t, err)
		assert.Equal(t, "original", string(backup))
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "a.txt", "x")

		created, err := fsutil.CreateBackup(context.Background(), path, fsutil.DefaultBackupConfig())
		require.NoError(t, err)
		assert.False(t, created)
		assert.NoFileExists(t, path+fsutil.BackupSuffix)
	})

	t.Run("missing original", func(t *testing.T) {
		t.Parallel()

		created, err := fsutil.CreateBackup(context.Background(), filepath.Join(t.TempDir(), "gone"), cfg)
		require.NoError(t, err)
		assert.False(t, created)
	})
}
