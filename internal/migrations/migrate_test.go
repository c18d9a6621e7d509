package migrations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestVersion(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"000001_shots.up.sql",
		"000001_shots.down.sql",
		"000003_hole_results_index.up.sql",
		"000007_pending.down.sql",
		"README.md",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "000009_dir.up.sql"), 0o755))

	assert.Equal(t, int64(3), latestVersion(dir))
}

func TestLatestVersionMissingDir(t *testing.T) {
	assert.Zero(t, latestVersion(filepath.Join(t.TempDir(), "nope")))
}

func TestShippedMigrations(t *testing.T) {
	assert.Equal(t, int64(1), latestVersion("../../migrations"))
}

func TestRunRejectsEmptyURL(t *testing.T) {
	assert.Error(t, Run("", "migrations", nil))
}
