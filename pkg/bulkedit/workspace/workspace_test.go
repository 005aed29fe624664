package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/bulkedit/pkg/bulkedit/types"
)

func TestList(t *testing.T) {
	t.Parallel()

	t.Run("sorts entries lexicographically", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		for _, name := range []string{"zebra", "alpha", "mango"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
		}

		snap, err := List(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "mango", "zebra"}, snap.Names())
		assert.Equal(t, dir, snap.Dir)
	})

	t.Run("records entry kinds", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "file"), []byte("x"), 0o644))
		require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

		snap, err := List(dir)
		require.NoError(t, err)
		require.Len(t, snap.Entries, 2)
		assert.Equal(t, types.KindRegular, snap.Entries[0].Kind)
		assert.Equal(t, types.KindDir, snap.Entries[1].Kind)
	})

	t.Run("empty directory fails with ErrEmptyTarget", func(t *testing.T) {
		t.Parallel()
		_, err := List(t.TempDir())
		assert.ErrorIs(t, err, ErrEmptyTarget)
	})

	t.Run("missing directory fails", func(t *testing.T) {
		t.Parallel()
		_, err := List(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})
}

func TestResolveTarget(t *testing.T) {
	t.Parallel()

	t.Run("empty argument is ambient", func(t *testing.T) {
		t.Parallel()
		target, err := ResolveTarget("")
		require.NoError(t, err)
		assert.Equal(t, TargetAmbient, target.Kind)
	})

	t.Run("directory argument", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		target, err := ResolveTarget(dir)
		require.NoError(t, err)
		assert.Equal(t, TargetDirectory, target.Kind)
		assert.Equal(t, dir, target.Path)
	})

	t.Run("trailing separator is stripped", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		target, err := ResolveTarget(dir + "/")
		require.NoError(t, err)
		assert.Equal(t, dir, target.Path)
	})

	t.Run("executable name becomes application", func(t *testing.T) {
		t.Parallel()
		target, err := ResolveTarget("sh")
		require.NoError(t, err)
		assert.Equal(t, TargetApplication, target.Kind)
		assert.Equal(t, "sh", target.Path)
	})

	t.Run("nonexistent argument fails", func(t *testing.T) {
		t.Parallel()
		_, err := ResolveTarget(filepath.Join(t.TempDir(), "nope"))
		assert.ErrorIs(t, err, ErrInvalidTarget)
		assert.Contains(t, err.Error(), "no such file or directory")
	})

	t.Run("plain file distinguishes not-a-directory", func(t *testing.T) {
		t.Parallel()
		file := filepath.Join(t.TempDir(), "data.bin")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

		_, err := ResolveTarget(file)
		assert.ErrorIs(t, err, ErrInvalidTarget)
		assert.Contains(t, err.Error(), "not a directory")
	})
}

func TestResolveApplication(t *testing.T) {
	t.Parallel()

	t.Run("valid executable", func(t *testing.T) {
		t.Parallel()
		app, err := ResolveApplication("sh")
		require.NoError(t, err)
		assert.Equal(t, "sh", app)
	})

	t.Run("empty is allowed", func(t *testing.T) {
		t.Parallel()
		app, err := ResolveApplication("")
		require.NoError(t, err)
		assert.Empty(t, app)
	})

	t.Run("unknown name fails", func(t *testing.T) {
		t.Parallel()
		_, err := ResolveApplication("definitely-not-an-editor-xyz")
		assert.ErrorIs(t, err, ErrInvalidApplication)
	})
}

func TestEntryPath(t *testing.T) {
	t.Parallel()

	ws := "/home/user"

	assert.Equal(t, "/home/user/f", EntryPath(ws, "", "f"))
	assert.Equal(t, "/home/user/f", EntryPath(ws, ws, "f"))
	assert.Equal(t, "/data/f", EntryPath(ws, "/data", "f"))
	assert.Equal(t, "/home/user/sub/f", EntryPath(ws, "sub", "f"))
}

func TestContains(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	assert.True(t, Contains(dir, filepath.Join(dir, "f")))
	assert.True(t, Contains(dir, filepath.Join(dir, "sub", "f")))
	assert.True(t, Contains(dir, dir))
	assert.False(t, Contains(dir, filepath.Join(dir, "..", "other")))
	assert.False(t, Contains(dir, "/somewhere/else"))
}
