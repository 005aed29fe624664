package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/bulkedit/pkg/bulkedit/types"
)

func sampleEntries() []types.Entry {
	return []types.Entry{
		{Name: "alpha.txt", Kind: types.KindRegular},
		{Name: "mydir", Kind: types.KindDir},
		{Name: "link", Kind: types.KindSymlink},
	}
}

func TestCreate(t *testing.T) {
	t.Parallel()

	t.Run("writes header and marked entries", func(t *testing.T) {
		t.Parallel()
		man, err := Create(t.TempDir(), ModeRemove, sampleEntries())
		require.NoError(t, err)
		defer man.Remove()

		data, err := os.ReadFile(man.Path())
		require.NoError(t, err)
		text := string(data)

		assert.True(t, strings.HasPrefix(text, "# bulkedit - Remove files in bulk\n"))
		assert.Contains(t, text, "\nalpha.txt\n")
		assert.Contains(t, text, "\nmydir/\n")
		assert.Contains(t, text, "\nlink@\n")
		assert.Equal(t, 3, man.Count())
	})

	t.Run("unique names never collide", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		a, err := Create(dir, ModeRename, sampleEntries())
		require.NoError(t, err)
		defer a.Remove()
		b, err := Create(dir, ModeRename, sampleEntries())
		require.NoError(t, err)
		defer b.Remove()

		assert.NotEqual(t, a.Path(), b.Path())
	})

	t.Run("creates scratch directory", func(t *testing.T) {
		t.Parallel()
		scratch := filepath.Join(t.TempDir(), "deep", "scratch")
		man, err := Create(scratch, ModeRename, sampleEntries())
		require.NoError(t, err)
		defer man.Remove()
	})

	t.Run("unusable scratch dir fails with ErrTempFile", func(t *testing.T) {
		t.Parallel()
		// A regular file where the scratch dir should be.
		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

		_, err := Create(blocker, ModeRename, sampleEntries())
		assert.ErrorIs(t, err, ErrTempFile)
	})
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("skips comments and blanks, strips markers", func(t *testing.T) {
		t.Parallel()
		man, err := Create(t.TempDir(), ModeRemove, sampleEntries())
		require.NoError(t, err)
		defer man.Remove()

		lines, err := man.Parse()
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha.txt", "mydir", "link"}, lines)
	})

	t.Run("user edits survive parsing", func(t *testing.T) {
		t.Parallel()
		man, err := Create(t.TempDir(), ModeRename, sampleEntries())
		require.NoError(t, err)
		defer man.Remove()

		edited := "# comment\n\nrenamed.txt\nmydir/\n\nlink@\n"
		require.NoError(t, os.WriteFile(man.Path(), []byte(edited), 0o600))

		lines, err := man.Parse()
		require.NoError(t, err)
		assert.Equal(t, []string{"renamed.txt", "mydir", "link"}, lines)
	})
}

func TestChanged(t *testing.T) {
	t.Parallel()

	man, err := Create(t.TempDir(), ModeRename, sampleEntries())
	require.NoError(t, err)
	defer man.Remove()

	changed, err := man.Changed()
	require.NoError(t, err)
	assert.False(t, changed, "fresh manifest must read as unchanged")

	// Simulate an editor save by bumping the mtime.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(man.Path(), future, future))

	changed, err = man.Changed()
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestLineCount(t *testing.T) {
	t.Parallel()

	man, err := Create(t.TempDir(), ModeRemove, sampleEntries())
	require.NoError(t, err)
	defer man.Remove()

	n, err := man.LineCount()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// Drop one line, keep comments.
	edited := "# kept comment\nalpha.txt\nlink@\n"
	require.NoError(t, os.WriteFile(man.Path(), []byte(edited), 0o600))

	n, err = man.LineCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	man, err := Create(t.TempDir(), ModeRename, sampleEntries())
	require.NoError(t, err)

	require.NoError(t, man.Remove())
	_, statErr := os.Stat(man.Path())
	assert.True(t, os.IsNotExist(statErr))

	// Removing twice is fine.
	assert.NoError(t, man.Remove())
}
