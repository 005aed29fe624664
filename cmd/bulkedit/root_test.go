package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/bulkedit/pkg/bulkedit/editor"
	"github.com/jamesainslie/bulkedit/pkg/bulkedit/manifest"
	"github.com/jamesainslie/bulkedit/pkg/bulkedit/reconcile"
	"github.com/jamesainslie/bulkedit/pkg/bulkedit/types"
	"github.com/jamesainslie/bulkedit/pkg/bulkedit/workspace"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{workspace.ErrInvalidTarget, 2},
		{workspace.ErrInvalidApplication, 3},
		{workspace.ErrEmptyTarget, 4},
		{manifest.ErrTempFile, 5},
		{editor.ErrEditor, 6},
		{reconcile.ErrLineMismatch, 7},
		{errPartial, 1},
		{errors.New("anything else"), 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, exitCode(tc.err), "%v", tc.err)
	}

	t.Run("wrapped sentinels still map", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("rename: %w", reconcile.ErrLineMismatch)
		assert.Equal(t, 7, exitCode(err))
	})
}

func TestCleanRenameArgs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plain.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	t.Run("keeps stat-able paths with kinds", func(t *testing.T) {
		args := []string{filepath.Join(dir, "plain.txt"), filepath.Join(dir, "sub")}
		originals, entries := cleanRenameArgs(args)

		require.Equal(t, args, originals)
		require.Len(t, entries, 2)
		assert.Equal(t, types.KindRegular, entries[0].Kind)
		assert.Equal(t, types.KindDir, entries[1].Kind)
	})

	t.Run("skips missing paths without aborting", func(t *testing.T) {
		args := []string{filepath.Join(dir, "gone"), filepath.Join(dir, "plain.txt")}
		originals, entries := cleanRenameArgs(args)

		assert.Equal(t, []string{filepath.Join(dir, "plain.txt")}, originals)
		assert.Len(t, entries, 1)
	})

	t.Run("dot-relative arguments become absolute", func(t *testing.T) {
		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(dir))
		defer os.Chdir(wd)

		originals, _ := cleanRenameArgs([]string{"./plain.txt"})
		require.Len(t, originals, 1)
		assert.True(t, filepath.IsAbs(originals[0]))
		assert.Equal(t, "plain.txt", filepath.Base(originals[0]))
	})

	t.Run("bare names stay relative", func(t *testing.T) {
		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(dir))
		defer os.Chdir(wd)

		originals, _ := cleanRenameArgs([]string{"plain.txt"})
		assert.Equal(t, []string{"plain.txt"}, originals)
	})

	t.Run("nothing valid yields empty slices", func(t *testing.T) {
		originals, entries := cleanRenameArgs([]string{filepath.Join(dir, "nope")})
		assert.Empty(t, originals)
		assert.Empty(t, entries)
	})
}
