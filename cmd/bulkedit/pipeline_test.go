package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/bulkedit/pkg/bulkedit/editor"
	"github.com/jamesainslie/bulkedit/pkg/bulkedit/reconcile"
)

// pipelineEnv points every configurable path at test-local directories so
// a run leaves nothing behind in the real XDG tree. It returns the
// scratch directory where manifests are created.
func pipelineEnv(t *testing.T) string {
	t.Helper()
	scratch := t.TempDir()
	t.Setenv("BULKEDIT_SCRATCH_DIR", scratch)
	t.Setenv("BULKEDIT_LOGGING_PATH", filepath.Join(t.TempDir(), "test.log"))
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return scratch
}

func scratchEntries(t *testing.T, scratch string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(scratch)
	require.NoError(t, err)
	return entries
}

func pipelineEditor(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "editor.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestRenamePipelineCleanup(t *testing.T) {
	t.Run("editor failure removes the manifest", func(t *testing.T) {
		scratch := pipelineEnv(t)
		t.Setenv("BULKEDIT_EDITOR", "false")

		dir := t.TempDir()
		file := filepath.Join(dir, "a.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

		renameCmd.SetContext(context.Background())
		err := runRename(renameCmd, []string{file})

		assert.ErrorIs(t, err, editor.ErrEditor)
		assert.Empty(t, scratchEntries(t, scratch))
		assert.FileExists(t, file)
	})

	t.Run("line mismatch removes the manifest and touches nothing", func(t *testing.T) {
		scratch := pipelineEnv(t)
		t.Setenv("BULKEDIT_EDITOR", pipelineEditor(t, `printf 'x\ny\n' >> "$1"`))

		dir := t.TempDir()
		file := filepath.Join(dir, "a.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

		renameCmd.SetContext(context.Background())
		err := runRename(renameCmd, []string{file})

		assert.ErrorIs(t, err, reconcile.ErrLineMismatch)
		assert.Empty(t, scratchEntries(t, scratch))
		assert.FileExists(t, file)
	})

	t.Run("untouched manifest is a clean no-op", func(t *testing.T) {
		scratch := pipelineEnv(t)
		t.Setenv("BULKEDIT_EDITOR", "true")

		dir := t.TempDir()
		file := filepath.Join(dir, "a.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

		renameCmd.SetContext(context.Background())
		err := runRename(renameCmd, []string{file})

		assert.NoError(t, err)
		assert.Empty(t, scratchEntries(t, scratch))
		assert.FileExists(t, file)
	})
}

func TestRemovePipelineCleanup(t *testing.T) {
	t.Run("editor failure removes the manifest", func(t *testing.T) {
		scratch := pipelineEnv(t)
		t.Setenv("BULKEDIT_EDITOR", "false")

		dir := t.TempDir()
		victim := filepath.Join(dir, "victim")
		require.NoError(t, os.WriteFile(victim, []byte("x"), 0o644))

		removeCmd.SetContext(context.Background())
		err := runRemove(removeCmd, []string{dir})

		assert.ErrorIs(t, err, editor.ErrEditor)
		assert.Empty(t, scratchEntries(t, scratch))
		assert.FileExists(t, victim)
	})

	t.Run("empty target fails before any manifest exists", func(t *testing.T) {
		scratch := pipelineEnv(t)

		removeCmd.SetContext(context.Background())
		err := runRemove(removeCmd, []string{t.TempDir()})

		assert.Equal(t, 4, exitCode(err))
		assert.Empty(t, scratchEntries(t, scratch))
	})
}
