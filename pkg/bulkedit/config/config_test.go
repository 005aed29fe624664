package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults apply without a config file", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		cfg, err := Load("")
		require.NoError(t, err)

		assert.True(t, cfg.Confirm)
		assert.True(t, cfg.Trash.Enabled)
		assert.True(t, cfg.History.Enabled)
		assert.False(t, cfg.Stealth)
		assert.Equal(t, DefaultOutput, cfg.Output)
		assert.Equal(t, DefaultRetentionDays, cfg.History.RetentionDays)
		assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
		assert.NotEmpty(t, cfg.ScratchDir)
	})

	t.Run("config file overrides defaults", func(t *testing.T) {
		configHome := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", configHome)

		dir := filepath.Join(configHome, "bulkedit")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		content := "output: json\nconfirm: false\ntrash:\n  enabled: false\nhistory:\n  retention_days: 7\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, "json", cfg.Output)
		assert.False(t, cfg.Confirm)
		assert.False(t, cfg.Trash.Enabled)
		assert.Equal(t, 7, cfg.History.RetentionDays)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Setenv("BULKEDIT_EDITOR", "micro")
		t.Setenv("BULKEDIT_OUTPUT", "yaml")

		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, "micro", cfg.Editor)
		assert.Equal(t, "yaml", cfg.Output)
	})

	t.Run("explicit path wins over search directories", func(t *testing.T) {
		configHome := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", configHome)

		dir := filepath.Join(configHome, "bulkedit")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("output: json\n"), 0o644))

		explicit := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(explicit, []byte("output: plain\n"), 0o644))

		cfg, err := Load(explicit)
		require.NoError(t, err)
		assert.Equal(t, "plain", cfg.Output)
	})

	t.Run("missing explicit path fails", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed config file fails", func(t *testing.T) {
		configHome := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", configHome)

		dir := filepath.Join(configHome, "bulkedit")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{{nope"), 0o644))

		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("tilde in scratch_dir is expanded", func(t *testing.T) {
		configHome := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", configHome)

		dir := filepath.Join(configHome, "bulkedit")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("scratch_dir: ~/scratch\n"), 0o644))

		cfg, err := Load("")
		require.NoError(t, err)

		home, err := os.UserHomeDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "scratch"), cfg.ScratchDir)
	})
}

func TestEffectiveScratchDir(t *testing.T) {
	t.Parallel()

	cfg := &Config{ScratchDir: "/custom/scratch"}
	assert.Equal(t, "/custom/scratch", cfg.EffectiveScratchDir())

	cfg.Stealth = true
	assert.Equal(t, os.TempDir(), cfg.EffectiveScratchDir())
}

func TestJournalEnabled(t *testing.T) {
	t.Parallel()

	cfg := &Config{History: HistoryConfig{Enabled: true}}
	assert.True(t, cfg.JournalEnabled())

	cfg.Stealth = true
	assert.False(t, cfg.JournalEnabled(), "stealth must disable the journal")

	cfg.Stealth = false
	cfg.History.Enabled = false
	assert.False(t, cfg.JournalEnabled())
}

func TestExpandPath(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/x/y")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x", "y"), got)

	got, err = ExpandPath("/abs/path")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", got)

	got, err = ExpandPath("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWriteDefault(t *testing.T) {
	t.Run("creates a loadable config", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		require.NoError(t, WriteDefault())

		dir, err := ConfigDir()
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "config.yaml"))

		_, err = Load("")
		assert.NoError(t, err)
	})

	t.Run("never clobbers an existing file", func(t *testing.T) {
		configHome := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", configHome)

		dir := filepath.Join(configHome, "bulkedit")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("output: plain\n"), 0o644))

		require.NoError(t, WriteDefault())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "output: plain\n", string(data))
	})
}
