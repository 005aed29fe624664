// Package config provides configuration management for bulkedit.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// Default configuration values.
const (
	// DefaultOutput is the report format used when none is configured.
	DefaultOutput = "pretty"

	// DefaultLogLevel is the default logging level.
	DefaultLogLevel = "info"

	// DefaultRetentionDays is how long journal records are kept.
	DefaultRetentionDays = 90
)

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

// TrashConfig configures the removal primitive.
type TrashConfig struct {
	// Enabled selects the system trash; false deletes permanently.
	Enabled bool `mapstructure:"enabled"`
}

// HistoryConfig configures the batch journal.
type HistoryConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Path          string `mapstructure:"path"`
	RetentionDays int    `mapstructure:"retention_days"`
}

// Config represents the application configuration.
type Config struct {
	// ScratchDir is where manifest temp files are created.
	ScratchDir string `mapstructure:"scratch_dir"`

	// Stealth redirects the scratch dir to the private OS temp dir and
	// disables the journal, leaving no trace under the user's XDG dirs.
	Stealth bool `mapstructure:"stealth"`

	// Editor overrides the associated handler for manifest editing.
	Editor string `mapstructure:"editor"`

	// Confirm gates rename application behind a yes/no prompt.
	Confirm bool `mapstructure:"confirm"`

	// Output selects the report format (pretty, plain, json, yaml).
	Output string `mapstructure:"output"`

	Trash   TrashConfig   `mapstructure:"trash"`
	History HistoryConfig `mapstructure:"history"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Load loads configuration from file and environment variables. An
// explicit path (the --config flag) wins; otherwise the file is searched
// in order of precedence:
//   - $XDG_CONFIG_HOME/bulkedit/config.yaml
//   - $HOME/.config/bulkedit/config.yaml
//
// Environment variables are prefixed with BULKEDIT_ (e.g. BULKEDIT_EDITOR).
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			v.AddConfigPath(filepath.Join(xdgConfigHome, "bulkedit"))
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		v.AddConfigPath(filepath.Join(homeDir, ".config", "bulkedit"))
	}

	v.SetEnvPrefix("BULKEDIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine when searching; an explicit path that
		// cannot be read is not.
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var err error
	if cfg.ScratchDir, err = ExpandPath(cfg.ScratchDir); err != nil {
		return nil, err
	}
	if cfg.History.Path, err = ExpandPath(cfg.History.Path); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults registers the default values on a viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("scratch_dir", DefaultScratchDir())
	v.SetDefault("stealth", false)
	v.SetDefault("editor", "")
	v.SetDefault("confirm", true)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("trash.enabled", true)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", DefaultHistoryPath())
	v.SetDefault("history.retention_days", DefaultRetentionDays)
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.path", "")
}

// EffectiveScratchDir returns the scratch directory honoring stealth
// mode, which forces the private OS temp dir.
func (c *Config) EffectiveScratchDir() string {
	if c.Stealth {
		return os.TempDir()
	}
	return c.ScratchDir
}

// JournalEnabled reports whether batches should be journaled. Stealth
// mode always disables the journal.
func (c *Config) JournalEnabled() bool {
	return c.History.Enabled && !c.Stealth
}

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "bulkedit"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "bulkedit"), nil
}

// DefaultScratchDir returns $XDG_CACHE_HOME/bulkedit.
func DefaultScratchDir() string {
	return filepath.Join(xdg.CacheHome, "bulkedit")
}

// DefaultHistoryPath returns $XDG_DATA_HOME/bulkedit/history.db.
func DefaultHistoryPath() string {
	return filepath.Join(xdg.DataHome, "bulkedit", "history.db")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, path[1:]), nil
}

// WriteDefault writes a commented default config file if none exists.
// Returns nil if a config file already exists.
func WriteDefault() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	defaultConfig := fmt.Sprintf(`# bulkedit configuration

# Directory for manifest temp files
scratch_dir: %s

# Use the private OS temp dir and disable the journal
stealth: false

# Editor for manifest files (empty: $VISUAL, $EDITOR, then the system opener)
editor: ""

# Ask for confirmation before applying renames
confirm: true

# Report format: pretty, plain, json, yaml
output: %s

trash:
  # Move removed files to the system trash instead of deleting them
  enabled: true

history:
  # Journal applied batches for later inspection
  enabled: true
  path: %s
  retention_days: %d

logging:
  # Log level: debug, info, warn, error
  level: %s
  # Log file path (empty means $XDG_STATE_HOME/bulkedit/bulkedit.log)
  path: ""
`, DefaultScratchDir(), DefaultOutput, DefaultHistoryPath(), DefaultRetentionDays, DefaultLogLevel)

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}
	return nil
}
