// Copyright (c) 2025 Kay Morrow
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for draftline.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/kmorrow/draftline/internal/diff"
	"github.com/kmorrow/draftline/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete draftline configuration.
type Config struct {
	Diff    DiffConfig    `toml:"diff"`
	History HistoryConfig `toml:"history"`
	Watch   WatchConfig   `toml:"watch"`
	UI      UIConfig      `toml:"ui"`
}

// DiffConfig tunes the line diff engine.
type DiffConfig struct {
	// MaxCells caps the LCS table size; oversized diffs degrade to the
	// coarse path. Values below MinMaxCells are clamped.
	MaxCells int `toml:"max_cells"`
}

// HistoryConfig controls checkpoint storage.
type HistoryConfig struct {
	// DataDir is where the checkpoint database lives.
	// Default: ~/.draftline
	DataDir string `toml:"data_dir"`
	// MaxCheckpoints limits stored checkpoints per scene (0 = unlimited).
	MaxCheckpoints int `toml:"max_checkpoints"`
}

// WatchConfig controls the auto-capture watcher.
type WatchConfig struct {
	// DebounceMs is how long a scene file must be quiet after a write
	// before a checkpoint is captured.
	DebounceMs int `toml:"debounce_ms"`
}

// UIConfig controls TUI appearance.
type UIConfig struct {
	// Theme is "dark", "light", or "auto".
	Theme string `toml:"theme"`
	// ShowLineNumbers toggles line numbers in the diff pane.
	ShowLineNumbers bool `toml:"show_line_numbers"`
}

// =============================================================================
// DEFAULTS AND BOUNDS
// =============================================================================

const (
	// MinMaxCells keeps the size guard meaningful; anything lower would
	// push ordinary scenes onto the coarse path.
	MinMaxCells = 10_000

	defaultMaxCheckpoints = 200
	defaultDebounceMs     = 2000
	minDebounceMs         = 100
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Diff: DiffConfig{
			MaxCells: diff.DefaultMaxCells,
		},
		History: HistoryConfig{
			DataDir:        defaultDataDir(),
			MaxCheckpoints: defaultMaxCheckpoints,
		},
		Watch: WatchConfig{
			DebounceMs: defaultDebounceMs,
		},
		UI: UIConfig{
			Theme:           "auto",
			ShowLineNumbers: true,
		},
	}
}

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".draftline"
	}
	return filepath.Join(homeDir, ".draftline")
}

// Path returns the config file location: ~/.draftline/config.toml.
func Path() string {
	return filepath.Join(defaultDataDir(), "config.toml")
}

// DatabasePath returns the checkpoint database location under the
// configured data directory.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.History.DataDir, "checkpoints.db")
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads configuration from the default path, applies DRAFTLINE_*
// environment overrides, and validates the result. A missing file is
// not an error; defaults are used.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom is Load reading from an explicit file path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	applyEnvOverrides(cfg)
	cfg.validate()
	return cfg, nil
}

// applyEnvOverrides layers DRAFTLINE_* environment variables on top of
// the file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DRAFTLINE_DATA_DIR"); v != "" {
		cfg.History.DataDir = v
	}
	if v := os.Getenv("DRAFTLINE_MAX_CELLS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Diff.MaxCells = n
		}
	}
	if v := os.Getenv("DRAFTLINE_MAX_CHECKPOINTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.History.MaxCheckpoints = n
		}
	}
	if v := os.Getenv("DRAFTLINE_DEBOUNCE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Watch.DebounceMs = n
		}
	}
	if v := os.Getenv("DRAFTLINE_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// validate clamps out-of-range values instead of failing.
func (c *Config) validate() {
	if c.Diff.MaxCells < MinMaxCells {
		c.Diff.MaxCells = MinMaxCells
	}
	if c.History.MaxCheckpoints < 0 {
		c.History.MaxCheckpoints = 0
	}
	if c.Watch.DebounceMs < minDebounceMs {
		c.Watch.DebounceMs = minDebounceMs
	}
	switch c.UI.Theme {
	case "dark", "light", "auto":
	default:
		c.UI.Theme = "auto"
	}
	if c.History.DataDir == "" {
		c.History.DataDir = defaultDataDir()
	}
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to the default path atomically.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo writes the configuration to an explicit path atomically.
func (c *Config) SaveTo(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
