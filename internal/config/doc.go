// Copyright (c) 2025 Kay Morrow
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for draftline.
//
// Configuration is TOML with sensible defaults and environment variable
// overrides. Out-of-range values are clamped rather than rejected.
//
// # Key Types
//
//   - Config: the complete configuration
//   - DiffConfig: diff engine tuning (cell ceiling)
//   - HistoryConfig: checkpoint storage (data dir, retention)
//   - WatchConfig: auto-capture debounce
//   - UIConfig: theme and diff pane display
//
// # Configuration Precedence
//
// Loaded from (in order of precedence):
//   - Environment variables (DRAFTLINE_*)
//   - ~/.draftline/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	maxCells := cfg.Diff.MaxCells
//	dbPath := cfg.DatabasePath()
package config
