// Copyright (c) 2025 Kay Morrow
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides argument parsing and non-TUI command handlers
// for draftline.
//
// # Commands
//
//   - capture: snapshot a scene file now
//   - list: show a scene's checkpoints
//   - diff: print a checkpoint/live-text diff to stdout
//   - export: write an annotated diff to a file
//   - watch: auto-capture checkpoints on save
//   - prune: enforce a retention limit
//
// The default command (a bare scene path) opens the history browser
// TUI, which lives in internal/ui/history.
package cli
