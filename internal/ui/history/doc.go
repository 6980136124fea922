// Copyright (c) 2025 Kay Morrow
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history implements the checkpoint history browser TUI.
//
// The browser shows a scene's checkpoints on the left and, for the
// selected checkpoint, the line diff against the live scene text on the
// right. Diffs are computed asynchronously as bubbletea commands;
// results are tagged with a request sequence and stale ones are
// discarded, so rapid navigation never paints an outdated diff.
//
// # Key Types
//
//   - Model: the bubbletea model
//
// # Usage
//
//	m := history.New(store, cfg, scenePath)
//	p := tea.NewProgram(m, tea.WithAltScreen())
//	_, err := p.Run()
package history
