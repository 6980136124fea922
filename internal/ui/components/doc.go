// Copyright (c) 2025 Kay Morrow
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the draftline TUI.
//
// # Key Types
//
//   - HistoryViewer: styled rendering of an annotated line diff
package components
