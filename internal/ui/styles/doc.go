// Copyright (c) 2025 Kay Morrow
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the draftline TUI.
//
// Colors are lipgloss AdaptiveColor values so the palette tracks the
// terminal's light/dark background automatically; Apply can pin one
// variant when the user configures an explicit theme.
package styles
