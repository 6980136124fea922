// Copyright (c) 2025 Kay Morrow
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the draftline TUI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// =============================================================================
// PALETTE
// =============================================================================

// Purple - Primary accent, titles, selections
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Cyan - Scene names, informational highlights
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Emerald - Added lines, success states
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Rose - Removed lines, errors
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Warnings, the coarse fallback notice
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextMuted - Hints, timestamps, line numbers
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// AddedBg / RemovedBg - subtle backgrounds behind changed lines
var AddedBg = lipgloss.AdaptiveColor{Light: "#D1FAE5", Dark: "#0A2E1F"}
var RemovedBg = lipgloss.AdaptiveColor{Light: "#FEE2E2", Dark: "#2E0A14"}

// =============================================================================
// SHARED STYLES
// =============================================================================

var (
	Title = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	SceneName = lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Selected = lipgloss.NewStyle().
			Foreground(Purple).
			Bold(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Rose).
			Bold(true)

	Border = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Overlay)
)

// =============================================================================
// THEME SELECTION
// =============================================================================

// Apply forces the light or dark variants of the adaptive palette, or
// leaves terminal detection in place for "auto".
func Apply(theme string) {
	switch theme {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	default:
		lipgloss.SetHasDarkBackground(termenv.HasDarkBackground())
	}
}
