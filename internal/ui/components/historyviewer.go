// Copyright (c) 2025 Kay Morrow
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the draftline TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kmorrow/draftline/internal/diff"
	"github.com/kmorrow/draftline/internal/ui/styles"
)

// =============================================================================
// HISTORY VIEWER
// =============================================================================

// HistoryViewer renders an annotated diff between a checkpoint and the
// live scene text.
type HistoryViewer struct {
	lines           []diff.Line
	width           int
	showLineNumbers bool
}

// NewHistoryViewer creates a viewer with line numbers enabled.
func NewHistoryViewer() *HistoryViewer {
	return &HistoryViewer{
		width:           80,
		showLineNumbers: true,
	}
}

// SetLines replaces the diff being displayed.
func (hv *HistoryViewer) SetLines(lines []diff.Line) {
	hv.lines = lines
}

// SetWidth sets the render width.
func (hv *HistoryViewer) SetWidth(width int) {
	hv.width = width
}

// SetShowLineNumbers toggles the line number gutter.
func (hv *HistoryViewer) SetShowLineNumbers(show bool) {
	hv.showLineNumbers = show
}

// Summary returns the additions/removals of the current diff.
func (hv *HistoryViewer) Summary() diff.Summary {
	return diff.Summarize(hv.lines)
}

// =============================================================================
// RENDERING
// =============================================================================

// View renders the diff, one styled line per entry.
func (hv *HistoryViewer) View() string {
	if len(hv.lines) == 0 {
		return styles.Muted.Italic(true).Render("No diff loaded")
	}

	var content strings.Builder
	oldNum, newNum := 0, 0

	for i, line := range hv.lines {
		if i > 0 {
			content.WriteString("\n")
		}

		switch line.Kind {
		case diff.Removed:
			oldNum++
		case diff.Added:
			newNum++
		default:
			oldNum++
			newNum++
		}

		content.WriteString(hv.renderLine(line, oldNum, newNum))
	}

	return content.String()
}

// renderLine renders a single annotated line with optional gutter.
func (hv *HistoryViewer) renderLine(line diff.Line, oldNum, newNum int) string {
	var lineStyle lipgloss.Style
	var gutter string

	switch line.Kind {
	case diff.Added:
		lineStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald).
			Background(styles.AddedBg)
		gutter = fmt.Sprintf("    %4d", newNum)

	case diff.Removed:
		lineStyle = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Background(styles.RemovedBg)
		gutter = fmt.Sprintf("%4d    ", oldNum)

	default:
		if line.Text == diff.FallbackNotice {
			// The coarse fallback notice reads as a warning, not prose.
			lineStyle = lipgloss.NewStyle().
				Foreground(styles.Amber).
				Italic(true)
		} else {
			lineStyle = lipgloss.NewStyle().
				Foreground(styles.TextMuted)
		}
		gutter = fmt.Sprintf("%4d %4d", oldNum, newNum)
	}

	text := lineStyle.Render(line.Kind.Prefix() + line.Text)

	if !hv.showLineNumbers {
		return text
	}

	gutterStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Width(9)
	return gutterStyle.Render(gutter) + " " + text
}

// RenderSummary renders the additions/removals header line.
func (hv *HistoryViewer) RenderSummary() string {
	s := hv.Summary()
	if s.Additions == 0 && s.Removals == 0 {
		return styles.Muted.Italic(true).Render("No differences")
	}

	var parts []string
	if s.Additions > 0 {
		addStyle := lipgloss.NewStyle().Foreground(styles.Emerald).Bold(true)
		parts = append(parts, addStyle.Render(fmt.Sprintf("+%d", s.Additions)))
	}
	if s.Removals > 0 {
		delStyle := lipgloss.NewStyle().Foreground(styles.Rose).Bold(true)
		parts = append(parts, delStyle.Render(fmt.Sprintf("-%d", s.Removals)))
	}

	lineWord := "line"
	if s.Additions+s.Removals != 1 {
		lineWord = "lines"
	}
	parts = append(parts, styles.Muted.Render(lineWord))

	return strings.Join(parts, " ")
}
