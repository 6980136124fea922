// Copyright (c) 2025 Kay Morrow
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history implements the checkpoint history browser TUI.
package history

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kmorrow/draftline/internal/ui/styles"
	"github.com/kmorrow/draftline/internal/util"
)

const (
	listPaneWidth = 34
	headerHeight  = 2
	footerHeight  = 2
)

// View renders the history browser.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.renderHeader()
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderList(), " ", m.viewport.View())
	footer := m.renderFooter()

	return header + "\n" + body + "\n" + footer
}

func (m *Model) renderHeader() string {
	title := styles.Title.Render("Scene History")
	scene := styles.SceneName.Render(filepath.Base(m.scene))
	count := styles.Muted.Render(fmt.Sprintf("%d checkpoints", len(m.metas)))
	return title + "  " + scene + "  " + count + "\n"
}

// renderList renders the checkpoint pane, newest first.
func (m *Model) renderList() string {
	height := m.height - headerHeight - footerHeight
	if height < 3 {
		height = 3
	}

	if len(m.metas) == 0 {
		empty := styles.Muted.Italic(true).Render("No checkpoints yet")
		return lipgloss.NewStyle().Width(listPaneWidth).Height(height).Render(empty)
	}

	// Keep the cursor visible in a window of the list.
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := start + height
	if end > len(m.metas) {
		end = len(m.metas)
	}

	var sb strings.Builder
	for i := start; i < end; i++ {
		meta := m.metas[i]

		ts := meta.CreatedAt.Format("Jan 02 15:04")
		note := util.TruncateWidth(meta.Note, listPaneWidth-len(ts)-4)
		row := fmt.Sprintf("%s  %s", ts, note)

		if i == m.cursor {
			sb.WriteString(styles.Selected.Render("> " + row))
		} else {
			sb.WriteString(styles.Muted.Render("  " + row))
		}
		if i < end-1 {
			sb.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().Width(listPaneWidth).Height(height).Render(sb.String())
}

func (m *Model) renderFooter() string {
	if m.err != nil {
		return styles.ErrorText.Render("Error: " + m.err.Error())
	}

	var status string
	switch {
	case m.computing:
		status = styles.Muted.Italic(true).Render("Computing diff...")
	case len(m.metas) > 0:
		status = m.viewer.RenderSummary()
	default:
		status = styles.Muted.Render("Capture a checkpoint to get started")
	}

	help := styles.Muted.Render("j/k: navigate  r: refresh  q: quit")
	gap := m.width - lipgloss.Width(status) - lipgloss.Width(help)
	if gap < 1 {
		gap = 1
	}
	return "\n" + status + strings.Repeat(" ", gap) + help
}
