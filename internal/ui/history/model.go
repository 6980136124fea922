// Copyright (c) 2025 Kay Morrow
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history implements the checkpoint history browser TUI.
package history

import (
	"os"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kmorrow/draftline/internal/checkpoint"
	"github.com/kmorrow/draftline/internal/config"
	"github.com/kmorrow/draftline/internal/diff"
	"github.com/kmorrow/draftline/internal/ui/components"
)

// =============================================================================
// MESSAGES
// =============================================================================

// checkpointsLoadedMsg carries the refreshed checkpoint list.
type checkpointsLoadedMsg struct {
	metas []checkpoint.Meta
	err   error
}

// diffReadyMsg carries a computed diff. seq identifies the request that
// produced it; stale results are dropped.
type diffReadyMsg struct {
	seq   int
	lines []diff.Line
	err   error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the bubbletea model for the history browser: a checkpoint
// list on the left, the diff against the live scene text on the right.
type Model struct {
	store *checkpoint.Store
	cfg   *config.Config
	scene string

	metas  []checkpoint.Meta
	cursor int

	viewer   *components.HistoryViewer
	viewport viewport.Model
	ready    bool

	// seq tags the newest diff request. Checkpoint navigation can outrun
	// diff computation on large scenes, so each keypress bumps seq and
	// results carrying an older seq are discarded (last-request-wins).
	seq       int
	computing bool

	width  int
	height int
	err    error
}

// New creates a history browser for scene.
func New(store *checkpoint.Store, cfg *config.Config, scene string) *Model {
	viewer := components.NewHistoryViewer()
	viewer.SetShowLineNumbers(cfg.UI.ShowLineNumbers)

	return &Model{
		store:  store,
		cfg:    cfg,
		scene:  scene,
		viewer: viewer,
	}
}

// Init loads the checkpoint list.
func (m *Model) Init() tea.Cmd {
	return m.loadCheckpoints()
}

// =============================================================================
// COMMANDS
// =============================================================================

func (m *Model) loadCheckpoints() tea.Cmd {
	return func() tea.Msg {
		metas, err := m.store.List(m.scene)
		return checkpointsLoadedMsg{metas: metas, err: err}
	}
}

// computeDiff diffs the selected checkpoint against the scene file as it
// reads right now. Runs off the update loop; the result is tagged with
// seq.
func (m *Model) computeDiff(seq int, checkpointID string) tea.Cmd {
	scene := m.scene
	store := m.store
	maxCells := m.cfg.Diff.MaxCells

	return func() tea.Msg {
		cp, err := store.Load(checkpointID)
		if err != nil {
			return diffReadyMsg{seq: seq, err: err}
		}

		data, err := os.ReadFile(scene)
		if err != nil && !os.IsNotExist(err) {
			return diffReadyMsg{seq: seq, err: err}
		}

		lines := diff.ComputeWithCellLimit(cp.Content, string(data), maxCells)
		return diffReadyMsg{seq: seq, lines: lines}
	}
}

// selectCheckpoint dispatches a diff for the checkpoint under the cursor.
func (m *Model) selectCheckpoint() tea.Cmd {
	if len(m.metas) == 0 {
		return nil
	}
	m.seq++
	m.computing = true
	return m.computeDiff(m.seq, m.metas[m.cursor].ID)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles bubbletea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case checkpointsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.metas = msg.metas
		if m.cursor >= len(m.metas) {
			m.cursor = 0
		}
		return m, m.selectCheckpoint()

	case diffReadyMsg:
		if msg.seq != m.seq {
			// A newer request is in flight; this result is stale.
			return m, nil
		}
		m.computing = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.viewer.SetLines(msg.lines)
		if m.ready {
			m.viewport.SetContent(m.viewer.View())
			m.viewport.GotoTop()
		}
		return m, nil
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			return m, m.selectCheckpoint()
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.metas)-1 {
			m.cursor++
			return m, m.selectCheckpoint()
		}
		return m, nil

	case "r":
		return m, m.loadCheckpoints()

	case "pgup", "b":
		if m.ready {
			m.viewport.HalfViewUp()
		}
		return m, nil

	case "pgdown", "f", " ":
		if m.ready {
			m.viewport.HalfViewDown()
		}
		return m, nil
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// layoutViewport sizes the diff pane against the current window.
func (m *Model) layoutViewport() {
	diffWidth := m.width - listPaneWidth - 3
	if diffWidth < 20 {
		diffWidth = 20
	}
	diffHeight := m.height - headerHeight - footerHeight
	if diffHeight < 3 {
		diffHeight = 3
	}

	m.viewer.SetWidth(diffWidth)

	if !m.ready {
		m.viewport = viewport.New(diffWidth, diffHeight)
		m.ready = true
	} else {
		m.viewport.Width = diffWidth
		m.viewport.Height = diffHeight
	}
	m.viewport.SetContent(m.viewer.View())
}
