// Copyright (c) 2025 Kay Morrow
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history implements the checkpoint history browser TUI.
package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kmorrow/draftline/internal/checkpoint"
	"github.com/kmorrow/draftline/internal/config"
	"github.com/kmorrow/draftline/internal/diff"
)

func newTestModel(t *testing.T) (*Model, *checkpoint.Store, string) {
	t.Helper()

	store, err := checkpoint.Open(filepath.Join(t.TempDir(), "checkpoints.db"))
	if err != nil {
		t.Fatalf("Open store failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	scene := filepath.Join(t.TempDir(), "chapter1.txt")
	if err := os.WriteFile(scene, []byte("one\ntwo-edited\nthree\nfour"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	m := New(store, cfg, scene)
	return m, store, scene
}

func TestModel_InitLoadsCheckpoints(t *testing.T) {
	m, store, scene := newTestModel(t)

	if _, err := store.Save(scene, "one\ntwo\nthree", "v1"); err != nil {
		t.Fatal(err)
	}

	msg := m.Init()()
	loaded, ok := msg.(checkpointsLoadedMsg)
	if !ok {
		t.Fatalf("Expected checkpointsLoadedMsg, got %T", msg)
	}
	if loaded.err != nil {
		t.Fatalf("Unexpected error: %v", loaded.err)
	}
	if len(loaded.metas) != 1 {
		t.Fatalf("Expected 1 meta, got %d", len(loaded.metas))
	}
}

func TestModel_SelectDispatchesDiff(t *testing.T) {
	m, store, scene := newTestModel(t)

	if _, err := store.Save(scene, "one\ntwo\nthree", "v1"); err != nil {
		t.Fatal(err)
	}

	metas, err := store.List(scene)
	if err != nil {
		t.Fatal(err)
	}

	_, cmd := m.Update(checkpointsLoadedMsg{metas: metas})
	if cmd == nil {
		t.Fatal("Expected a diff command after checkpoints load")
	}

	msg := cmd()
	ready, ok := msg.(diffReadyMsg)
	if !ok {
		t.Fatalf("Expected diffReadyMsg, got %T", msg)
	}
	if ready.err != nil {
		t.Fatalf("Unexpected diff error: %v", ready.err)
	}
	if ready.seq != 1 {
		t.Errorf("Expected seq 1, got %d", ready.seq)
	}

	s := diff.Summarize(ready.lines)
	if s.Additions != 2 || s.Removals != 1 {
		t.Errorf("Expected +2 -1, got %+v", s)
	}
}

func TestModel_StaleDiffDiscarded(t *testing.T) {
	m, store, scene := newTestModel(t)

	if _, err := store.Save(scene, "old", "v1"); err != nil {
		t.Fatal(err)
	}
	metas, _ := store.List(scene)

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.Update(checkpointsLoadedMsg{metas: metas})

	// Simulate two in-flight requests; the older one must be ignored.
	m.seq = 2
	m.Update(diffReadyMsg{seq: 1, lines: []diff.Line{{Kind: diff.Added, Text: "stale"}}})
	if strings.Contains(m.viewer.View(), "stale") {
		t.Error("Stale diff result should have been discarded")
	}

	m.Update(diffReadyMsg{seq: 2, lines: []diff.Line{{Kind: diff.Added, Text: "fresh"}}})
	if !strings.Contains(m.viewer.View(), "fresh") {
		t.Error("Current diff result should have been applied")
	}
}

func TestModel_Navigation(t *testing.T) {
	m, store, scene := newTestModel(t)

	for _, note := range []string{"v1", "v2", "v3"} {
		if _, err := store.Save(scene, "content "+note, note); err != nil {
			t.Fatal(err)
		}
		time.Sleep(2 * time.Millisecond)
	}
	metas, _ := store.List(scene)
	m.Update(checkpointsLoadedMsg{metas: metas})

	if m.cursor != 0 {
		t.Fatalf("Expected cursor 0, got %d", m.cursor)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if m.cursor != 1 {
		t.Errorf("Expected cursor 1 after j, got %d", m.cursor)
	}
	if cmd == nil {
		t.Error("Expected diff dispatch on navigation")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	if m.cursor != 0 {
		t.Errorf("Expected cursor 0 after k, got %d", m.cursor)
	}

	// Cursor clamps at the edges
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	if m.cursor != 0 {
		t.Errorf("Expected cursor clamped at 0, got %d", m.cursor)
	}
}

func TestModel_QuitKeys(t *testing.T) {
	m, _, _ := newTestModel(t)

	for _, key := range []string{"q", "ctrl+c", "esc"} {
		var msg tea.KeyMsg
		switch key {
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}

		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Errorf("Expected quit command for %q", key)
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("Expected tea.QuitMsg for %q", key)
		}
	}
}

func TestModel_ViewAfterResize(t *testing.T) {
	m, store, scene := newTestModel(t)

	if _, err := store.Save(scene, "one\ntwo\nthree", "v1"); err != nil {
		t.Fatal(err)
	}
	metas, _ := store.List(scene)

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.Update(checkpointsLoadedMsg{metas: metas})

	view := m.View()
	if !strings.Contains(view, "Scene History") {
		t.Error("Expected header in view")
	}
	if !strings.Contains(view, "v1") {
		t.Error("Expected checkpoint note in list pane")
	}
	if !strings.Contains(view, "chapter1.txt") {
		t.Error("Expected scene name in header")
	}
}
