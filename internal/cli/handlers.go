// Copyright (c) 2025 Kay Morrow
// SPDX-License-Identifier: AGPL-3.0-or-later

// handlers.go - Non-TUI command handlers for draftline.
package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/kmorrow/draftline/internal/checkpoint"
	"github.com/kmorrow/draftline/internal/config"
	"github.com/kmorrow/draftline/internal/diff"
	"github.com/kmorrow/draftline/internal/util"
	"github.com/kmorrow/draftline/internal/watch"
)

var errSceneRequired = errors.New("scene file is required")

// openStore loads config and opens the checkpoint store it points at.
func openStore() (*config.Config, *checkpoint.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	store, err := checkpoint.Open(cfg.DatabasePath())
	if err != nil {
		return nil, nil, err
	}
	store.MaxPerScene = cfg.History.MaxCheckpoints
	return cfg, store, nil
}

// =============================================================================
// CAPTURE
// =============================================================================

// HandleCapture snapshots a scene file immediately.
func HandleCapture(args Args) error {
	if args.Scene == "" {
		return errSceneRequired
	}

	data, err := os.ReadFile(args.Scene)
	if err != nil {
		return fmt.Errorf("failed to read scene: %w", err)
	}

	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.Save(args.Scene, string(data), args.Note)
	if err != nil {
		return err
	}

	fmt.Printf("Captured checkpoint %s (%d words)\n", shortID(id), util.CountWords(string(data)))
	return nil
}

// =============================================================================
// LIST
// =============================================================================

// HandleList prints a scene's checkpoints, newest first.
func HandleList(args Args) error {
	if args.Scene == "" {
		return errSceneRequired
	}

	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	metas, err := store.List(args.Scene)
	if err != nil {
		return err
	}
	if len(metas) == 0 {
		fmt.Println("No checkpoints yet. Run 'draftline capture' or 'draftline watch' first.")
		return nil
	}

	fmt.Printf("%-10s %-17s %7s  %s\n", "ID", "CREATED", "WORDS", "NOTE")
	for _, meta := range metas {
		fmt.Printf("%-10s %-17s %7d  %s\n",
			shortID(meta.ID),
			meta.CreatedAt.Format("2006-01-02 15:04"),
			meta.WordCount,
			util.TruncateWidth(meta.Note, 50))
	}
	return nil
}

// =============================================================================
// DIFF
// =============================================================================

// HandleDiff prints the diff between a checkpoint and the live scene
// text. With no checkpoint ID, the latest checkpoint is used.
func HandleDiff(args Args) error {
	if args.Scene == "" {
		return errSceneRequired
	}

	cfg, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	cp, err := resolveCheckpoint(store, args)
	if err != nil {
		return err
	}

	current, err := readSceneText(args.Scene)
	if err != nil {
		return err
	}

	lines := diff.ComputeWithCellLimit(cp.Content, current, cfg.Diff.MaxCells)

	useColor := !args.Plain && term.IsTerminal(int(os.Stdout.Fd()))
	if useColor {
		printColorDiff(lines)
	} else {
		fmt.Print(diff.Render(lines))
	}

	fmt.Fprintf(os.Stderr, "%s (checkpoint %s, %s)\n",
		diff.Summarize(lines), shortID(cp.ID), cp.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

// printColorDiff writes the diff with per-kind colors via termenv.
func printColorDiff(lines []diff.Line) {
	output := termenv.NewOutput(os.Stdout)
	green := output.Color("2")
	red := output.Color("1")

	for _, line := range lines {
		text := line.Kind.Prefix() + line.Text
		switch line.Kind {
		case diff.Added:
			fmt.Println(output.String(text).Foreground(green))
		case diff.Removed:
			fmt.Println(output.String(text).Foreground(red))
		default:
			fmt.Println(output.String(text).Faint())
		}
	}
}

// =============================================================================
// EXPORT
// =============================================================================

// HandleExport writes an annotated diff to a file.
func HandleExport(args Args) error {
	if args.Scene == "" {
		return errSceneRequired
	}
	if len(args.Raw) < 3 {
		return errors.New("usage: draftline export <scene> <checkpoint-id> <out>")
	}
	args.ID = args.Raw[1]
	args.Out = args.Raw[2]

	cfg, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	cp, err := resolveCheckpoint(store, args)
	if err != nil {
		return err
	}

	current, err := readSceneText(args.Scene)
	if err != nil {
		return err
	}

	lines := diff.ComputeWithCellLimit(cp.Content, current, cfg.Diff.MaxCells)
	content := fmt.Sprintf("draftline diff: %s\ncheckpoint %s (%s)\n%s\n\n%s",
		args.Scene, shortID(cp.ID), cp.CreatedAt.Format(time.RFC3339),
		diff.Summarize(lines), diff.Render(lines))

	if err := util.AtomicWriteFile(args.Out, []byte(content), 0644); err != nil {
		return err
	}

	fmt.Printf("Wrote diff to %s\n", args.Out)
	return nil
}

// =============================================================================
// WATCH
// =============================================================================

// HandleWatch runs the auto-capture watcher over one or more scenes
// until interrupted.
func HandleWatch(args Args) error {
	if len(args.Raw) == 0 {
		return errSceneRequired
	}

	cfg, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	w, err := watch.New(store, time.Duration(cfg.Watch.DebounceMs)*time.Millisecond)
	if err != nil {
		return err
	}
	defer w.Close()

	for _, scene := range args.Raw {
		if err := w.Add(scene); err != nil {
			return fmt.Errorf("failed to watch %s: %w", scene, err)
		}
	}
	if err := w.Watch(); err != nil {
		return err
	}

	log.Info("watching for changes, press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	return nil
}

// =============================================================================
// PRUNE
// =============================================================================

// HandlePrune drops all but the newest checkpoints for a scene.
func HandlePrune(args Args) error {
	if args.Scene == "" {
		return errSceneRequired
	}

	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	deleted, err := store.Prune(args.Scene, args.Keep)
	if err != nil {
		return err
	}

	fmt.Printf("Pruned %d checkpoints (kept %d)\n", deleted, args.Keep)
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// resolveCheckpoint loads the checkpoint named by args.ID, or the
// scene's latest when no ID was given. A short ID prefix is enough as
// long as it is unambiguous.
func resolveCheckpoint(store *checkpoint.Store, args Args) (*checkpoint.Checkpoint, error) {
	if args.ID == "" && len(args.Raw) > 1 {
		args.ID = args.Raw[1]
	}
	if args.ID == "" {
		cp, err := store.Latest(args.Scene)
		if errors.Is(err, checkpoint.ErrNoCheckpoints) {
			return nil, fmt.Errorf("no checkpoints for %s; capture one first", args.Scene)
		}
		return cp, err
	}

	cp, err := store.Load(args.ID)
	if err == nil {
		return cp, nil
	}
	if !errors.Is(err, checkpoint.ErrNotFound) {
		return nil, err
	}

	// Allow prefixes of the full UUID.
	metas, listErr := store.List(args.Scene)
	if listErr != nil {
		return nil, listErr
	}
	var match *checkpoint.Meta
	for i := range metas {
		if len(args.ID) >= 4 && len(metas[i].ID) >= len(args.ID) && metas[i].ID[:len(args.ID)] == args.ID {
			if match != nil {
				return nil, fmt.Errorf("checkpoint ID %q is ambiguous", args.ID)
			}
			match = &metas[i]
		}
	}
	if match == nil {
		return nil, checkpoint.ErrNotFound
	}
	return store.Load(match.ID)
}

// readSceneText reads the live scene; a missing file reads as empty so
// deleted scenes still diff cleanly.
func readSceneText(scene string) (string, error) {
	data, err := os.ReadFile(scene)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read scene: %w", err)
	}
	return string(data), nil
}

// shortID abbreviates a checkpoint UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
