// Copyright (c) 2025 Kay Morrow
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package watch auto-captures checkpoints when scene files change.
package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/fsnotify/fsnotify"

	"github.com/kmorrow/draftline/internal/checkpoint"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNoScenes = errors.New("no scenes to watch")
	ErrClosed   = errors.New("watcher is closed")
)

// AutoNote marks checkpoints captured by the watcher.
const AutoNote = "auto-capture"

// =============================================================================
// WATCHER
// =============================================================================

// Watcher captures a checkpoint whenever a watched scene file settles
// after a write. Editors that save via rename are handled by watching
// the scene's parent directory rather than the file itself.
type Watcher struct {
	store    *checkpoint.Store
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	scenes  map[string]bool      // absolute scene path -> watched
	pending map[string]time.Time // scene path -> last change time
	closed  bool

	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a watcher that saves into store. Changes are captured
// after the file has been quiet for the debounce duration.
func New(store *checkpoint.Store, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		store:    store,
		watcher:  fsw,
		debounce: debounce,
		scenes:   make(map[string]bool),
		pending:  make(map[string]time.Time),
		done:     make(chan struct{}),
	}, nil
}

// Add registers a scene file for auto-capture.
func (w *Watcher) Add(scene string) error {
	abs, err := filepath.Abs(scene)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	if w.scenes[abs] {
		return nil
	}

	// Watch the directory: rename-style saves replace the file inode,
	// and a direct file watch would go stale after the first save.
	if err := w.watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	w.scenes[abs] = true

	log.WithField("scene", abs).Info("watching scene")
	return nil
}

// Watch starts the event and debounce loops. It returns immediately;
// use Close to stop.
func (w *Watcher) Watch() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	if len(w.scenes) == 0 {
		w.mu.Unlock()
		return ErrNoScenes
	}
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.mu.Unlock()

	go w.processEvents(ctx)
	go w.processPending(ctx)
	return nil
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.cancel != nil {
		w.cancel()
	}
	w.mu.Unlock()

	return w.watcher.Close()
}

// Done is closed once the debounce loop has exited.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

// =============================================================================
// EVENT PROCESSING
// =============================================================================

func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}

			w.mu.Lock()
			if w.scenes[abs] {
				w.pending[abs] = time.Now()
			}
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warn("watch error")
		}
	}
}

// processPending captures scenes whose last change has settled past the
// debounce window.
func (w *Watcher) processPending(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			now := time.Now()

			w.mu.Lock()
			var settled []string
			for scene, changed := range w.pending {
				if now.Sub(changed) >= w.debounce {
					settled = append(settled, scene)
					delete(w.pending, scene)
				}
			}
			w.mu.Unlock()

			for _, scene := range settled {
				w.capture(scene)
			}
		}
	}
}

// capture snapshots a scene unless its content matches the latest
// checkpoint.
func (w *Watcher) capture(scene string) {
	data, err := os.ReadFile(scene)
	if err != nil {
		log.WithError(err).WithField("scene", scene).Warn("failed to read scene")
		return
	}
	content := string(data)

	latest, err := w.store.Latest(scene)
	if err == nil && latest.Content == content {
		log.WithField("scene", scene).Debug("content unchanged, skipping capture")
		return
	}
	if err != nil && !errors.Is(err, checkpoint.ErrNoCheckpoints) {
		log.WithError(err).WithField("scene", scene).Warn("failed to load latest checkpoint")
		return
	}

	id, err := w.store.Save(scene, content, AutoNote)
	if err != nil {
		log.WithError(err).WithField("scene", scene).Error("failed to capture checkpoint")
		return
	}

	log.WithFields(log.Fields{
		"scene":      scene,
		"checkpoint": id,
	}).Info("captured checkpoint")
}
