// Copyright (c) 2025 Kay Morrow
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package watch auto-captures checkpoints when scene files change.
//
// A Watcher observes scene files through fsnotify and, once a file has
// been quiet for the configured debounce window, reads it and saves a
// checkpoint. Saves are skipped when the content matches the latest
// stored checkpoint, so editor no-op writes don't pile up snapshots.
//
// # Key Types
//
//   - Watcher: the fsnotify-backed auto-capture loop
//
// # Usage
//
// Watch a scene until interrupted:
//
//	w, err := watch.New(store, 2*time.Second)
//	err = w.Add("chapter1.txt")
//	err = w.Watch()
//	defer w.Close()
package watch
