// Copyright (c) 2025 Kay Morrow
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package checkpoint persists scene snapshots for history browsing.
//
// Snapshots are stored in a single SQLite database, keyed by the
// absolute path of the scene file. Each checkpoint carries the full
// scene text plus lightweight metadata (note, word count, timestamp)
// so the history list can render without loading content.
//
// # Key Types
//
//   - Checkpoint: one stored snapshot, including content
//   - Meta: checkpoint metadata without content, for listing
//   - Store: the SQLite-backed store
//
// # Usage
//
// Open a store and capture a snapshot:
//
//	store, err := checkpoint.Open(dbPath)
//	id, err := store.Save(scenePath, content, "before rewrite")
//
// Browse history:
//
//	metas, err := store.List(scenePath)
//	cp, err := store.Load(metas[0].ID)
//
// # Storage Location
//
// The database lives at ~/.draftline/checkpoints.db by default; the
// config package owns that path.
package checkpoint
