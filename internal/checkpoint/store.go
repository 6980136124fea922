// Copyright (c) 2025 Kay Morrow
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package checkpoint persists scene snapshots for history browsing.
package checkpoint

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/kmorrow/draftline/internal/util"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotFound      = errors.New("checkpoint not found")
	ErrNoCheckpoints = errors.New("scene has no checkpoints")
	ErrEmptyScene    = errors.New("scene path is empty")
)

// =============================================================================
// TYPES
// =============================================================================

// Checkpoint is a stored snapshot of a scene's text at a point in time.
type Checkpoint struct {
	ID        string
	Scene     string // absolute path of the scene file
	Note      string
	Content   string
	WordCount int
	CreatedAt time.Time
}

// Meta is a checkpoint without its content, for listing.
type Meta struct {
	ID        string
	Scene     string
	Note      string
	WordCount int
	CreatedAt time.Time
}

// =============================================================================
// STORE
// =============================================================================

// schemaVersion tracks the checkpoint table layout via PRAGMA user_version.
const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS checkpoints (
	id         TEXT PRIMARY KEY,
	scene      TEXT NOT NULL,
	note       TEXT NOT NULL,
	content    TEXT NOT NULL,
	word_count INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_checkpoints_scene
	ON checkpoints(scene, created_at DESC);
`

// noteMaxRunes caps auto-generated notes.
const noteMaxRunes = 50

// Store is a SQLite-backed checkpoint store.
type Store struct {
	db *sql.DB

	// MaxPerScene limits stored checkpoints per scene (0 = unlimited).
	// Enforced on Save, oldest first.
	MaxPerScene int
}

// Open opens (creating if necessary) the checkpoint database at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent saves from the watcher and the TUI.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", schemaVersion)); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set schema version: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// =============================================================================
// SAVE
// =============================================================================

// Save stores a new checkpoint for scene and returns its ID. An empty
// note is derived from the first non-empty content line. When
// MaxPerScene is set, the oldest checkpoints beyond the limit are
// removed.
func (s *Store) Save(scene, content, note string) (string, error) {
	scene, err := normalizeScene(scene)
	if err != nil {
		return "", err
	}

	if note == "" {
		note = util.TruncateRunes(util.FirstNonEmptyLine(content), noteMaxRunes)
		if note == "" {
			note = "Empty scene"
		}
	}

	cp := Checkpoint{
		ID:        uuid.NewString(),
		Scene:     scene,
		Note:      note,
		Content:   content,
		WordCount: util.CountWords(content),
		CreatedAt: time.Now(),
	}

	_, err = s.db.Exec(
		`INSERT INTO checkpoints (id, scene, note, content, word_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		cp.ID, cp.Scene, cp.Note, cp.Content, cp.WordCount, cp.CreatedAt.UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save checkpoint: %w", err)
	}

	if s.MaxPerScene > 0 {
		// Retention failures don't invalidate the save.
		s.Prune(scene, s.MaxPerScene)
	}

	return cp.ID, nil
}

// =============================================================================
// LOAD
// =============================================================================

// Load retrieves a checkpoint by ID.
func (s *Store) Load(id string) (*Checkpoint, error) {
	row := s.db.QueryRow(
		`SELECT id, scene, note, content, word_count, created_at
		 FROM checkpoints WHERE id = ?`, id)
	return scanCheckpoint(row)
}

// Latest retrieves the most recent checkpoint for scene.
func (s *Store) Latest(scene string) (*Checkpoint, error) {
	scene, err := normalizeScene(scene)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRow(
		`SELECT id, scene, note, content, word_count, created_at
		 FROM checkpoints WHERE scene = ?
		 ORDER BY created_at DESC LIMIT 1`, scene)

	cp, err := scanCheckpoint(row)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNoCheckpoints
	}
	return cp, err
}

func scanCheckpoint(row *sql.Row) (*Checkpoint, error) {
	var cp Checkpoint
	var createdAt int64
	err := row.Scan(&cp.ID, &cp.Scene, &cp.Note, &cp.Content, &cp.WordCount, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load checkpoint: %w", err)
	}
	cp.CreatedAt = time.Unix(0, createdAt)
	return &cp, nil
}

// =============================================================================
// LIST
// =============================================================================

// List returns checkpoint metadata for scene, most recent first.
func (s *Store) List(scene string) ([]Meta, error) {
	scene, err := normalizeScene(scene)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT id, scene, note, word_count, created_at
		 FROM checkpoints WHERE scene = ?
		 ORDER BY created_at DESC, id`, scene)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}
	defer rows.Close()

	var metas []Meta
	for rows.Next() {
		var m Meta
		var createdAt int64
		if err := rows.Scan(&m.ID, &m.Scene, &m.Note, &m.WordCount, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan checkpoint: %w", err)
		}
		m.CreatedAt = time.Unix(0, createdAt)
		metas = append(metas, m)
	}
	return metas, rows.Err()
}

// =============================================================================
// DELETE
// =============================================================================

// Delete removes a checkpoint by ID.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM checkpoints WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete checkpoint: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Prune removes all but the newest keep checkpoints for scene and
// returns how many were deleted.
func (s *Store) Prune(scene string, keep int) (int, error) {
	scene, err := normalizeScene(scene)
	if err != nil {
		return 0, err
	}
	if keep < 0 {
		keep = 0
	}

	res, err := s.db.Exec(
		`DELETE FROM checkpoints WHERE scene = ? AND id NOT IN (
			SELECT id FROM checkpoints WHERE scene = ?
			ORDER BY created_at DESC, id LIMIT ?
		 )`, scene, scene, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune checkpoints: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// =============================================================================
// HELPERS
// =============================================================================

// normalizeScene resolves scene to a cleaned absolute path so the
// watcher, CLI, and TUI all key checkpoints identically.
func normalizeScene(scene string) (string, error) {
	if scene == "" {
		return "", ErrEmptyScene
	}
	abs, err := filepath.Abs(scene)
	if err != nil {
		return "", fmt.Errorf("failed to resolve scene path: %w", err)
	}
	return abs, nil
}
