// Copyright (c) 2025 Kay Morrow
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides shared helpers for draftline.
//
// # Key Functions
//
//   - AtomicWriteFile: crash-safe file writes (temp file + fsync + rename)
//   - TruncateRunes / TruncateWidth: Unicode-safe string truncation
//   - CountWords: word counting for checkpoint metadata
//
// # Usage
//
// Write a file atomically:
//
//	err := util.AtomicWriteFile(path, data, 0644)
//
// Truncate a note for display:
//
//	note := util.TruncateWidth(note, 50)
package util
