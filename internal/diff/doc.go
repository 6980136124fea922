// Copyright (c) 2025 Kay Morrow
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diff computes line-based diffs between scene checkpoints.
//
// The engine is a pure function of its two inputs: it splits the
// historical and current text into lines, aligns them with a dynamic
// programming LCS, and emits an ordered sequence of annotated lines.
// Reading the output top to bottom, the Unchanged and Removed lines
// reconstruct the historical text and the Unchanged and Added lines
// reconstruct the current text.
//
// # Key Types
//
//   - Kind: line classification (unchanged, removed, added)
//   - Line: a single annotated line
//   - Summary: added/removed line counts
//
// # Usage
//
// Compute a diff between a checkpoint and the live scene text:
//
//	lines := diff.Compute(checkpointText, currentText)
//	fmt.Print(diff.Render(lines))
//	fmt.Println(diff.Summarize(lines))
//
// # Line Splitting
//
// Inputs are split on "\n", "\r\n", and "\r". Empty lines are preserved,
// a trailing newline produces a trailing empty line, and the empty string
// produces zero lines. Unicode-only separators such as U+2028 are not
// treated as line breaks.
//
// # Large Inputs
//
// The detailed alignment allocates one int per (historical, current) line
// pair. When that table would exceed the cell ceiling (DefaultMaxCells,
// tunable via ComputeWithCellLimit), the engine degrades to a coarse diff:
// a synthetic notice line, every historical line as Removed, every current
// line as Added. The coarse result is non-minimal but still reconstructs
// both texts, and the degradation is logged so the ceiling can be tuned.
package diff
