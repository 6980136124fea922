// Copyright (c) 2025 Kay Morrow
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diff computes line-based diffs between scene checkpoints.
package diff

import (
	"fmt"
	"strings"

	"github.com/apex/log"
)

// =============================================================================
// LINE KINDS
// =============================================================================

// Kind classifies a line in a diff.
type Kind int

const (
	// Unchanged represents lines present in both texts
	Unchanged Kind = iota
	// Removed represents lines present only in the historical text
	Removed
	// Added represents lines present only in the current text
	Added
)

// String returns the string representation of a line kind.
func (k Kind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Removed:
		return "removed"
	case Added:
		return "added"
	default:
		return "unknown"
	}
}

// Prefix returns the display prefix for this line kind.
func (k Kind) Prefix() string {
	switch k {
	case Removed:
		return "- "
	case Added:
		return "+ "
	default:
		return "  "
	}
}

// =============================================================================
// LINE
// =============================================================================

// Line is a single annotated line in a diff. Text carries no trailing
// newline.
type Line struct {
	Kind Kind
	Text string
}

// =============================================================================
// SUMMARY
// =============================================================================

// Summary holds line counts for a diff.
type Summary struct {
	Additions int
	Removals  int
}

// String returns a short human-readable form, e.g. "+2 -1".
func (s Summary) String() string {
	if s.Additions == 0 && s.Removals == 0 {
		return "No differences"
	}
	var parts []string
	if s.Additions > 0 {
		parts = append(parts, fmt.Sprintf("+%d", s.Additions))
	}
	if s.Removals > 0 {
		parts = append(parts, fmt.Sprintf("-%d", s.Removals))
	}
	return strings.Join(parts, " ")
}

// =============================================================================
// CONSTANTS
// =============================================================================

// DefaultMaxCells caps the LCS table at (H+1)x(C+1) cells. Inputs whose
// table would exceed it take the coarse path instead of the detailed
// alignment.
const DefaultMaxCells = 4_000_000

// NoContentPlaceholder is emitted as a single Unchanged line when both
// inputs are empty.
const NoContentPlaceholder = "(No content)"

// FallbackNotice is the synthetic first line of a coarse diff. It is
// presentational and not part of either input text.
const FallbackNotice = "(Texts too large for detailed comparison; showing full removal and addition)"

// =============================================================================
// SPLITTING
// =============================================================================

// SplitLines splits text into lines on "\n", "\r\n", or "\r" boundaries,
// preserving empty lines. A trailing newline yields a trailing empty
// entry; the empty string yields no lines at all.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	lines = append(lines, text[start:])
	return lines
}

// =============================================================================
// DIFF COMPUTATION
// =============================================================================

// Compute diffs historical against current text and returns an ordered,
// reconstructable sequence of annotated lines: concatenating the
// Unchanged and Removed lines reproduces the historical text, Unchanged
// and Added the current text. Uses DefaultMaxCells as the table ceiling.
func Compute(historical, current string) []Line {
	return ComputeWithCellLimit(historical, current, DefaultMaxCells)
}

// ComputeWithCellLimit is Compute with an explicit LCS table ceiling.
// Limits below 1 are treated as DefaultMaxCells.
func ComputeWithCellLimit(historical, current string, maxCells int) []Line {
	if maxCells < 1 {
		maxCells = DefaultMaxCells
	}

	histLines := SplitLines(historical)
	currLines := SplitLines(current)

	// Identical inputs need no alignment.
	if equalLines(histLines, currLines) {
		if len(histLines) == 0 {
			return []Line{{Kind: Unchanged, Text: NoContentPlaceholder}}
		}
		result := make([]Line, len(histLines))
		for i, text := range histLines {
			result[i] = Line{Kind: Unchanged, Text: text}
		}
		return result
	}

	h, c := len(histLines), len(currLines)

	// Size guard: the detailed path allocates (h+1)*(c+1) cells. Oversized
	// inputs get a coarse remove-all/add-all diff instead, which keeps
	// memory at O(h+c) and still reconstructs both texts.
	if h > 0 && c > 0 && h > maxCells/c {
		log.WithFields(log.Fields{
			"historical_lines": h,
			"current_lines":    c,
			"max_cells":        maxCells,
		}).Warn("diff cell ceiling exceeded, using coarse fallback")

		result := make([]Line, 0, h+c+1)
		result = append(result, Line{Kind: Unchanged, Text: FallbackNotice})
		for _, text := range histLines {
			result = append(result, Line{Kind: Removed, Text: text})
		}
		for _, text := range currLines {
			result = append(result, Line{Kind: Added, Text: text})
		}
		return result
	}

	return alignLines(histLines, currLines)
}

// equalLines reports element-wise equality of two line slices.
func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// alignLines runs the detailed LCS alignment.
//
// The table is filled backward: table[i][j] holds the LCS length of
// histLines[i:] and currLines[j:], stored flat with manual indexing so
// the fill stays cache-friendly. The forward walk then emits Unchanged
// on a match and otherwise prefers Removed (historical first) on ties,
// which keeps the output deterministic.
func alignLines(histLines, currLines []string) []Line {
	h, c := len(histLines), len(currLines)
	stride := c + 1
	table := make([]int, (h+1)*stride)

	for i := h - 1; i >= 0; i-- {
		row := i * stride
		below := row + stride
		for j := c - 1; j >= 0; j-- {
			if histLines[i] == currLines[j] {
				table[row+j] = table[below+j+1] + 1
			} else if table[below+j] >= table[row+j+1] {
				table[row+j] = table[below+j]
			} else {
				table[row+j] = table[row+j+1]
			}
		}
	}

	result := make([]Line, 0, h+c)
	i, j := 0, 0
	for i < h && j < c {
		switch {
		case histLines[i] == currLines[j]:
			result = append(result, Line{Kind: Unchanged, Text: histLines[i]})
			i++
			j++
		case table[(i+1)*stride+j] >= table[i*stride+j+1]:
			result = append(result, Line{Kind: Removed, Text: histLines[i]})
			i++
		default:
			result = append(result, Line{Kind: Added, Text: currLines[j]})
			j++
		}
	}
	for ; i < h; i++ {
		result = append(result, Line{Kind: Removed, Text: histLines[i]})
	}
	for ; j < c; j++ {
		result = append(result, Line{Kind: Added, Text: currLines[j]})
	}
	return result
}

// =============================================================================
// DERIVED OPERATIONS
// =============================================================================

// Summarize counts the added and removed lines in a diff.
func Summarize(lines []Line) Summary {
	var s Summary
	for _, line := range lines {
		switch line.Kind {
		case Added:
			s.Additions++
		case Removed:
			s.Removals++
		}
	}
	return s
}

// Render returns the diff as plain annotated text, one prefixed line per
// entry.
func Render(lines []Line) string {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line.Kind.Prefix())
		sb.WriteString(line.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}
