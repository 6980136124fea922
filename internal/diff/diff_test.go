// Copyright (c) 2025 Kay Morrow
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diff computes line-based diffs between scene checkpoints.
package diff

import (
	"strings"
	"testing"
)

// reconstruct joins the diff lines matching the given kinds, mirroring
// how a reader would rebuild one side of the diff. Synthetic lines
// (placeholder, fallback notice) must be excluded by the caller.
func reconstruct(lines []Line, keep ...Kind) string {
	var parts []string
	for _, line := range lines {
		for _, k := range keep {
			if line.Kind == k {
				parts = append(parts, line.Text)
				break
			}
		}
	}
	return strings.Join(parts, "\n")
}

func joinSplit(text string) string {
	return strings.Join(SplitLines(text), "\n")
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{name: "empty", text: "", expected: nil},
		{name: "single line", text: "one", expected: []string{"one"}},
		{name: "two lines", text: "one\ntwo", expected: []string{"one", "two"}},
		{name: "trailing newline keeps empty entry", text: "one\n", expected: []string{"one", ""}},
		{name: "interior empty line", text: "one\n\ntwo", expected: []string{"one", "", "two"}},
		{name: "crlf", text: "one\r\ntwo", expected: []string{"one", "two"}},
		{name: "bare cr", text: "one\rtwo", expected: []string{"one", "two"}},
		{name: "mixed endings", text: "a\r\nb\rc\nd", expected: []string{"a", "b", "c", "d"}},
		{name: "only newline", text: "\n", expected: []string{"", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SplitLines(tt.text)
			if len(result) != len(tt.expected) {
				t.Fatalf("Expected %d lines, got %d (%q)", len(tt.expected), len(result), result)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("Line %d: expected %q, got %q", i, tt.expected[i], result[i])
				}
			}
		})
	}
}

func TestCompute_Identity(t *testing.T) {
	texts := []string{
		"one",
		"one\ntwo\nthree",
		"one\n\ntwo\n",
		"trailing newline\n",
	}

	for _, text := range texts {
		lines := Compute(text, text)
		want := SplitLines(text)
		if len(lines) != len(want) {
			t.Fatalf("Expected %d lines for %q, got %d", len(want), text, len(lines))
		}
		for i, line := range lines {
			if line.Kind != Unchanged {
				t.Errorf("Line %d of identity diff is %s, want unchanged", i, line.Kind)
			}
			if line.Text != want[i] {
				t.Errorf("Line %d: expected %q, got %q", i, want[i], line.Text)
			}
		}
	}
}

func TestCompute_BothEmpty(t *testing.T) {
	lines := Compute("", "")
	if len(lines) != 1 {
		t.Fatalf("Expected single placeholder line, got %d lines", len(lines))
	}
	if lines[0].Kind != Unchanged || lines[0].Text != NoContentPlaceholder {
		t.Errorf("Expected unchanged %q, got %s %q", NoContentPlaceholder, lines[0].Kind, lines[0].Text)
	}
}

func TestCompute_EmptyHistorical(t *testing.T) {
	lines := Compute("", "a\nb")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	for i, want := range []string{"a", "b"} {
		if lines[i].Kind != Added || lines[i].Text != want {
			t.Errorf("Line %d: expected added %q, got %s %q", i, want, lines[i].Kind, lines[i].Text)
		}
	}
}

func TestCompute_EmptyCurrent(t *testing.T) {
	lines := Compute("a\nb", "")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	for i, want := range []string{"a", "b"} {
		if lines[i].Kind != Removed || lines[i].Text != want {
			t.Errorf("Line %d: expected removed %q, got %s %q", i, want, lines[i].Kind, lines[i].Text)
		}
	}
}

func TestCompute_EditAndAppend(t *testing.T) {
	historical := "one\ntwo\nthree"
	current := "one\ntwo-edited\nthree\nfour"

	lines := Compute(historical, current)

	expected := []Line{
		{Kind: Unchanged, Text: "one"},
		{Kind: Removed, Text: "two"},
		{Kind: Added, Text: "two-edited"},
		{Kind: Unchanged, Text: "three"},
		{Kind: Added, Text: "four"},
	}

	if len(lines) != len(expected) {
		t.Fatalf("Expected %d lines, got %d: %v", len(expected), len(lines), lines)
	}
	for i, want := range expected {
		if lines[i] != want {
			t.Errorf("Line %d: expected %s %q, got %s %q",
				i, want.Kind, want.Text, lines[i].Kind, lines[i].Text)
		}
	}
}

func TestCompute_ReorderIsRemoveThenAdd(t *testing.T) {
	// No move detection: a swapped pair comes out as remove+add around the
	// surviving common line, with the tie-break favoring the removal first.
	lines := Compute("a\nb", "b\na")

	expected := []Line{
		{Kind: Removed, Text: "a"},
		{Kind: Unchanged, Text: "b"},
		{Kind: Added, Text: "a"},
	}

	if len(lines) != len(expected) {
		t.Fatalf("Expected %d lines, got %d: %v", len(expected), len(lines), lines)
	}
	for i, want := range expected {
		if lines[i] != want {
			t.Errorf("Line %d: expected %s %q, got %s %q",
				i, want.Kind, want.Text, lines[i].Kind, lines[i].Text)
		}
	}
}

func TestCompute_Reconstruction(t *testing.T) {
	tests := []struct {
		name       string
		historical string
		current    string
	}{
		{name: "edit and append", historical: "one\ntwo\nthree", current: "one\ntwo-edited\nthree\nfour"},
		{name: "swap", historical: "a\nb", current: "b\na"},
		{name: "disjoint", historical: "x\ny\nz", current: "p\nq"},
		{name: "empty lines", historical: "a\n\nb\n", current: "a\nb"},
		{name: "add only", historical: "", current: "a\nb\nc"},
		{name: "remove only", historical: "a\nb\nc", current: ""},
		{name: "prose edit", historical: "The rain fell.\nShe waited.\nNothing came.", current: "The rain fell hard.\nShe waited.\nNothing came.\nNot yet."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := Compute(tt.historical, tt.current)

			gotHist := reconstruct(lines, Unchanged, Removed)
			if want := joinSplit(tt.historical); gotHist != want {
				t.Errorf("Historical reconstruction: expected %q, got %q", want, gotHist)
			}

			gotCurr := reconstruct(lines, Unchanged, Added)
			if want := joinSplit(tt.current); gotCurr != want {
				t.Errorf("Current reconstruction: expected %q, got %q", want, gotCurr)
			}
		})
	}
}

func TestCompute_CountSymmetry(t *testing.T) {
	historical := "one\ntwo\nthree\nfour"
	current := "one\ntwo-edited\nfour\nfive"

	forward := Summarize(Compute(historical, current))
	backward := Summarize(Compute(current, historical))

	if forward.Additions != backward.Removals || forward.Removals != backward.Additions {
		t.Errorf("Swapping inputs should swap counts: forward %+v, backward %+v", forward, backward)
	}
}

func TestComputeWithCellLimit_Fallback(t *testing.T) {
	historical := "h1\nh2\nh3\nh4"
	current := "c1\nc2\nc3"

	// 4 * 3 cells > ceiling of 6 forces the coarse path.
	lines := ComputeWithCellLimit(historical, current, 6)

	if len(lines) != 1+4+3 {
		t.Fatalf("Expected %d lines, got %d", 1+4+3, len(lines))
	}
	if lines[0].Kind != Unchanged || lines[0].Text != FallbackNotice {
		t.Fatalf("Expected fallback notice first, got %s %q", lines[0].Kind, lines[0].Text)
	}
	for i := 1; i <= 4; i++ {
		if lines[i].Kind != Removed {
			t.Errorf("Line %d: expected removed, got %s", i, lines[i].Kind)
		}
	}
	for i := 5; i < len(lines); i++ {
		if lines[i].Kind != Added {
			t.Errorf("Line %d: expected added, got %s", i, lines[i].Kind)
		}
	}

	// Reconstruction still holds once the synthetic notice is skipped.
	body := lines[1:]
	if got := reconstruct(body, Unchanged, Removed); got != joinSplit(historical) {
		t.Errorf("Historical reconstruction after fallback: got %q", got)
	}
	if got := reconstruct(body, Unchanged, Added); got != joinSplit(current) {
		t.Errorf("Current reconstruction after fallback: got %q", got)
	}
}

func TestComputeWithCellLimit_DetailedUnderCeiling(t *testing.T) {
	// 2 * 2 cells fits a ceiling of 4 exactly; no fallback notice.
	lines := ComputeWithCellLimit("a\nb", "a\nc", 4)
	for _, line := range lines {
		if line.Text == FallbackNotice {
			t.Fatal("Unexpected fallback for inputs under the ceiling")
		}
	}
}

func TestSummarize(t *testing.T) {
	lines := Compute("one\ntwo\nthree", "one\ntwo-edited\nthree\nfour")
	s := Summarize(lines)

	if s.Additions != 2 {
		t.Errorf("Expected 2 additions, got %d", s.Additions)
	}
	if s.Removals != 1 {
		t.Errorf("Expected 1 removal, got %d", s.Removals)
	}
}

func TestSummary_String(t *testing.T) {
	tests := []struct {
		summary  Summary
		expected string
	}{
		{Summary{}, "No differences"},
		{Summary{Additions: 2}, "+2"},
		{Summary{Removals: 3}, "-3"},
		{Summary{Additions: 2, Removals: 1}, "+2 -1"},
	}

	for _, tt := range tests {
		if got := tt.summary.String(); got != tt.expected {
			t.Errorf("Expected %q, got %q", tt.expected, got)
		}
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{Unchanged, "unchanged"},
		{Removed, "removed"},
		{Added, "added"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Expected %s, got %s", tt.expected, got)
		}
	}
}

func TestKind_Prefix(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{Unchanged, "  "},
		{Removed, "- "},
		{Added, "+ "},
	}

	for _, tt := range tests {
		if got := tt.kind.Prefix(); got != tt.expected {
			t.Errorf("Expected %q, got %q", tt.expected, got)
		}
	}
}

func TestRender(t *testing.T) {
	lines := Compute("one\ntwo\nthree", "one\ntwo-edited\nthree\nfour")
	rendered := Render(lines)

	expected := "  one\n- two\n+ two-edited\n  three\n+ four\n"
	if rendered != expected {
		t.Errorf("Expected %q, got %q", expected, rendered)
	}
}
