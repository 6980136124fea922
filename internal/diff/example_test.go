// Copyright (c) 2025 Kay Morrow
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diff computes line-based diffs between scene checkpoints.
package diff_test

import (
	"fmt"

	"github.com/kmorrow/draftline/internal/diff"
)

func ExampleCompute() {
	// A checkpointed draft of a scene
	checkpoint := "The door was locked.\nShe knocked twice.\nNo one answered."

	// The scene as it reads now
	current := "The door was locked.\nShe knocked three times.\nNo one answered.\nShe tried the handle."

	lines := diff.Compute(checkpoint, current)
	fmt.Print(diff.Render(lines))

	// Output:
	//   The door was locked.
	// - She knocked twice.
	// + She knocked three times.
	//   No one answered.
	// + She tried the handle.
}

func ExampleSummarize() {
	checkpoint := "one\ntwo\nthree"
	current := "one\ntwo-edited\nthree\nfour"

	lines := diff.Compute(checkpoint, current)
	fmt.Println(diff.Summarize(lines))

	// Output:
	// +2 -1
}

func ExampleCompute_noContent() {
	lines := diff.Compute("", "")
	fmt.Print(diff.Render(lines))

	// Output:
	//   (No content)
}
