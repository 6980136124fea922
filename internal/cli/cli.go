// Copyright (c) 2025 Kay Morrow
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for draftline.
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdCapture
	CmdList
	CmdDiff
	CmdExport
	CmdWatch
	CmdPrune
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Scene is the scene file the command operates on.
	Scene string
	// ID is a checkpoint ID (diff, export).
	ID string
	// Note is the checkpoint note (capture, -m/--note).
	Note string
	// Out is the output path (export).
	Out string
	// Keep is the retention count (prune, --keep).
	Keep int
	// Plain disables color output (--plain).
	Plain bool

	// Raw holds the positional arguments after the command word.
	Raw []string
}

const usageText = `draftline - scene history for prose drafts

Draftline captures checkpoints of scene files and shows reviewable line
diffs between any checkpoint and the text as it reads now.

Usage:
  draftline <scene>                      Browse scene history (TUI)
  draftline capture <scene> [-m note]    Capture a checkpoint now
  draftline list <scene>                 List checkpoints
  draftline diff <scene> [id] [--plain]  Diff a checkpoint against the live text
                                         (defaults to the latest checkpoint)
  draftline export <scene> <id> <out>    Write an annotated diff to a file
  draftline watch <scene>...             Auto-capture checkpoints on save
  draftline prune <scene> [--keep n]     Drop old checkpoints (default keep 20)
  draftline version                      Show version
  draftline help                         Show this help

Configuration lives at ~/.draftline/config.toml; DRAFTLINE_* environment
variables override it.`

// Parse reads os.Args and returns the command plus its arguments.
func Parse() (Command, Args) {
	raw := os.Args[1:]
	if len(raw) == 0 {
		return CmdHelp, Args{}
	}

	cmd := CmdTUI
	switch raw[0] {
	case "capture", "cap":
		cmd = CmdCapture
		raw = raw[1:]
	case "list", "ls":
		cmd = CmdList
		raw = raw[1:]
	case "diff":
		cmd = CmdDiff
		raw = raw[1:]
	case "export":
		cmd = CmdExport
		raw = raw[1:]
	case "watch":
		cmd = CmdWatch
		raw = raw[1:]
	case "prune":
		cmd = CmdPrune
		raw = raw[1:]
	case "version", "-v", "--version":
		return CmdVersion, Args{}
	case "help", "-h", "--help":
		return CmdHelp, Args{}
	}

	args := parseArgs(raw)
	return cmd, args
}

// parseArgs separates flags from positional arguments. The first
// positional is the scene; its meaning past that depends on the command.
func parseArgs(raw []string) Args {
	args := Args{Keep: 20}

	i := 0
	for i < len(raw) {
		arg := raw[i]

		switch {
		case arg == "-m" || arg == "--note":
			if i+1 < len(raw) {
				args.Note = raw[i+1]
				i += 2
				continue
			}
			i++

		case strings.HasPrefix(arg, "--note="):
			args.Note = strings.TrimPrefix(arg, "--note=")
			i++

		case arg == "--keep":
			if i+1 < len(raw) {
				if n, err := strconv.Atoi(raw[i+1]); err == nil {
					args.Keep = n
				}
				i += 2
				continue
			}
			i++

		case strings.HasPrefix(arg, "--keep="):
			if n, err := strconv.Atoi(strings.TrimPrefix(arg, "--keep=")); err == nil {
				args.Keep = n
			}
			i++

		case arg == "--plain":
			args.Plain = true
			i++

		default:
			args.Raw = append(args.Raw, arg)
			i++
		}
	}

	if len(args.Raw) > 0 {
		args.Scene = args.Raw[0]
	}
	return args
}

// PrintUsage writes the usage text to stdout.
func PrintUsage() {
	fmt.Println(usageText)
}

// PrintVersion writes version information to stdout.
func PrintVersion() {
	fmt.Printf("draftline %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}
