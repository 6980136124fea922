// draftline - scene history and line diffs for prose drafts.
//
// Copyright (c) 2025 Kay Morrow
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	"github.com/apex/log"
	logcli "github.com/apex/log/handlers/cli"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kmorrow/draftline/internal/checkpoint"
	"github.com/kmorrow/draftline/internal/cli"
	"github.com/kmorrow/draftline/internal/config"
	"github.com/kmorrow/draftline/internal/ui/history"
	"github.com/kmorrow/draftline/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate

	log.SetHandler(logcli.New(os.Stderr))
	log.SetLevel(log.InfoLevel)
	if os.Getenv("DRAFTLINE_DEBUG") != "" {
		log.SetLevel(log.DebugLevel)
	}
}

func main() {
	cmd, args := cli.Parse()

	var err error
	switch cmd {
	case cli.CmdTUI:
		err = runTUI(args)
	case cli.CmdCapture:
		err = cli.HandleCapture(args)
	case cli.CmdList:
		err = cli.HandleList(args)
	case cli.CmdDiff:
		err = cli.HandleDiff(args)
	case cli.CmdExport:
		err = cli.HandleExport(args)
	case cli.CmdWatch:
		err = cli.HandleWatch(args)
	case cli.CmdPrune:
		err = cli.HandlePrune(args)
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runTUI opens the history browser for the given scene.
func runTUI(args cli.Args) error {
	if args.Scene == "" {
		cli.PrintUsage()
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	styles.Apply(cfg.UI.Theme)

	store, err := checkpoint.Open(cfg.DatabasePath())
	if err != nil {
		return err
	}
	defer store.Close()
	store.MaxPerScene = cfg.History.MaxCheckpoints

	m := history.New(store, cfg, args.Scene)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
