// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	osSignal "os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/elastic/histocat/internal/config"
	"github.com/elastic/histocat/internal/tui"
	"github.com/elastic/histocat/internal/watch"
	"github.com/spf13/cobra"
)

const pingTimeout = 5 * time.Second

var fetchTimeoutFlag time.Duration

var uiCmd = &cobra.Command{
	Use:   "ui [group...]",
	Short: "Open the interactive distributions viewer",
	Long: `Opens the interactive terminal UI for browsing field distributions.

Groups default to Labels and Scalars; press 'm' to cycle between them.
When --state is set the file is watched and reloaded on change, and
--journal lines force a refresh of the current group.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context(), args)
	},
}

func init() {
	uiCmd.Flags().DurationVar(&fetchTimeoutFlag, "fetch-timeout", config.DefaultFetchTimeout, "Per-fetch timeout in the UI (env: HISTOCAT_TUI_FETCH_TIMEOUT)")
	rootCmd.AddCommand(uiCmd)
}

func runTUI(parentCtx context.Context, groups []string) error {
	notifyCtx, stop := osSignal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(notifyCtx)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	// Check connection
	ctx, cancel := context.WithTimeout(notifyCtx, pingTimeout)
	defer cancel()

	if err := a.backend.Ping(ctx); err != nil {
		fmt.Println("Warning: Could not connect to the distributions backend.")
		fmt.Printf("Check --backend-url (currently %s).\n", a.cfg.Backend.URL)
		fmt.Println()
	}

	opts := tui.Options{
		Loader:       a.fetcher,
		Store:        a.store,
		Schema:       a.schema,
		Location:     a.location,
		Formatter:    a.formatter,
		Groups:       groups,
		FetchTimeout: a.cfg.TUI.FetchTimeout,
	}

	if path := a.store.Path(); path != "" {
		w, err := watch.NewFileWatcher(path)
		if err != nil {
			return err
		}
		defer w.Close()
		opts.StateWatcher = w
	}

	if a.cfg.State.Journal != "" {
		j, err := watch.New(watch.Config{Context: notifyCtx, Path: a.cfg.State.Journal})
		if err != nil {
			return err
		}
		defer j.Stop()
		opts.Journal = j
	}

	// The model subscribes to the journal, so it is built before following starts.
	model := tui.NewModel(notifyCtx, opts)
	if opts.Journal != nil {
		go func() {
			if err := opts.Journal.Start(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: journal stopped: %v\n", err)
			}
		}()
	}
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(notifyCtx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
