// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/elastic/histocat/internal/watch"
)

// mutationBuffer bounds the journal lines queued for the UI. A queued
// mutation already forces a refresh, so overflow is dropped.
const mutationBuffer = 64

// subscribe forwards journal mutations to a channel the UI drains.
func subscribe(j *watch.Journal) <-chan watch.Mutation {
	ch := make(chan watch.Mutation, mutationBuffer)
	j.AddHandler(func(mut watch.Mutation) {
		select {
		case ch <- mut:
		default:
		}
	})
	return ch
}

// waitForStateChange returns a command that blocks until the state file is
// written.
func waitForStateChange(ctx context.Context, w *watch.FileWatcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		return stateChangedMsg{Err: w.Wait(ctx)}
	}
}

// waitForMutation returns a command that blocks until the next journal line.
func waitForMutation(ctx context.Context, ch <-chan watch.Mutation) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case mut, ok := <-ch:
			if !ok {
				return nil
			}
			return mutationMsg{Mutation: mut}
		}
	}
}
