// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/elastic/histocat/internal/distributions"
)

// handleAsyncError is a helper that handles the common error pattern in async message handlers.
// If err is nil, it returns false so the caller can proceed with success handling.
// If err is a context error (canceled/timeout), it returns true to exit early.
// Otherwise, it shows the error modal and returns true.
func (m *Model) handleAsyncError(err error) (done bool) {
	if err == nil {
		return false
	}
	if isContextError(err) {
		return true
	}
	m.showErrorModal(err)
	return true
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchCmd(m.Chart.ticket, m.request()),
		waitForStateChange(m.ctx, m.stateWatcher),
		waitForMutation(m.ctx, m.mutations),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case distributionsMsg:
		return m.handleDistributionsMsg(msg)

	case stateChangedMsg:
		return m.handleStateChangedMsg(msg)

	case mutationMsg:
		return m.handleMutationMsg(msg)
	}
	return m, nil
}

// startLoad moves the presenter to Loading for the current request and
// returns the command that fetches it.
func (m Model) startLoad() (Model, tea.Cmd) {
	req := m.request()
	m.Chart.ticket = m.presenter.Begin(req)
	m.Chart.Snapshot = m.presenter.Snapshot()
	m.syncViewport()
	return m, m.fetchCmd(m.Chart.ticket, req)
}

func (m Model) fetchCmd(ticket distributions.Ticket, req distributions.Request) tea.Cmd {
	loader, parent, timeout := m.loader, m.ctx, m.fetchTimeout
	return func() tea.Msg {
		ctx := parent
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(parent, timeout)
			defer cancel()
		}
		dists, err := loader.Fetch(ctx, req)
		return distributionsMsg{ticket: ticket, dists: dists, err: err}
	}
}

func (m Model) handleDistributionsMsg(msg distributionsMsg) (tea.Model, tea.Cmd) {
	// The app is shutting down.
	if errors.Is(msg.err, context.Canceled) {
		return m, nil
	}
	if !m.presenter.Resolve(msg.ticket, msg.dists, msg.err) {
		return m, nil
	}
	m.Chart.Snapshot = m.presenter.Snapshot()
	m.UI.LastRefresh = time.Now()
	m.UI.Err = m.Chart.Snapshot.Err
	m.clampCursors()
	m.syncViewport()
	return m, nil
}

func (m Model) handleStateChangedMsg(msg stateChangedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if !isContextError(msg.Err) {
			m.showErrorModal(fmt.Errorf("watch state file: %w", msg.Err))
		}
		return m, nil
	}

	next := waitForStateChange(m.ctx, m.stateWatcher)
	if _, err := m.store.Reload(); m.handleAsyncError(err) {
		return m, next
	}
	m.presenter.SetLocation(m.displayLocation())
	m.setStatus("State reloaded")

	var load tea.Cmd
	m, load = m.startLoad()
	return m, tea.Batch(next, load)
}

func (m Model) handleMutationMsg(msg mutationMsg) (tea.Model, tea.Cmd) {
	next := waitForMutation(m.ctx, m.mutations)
	if !msg.Mutation.Affects(m.store.Snapshot().Dataset) {
		return m, next
	}
	m.store.Bump()
	if msg.Mutation.Op != "" {
		m.setStatus("Refreshing after " + msg.Mutation.Op)
	}

	var load tea.Cmd
	m, load = m.startLoad()
	return m, tea.Batch(next, load)
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.UI.Width = msg.Width
	m.UI.Height = msg.Height

	// Header, chart title, tooltip box, status bar and help bar
	const chrome = 12
	m.Components.Viewport.Width = max(msg.Width-4, minBarWidth)
	m.Components.Viewport.Height = max(msg.Height-chrome, 3)

	modalWidth := min(msg.Width-8, 80)
	m.Components.ErrorViewport.Width = max(modalWidth-8, minBarWidth)
	m.Components.ErrorViewport.Height = max(min(msg.Height-15, 20), 3)
	m.Components.DatasetInput.Width = max(msg.Width-20, minBarWidth)

	m.syncViewport()
	return m, nil
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
