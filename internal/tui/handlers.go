// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKey routes key presses to the handler of the current view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.UI.Mode {
	case viewHelp:
		return m.handleHelpKey(msg)
	case viewDataset:
		return m.handleDatasetKey(msg)
	case viewErrorModal:
		return m.handleErrorModalKey(msg)
	default:
		return m.handleChartsKey(msg)
	}
}

func (m Model) handleChartsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	action := GetAction(key)

	if IsListNavAction(action) {
		m.moveBucket(key)
		return m, nil
	}

	switch action {
	case ActionPrevItem:
		m.moveField(-1)
	case ActionNextItem:
		m.moveField(1)
	case ActionQuit:
		return m, tea.Quit
	case ActionHelp:
		m.pushView(viewHelp)
	case ActionRefresh:
		m.store.Bump()
		return m.startLoad()
	case ActionCycleGroup:
		m.Chart.Group = (m.Chart.Group + 1) % len(m.groups)
		m.Chart.Field, m.Chart.Bucket = 0, 0
		return m.startLoad()
	case ActionCopy:
		m.copyTooltip()
	case ActionDataset:
		return m.openDatasetInput()
	case ActionTimezone:
		m.Chart.UTC = !m.Chart.UTC
		m.presenter.SetLocation(m.displayLocation())
		m.Chart.Snapshot = m.presenter.Snapshot()
		m.syncViewport()
		m.setStatus("Date-times in " + m.displayLocation().String())
	}
	return m, nil
}

func (m Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "?", "q", "enter":
		m.popView()
	}
	return m, nil
}

func (m Model) handleErrorModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		if m.UI.Err != nil {
			m.copyToClipboard(m.UI.Err.Error(), "Error copied to clipboard!")
		}
	case "esc", "enter", "q":
		m.popView()
	default:
		var cmd tea.Cmd
		m.Components.ErrorViewport, cmd = m.Components.ErrorViewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) openDatasetInput() (tea.Model, tea.Cmd) {
	m.Components.DatasetInput.SetValue(m.store.Snapshot().Dataset)
	m.Components.DatasetInput.CursorEnd()
	focus := m.Components.DatasetInput.Focus()
	m.pushView(viewDataset)
	return m, tea.Batch(focus, textinput.Blink)
}

func (m Model) handleDatasetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := strings.TrimSpace(m.Components.DatasetInput.Value())
		m.Components.DatasetInput.Blur()
		m.popView()

		snap := m.store.Snapshot()
		if value == snap.Dataset {
			return m, nil
		}
		snap.Dataset = value
		m.store.Replace(snap)
		m.Chart.Field, m.Chart.Bucket = 0, 0
		return m.startLoad()
	case "esc":
		m.Components.DatasetInput.Blur()
		m.popView()
		return m, nil
	}

	var cmd tea.Cmd
	m.Components.DatasetInput, cmd = m.Components.DatasetInput.Update(msg)
	return m, cmd
}
