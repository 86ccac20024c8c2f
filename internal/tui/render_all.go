// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/elastic/histocat/internal/distributions"
)

// View renders the UI
func (m Model) View() string {
	if m.UI.Width == 0 {
		return "Loading..."
	}

	switch m.UI.Mode {
	case viewHelp:
		return lipgloss.Place(m.UI.Width, m.UI.Height, lipgloss.Center, lipgloss.Center, m.renderHelpOverlay())
	case viewErrorModal:
		return lipgloss.Place(m.UI.Width, m.UI.Height, lipgloss.Center, lipgloss.Center, m.renderErrorModal())
	}

	parts := []string{
		m.renderTitleHeader(),
		m.renderBody(),
	}
	if m.UI.Mode == viewDataset {
		parts = append(parts, InputStyle.Render(m.Components.DatasetInput.View()))
	}
	parts = append(parts, m.renderStatusBar(), m.renderHelpBar())
	return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// renderBody renders the presenter state: a message for Loading, Empty and
// Errored, the focused chart and its tooltip for Ready.
func (m Model) renderBody() string {
	snap := m.Chart.Snapshot
	switch snap.State {
	case distributions.StateLoading:
		return LoadingStyle.Render(snap.Message + "...")
	case distributions.StateEmpty:
		return EmptyStyle.Render(snap.Message)
	case distributions.StateErrored:
		return ErrorStyle.Render("Error: " + errorText(snap.Err))
	}

	chart, ok := m.focusedChart()
	if !ok {
		return EmptyStyle.Render(distributions.EmptyMessage(m.Group()))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderChartTitle(chart),
		m.Components.Viewport.View(),
		m.renderTooltip(),
	)
}

func (m Model) renderErrorModal() string {
	title := ErrorStyle.Render("Error")
	hint := HelpDescStyle.Render(keyHint([]string{"y"}, "copy") + "  " + keyHint([]string{"esc"}, "close"))
	return ErrorModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		m.Components.ErrorViewport.View(),
		"",
		hint,
	))
}

func errorText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
