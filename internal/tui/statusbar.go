// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/elastic/histocat/internal/distributions"
)

// renderStatusBar renders the session the charts were fetched for.
func (m Model) renderStatusBar() string {
	snap := m.store.Snapshot()

	var parts []string
	dataset := snap.Dataset
	if dataset == "" {
		dataset = "-"
	}
	parts = append(parts, StatusKeyStyle.Render("Dataset: ")+StatusValueStyle.Render(ansi.Truncate(dataset, 30, "...")))
	parts = append(parts, StatusKeyStyle.Render("TZ: ")+StatusValueStyle.Render(m.displayLocation().String()))
	parts = append(parts, StatusKeyStyle.Render("Refresh: ")+StatusValueStyle.Render(strconv.FormatUint(snap.Refresh, 10)))

	if m.Chart.Snapshot.State == distributions.StateLoading {
		parts = append(parts, LoadingStyle.Render("loading..."))
	} else if !m.UI.LastRefresh.IsZero() {
		parts = append(parts, StatusKeyStyle.Render("Updated: ")+StatusValueStyle.Render(formatUpdated(m.UI.LastRefresh, time.Now())))
	}
	if m.UI.StatusMessage != "" && time.Since(m.UI.StatusTime) < statusTTL {
		parts = append(parts, StatusValueStyle.Render(m.UI.StatusMessage))
	}

	width := m.UI.Width - 2
	if width < 0 {
		width = 0
	}
	return StatusBarStyle.Width(width).Render(strings.Join(parts, "  │  "))
}
