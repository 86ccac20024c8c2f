// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/elastic/histocat/internal/distributions"
)

func (m Model) renderChartTitle(chart distributions.Chart) string {
	kind := chart.Classification.String()
	if chart.Type != "" {
		kind = chart.Type + ", " + kind
	}
	return ChartTitleStyle.Render(chart.Title) + " " + ChartKindStyle.Render("("+kind+")")
}

// renderTooltip renders the tooltip of the bar under the cursor.
func (m Model) renderTooltip() string {
	tip, ok := m.focusedTooltip()
	if !ok {
		return TooltipStyle.Render(LoadingStyle.Render("no count"))
	}
	return TooltipStyle.Render(TooltipTitleStyle.Render(tip.Title) + "\n" +
		"Count: " + strconv.FormatInt(tip.Count, 10))
}

// syncViewport re-renders the focused chart into the viewport and scrolls
// so the bucket cursor stays visible.
func (m *Model) syncViewport() {
	chart, ok := m.focusedChart()
	if !ok {
		m.Components.Viewport.SetContent("")
		return
	}
	m.Components.Viewport.SetContent(renderBars(chart, m.Chart.Bucket, m.Components.Viewport.Width, m.Components.Viewport.Height))

	vp := &m.Components.Viewport
	switch {
	case m.Chart.Bucket < vp.YOffset:
		vp.SetYOffset(m.Chart.Bucket)
	case vp.Height > 0 && m.Chart.Bucket >= vp.YOffset+vp.Height:
		vp.SetYOffset(m.Chart.Bucket - vp.Height + 1)
	}
}

// renderBars renders one row per bucket: tick label, bar and count. Only
// rows picked by the chart's tick configuration carry a label; room is the
// number of rows visible at once.
func renderBars(chart distributions.Chart, cursor, width, room int) string {
	if len(chart.Bars) == 0 {
		return ""
	}

	labeled := make(map[int]bool, len(chart.Bars))
	labelWidth := 0
	for _, i := range chart.Ticks.Indices(len(chart.Bars), room) {
		labeled[i] = true
		labelWidth = max(labelWidth, lipgloss.Width(chart.Bars[i].Tick))
	}

	maxCount := chart.MaxCount()
	countWidth := len(strconv.FormatInt(maxCount, 10))
	barSpace := max(width-labelWidth-countWidth-4, minBarWidth)
	barStyle := BarStyle(chart.Classification)

	rows := make([]string, len(chart.Bars))
	for i, bar := range chart.Bars {
		label := ""
		if labeled[i] {
			label = bar.Tick
		}
		label = strings.Repeat(" ", labelWidth-lipgloss.Width(label)) + label

		n := barLength(bar.Count, maxCount, barSpace)
		filled := strings.Repeat(string(barRune), n) + strings.Repeat(" ", barSpace-n)
		count := strconv.FormatInt(bar.Count, 10)

		if i == cursor {
			rows[i] = SelectedRowStyle.Render(label + " │" + filled + " " + count)
			continue
		}
		rows[i] = TickStyle.Render(label) + " │" + barStyle.Render(filled) + " " + CountStyle.Render(count)
	}
	return strings.Join(rows, "\n")
}

// barLength scales count to space columns. Non-zero counts get at least
// one column.
func barLength(count, maxCount int64, space int) int {
	if maxCount <= 0 || count <= 0 {
		return 0
	}
	n := int(count * int64(space) / maxCount)
	if n == 0 {
		n = 1
	}
	return n
}
