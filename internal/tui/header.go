// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/elastic/histocat/internal/distributions"
)

// renderTitleHeader renders the top header with the title, the group and
// the focused field position.
func (m Model) renderTitleHeader() string {
	title := "\\ histocat [" + m.Group() + "] /"

	// Build field info for right side
	var infoParts []string
	if n := len(m.Chart.Snapshot.Charts); n > 0 && m.Chart.Snapshot.State == distributions.StateReady {
		infoParts = append(infoParts, fmt.Sprintf("Field: %d/%d", m.Chart.Field+1, n))
	}
	infoParts = append(infoParts, "State: "+m.Chart.Snapshot.State.String())

	info := "[ " + strings.Join(infoParts, " │ ") + " ]"
	rightInfo := lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Render(info)

	// Account for padding in the style (2 chars)
	availableWidth := m.UI.Width - 2
	titleLen := lipgloss.Width(title)
	rightInfoLen := lipgloss.Width(rightInfo)

	if titleLen+rightInfoLen >= availableWidth {
		// Not enough space, just show title with line
		lineChars := availableWidth - titleLen
		if lineChars < 0 {
			lineChars = 0
		}
		return TitleHeaderStyle.Width(m.UI.Width).Render(title + strings.Repeat("═", lineChars))
	}

	line := strings.Repeat("═", availableWidth-titleLen-rightInfoLen)
	return TitleHeaderStyle.Width(m.UI.Width).Render(title + line + rightInfo)
}
