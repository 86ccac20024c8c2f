// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/elastic/histocat/internal/distributions"
)

// Colors
var (
	primaryColor   = lipgloss.Color("#7D56F4")
	secondaryColor = lipgloss.Color("#5A5A5A")
	successColor   = lipgloss.Color("#04B575")
	warningColor   = lipgloss.Color("#FFCC00")
	errorColor     = lipgloss.Color("#FF5F56")
	infoColor      = lipgloss.Color("#61AFEF")
	fgColor        = lipgloss.Color("#E0E0E0")
	mutedColor     = lipgloss.Color("#6C757D")
)

// Styles
var (
	// App frame
	AppStyle = lipgloss.NewStyle().
			Padding(0, 1)

	// Title header
	TitleHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(primaryColor).
				Padding(0, 1)

	// Chart title
	ChartTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(fgColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(secondaryColor)

	ChartKindStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(fgColor).
			Background(lipgloss.Color("#333333")).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	StatusValueStyle = lipgloss.NewStyle().
				Foreground(fgColor)

	// Axis tick labels
	TickStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// Count next to each bar
	CountStyle = lipgloss.NewStyle().
			Foreground(fgColor)

	// Bucket under the cursor
	SelectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#4A4A7A")).
				Foreground(lipgloss.Color("#FFFFFF")).
				Bold(true)

	// Tooltip box
	TooltipStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	TooltipTitleStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)

	// Dataset input
	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	// Help bar
	HelpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	HelpGroupStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	HelpOverlayStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(secondaryColor).
				Padding(1, 2)

	// Error modal
	ErrorModalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(errorColor).
			Padding(1, 2)

	// Error style
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	// Loading style
	LoadingStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	// Empty group
	EmptyStyle = lipgloss.NewStyle().
			Foreground(warningColor)
)

// BarStyle returns the bar color for a field classification.
func BarStyle(c distributions.Classification) lipgloss.Style {
	base := lipgloss.NewStyle()

	switch c.Kind {
	case distributions.KindTemporal:
		return base.Foreground(infoColor)
	case distributions.KindNumeric:
		return base.Foreground(successColor)
	default:
		return base.Foreground(primaryColor)
	}
}
