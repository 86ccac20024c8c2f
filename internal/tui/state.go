// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/elastic/histocat/internal/distributions"
)

// UIState holds general UI state shared across views.
type UIState struct {
	Mode          viewMode      // Current view mode
	ViewStack     []ViewContext // Navigation history for back navigation
	Err           error         // Current error (if any)
	Width         int           // Terminal width
	Height        int           // Terminal height
	StatusMessage string        // Temporary status message
	StatusTime    time.Time     // When status was set
	LastRefresh   time.Time     // Last resolved fetch
}

// ChartState holds the presented group and the cursors into it.
type ChartState struct {
	Group    int                    // Index into the model's groups
	Field    int                    // Focused chart
	Bucket   int                    // Focused bar of the focused chart
	Snapshot distributions.Snapshot // Last presenter snapshot
	ticket   distributions.Ticket   // Ticket of the pending fetch
	UTC      bool                   // Temporarily render date-times in UTC
}

// UIComponents holds bubbles components.
type UIComponents struct {
	Viewport      viewport.Model
	DatasetInput  textinput.Model
	ErrorViewport viewport.Model
}
