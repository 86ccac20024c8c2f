// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/elastic/histocat/internal/distributions"
	"github.com/elastic/histocat/internal/watch"
)

// viewMode represents different UI views in the TUI
type viewMode int

// ViewContext captures state needed to restore a view when navigating back
type ViewContext struct {
	Mode viewMode
}

const (
	viewCharts     viewMode = iota // Focused field chart with bucket cursor
	viewDataset                    // Dataset input
	viewErrorModal                 // Error dialog with copy/close options
	viewHelp                       // Hotkeys overlay
)

// DefaultGroups are the field groups cycled with the group key.
var DefaultGroups = []string{"Labels", "Scalars"}

// Bar rendering
const (
	barRune     = '█'
	minBarWidth = 10
)

// distributionsMsg carries the outcome of one fetch started with Begin.
type distributionsMsg struct {
	ticket distributions.Ticket
	dists  []distributions.Distribution
	err    error
}

// stateChangedMsg is sent when the state file is written.
type stateChangedMsg struct {
	Err error
}

// mutationMsg is sent for each mutation journal line.
type mutationMsg struct {
	Mutation watch.Mutation
}
