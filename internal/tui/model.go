// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/elastic/histocat/internal/distributions"
	"github.com/elastic/histocat/internal/state"
	"github.com/elastic/histocat/internal/watch"
)

// Model is the main TUI model containing all application state.
//
// State is organized into embedded structs:
//   - Core: loader, presenter, session store, watchers (flat - used everywhere)
//   - UI: mode, dimensions, error and status state
//   - Chart: presented group, cursors and the last presenter snapshot
//   - Components: viewport and text input
type Model struct {
	// === Core (flat - used everywhere) ===
	ctx          context.Context          // Parent context (canceled when app exits)
	loader       distributions.Loader     // Fetches distributions (cached, coalesced)
	presenter    *distributions.Presenter // Loading/Ready/Empty/Errored state machine
	store        *state.Store             // Dataset, view, filters and refresh token
	location     *time.Location           // Display timezone when the session sets none
	fetchTimeout time.Duration            // Bound on a single fetch
	groups       []string                 // Field groups cycled with ActionCycleGroup
	stateWatcher *watch.FileWatcher       // Reloads the store on state file writes
	mutations    <-chan watch.Mutation    // Journal lines that force a refresh
	copyText     func(string) error       // Clipboard writer

	// === Embedded State ===
	UI         UIState
	Chart      ChartState
	Components UIComponents
}

// Options configures NewModel. Loader and Store are required.
type Options struct {
	Loader       distributions.Loader
	Store        *state.Store
	Schema       distributions.SchemaLookup
	Location     *time.Location // Display timezone; UTC when nil
	Formatter    distributions.Formatter
	Groups       []string // DefaultGroups when empty
	Group        string   // Initial group; the first of Groups when empty
	FetchTimeout time.Duration
	StateWatcher *watch.FileWatcher
	Journal      *watch.Journal
	Clipboard    func(text string) error // System clipboard when nil
}

// NewModel creates a new TUI model and begins loading the initial group.
// The fetch itself starts with Init.
func NewModel(ctx context.Context, opts Options) Model {
	groups := opts.Groups
	if len(groups) == 0 {
		groups = DefaultGroups
	}
	location := opts.Location
	if location == nil {
		location = time.UTC
	}
	copyText := opts.Clipboard
	if copyText == nil {
		copyText = writeClipboard
	}

	input := textinput.New()
	input.Placeholder = "dataset name"
	input.CharLimit = 256
	input.Prompt = "Dataset: "

	m := Model{
		ctx:          ctx,
		loader:       opts.Loader,
		store:        opts.Store,
		location:     location,
		fetchTimeout: opts.FetchTimeout,
		groups:       groups,
		stateWatcher: opts.StateWatcher,
		copyText:     copyText,
		UI:           UIState{Mode: viewCharts},
		Components: UIComponents{
			Viewport:      viewport.New(0, 0),
			DatasetInput:  input,
			ErrorViewport: viewport.New(0, 0),
		},
	}
	if opts.Journal != nil {
		m.mutations = subscribe(opts.Journal)
	}
	m.Chart.Group = groupIndex(groups, opts.Group)

	m.presenter = distributions.NewPresenter(opts.Loader, distributions.PresenterOptions{
		Schema:    opts.Schema,
		Location:  m.displayLocation(),
		Formatter: opts.Formatter,
	})
	m.Chart.ticket = m.presenter.Begin(m.request())
	m.Chart.Snapshot = m.presenter.Snapshot()
	return m
}

func groupIndex(groups []string, name string) int {
	for i, g := range groups {
		if strings.EqualFold(g, name) {
			return i
		}
	}
	return 0
}

// Group returns the presented group.
func (m Model) Group() string {
	return m.groups[m.Chart.Group]
}

// request builds the fetch request for the presented group from the session.
func (m Model) request() distributions.Request {
	return m.store.Snapshot().Request(m.Group())
}

// displayLocation is the timezone date-time fields are rendered in.
func (m Model) displayLocation() *time.Location {
	if m.Chart.UTC {
		return time.UTC
	}
	if loc := m.store.Snapshot().Location; loc != nil {
		return loc
	}
	return m.location
}

// focusedChart returns the chart under the field cursor.
func (m Model) focusedChart() (distributions.Chart, bool) {
	charts := m.Chart.Snapshot.Charts
	if m.Chart.Snapshot.State != distributions.StateReady || m.Chart.Field >= len(charts) {
		return distributions.Chart{}, false
	}
	return charts[m.Chart.Field], true
}

// focusedTooltip returns the tooltip of the bar under the bucket cursor.
func (m Model) focusedTooltip() (distributions.Tooltip, bool) {
	chart, ok := m.focusedChart()
	if !ok {
		return distributions.Tooltip{}, false
	}
	return chart.Tooltip(chart.PointAt(m.Chart.Bucket))
}
