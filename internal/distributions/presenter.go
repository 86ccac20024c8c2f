// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package distributions

import (
	"context"
	"strings"
	"sync"
	"time"
)

// State is the presentation state of the current group.
type State int

const (
	StateLoading State = iota
	StateReady
	StateEmpty
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateEmpty:
		return "empty"
	case StateErrored:
		return "errored"
	default:
		return "loading"
	}
}

// Loader fetches distributions. *Fetcher implements it.
type Loader interface {
	Fetch(ctx context.Context, req Request) ([]Distribution, error)
}

var _ Loader = (*Fetcher)(nil)

// Snapshot is what the hosting view renders.
type Snapshot struct {
	State   State
	Group   string
	Charts  []Chart
	Message string // "Loading" or "No <group>" for the non-chart states
	Err     error
}

// Ticket identifies one Begin call. Only the latest ticket may resolve.
type Ticket struct {
	gen uint64
	key Key
}

// PresenterOptions configures a Presenter.
type PresenterOptions struct {
	Schema    SchemaLookup
	Location  *time.Location // Display timezone for date-time fields
	Formatter Formatter
	Prettify  Prettifier
}

// Presenter drives Loading -> Ready | Empty | Errored for one group at a
// time and turns fetched distributions into charts.
type Presenter struct {
	loader Loader

	mu    sync.Mutex
	opts  PresenterOptions
	gen   uint64
	key   Key
	dists []Distribution
	snap  Snapshot
}

// NewPresenter creates a Presenter that fetches through loader.
func NewPresenter(loader Loader, opts PresenterOptions) *Presenter {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Presenter{
		loader: loader,
		opts:   opts,
		snap:   Snapshot{State: StateLoading, Message: "Loading"},
	}
}

// Begin enters Loading for req and returns the ticket its result must
// present to Resolve. Earlier tickets become stale.
func (p *Presenter) Begin(req Request) Ticket {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.key = req.Key()
	p.dists = nil
	p.snap = Snapshot{State: StateLoading, Group: p.key.Group, Message: "Loading"}
	return Ticket{gen: p.gen, key: p.key}
}

// Resolve applies a fetch outcome. It returns false and changes nothing
// when t is not the latest ticket.
func (p *Presenter) Resolve(t Ticket, dists []Distribution, err error) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if t.gen != p.gen || t.key != p.key {
		return false
	}
	switch {
	case err != nil:
		p.snap = Snapshot{State: StateErrored, Group: t.key.Group, Err: err}
	case len(dists) == 0:
		p.snap = Snapshot{State: StateEmpty, Group: t.key.Group, Message: EmptyMessage(t.key.Group)}
	default:
		p.dists = dists
		p.snap = Snapshot{State: StateReady, Group: t.key.Group, Charts: p.buildChartsLocked(dists)}
	}
	return true
}

// Load fetches req and resolves it. An Errored outcome is returned as an
// error so the host can display it. When a newer Begin supersedes this
// call, the current snapshot is returned unchanged.
func (p *Presenter) Load(ctx context.Context, req Request) (Snapshot, error) {
	t := p.Begin(req)
	dists, err := p.loader.Fetch(ctx, req)
	if !p.Resolve(t, dists, err) {
		return p.Snapshot(), nil
	}
	snap := p.Snapshot()
	if snap.State == StateErrored {
		return snap, snap.Err
	}
	return snap, nil
}

// Snapshot returns the current state.
func (p *Presenter) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	snap := p.snap
	snap.Charts = append([]Chart(nil), p.snap.Charts...)
	return snap
}

// SetLocation changes the display timezone and rebuilds ready charts.
func (p *Presenter) SetLocation(loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opts.Location = loc
	if p.snap.State == StateReady {
		p.snap.Charts = p.buildChartsLocked(p.dists)
	}
}

// Location returns the display timezone.
func (p *Presenter) Location() *time.Location {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.opts.Location
}

func (p *Presenter) buildChartsLocked(dists []Distribution) []Chart {
	charts := make([]Chart, 0, len(dists))
	copts := ChartOptions{Formatter: p.opts.Formatter, Prettify: p.opts.Prettify}
	for _, d := range dists {
		c := Classify(d, p.opts.Schema, p.opts.Location)
		charts = append(charts, BuildChart(d, c, copts))
	}
	return charts
}

// EmptyMessage is the text shown when a group has no distributions.
func EmptyMessage(group string) string {
	return "No " + strings.ToLower(group)
}
