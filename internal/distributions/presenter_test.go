// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package distributions

import (
	"context"
	"errors"
	"testing"
	"time"
)

// loaderFunc adapts a function to Loader.
type loaderFunc func(ctx context.Context, req Request) ([]Distribution, error)

func (f loaderFunc) Fetch(ctx context.Context, req Request) ([]Distribution, error) {
	return f(ctx, req)
}

func TestPresenter_Load(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	tests := []struct {
		name    string
		dists   []Distribution
		err     error
		state   State
		message string
		charts  int
	}{
		{name: "ready", dists: labelsDist(), state: StateReady, charts: 1},
		{name: "empty", dists: []Distribution{}, state: StateEmpty, message: "No labels"},
		{name: "errored", err: boom, state: StateErrored},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p := NewPresenter(loaderFunc(func(context.Context, Request) ([]Distribution, error) {
				return tc.dists, tc.err
			}), PresenterOptions{})

			snap, err := p.Load(context.Background(), Request{Group: "Labels"})
			if !errors.Is(err, tc.err) {
				t.Fatalf("Load() error = %v, want %v", err, tc.err)
			}
			if snap.State != tc.state {
				t.Errorf("State = %s, want %s", snap.State, tc.state)
			}
			if snap.Message != tc.message {
				t.Errorf("Message = %q, want %q", snap.Message, tc.message)
			}
			if len(snap.Charts) != tc.charts {
				t.Errorf("len(Charts) = %d, want %d", len(snap.Charts), tc.charts)
			}
			if snap.Group != "labels" {
				t.Errorf("Group = %q, want labels", snap.Group)
			}
		})
	}
}

func TestPresenter_BeginEntersLoading(t *testing.T) {
	t.Parallel()

	p := NewPresenter(nil, PresenterOptions{})
	p.Begin(Request{Group: "Primitives"})
	snap := p.Snapshot()
	if snap.State != StateLoading || snap.Message != "Loading" || snap.Group != "primitives" {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestPresenter_StaleTicketIsIgnored(t *testing.T) {
	t.Parallel()

	p := NewPresenter(nil, PresenterOptions{})
	first := p.Begin(Request{Group: "labels", Dataset: "a"})
	second := p.Begin(Request{Group: "labels", Dataset: "b"})

	if p.Resolve(first, labelsDist(), nil) {
		t.Fatal("stale ticket resolved")
	}
	if p.Snapshot().State != StateLoading {
		t.Fatalf("stale result changed state to %s", p.Snapshot().State)
	}
	if !p.Resolve(second, []Distribution{}, nil) {
		t.Fatal("current ticket rejected")
	}
	if p.Snapshot().State != StateEmpty {
		t.Errorf("State = %s, want empty", p.Snapshot().State)
	}
	if !p.Resolve(second, labelsDist(), nil) {
		t.Error("current ticket should resolve again")
	}
}

func TestPresenter_SupersededLoadKeepsNewerState(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	p := NewPresenter(loaderFunc(func(ctx context.Context, req Request) ([]Distribution, error) {
		if req.Dataset == "slow" {
			<-release
			return labelsDist(), nil
		}
		return []Distribution{}, nil
	}), PresenterOptions{})

	done := make(chan Snapshot, 1)
	go func() {
		snap, _ := p.Load(context.Background(), Request{Group: "labels", Dataset: "slow"})
		done <- snap
	}()

	// Wait until the slow load has begun before superseding it.
	deadline := time.After(2 * time.Second)
	for p.Snapshot().State != StateLoading || p.Snapshot().Group != "labels" {
		select {
		case <-deadline:
			t.Fatal("slow load never started")
		case <-time.After(time.Millisecond):
		}
	}
	fast, err := p.Load(context.Background(), Request{Group: "labels", Dataset: "fast"})
	if err != nil || fast.State != StateEmpty {
		t.Fatalf("fast Load() = %+v, %v", fast, err)
	}
	close(release)
	slow := <-done
	if slow.State != StateEmpty {
		t.Errorf("superseded load reported %s, want the newer empty state", slow.State)
	}
	if p.Snapshot().State != StateEmpty {
		t.Errorf("final State = %s, want empty", p.Snapshot().State)
	}
}

func TestPresenter_SetLocationRebuildsCharts(t *testing.T) {
	t.Parallel()

	schema := fakeSchema{"created_at": {FieldTypeDateTime}}
	dists := []Distribution{{
		Path: "created_at",
		Data: []Bucket{{Key: "1700000000000", Count: 1, Edges: []Edge{DateEdge(1700000000000), DateEdge(1700000005250)}}},
	}}
	p := NewPresenter(loaderFunc(func(context.Context, Request) ([]Distribution, error) {
		return dists, nil
	}), PresenterOptions{Schema: schema})

	snap, err := p.Load(context.Background(), Request{Group: "labels"})
	if err != nil {
		t.Fatal(err)
	}
	tip, _ := snap.Charts[0].Tooltip(snap.Charts[0].PointAt(0))
	if tip.Title != "Range: 2023-11-14 22:13:20.000 – 22:13:25.250" {
		t.Fatalf("UTC title = %q", tip.Title)
	}

	p.SetLocation(mustLoadLocation(t, "America/New_York"))
	snap = p.Snapshot()
	tip, _ = snap.Charts[0].Tooltip(snap.Charts[0].PointAt(0))
	if tip.Title != "Range: 2023-11-14 17:13:20.000 – 17:13:25.250" {
		t.Errorf("New York title = %q", tip.Title)
	}
}

func TestPresenter_WithFetcher(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	src.results["ds"] = labelsDist()
	p := NewPresenter(newTestFetcher(src), PresenterOptions{})

	for i := 0; i < 2; i++ {
		snap, err := p.Load(context.Background(), Request{Group: "labels", Dataset: "ds"})
		if err != nil || snap.State != StateReady {
			t.Fatalf("Load() = %+v, %v", snap, err)
		}
	}
	if got := src.calls.Load(); got != 1 {
		t.Errorf("source calls = %d, want 1", got)
	}
}

func TestEmptyMessage(t *testing.T) {
	t.Parallel()

	if got := EmptyMessage("Labels"); got != "No labels" {
		t.Errorf("EmptyMessage() = %q", got)
	}
}
