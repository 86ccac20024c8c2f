// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package distributions

import (
	"fmt"
	"reflect"
	"testing"
	"time"
)

func bucketsN(n int) []Bucket {
	out := make([]Bucket, n)
	for i := range out {
		out[i] = Bucket{Key: fmt.Sprintf("v%d", i), Count: int64(i)}
	}
	return out
}

func TestBuildChart_TruncationTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		buckets   int
		title     string
		truncated bool
	}{
		{name: "below limit", buckets: Limit - 1, title: "label", truncated: false},
		{name: "at limit", buckets: Limit, title: "label (first 200)", truncated: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			d := Distribution{Path: "label", Type: "StringField", Data: bucketsN(tc.buckets)}
			c := BuildChart(d, Categorical(), ChartOptions{})
			if c.Title != tc.title {
				t.Errorf("Title = %q, want %q", c.Title, tc.title)
			}
			if c.Truncated != tc.truncated {
				t.Errorf("Truncated = %v, want %v", c.Truncated, tc.truncated)
			}
			if len(c.Bars) != tc.buckets {
				t.Errorf("len(Bars) = %d, want %d", len(c.Bars), tc.buckets)
			}
		})
	}
}

func TestChart_Tooltip(t *testing.T) {
	t.Parallel()

	d := Distribution{
		Path: "score",
		Type: "FloatField",
		Data: []Bucket{
			{Key: "0.1666", Count: 3, Edges: []Edge{NumberEdge(0), NumberEdge(0.3332)}},
			{Key: "0.5", Count: 0, Edges: []Edge{NumberEdge(0.3332), NumberEdge(0.6664)}},
			{Key: "other", Count: 1},
		},
	}
	c := BuildChart(d, Classify(d, nil, time.UTC), ChartOptions{})

	tip, ok := c.Tooltip(c.PointAt(0))
	if !ok {
		t.Fatal("expected tooltip for first bar")
	}
	if tip.Title != "Range: [0.000, 0.333)" || tip.Count != 3 {
		t.Errorf("tooltip = %+v", tip)
	}
	if tip.String() != "Range: [0.000, 0.333)\nCount: 3" {
		t.Errorf("String() = %q", tip.String())
	}

	zero, ok := c.Tooltip(c.PointAt(1))
	if !ok || zero.Count != 0 || zero.Title != "Range: [0.333, 0.666)" {
		t.Errorf("zero-count tooltip = %+v, ok=%v", zero, ok)
	}

	plain, ok := c.Tooltip(c.PointAt(2))
	if !ok || plain.Title != "Value: other" {
		t.Errorf("edgeless tooltip = %+v, ok=%v", plain, ok)
	}

	if _, ok := c.Tooltip(Point{Key: "0.1666"}); ok {
		t.Error("point without count must not produce a tooltip")
	}

	n := int64(9)
	unknown, ok := c.Tooltip(Point{Key: "missing", Count: &n})
	if !ok || unknown.Title != "Value: missing" {
		t.Errorf("unknown key tooltip = %+v, ok=%v", unknown, ok)
	}
}

func TestChart_TooltipUsesDisplayKey(t *testing.T) {
	t.Parallel()

	d := Distribution{
		Path: "flag",
		Type: "BooleanField",
		Data: []Bucket{{Key: "true", Count: 5}, {Key: "null", Count: 2}},
	}
	c := BuildChart(d, Categorical(), ChartOptions{})
	if c.Bars[0].Key != "True" || c.Bars[1].Key != "None" {
		t.Fatalf("bars = %+v", c.Bars)
	}
	tip, _ := c.Tooltip(c.PointAt(1))
	if tip.Title != "Value: None" {
		t.Errorf("Title = %q, want %q", tip.Title, "Value: None")
	}
}

func TestChart_NearlyEqualKeysKeepTheirEdges(t *testing.T) {
	t.Parallel()

	d := Distribution{
		Path: "ratio",
		Type: "FloatField",
		Data: []Bucket{
			{Key: "1", Count: 1, Edges: []Edge{NumberEdge(0.5), NumberEdge(1.0001)}},
			{Key: "1.0001", Count: 2, Edges: []Edge{NumberEdge(1.0001), NumberEdge(1.5)}},
		},
	}
	c := BuildChart(d, Classify(d, nil, time.UTC), ChartOptions{})
	if c.Bars[0].Key == c.Bars[1].Key {
		t.Fatalf("distinct buckets share display key %q", c.Bars[0].Key)
	}

	first, _ := c.Tooltip(c.PointAt(0))
	second, _ := c.Tooltip(c.PointAt(1))
	if first.Count != 1 || second.Count != 2 {
		t.Errorf("counts = %d, %d", first.Count, second.Count)
	}
	if first.Title != "Range: [0.500, 1.000)" {
		t.Errorf("first Title = %q", first.Title)
	}
	if second.Title != "Range: [1.000, 1.500)" {
		t.Errorf("second Title = %q", second.Title)
	}
}

func TestChart_TemporalTicks(t *testing.T) {
	t.Parallel()

	d := Distribution{
		Path: "created_at",
		Data: []Bucket{{Key: "1700000000000", Count: 1, Edges: []Edge{DateEdge(1700000000000), DateEdge(1700000005250)}}},
	}
	c := BuildChart(d, Temporal(time.UTC), ChartOptions{})
	if c.Bars[0].Tick != "2023-11-14 22:13:20" {
		t.Errorf("Tick = %q", c.Bars[0].Tick)
	}
	tip, _ := c.Tooltip(c.PointAt(0))
	if tip.Title != "Range: 2023-11-14 22:13:20.000 – 22:13:25.250" {
		t.Errorf("Title = %q", tip.Title)
	}
}

func TestChart_MaxCount(t *testing.T) {
	t.Parallel()

	c := BuildChart(Distribution{Data: []Bucket{{Key: "a", Count: 2}, {Key: "b", Count: 7}, {Key: "c", Count: 1}}}, Categorical(), ChartOptions{})
	if c.MaxCount() != 7 {
		t.Errorf("MaxCount() = %d, want 7", c.MaxCount())
	}
	if (Chart{}).MaxCount() != 0 {
		t.Error("empty chart MaxCount should be 0")
	}
}

func TestTickConfig_Indices(t *testing.T) {
	t.Parallel()

	five := 5
	zero := 0

	tests := []struct {
		name     string
		ticks    *int
		n        int
		room     int
		expected []int
	}{
		{name: "default shows all", ticks: nil, n: 4, room: 2, expected: []int{0, 1, 2, 3}},
		{name: "auto fits", ticks: &zero, n: 4, room: 10, expected: []int{0, 1, 2, 3}},
		{name: "auto thins", ticks: &zero, n: 10, room: 3, expected: []int{0, 4, 8}},
		{name: "exact spacing", ticks: &five, n: 9, room: 0, expected: []int{0, 2, 4, 6, 8}},
		{name: "exact more than buckets", ticks: &five, n: 3, room: 0, expected: []int{0, 1, 2}},
		{name: "no buckets", ticks: &five, n: 0, room: 0, expected: nil},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := TickConfigFor(tc.ticks).Indices(tc.n, tc.room)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Indices() = %v, want %v", got, tc.expected)
			}
		})
	}
}
