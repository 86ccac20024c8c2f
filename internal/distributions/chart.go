// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package distributions

import (
	"fmt"
	"strconv"
)

// TickMode selects how the category axis is ticked.
type TickMode int

const (
	TickDefault TickMode = iota // No ticks setting was sent; widget default
	TickAuto                    // Sparse ticks chosen by the widget
	TickExact                   // Exactly Count ticks
)

// TickConfig is the axis tick setting of a chart.
type TickConfig struct {
	Mode  TickMode
	Count int
}

// TickConfigFor converts a distribution's ticks field.
func TickConfigFor(ticks *int) TickConfig {
	switch {
	case ticks == nil:
		return TickConfig{Mode: TickDefault}
	case *ticks <= 0:
		return TickConfig{Mode: TickAuto}
	default:
		return TickConfig{Mode: TickExact, Count: *ticks}
	}
}

// Indices returns the bucket positions that get a tick label for a chart
// with n buckets when at most room labels fit. room <= 0 means unlimited.
func (t TickConfig) Indices(n, room int) []int {
	if n <= 0 {
		return nil
	}
	switch t.Mode {
	case TickExact:
		return evenlySpaced(n, t.Count)
	case TickAuto:
		if room > 0 && n > room {
			step := (n + room - 1) / room
			out := make([]int, 0, room)
			for i := 0; i < n; i += step {
				out = append(out, i)
			}
			return out
		}
	}
	all := make([]int, n)
	for i := range all {
		all[i] = i
	}
	return all
}

func evenlySpaced(n, count int) []int {
	if count >= n {
		count = n
	}
	if count <= 1 {
		return []int{0}
	}
	out := make([]int, count)
	for i := range out {
		out[i] = i * (n - 1) / (count - 1)
	}
	return out
}

// Point is a hovered chart point as reported by a chart widget. A nil
// Count means the point carries no count and no tooltip is shown.
type Point struct {
	Key   string
	Count *int64
}

// Bar is one rendered bucket.
type Bar struct {
	Key   string // Display key (prettified unless temporal)
	Tick  string // Axis label
	Count int64
}

// Tooltip is the content shown for a hovered bar.
type Tooltip struct {
	Title string
	Count int64
}

// String renders the title and count on two lines.
func (t Tooltip) String() string {
	return t.Title + "\nCount: " + strconv.FormatInt(t.Count, 10)
}

// Chart is the ready-to-render model of one distribution.
type Chart struct {
	Path           string
	Title          string
	Type           string
	Classification Classification
	Ticks          TickConfig
	Bars           []Bar
	Truncated      bool

	edges     map[string][]Edge
	formatter Formatter
}

// ChartOptions controls how charts are built.
type ChartOptions struct {
	Formatter Formatter
	Prettify  Prettifier
}

// BuildChart turns d into a Chart using classification c.
func BuildChart(d Distribution, c Classification, opts ChartOptions) Chart {
	chart := Chart{
		Path:           d.Path,
		Title:          d.Path,
		Type:           d.Type,
		Classification: c,
		Ticks:          TickConfigFor(d.Ticks),
		Bars:           make([]Bar, 0, len(d.Data)),
		Truncated:      d.Truncated(),
		edges:          make(map[string][]Edge, len(d.Data)),
		formatter:      opts.Formatter,
	}
	if chart.Truncated {
		chart.Title = fmt.Sprintf("%s (first %d)", d.Path, len(d.Data))
	}
	for _, b := range d.Data {
		key := BucketLabel(b.Key, c, opts.Prettify)
		chart.Bars = append(chart.Bars, Bar{
			Key:   key,
			Tick:  opts.Formatter.TickLabel(key, c),
			Count: b.Count,
		})
		chart.edges[key] = b.Edges
	}
	return chart
}

// PointAt returns the point of bar i, as a widget would report it on hover.
func (c Chart) PointAt(i int) Point {
	if i < 0 || i >= len(c.Bars) {
		return Point{}
	}
	count := c.Bars[i].Count
	return Point{Key: c.Bars[i].Key, Count: &count}
}

// Tooltip returns the tooltip of a hovered point. It returns false when
// the point has no count. A key without recorded edges gets a
// "Value: <key>" title.
func (c Chart) Tooltip(p Point) (Tooltip, bool) {
	if p.Count == nil {
		return Tooltip{}, false
	}
	title := valueLabel(p.Key)
	if edges, ok := c.edges[p.Key]; ok && len(edges) > 0 {
		title = c.formatter.FormatBucket(p.Key, edges, c.Classification)
	}
	return Tooltip{Title: title, Count: *p.Count}, true
}

// MaxCount returns the largest bucket count.
func (c Chart) MaxCount() int64 {
	var max int64
	for _, b := range c.Bars {
		if b.Count > max {
			max = b.Count
		}
	}
	return max
}
