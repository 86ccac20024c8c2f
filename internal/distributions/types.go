// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

// Package distributions interprets pre-aggregated per-field histograms:
// it fetches and caches them per group, classifies each field's values and
// turns raw bucket edges into human-readable labels and tooltips.
package distributions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Limit is the maximum number of buckets requested per field. A field that
// comes back with Limit buckets is shown as truncated.
const Limit = 200

// Distribution is the histogram of a single field.
type Distribution struct {
	Path  string   `json:"path"`            // Dot-addressable field path, unique within a group
	Type  string   `json:"type"`            // Declared field type tag (e.g., "IntField", "FloatField")
	Data  []Bucket `json:"data"`            // Buckets in server order
	Ticks *int     `json:"ticks,omitempty"` // nil = not set, 0 = auto, n > 0 = exactly n ticks
}

// Truncated reports whether the server returned as many buckets as were requested.
func (d Distribution) Truncated() bool {
	return len(d.Data) >= Limit
}

// Bucket is one histogram bar.
type Bucket struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
	Edges []Edge `json:"edges,omitempty"` // [lower, upper) for ordinal fields
}

// UnmarshalJSON accepts non-string keys (numbers, booleans, null) and keeps
// their literal JSON text so the prettifier can render them. Edges that do
// not decode are dropped so the bucket degrades to a key-only label.
func (b *Bucket) UnmarshalJSON(data []byte) error {
	var raw struct {
		Key   json.RawMessage   `json:"key"`
		Count int64             `json:"count"`
		Edges []json.RawMessage `json:"edges"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.Key = keyText(raw.Key)
	b.Count = raw.Count
	b.Edges = decodeEdges(raw.Edges)
	return nil
}

func decodeEdges(raw []json.RawMessage) []Edge {
	if len(raw) == 0 {
		return nil
	}
	edges := make([]Edge, 0, len(raw))
	for _, r := range raw {
		var e Edge
		if err := e.UnmarshalJSON(r); err != nil {
			return nil
		}
		edges = append(edges, e)
	}
	return edges
}

func keyText(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "null"
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	return string(trimmed)
}

// Edge is a bucket boundary. Temporal boundaries arrive as {"$date": millis},
// numeric ones as plain JSON numbers.
type Edge struct {
	Value float64 // Numeric value, or epoch milliseconds when Date is set
	Date  bool
}

// NumberEdge returns a numeric boundary.
func NumberEdge(v float64) Edge {
	return Edge{Value: v}
}

// DateEdge returns a temporal boundary from epoch milliseconds.
func DateEdge(millis int64) Edge {
	return Edge{Value: float64(millis), Date: true}
}

// Millis returns the boundary as epoch milliseconds.
func (e Edge) Millis() int64 {
	return int64(e.Value)
}

// UnmarshalJSON decodes either a number or a {"$date": millis} object.
func (e *Edge) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapped struct {
			Date *json.Number `json:"$date"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return err
		}
		if wrapped.Date == nil {
			return fmt.Errorf("edge object without $date: %s", string(trimmed))
		}
		v, err := wrapped.Date.Float64()
		if err != nil {
			return fmt.Errorf("edge $date: %w", err)
		}
		*e = Edge{Value: v, Date: true}
		return nil
	}
	v, err := strconv.ParseFloat(string(trimmed), 64)
	if err != nil {
		return fmt.Errorf("edge value %s: %w", string(trimmed), err)
	}
	*e = Edge{Value: v}
	return nil
}

// MarshalJSON encodes the edge in the same shape it was received in.
func (e Edge) MarshalJSON() ([]byte, error) {
	if e.Date {
		return json.Marshal(map[string]int64{"$date": e.Millis()})
	}
	return json.Marshal(e.Value)
}
