// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

// Package state holds the session the distributions are scoped to: the
// dataset, view, filters and display timezone, plus a refresh token that
// is bumped whenever the dataset is mutated.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
	_ "time/tzdata" // timezones named in state files must resolve without system tzdata

	"gopkg.in/yaml.v3"

	"github.com/elastic/histocat/internal/distributions"
)

// Session is the on-disk state file.
//
//	dataset: quickstart
//	view:
//	  - {_cls: Limit, n: 100}
//	filters:
//	  label: {values: [cat]}
//	timezone: America/New_York
type Session struct {
	Dataset  string    `yaml:"dataset"`
	View     yaml.Node `yaml:"view"`
	Filters  yaml.Node `yaml:"filters"`
	Timezone string    `yaml:"timezone"`
}

// Snapshot is a read-only view of the session at one point in time.
type Snapshot struct {
	Dataset  string
	View     json.RawMessage
	Filters  json.RawMessage
	Location *time.Location // nil when the state file sets no timezone
	Refresh  uint64
}

// Request returns the distributions request for group in this snapshot.
func (s Snapshot) Request(group string) distributions.Request {
	return distributions.Request{
		Group:   group,
		Dataset: s.Dataset,
		View:    s.View,
		Filters: s.Filters,
		Refresh: s.Refresh,
	}
}

// Store is the shared, concurrently readable session.
type Store struct {
	mu      sync.RWMutex
	path    string
	current Snapshot
}

// NewStore creates a store with an initial snapshot. Refresh is ignored.
func NewStore(initial Snapshot) *Store {
	initial.Refresh = 0
	return &Store{current: initial}
}

// Open loads the state file at path into a new store.
func Open(path string) (*Store, error) {
	snap, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	s := NewStore(snap)
	s.path = path
	return s, nil
}

// Path returns the state file backing the store, if any.
func (s *Store) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// Snapshot returns the current session.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Bump advances the refresh token and returns the new value.
func (s *Store) Bump() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Refresh++
	return s.current.Refresh
}

// Replace swaps in a new session, keeping the refresh token.
func (s *Store) Replace(next Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next.Refresh = s.current.Refresh
	s.current = next
}

// Reload re-reads the backing state file. On error the current session is
// kept.
func (s *Store) Reload() (Snapshot, error) {
	path := s.Path()
	if path == "" {
		return s.Snapshot(), nil
	}
	next, err := LoadFile(path)
	if err != nil {
		return s.Snapshot(), err
	}
	s.Replace(next)
	return s.Snapshot(), nil
}

// LoadFile parses a state file.
func LoadFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read state file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a state document. View and filters may be any YAML value
// and are carried as JSON.
func Parse(data []byte) (Snapshot, error) {
	var sess Session
	if err := yaml.Unmarshal(data, &sess); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse state file: %w", err)
	}

	view, err := nodeJSON(&sess.View)
	if err != nil {
		return Snapshot{}, fmt.Errorf("invalid view: %w", err)
	}
	filters, err := nodeJSON(&sess.Filters)
	if err != nil {
		return Snapshot{}, fmt.Errorf("invalid filters: %w", err)
	}

	snap := Snapshot{Dataset: sess.Dataset, View: view, Filters: filters}
	if sess.Timezone != "" {
		loc, err := time.LoadLocation(sess.Timezone)
		if err != nil {
			return Snapshot{}, fmt.Errorf("invalid timezone %q: %w", sess.Timezone, err)
		}
		snap.Location = loc
	}
	return snap, nil
}

func nodeJSON(n *yaml.Node) (json.RawMessage, error) {
	if n.Kind == 0 {
		return nil, nil
	}
	var v interface{}
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	v = jsonCompatible(v)
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

// jsonCompatible converts YAML maps with non-string keys into string-keyed
// maps so the value can be encoded as JSON.
func jsonCompatible(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = jsonCompatible(val)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = jsonCompatible(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = jsonCompatible(val)
		}
		return out
	default:
		return v
	}
}
