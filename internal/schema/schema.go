// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

// Package schema answers which dataset fields hold dates. Answers come from
// a static YAML file, from Elasticsearch field capabilities, or both.
package schema

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/elastic/histocat/internal/distributions"
)

// Lookup is the schema collaborator used by the classifier.
type Lookup = distributions.SchemaLookup

// Static is a fixed path -> declared type table.
type Static struct {
	types map[string]distributions.FieldType
}

var _ Lookup = (*Static)(nil)

// NewStatic creates a lookup from a path -> type map.
func NewStatic(types map[string]distributions.FieldType) *Static {
	s := &Static{types: make(map[string]distributions.FieldType, len(types))}
	for path, t := range types {
		s.types[path] = t
	}
	return s
}

// File is the on-disk format of a schema file:
//
//	fields:
//	  created_at: DateTimeField
//	  birthday: DateField
type File struct {
	Fields map[string]string `yaml:"fields"`
}

// LoadFile reads a YAML schema file.
func LoadFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse schema file %s: %w", path, err)
	}

	types := make(map[string]distributions.FieldType, len(f.Fields))
	for field, t := range f.Fields {
		t = strings.TrimSpace(t)
		if t == "" {
			return nil, fmt.Errorf("schema file %s: field %q has no type", path, field)
		}
		types[field] = distributions.FieldType(t)
	}
	return NewStatic(types), nil
}

// MeetsType reports whether path was declared with ftype.
func (s *Static) MeetsType(path string, ftype distributions.FieldType) bool {
	if s == nil {
		return false
	}
	t, ok := s.types[path]
	return ok && t == ftype
}

// TypeOf returns the declared type of path.
func (s *Static) TypeOf(path string) (distributions.FieldType, bool) {
	if s == nil {
		return "", false
	}
	t, ok := s.types[path]
	return t, ok
}

// Paths returns the declared paths in sorted order.
func (s *Static) Paths() []string {
	if s == nil {
		return nil
	}
	paths := make([]string, 0, len(s.types))
	for p := range s.types {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Composite asks each lookup in order and answers true on the first match.
type Composite []Lookup

var _ Lookup = Composite(nil)

// MeetsType implements Lookup.
func (c Composite) MeetsType(path string, ftype distributions.FieldType) bool {
	for _, l := range c {
		if l != nil && l.MeetsType(path, ftype) {
			return true
		}
	}
	return false
}
