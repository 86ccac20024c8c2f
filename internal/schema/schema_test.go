// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/elastic/histocat/internal/distributions"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write schema file: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, `
fields:
  created_at: DateTimeField
  birthday: " DateField "
  label: StringField
`)

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	tests := []struct {
		path     string
		ftype    distributions.FieldType
		expected bool
	}{
		{"created_at", distributions.FieldTypeDateTime, true},
		{"created_at", distributions.FieldTypeDate, false},
		{"birthday", distributions.FieldTypeDate, true},
		{"label", distributions.FieldTypeDateTime, false},
		{"missing", distributions.FieldTypeDate, false},
	}
	for _, tc := range tests {
		if got := s.MeetsType(tc.path, tc.ftype); got != tc.expected {
			t.Errorf("MeetsType(%q, %s) = %v, want %v", tc.path, tc.ftype, got, tc.expected)
		}
	}

	if got := s.Paths(); !reflect.DeepEqual(got, []string{"birthday", "created_at", "label"}) {
		t.Errorf("Paths() = %v", got)
	}
	if ft, ok := s.TypeOf("label"); !ok || ft != "StringField" {
		t.Errorf("TypeOf(label) = %q, %v", ft, ok)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()
		if _, err := LoadFile(writeFile(t, "fields: [unclosed")); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("empty type", func(t *testing.T) {
		t.Parallel()
		if _, err := LoadFile(writeFile(t, "fields:\n  created_at: \"\"\n")); err == nil {
			t.Error("expected error for empty type")
		}
	})
}

func TestStatic_NilIsSafe(t *testing.T) {
	t.Parallel()

	var s *Static
	if s.MeetsType("x", distributions.FieldTypeDate) {
		t.Error("nil Static should not match")
	}
	if s.Paths() != nil {
		t.Error("nil Static should have no paths")
	}
}

func TestComposite(t *testing.T) {
	t.Parallel()

	file := NewStatic(map[string]distributions.FieldType{"birthday": distributions.FieldTypeDate})
	caps := NewStatic(map[string]distributions.FieldType{"created_at": distributions.FieldTypeDateTime})
	c := Composite{nil, file, caps}

	if !c.MeetsType("birthday", distributions.FieldTypeDate) {
		t.Error("expected birthday from first lookup")
	}
	if !c.MeetsType("created_at", distributions.FieldTypeDateTime) {
		t.Error("expected created_at from second lookup")
	}
	if c.MeetsType("label", distributions.FieldTypeDateTime) {
		t.Error("unexpected match for label")
	}
}

func TestStatic_DrivesClassification(t *testing.T) {
	t.Parallel()

	s := NewStatic(map[string]distributions.FieldType{
		"created_at": distributions.FieldTypeDateTime,
		"birthday":   distributions.FieldTypeDate,
	})
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("timezone unavailable: %v", err)
	}

	dt := distributions.Classify(distributions.Distribution{Path: "created_at"}, s, tokyo)
	if !dt.IsTemporal() || dt.Location != tokyo {
		t.Errorf("created_at classified as %s", dt)
	}
	d := distributions.Classify(distributions.Distribution{Path: "birthday"}, s, tokyo)
	if !d.IsTemporal() || d.Location != time.UTC {
		t.Errorf("birthday classified as %s", d)
	}
}
