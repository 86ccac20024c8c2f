// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elastic/histocat/internal/distributions"
)

// newESServer fakes an Elasticsearch node answering _field_caps.
func newESServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		if !strings.HasSuffix(r.URL.Path, "/_field_caps") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestLoadFieldCaps(t *testing.T) {
	t.Parallel()

	server := newESServer(t, http.StatusOK, `{
		"indices": ["quickstart"],
		"fields": {
			"created_at": {"date": {"type": "date", "searchable": true, "aggregatable": true}},
			"ingested": {"date_nanos": {"type": "date_nanos", "searchable": true, "aggregatable": true}},
			"birthday": {"date": {"type": "date", "searchable": true, "aggregatable": true}},
			"label": {"keyword": {"type": "keyword", "searchable": true, "aggregatable": true}},
			"mixed": {"keyword": {"type": "keyword"}, "date": {"type": "date"}},
			"_id": {"_id": {"type": "_id"}}
		}
	}`)

	es, err := NewESClient(ESOptions{URL: server.URL, APIKey: "secret"})
	if err != nil {
		t.Fatalf("NewESClient() error = %v", err)
	}

	s, err := LoadFieldCaps(context.Background(), es, "quickstart", []string{"birthday"})
	if err != nil {
		t.Fatalf("LoadFieldCaps() error = %v", err)
	}

	tests := []struct {
		path     string
		ftype    distributions.FieldType
		expected bool
	}{
		{"created_at", distributions.FieldTypeDateTime, true},
		{"ingested", distributions.FieldTypeDateTime, true},
		{"birthday", distributions.FieldTypeDate, true},
		{"birthday", distributions.FieldTypeDateTime, false},
		{"mixed", distributions.FieldTypeDateTime, true},
		{"label", distributions.FieldTypeDateTime, false},
		{"_id", distributions.FieldTypeDateTime, false},
	}
	for _, tc := range tests {
		if got := s.MeetsType(tc.path, tc.ftype); got != tc.expected {
			t.Errorf("MeetsType(%q, %s) = %v, want %v", tc.path, tc.ftype, got, tc.expected)
		}
	}
}

func TestLoadFieldCaps_Error(t *testing.T) {
	t.Parallel()

	server := newESServer(t, http.StatusNotFound, `{"error": {"type": "index_not_found_exception"}, "status": 404}`)

	es, err := NewESClient(ESOptions{URL: server.URL, Username: "elastic", Password: "changeme"})
	if err != nil {
		t.Fatalf("NewESClient() error = %v", err)
	}

	_, err = LoadFieldCaps(context.Background(), es, "missing", nil)
	if err == nil || !strings.Contains(err.Error(), "index_not_found_exception") {
		t.Errorf("expected field caps error, got %v", err)
	}
}
