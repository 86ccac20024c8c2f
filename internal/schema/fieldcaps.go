// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/elastic/histocat/internal/distributions"
)

// ESOptions holds connection settings for the field caps lookup.
type ESOptions struct {
	URL      string
	APIKey   string
	Username string
	Password string
}

// NewESClient creates an Elasticsearch client.
func NewESClient(opts ESOptions) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{opts.URL},
		APIKey:    opts.APIKey,
	}
	if opts.APIKey == "" {
		cfg.Username = opts.Username
		cfg.Password = opts.Password
	}

	es, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create ES client: %w", err)
	}
	return es, nil
}

// Elasticsearch types reported as date-time.
var dateTimeTypes = map[string]bool{
	"date":       true,
	"date_nanos": true,
}

// LoadFieldCaps builds a lookup from the field capabilities of index.
// Date-typed fields are date-times unless listed in dateOnly, in which
// case they are calendar dates.
func LoadFieldCaps(ctx context.Context, es *elasticsearch.Client, index string, dateOnly []string) (*Static, error) {
	res, err := es.FieldCaps(
		es.FieldCaps.WithContext(ctx),
		es.FieldCaps.WithIndex(index),
		es.FieldCaps.WithFields("*"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get field caps: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("field caps failed: %s - %s", res.Status(), string(body))
	}

	var response struct {
		Fields map[string]map[string]struct {
			Type string `json:"type"`
		} `json:"fields"`
	}
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode field caps: %w", err)
	}

	dates := make(map[string]bool, len(dateOnly))
	for _, f := range dateOnly {
		dates[f] = true
	}

	types := make(map[string]distributions.FieldType)
	for name, typeMap := range response.Fields {
		// Skip metadata fields
		if len(name) > 0 && name[0] == '_' {
			continue
		}
		// A field mapped differently across indices counts as temporal if
		// any index maps it as a date.
		for typeName := range typeMap {
			if !dateTimeTypes[typeName] {
				continue
			}
			if dates[name] {
				types[name] = distributions.FieldTypeDate
			} else {
				types[name] = distributions.FieldTypeDateTime
			}
			break
		}
	}
	return NewStatic(types), nil
}
