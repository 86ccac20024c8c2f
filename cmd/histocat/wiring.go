// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/elastic/histocat/internal/backend"
	"github.com/elastic/histocat/internal/config"
	"github.com/elastic/histocat/internal/distributions"
	"github.com/elastic/histocat/internal/otlp"
	"github.com/elastic/histocat/internal/schema"
	"github.com/elastic/histocat/internal/state"
)

// app holds the components every command builds from the loaded config.
type app struct {
	cfg       config.Config
	logs      *otlp.Client // nil when log export is disabled
	backend   *backend.Client
	schema    schema.Composite
	store     *state.Store
	fetcher   *distributions.Fetcher
	location  *time.Location
	formatter distributions.Formatter
}

// newApp wires the components described by the config stored in ctx.
func newApp(ctx context.Context) (*app, error) {
	cfg, ok := config.FromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("configuration not loaded")
	}

	a := &app{
		cfg:       cfg,
		formatter: distributions.Formatter{DateLayout: cfg.Display.DateLayout},
	}

	if cfg.OTLP.Endpoint != "" {
		logs, err := otlp.New(ctx, otlp.Config{
			Endpoint:       cfg.OTLP.Endpoint,
			ServiceVersion: version,
			Insecure:       cfg.OTLP.Insecure,
		})
		if err != nil {
			return nil, err
		}
		// Installed before the fetcher so it picks up the exporting provider.
		logs.Install()
		a.logs = logs
	}

	loc, err := cfg.Display.Location()
	if err != nil {
		a.Close(ctx)
		return nil, err
	}
	a.location = loc

	lookup, err := loadSchema(ctx, cfg)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}
	a.schema = lookup

	store, err := openStore(cfg.State)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}
	a.store = store

	a.backend = backend.NewClient(backend.ClientOptions{
		URL:      cfg.Backend.URL,
		APIKey:   cfg.Backend.APIKey,
		Username: cfg.Backend.Username,
		Password: cfg.Backend.Password,
		Timeout:  cfg.Backend.Timeout,
	})
	a.fetcher = distributions.NewFetcher(a.backend, distributions.WithTimeout(cfg.Backend.Timeout))
	return a, nil
}

// loadSchema combines the schema file, the date-only field list and the
// Elasticsearch field caps. Earlier sources win.
func loadSchema(ctx context.Context, cfg config.Config) (schema.Composite, error) {
	var lookup schema.Composite

	if cfg.Schema.File != "" {
		file, err := schema.LoadFile(cfg.Schema.File)
		if err != nil {
			return nil, err
		}
		lookup = append(lookup, file)
	}

	if len(cfg.Schema.DateFields) > 0 {
		types := make(map[string]distributions.FieldType, len(cfg.Schema.DateFields))
		for _, path := range cfg.Schema.DateFields {
			types[path] = distributions.FieldTypeDate
		}
		lookup = append(lookup, schema.NewStatic(types))
	}

	if cfg.ES.URL != "" {
		es, err := schema.NewESClient(schema.ESOptions{
			URL:      cfg.ES.URL,
			APIKey:   cfg.ES.APIKey,
			Username: cfg.ES.Username,
			Password: cfg.ES.Password,
		})
		if err != nil {
			return nil, err
		}
		capsCtx, cancel := context.WithTimeout(ctx, cfg.ES.Timeout)
		defer cancel()
		caps, err := schema.LoadFieldCaps(capsCtx, es, cfg.ES.Index, cfg.Schema.DateFields)
		if err != nil {
			return nil, err
		}
		lookup = append(lookup, caps)
	}

	return lookup, nil
}

// openStore loads the state file if one is configured. A --dataset value
// overrides the file's dataset.
func openStore(cfg config.StateConfig) (*state.Store, error) {
	if cfg.File == "" {
		return state.NewStore(state.Snapshot{Dataset: cfg.Dataset}), nil
	}
	store, err := state.Open(cfg.File)
	if err != nil {
		return nil, err
	}
	if cfg.Dataset != "" {
		snap := store.Snapshot()
		snap.Dataset = cfg.Dataset
		store.Replace(snap)
	}
	return store, nil
}

// presenter creates a presenter for the current session. The state file's
// timezone wins over the configured one.
func (a *app) presenter() *distributions.Presenter {
	return distributions.NewPresenter(a.fetcher, distributions.PresenterOptions{
		Schema:    a.schema,
		Location:  a.displayLocation(),
		Formatter: a.formatter,
	})
}

func (a *app) displayLocation() *time.Location {
	if loc := a.store.Snapshot().Location; loc != nil {
		return loc
	}
	return a.location
}

// Close flushes exported logs.
func (a *app) Close(ctx context.Context) {
	if a.logs == nil {
		return
	}
	if err := a.logs.Close(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to close OTLP client: %v\n", err)
	}
	a.logs = nil
}
