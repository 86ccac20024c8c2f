// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

package distributions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	"golang.org/x/sync/singleflight"
)

const instrumentationName = "github.com/elastic/histocat/internal/distributions"

// Query is the payload of one distributions call.
type Query struct {
	Group   string          // Lowercased group name
	Limit   int             // Maximum buckets per field
	View    json.RawMessage // Opaque view descriptor
	Dataset string          // Dataset identifier
	Filters json.RawMessage // Opaque filter descriptor
}

// Source performs the remote distributions call.
type Source interface {
	FetchDistributions(ctx context.Context, q Query) ([]Distribution, error)
}

// Request identifies what to fetch: a group scoped to the current dataset,
// view and filters. Refresh is bumped externally to force a new fetch.
type Request struct {
	Group   string
	Dataset string
	View    json.RawMessage
	Filters json.RawMessage
	Refresh uint64
}

// Key is the comparable cache key of a Request.
type Key struct {
	Group   string
	Dataset string
	View    string
	Filters string
	Refresh uint64
}

// Key returns the cache key. View and filters compare by their compact
// JSON encoding so formatting differences don't split the cache.
func (r Request) Key() Key {
	return Key{
		Group:   strings.ToLower(r.Group),
		Dataset: r.Dataset,
		View:    canonicalJSON(r.View),
		Filters: canonicalJSON(r.Filters),
		Refresh: r.Refresh,
	}
}

func (k Key) String() string {
	return fmt.Sprintf("%s\x00%s\x00%s\x00%s\x00%d", k.Group, k.Dataset, k.View, k.Filters, k.Refresh)
}

func canonicalJSON(raw json.RawMessage) string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return "null"
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// ErrFetch matches every FetchError with errors.Is.
var ErrFetch = errors.New("distributions fetch failed")

// FetchError reports a failed network call or undecodable response.
type FetchError struct {
	Group string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s distributions: %v", e.Group, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrFetch) true for any FetchError.
func (e *FetchError) Is(target error) bool { return target == ErrFetch }

type cacheEntry struct {
	key   Key
	dists []Distribution
}

// Fetcher memoizes distributions per request key and coalesces concurrent
// identical requests into one call. It keeps one entry per group: the
// result for the most recently requested key of that group.
type Fetcher struct {
	source  Source
	timeout time.Duration
	logger  log.Logger

	mu      sync.Mutex
	entries map[string]cacheEntry
	latest  map[string]Key
	flight  singleflight.Group
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithLogger sets the OpenTelemetry logger used for fetch diagnostics.
func WithLogger(l log.Logger) FetcherOption {
	return func(f *Fetcher) { f.logger = l }
}

// WithTimeout bounds each remote call. Zero means no bound beyond the
// caller's context values.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) { f.timeout = d }
}

// NewFetcher creates a Fetcher on top of src.
func NewFetcher(src Source, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		source:  src,
		entries: make(map[string]cacheEntry),
		latest:  make(map[string]Key),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = global.GetLoggerProvider().Logger(instrumentationName)
	}
	return f
}

// Fetch returns the distributions for req, from cache when the exact key
// was fetched before. Concurrent callers with the same key share a single
// remote call; each caller stops waiting when its own ctx is done, without
// canceling the shared call. Failures are never cached.
func (f *Fetcher) Fetch(ctx context.Context, req Request) ([]Distribution, error) {
	key := req.Key()

	f.mu.Lock()
	f.latest[key.Group] = key
	dists, ok := f.cachedLocked(key)
	f.mu.Unlock()
	if ok {
		f.emit(ctx, log.SeverityDebug, "distributions cache hit", key,
			log.Int("distributions.count", len(dists)))
		return dists, nil
	}

	shared := context.WithoutCancel(ctx)
	ch := f.flight.DoChan(key.String(), func() (interface{}, error) {
		return f.load(shared, key, req)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]Distribution), nil
	}
}

// Cached returns the cached distributions for req without fetching.
func (f *Fetcher) Cached(req Request) ([]Distribution, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cachedLocked(req.Key())
}

// Invalidate drops the cached entry of a group.
func (f *Fetcher) Invalidate(group string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, strings.ToLower(group))
}

func (f *Fetcher) cachedLocked(key Key) ([]Distribution, bool) {
	e, ok := f.entries[key.Group]
	if !ok || e.key != key {
		return nil, false
	}
	return e.dists, true
}

func (f *Fetcher) load(ctx context.Context, key Key, req Request) ([]Distribution, error) {
	// A call for this key may have finished between the cache check and
	// joining the flight.
	f.mu.Lock()
	if dists, ok := f.cachedLocked(key); ok {
		f.mu.Unlock()
		return dists, nil
	}
	f.mu.Unlock()

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	start := time.Now()
	dists, err := f.source.FetchDistributions(ctx, Query{
		Group:   key.Group,
		Limit:   Limit,
		View:    req.View,
		Dataset: req.Dataset,
		Filters: req.Filters,
	})
	elapsed := time.Since(start)
	if err != nil {
		f.emit(ctx, log.SeverityError, "distributions fetch failed", key,
			log.String("error.message", err.Error()),
			log.Int64("duration_ms", elapsed.Milliseconds()))
		return nil, &FetchError{Group: key.Group, Err: err}
	}
	if dists == nil {
		dists = []Distribution{}
	}

	f.mu.Lock()
	stale := f.latest[key.Group] != key
	if !stale {
		f.entries[key.Group] = cacheEntry{key: key, dists: dists}
	}
	f.mu.Unlock()

	f.emit(ctx, log.SeverityInfo, "distributions fetched", key,
		log.Int("distributions.count", len(dists)),
		log.Int("buckets.count", countBuckets(dists)),
		log.Bool("stale", stale),
		log.Int64("duration_ms", elapsed.Milliseconds()))
	return dists, nil
}

func countBuckets(dists []Distribution) int {
	n := 0
	for _, d := range dists {
		n += len(d.Data)
	}
	return n
}

func (f *Fetcher) emit(ctx context.Context, sev log.Severity, msg string, key Key, attrs ...log.KeyValue) {
	var record log.Record
	record.SetTimestamp(time.Now())
	record.SetSeverity(sev)
	record.SetSeverityText(severityText(sev))
	record.SetBody(log.StringValue(msg))
	record.AddAttributes(
		log.String("distributions.group", key.Group),
		log.String("distributions.dataset", key.Dataset),
		log.Int64("distributions.refresh", int64(key.Refresh)),
	)
	record.AddAttributes(attrs...)
	f.logger.Emit(ctx, record)
}

func severityText(sev log.Severity) string {
	switch {
	case sev >= log.SeverityError:
		return "ERROR"
	case sev >= log.SeverityWarn:
		return "WARN"
	case sev >= log.SeverityInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
