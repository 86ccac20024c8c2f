// Copyright 2026 Elasticsearch B.V.
// SPDX-License-Identifier: Apache-2.0

// Package otlp installs the OpenTelemetry logger provider used for
// diagnostics, exporting over OTLP/HTTP.
package otlp

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// DefaultServiceName is reported when Config.ServiceName is empty.
const DefaultServiceName = "histocat"

// Client owns a logger provider that exports to an OTLP endpoint
type Client struct {
	provider *sdklog.LoggerProvider
	endpoint string
}

// Config holds OTLP client configuration
type Config struct {
	Endpoint       string // OTLP HTTP endpoint, host:port or URL (default: localhost:4318)
	ServiceName    string
	ServiceVersion string
	Insecure       bool // Use HTTP instead of HTTPS

	// Exporter replaces the OTLP exporter. Records are then exported
	// synchronously.
	Exporter sdklog.Exporter
}

// New creates a new OTLP client
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4318"
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}

	var processor sdklog.Processor
	if cfg.Exporter != nil {
		processor = sdklog.NewSimpleProcessor(cfg.Exporter)
	} else {
		exporter, err := otlploghttp.New(ctx, exporterOptions(cfg)...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		processor = sdklog.NewBatchProcessor(exporter)
	}

	attrs := []attribute.KeyValue{semconv.ServiceName(cfg.ServiceName)}
	if cfg.ServiceVersion != "" {
		attrs = append(attrs, semconv.ServiceVersion(cfg.ServiceVersion))
	}
	res := resource.NewWithAttributes(semconv.SchemaURL, attrs...)

	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(processor),
		sdklog.WithResource(res),
	)

	return &Client{
		provider: provider,
		endpoint: cfg.Endpoint,
	}, nil
}

func exporterOptions(cfg Config) []otlploghttp.Option {
	var opts []otlploghttp.Option
	if strings.Contains(cfg.Endpoint, "://") {
		opts = append(opts, otlploghttp.WithEndpointURL(cfg.Endpoint))
	} else {
		opts = append(opts, otlploghttp.WithEndpoint(cfg.Endpoint))
	}
	if cfg.Insecure {
		opts = append(opts, otlploghttp.WithInsecure())
	}
	return opts
}

// Endpoint returns the configured export endpoint
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Logger returns a logger from the client's provider
func (c *Client) Logger(name string) log.Logger {
	return c.provider.Logger(name)
}

// Install makes the client's provider the global logger provider, so
// packages that log through global.GetLoggerProvider export through it.
func (c *Client) Install() {
	global.SetLoggerProvider(c.provider)
}

// Close flushes pending records and shuts down the OTLP client
func (c *Client) Close(ctx context.Context) error {
	return c.provider.Shutdown(ctx)
}
