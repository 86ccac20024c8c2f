// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

// Package backend provides a client for the distributions API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/histocat/internal/distributions"
)

// DistributionsPath is the endpoint that returns pre-aggregated histograms.
const DistributionsPath = "/distributions"

// Client handles communication with the distributions backend.
type Client struct {
	baseURL    string
	apiKey     string
	username   string
	password   string
	httpClient *http.Client
}

// ClientOptions holds configuration for creating a new backend client.
type ClientOptions struct {
	URL      string        // Backend base URL
	APIKey   string        // API key for authentication
	Username string        // Username for basic auth
	Password string        // Password for basic auth
	Timeout  time.Duration // Request timeout
}

// NewClient creates a new backend client from options.
func NewClient(opts ClientOptions) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:  strings.TrimSuffix(opts.URL, "/"),
		apiKey:   opts.APIKey,
		username: opts.Username,
		password: opts.Password,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

var _ distributions.Source = (*Client)(nil)

// StatusError is returned when the backend answers with an HTTP error.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("backend error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, body)
}

// distributionsRequest is the JSON body of a distributions call.
type distributionsRequest struct {
	Group   string          `json:"group"`
	Limit   int             `json:"limit"`
	View    json.RawMessage `json:"view"`
	Dataset string          `json:"dataset"`
	Filters json.RawMessage `json:"filters"`
}

type distributionsResponse struct {
	Distributions []distributions.Distribution `json:"distributions"`
}

// FetchDistributions posts q to the distributions endpoint and returns the
// decoded histograms.
func (c *Client) FetchDistributions(ctx context.Context, q distributions.Query) ([]distributions.Distribution, error) {
	body, err := json.Marshal(distributionsRequest{
		Group:   q.Group,
		Limit:   q.Limit,
		View:    rawOrNull(q.View),
		Dataset: q.Dataset,
		Filters: rawOrNull(q.Filters),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+DistributionsPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	c.authenticate(httpReq)

	respBody, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	var resp distributionsResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return resp.Distributions, nil
}

// Ping checks if the backend is reachable.
func (c *Client) Ping(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.authenticate(httpReq)

	if _, err := c.do(httpReq); err != nil {
		return fmt.Errorf("failed to ping backend: %w", err)
	}
	return nil
}

func (c *Client) authenticate(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "ApiKey "+c.apiKey)
	} else if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return respBody, nil
}

func rawOrNull(raw json.RawMessage) json.RawMessage {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	return raw
}
