// Copyright (c) 2026, Tidevault Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package signalk

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tidevault/tidevault/pkg/defaults"
	"github.com/tidevault/tidevault/pkg/errors"
	"github.com/tidevault/tidevault/pkg/telemetry"
)

// Client fetches telemetry documents from a SignalK server.
type Client struct {
	url    string
	client *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds each fetch. The default is defaults.FetchTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// WithHTTPS upgrades an http:// endpoint to https://. Endpoints already on
// https are left alone.
func WithHTTPS() Option {
	return func(c *Client) {
		if strings.HasPrefix(c.url, "http://") {
			c.url = "https://" + strings.TrimPrefix(c.url, "http://")
		}
	}
}

// New creates a Client for the given vessels/self endpoint URL.
func New(url string, opts ...Option) *Client {
	c := &Client{
		url: url,
		client: &http.Client{
			Timeout: defaults.FetchTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the effective endpoint after option rewrites.
func (c *Client) URL() string {
	return c.url
}

// Fetch retrieves and parses the full telemetry document. Any transport
// failure, non-2xx status, or unparsable body is returned as an error with
// no partial result.
func (c *Client) Fetch(ctx context.Context) (*telemetry.Value, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTransport, "failed to build telemetry request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.Wrap(errors.ErrCodeTimeout, "telemetry fetch timed out", err)
		}
		return nil, errors.Wrap(errors.ErrCodeTransport, "telemetry fetch failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.New(errors.ErrCodeTransport,
			fmt.Sprintf("telemetry fetch returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTransport, "failed to read telemetry response", err)
	}

	doc, err := telemetry.Parse(body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTransport, "invalid telemetry document", err)
	}

	slog.Debug("fetched telemetry document",
		"url", c.url,
		"bytes", len(body),
		"duration", time.Since(start).String())

	return doc, nil
}
