// Package fpl is the data-access collaborator: it fetches upstream snapshots
// over HTTP and decodes them into domain records, validating shape once at
// this boundary so the scoring engine can assume well-formed input.
package fpl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Default client configuration.
const (
	defaultBaseURL   = "https://fantasy.premierleague.com/api"
	defaultUserAgent = "ligalive/1.0"
	defaultTimeout   = 10 * time.Second
	defaultDelay     = 250 * time.Millisecond
)

// Client fetches snapshots from the upstream fantasy API. It performs no
// retries or caching of its own; those policies belong to the layers around
// it.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	delay      time.Duration
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL overrides the upstream API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithUserAgent sets the User-Agent header sent upstream.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout bounds a single upstream request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithDelay sets the polite delay before each upstream request.
func WithDelay(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.delay = d
		}
	}
}

// NewClient creates a Client with default configuration.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    defaultBaseURL,
		userAgent:  defaultUserAgent,
		delay:      defaultDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getJSON performs one GET against the API and decodes the JSON body into v.
func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	if c.delay > 0 {
		select {
		case <-ctx.Done():
			return fmt.Errorf("fetch canceled: %w", ctx.Err())
		case <-time.After(c.delay):
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %w", ErrUpstream, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: GET %s: status %d body=%s", ErrUpstream, path, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: GET %s: %w", ErrDecode, path, err)
	}
	return nil
}
