// Package scryfall is a rate-limited client for the Scryfall card API.
//
// One Client owns one pacer: physical requests through the same instance
// are never issued closer together than the configured minimum interval,
// and 429 responses are absorbed with bounded exponential backoff. All
// other failures surface immediately as one of the classified error types
// in errors.go.
package scryfall

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public Scryfall API root.
	DefaultBaseURL = "https://api.scryfall.com"

	defaultUserAgent      = "scryfall-mcp/1.0"
	defaultMinInterval    = 100 * time.Millisecond
	defaultMaxRetries     = 3
	defaultInitialBackoff = time.Second
	defaultTimeout        = 30 * time.Second
)

// Client talks to the Scryfall API. Construct it with NewClient; the zero
// value is not usable.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger

	baseURL        string
	userAgent      string
	maxRetries     int
	initialBackoff time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root (used by tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithUserAgent sets the identifying client string sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithMinInterval sets the minimum spacing between physical requests.
// Zero disables pacing.
func WithMinInterval(d time.Duration) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Every(d), 1) }
}

// WithMaxRetries bounds how many times a 429 response is retried.
func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// WithInitialBackoff sets the delay before the first 429 retry; each
// further retry doubles it.
func WithInitialBackoff(d time.Duration) Option {
	return func(c *Client) { c.initialBackoff = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the structured logger for request and retry events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a Scryfall client with its own pacing state. Two
// clients never share a pacer, so independently configured instances do
// not throttle each other.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:     &http.Client{Timeout: defaultTimeout},
		limiter:        rate.NewLimiter(rate.Every(defaultMinInterval), 1),
		logger:         slog.Default(),
		baseURL:        DefaultBaseURL,
		userAgent:      defaultUserAgent,
		maxRetries:     defaultMaxRetries,
		initialBackoff: defaultInitialBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// endpoint describes one outbound request. It is built by an endpoint
// method and consumed by do within a single call.
type endpoint struct {
	method string
	path   string
	query  url.Values
	body   any
	header http.Header
}

// do performs the request with pacing and 429 retry, decoding the response
// into out. Error classification, in order of precedence:
//
//  1. 429 is retried with exponential backoff until maxRetries, then
//     becomes *RateLimitError.
//  2. A body shaped like a Scryfall error object becomes *APIError,
//     regardless of the HTTP status (Scryfall can attach error payloads
//     to 200s).
//  3. Any other non-2xx status becomes *TransportError.
//
// Network failures and malformed success bodies are never retried.
func (c *Client) do(ctx context.Context, ep endpoint, out any) error {
	var payload []byte
	if ep.body != nil {
		var err error
		payload, err = json.Marshal(ep.body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	}

	u := c.baseURL + ep.path
	if len(ep.query) > 0 {
		u += "?" + ep.query.Encode()
	}

	for attempt := 0; ; attempt++ {
		// Every attempt re-enters the pacer: a backoff retry still
		// respects normal request spacing.
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("pacer wait: %w", err)
		}
		c.logger.Debug("scryfall request", "method", ep.method, "path", ep.path, "attempt", attempt)

		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, ep.method, u, bodyReader)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")
		for key, vals := range ep.header {
			// Caller headers override the defaults but keep every
			// value of a repeated header.
			req.Header.Del(key)
			for _, v := range vals {
				req.Header.Add(key, v)
			}
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return &TransportError{Err: err}
		}
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return &TransportError{Err: fmt.Errorf("read response body: %w", err)}
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			if attempt < c.maxRetries {
				delay := c.initialBackoff << attempt
				c.logger.Warn("scryfall rate limited, backing off",
					"path", ep.path, "attempt", attempt, "delay", delay)
				if err := sleep(ctx, delay); err != nil {
					return err
				}
				continue
			}
			return &RateLimitError{Status: resp.StatusCode, Retries: c.maxRetries}
		}

		var apiErr APIError
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Object == "error" {
			return &apiErr
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &TransportError{
				Status:  resp.StatusCode,
				Message: http.StatusText(resp.StatusCode) + ": " + truncate(data, 200),
			}
		}

		if out == nil {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, endpoint{method: http.MethodGet, path: path, query: query}, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	return c.do(ctx, endpoint{method: http.MethodPost, path: path, body: body, header: header}, out)
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// truncate keeps error messages bounded when echoing response bodies.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
