// Package client provides the HTTP layer shared by all ModHaven API
// operations: request execution with retry, bearer-token authentication,
// and typed errors.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cenk/backoff"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 5
	defaultBaseDelay  = 500 * time.Millisecond
	defaultUserAgent  = "modhaven-go"
)

// Client is an HTTP client with retry logic for the ModHaven API.
// Requests that fail with 429 or 5xx responses are retried with
// exponential backoff; everything else fails immediately.
type Client struct {
	http       *http.Client
	userAgent  string
	token      string
	maxRetries uint64
	baseDelay  time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithMaxRetries sets the maximum number of retries.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		c.maxRetries = uint64(n)
	}
}

// WithBaseDelay sets the initial delay for exponential backoff.
func WithBaseDelay(d time.Duration) Option {
	return func(c *Client) {
		c.baseDelay = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithToken sets the API token attached as a bearer Authorization header.
// A token is required for uploads, submissions and wiki edits.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient sets a custom underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// NewClient creates a new client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:       &http.Client{Timeout: defaultTimeout},
		userAgent:  defaultUserAgent,
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultClient returns a client with sensible defaults:
// - 30s timeout
// - 5 retries with exponential backoff
// - Retry on 429 and 5xx responses
func DefaultClient() *Client {
	return NewClient()
}

// WithUserAgent returns a copy of the client using the given User-Agent.
func (c *Client) WithUserAgent(ua string) *Client {
	clone := *c
	clone.userAgent = ua
	return &clone
}

// WithToken returns a copy of the client using the given API token.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// HasToken reports whether an API token is configured.
func (c *Client) HasToken() bool {
	return c.token != ""
}

// Do executes a request with retry and returns the response on any 2xx
// status. The caller must close the response body. body may be nil.
// Error statuses are mapped to the package's typed errors: 401 to
// ErrUnauthorized, 404 to ErrNotFound, 429 to *RateLimitError, and
// everything else to *HTTPError.
func (c *Client) Do(ctx context.Context, method, url string, body []byte, header http.Header) (*http.Response, error) {
	var resp *http.Response

	attempt := func() error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		for key, values := range header {
			for _, v := range values {
				req.Header.Add(key, v)
			}
		}
		req.Header.Set("User-Agent", c.userAgent)
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		r, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}

		if r.StatusCode >= 200 && r.StatusCode < 300 {
			resp = r
			return nil
		}

		snippet, _ := io.ReadAll(io.LimitReader(r.Body, 1024))
		_ = r.Body.Close()

		switch {
		case r.StatusCode == http.StatusUnauthorized:
			return backoff.Permanent(ErrUnauthorized)
		case r.StatusCode == http.StatusNotFound:
			return backoff.Permanent(ErrNotFound)
		case r.StatusCode == http.StatusTooManyRequests:
			retryAfter, _ := strconv.Atoi(r.Header.Get("Retry-After"))
			return &RateLimitError{RetryAfter: retryAfter}
		case r.StatusCode >= 500:
			return &HTTPError{StatusCode: r.StatusCode, URL: url, Body: string(snippet)}
		default:
			return backoff.Permanent(&HTTPError{StatusCode: r.StatusCode, URL: url, Body: string(snippet)})
		}
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.baseDelay
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, c.maxRetries), ctx)

	if err := backoff.Retry(attempt, policy); err != nil {
		return nil, err
	}
	return resp, nil
}

// Get executes a GET request. The caller must close the response body.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	return c.Do(ctx, http.MethodGet, url, nil, nil)
}

// GetJSON fetches a URL and decodes the JSON response into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding response from %s: %w", url, err)
	}
	return nil
}

// GetBody fetches a URL and returns the raw response body.
func (c *Client) GetBody(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// GetStream fetches a URL and returns the response body for incremental
// reading. The caller must close it.
func (c *Client) GetStream(ctx context.Context, url string) (io.ReadCloser, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// PostJSON posts body as JSON and, when v is non-nil, decodes the JSON
// response into it.
func (c *Client) PostJSON(ctx context.Context, url string, body any, v any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}

	header := http.Header{"Content-Type": []string{"application/json"}}
	resp, err := c.Do(ctx, http.MethodPost, url, data, header)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if v == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding response from %s: %w", url, err)
	}
	return nil
}

// Post executes a POST request with the given content type.
// The caller must close the response body.
func (c *Client) Post(ctx context.Context, url, contentType string, data []byte) (*http.Response, error) {
	header := http.Header{"Content-Type": []string{contentType}}
	return c.Do(ctx, http.MethodPost, url, data, header)
}

// Head executes a HEAD request and returns the response with its body
// already closed.
func (c *Client) Head(ctx context.Context, url string) (*http.Response, error) {
	resp, err := c.Do(ctx, http.MethodHead, url, nil, nil)
	if err != nil {
		return nil, err
	}
	_ = resp.Body.Close()
	return resp, nil
}
