// ABOUTME: Standard HTTP client implementation with retry logic and timeout support
// ABOUTME: Provides HTTP functionality with exponential backoff for calls to the rewriting service

package standard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"commonplace-api/core/interfaces"
)

const (
	maxRetries = 3
	userAgent  = "Commonplace/1.0"
)

// StandardHTTPClient implements the HTTPClient interface using net/http
type StandardHTTPClient struct {
	client  *http.Client
	headers http.Header
}

// Option configures the client
type Option func(*StandardHTTPClient)

// WithHeader adds a header sent on every request
func WithHeader(key, value string) Option {
	return func(c *StandardHTTPClient) {
		c.headers.Set(key, value)
	}
}

// WithBearerToken authenticates every request with token; empty tokens are ignored
func WithBearerToken(token string) Option {
	return func(c *StandardHTTPClient) {
		if token != "" {
			c.headers.Set("Authorization", "Bearer "+token)
		}
	}
}

// WithTransport replaces the underlying round tripper
func WithTransport(rt http.RoundTripper) Option {
	return func(c *StandardHTTPClient) {
		if rt != nil {
			c.client.Transport = rt
		}
	}
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout
func NewStandardHTTPClient(timeout time.Duration, opts ...Option) *StandardHTTPClient {
	c := &StandardHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		headers: make(http.Header),
	}
	c.headers.Set("User-Agent", userAgent)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs an HTTP GET request, retrying transport errors and 5xx responses
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	return c.do(ctx, http.MethodGet, url, nil, func(status int) bool {
		return status >= 500
	})
}

// Post performs a JSON POST request. Transport errors and gateway failures
// (502, 503, 504) are retried with the same body.
func (c *StandardHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = io.ReadAll(body); err != nil {
			return nil, err
		}
	}

	return c.do(ctx, http.MethodPost, url, payload, func(status int) bool {
		return status == http.StatusBadGateway ||
			status == http.StatusServiceUnavailable ||
			status == http.StatusGatewayTimeout
	})
}

func (c *StandardHTTPClient) do(ctx context.Context, method, url string, payload []byte, retryable func(int) bool) (interfaces.Response, error) {
	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 100ms, 200ms
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := c.newRequest(ctx, method, url, payload)
		if err != nil {
			return nil, err
		}

		resp, err = c.client.Do(req)
		if err != nil {
			resp = nil
			lastErr = err
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}

		if !retryable(resp.StatusCode) || attempt == maxRetries-1 {
			break
		}

		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
		resp.Body.Close()
		resp = nil
	}

	if resp == nil {
		return nil, lastErr
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}, nil
}

func (c *StandardHTTPClient) newRequest(ctx context.Context, method, url string, payload []byte) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
