// Package tmdb is a thin pass-through client for The Movie Database API.
// Responses are relayed to callers as raw JSON; no decoding or caching
// happens on the proxy path.
package tmdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client calls the TMDB v3 API with a bounded request timeout.
type Client struct {
	baseURL     string
	accessToken string
	client      *http.Client
}

// NewClient creates a new TMDB client
func NewClient(baseURL, accessToken string, timeout time.Duration) *Client {
	return &Client{
		baseURL:     baseURL,
		accessToken: accessToken,
		client:      &http.Client{Timeout: timeout},
	}
}

// Response holds the upstream status code and raw body.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the upstream answered with a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Get performs a GET against the given API path with the query parameters
// attached and returns the upstream response as-is.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}
