// Package client calls a running marquee API server.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/papercomputeco/marquee/api/query"
	"github.com/papercomputeco/marquee/pkg/recommend"
)

// Client is a marquee API client.
type Client struct {
	target string
	http   *http.Client
}

// New returns a client for the API at target, e.g. "http://localhost:8090".
func New(target string) (*Client, error) {
	if _, err := url.Parse(target); err != nil {
		return nil, fmt.Errorf("invalid API target URL: %w", err)
	}
	return &Client{
		target: target,
		http:   &http.Client{Timeout: 2 * time.Minute},
	}, nil
}

// Recommend calls GET /v1/recommend. A topN of zero lets the server choose.
func (c *Client) Recommend(ctx context.Context, q string, topN int) (*query.Output, error) {
	params := url.Values{}
	params.Set("query", q)
	if topN != 0 {
		params.Set("top_n", strconv.Itoa(topN))
	}
	return c.get(ctx, "/v1/recommend", params)
}

// Surprise calls GET /v1/surprise. A topN of zero lets the server choose.
func (c *Client) Surprise(ctx context.Context, topN int) (*query.Output, error) {
	params := url.Values{}
	if topN != 0 {
		params.Set("top_n", strconv.Itoa(topN))
	}
	return c.get(ctx, "/v1/surprise", params)
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*query.Output, error) {
	u, err := url.Parse(c.target)
	if err != nil {
		return nil, fmt.Errorf("invalid API target URL: %w", err)
	}
	u.Path = path
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to marquee API at %s: %w", c.target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, body)
	}

	var output query.Output
	if err := json.Unmarshal(body, &output); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &output, nil
}

// statusError maps API error statuses back onto recommend's sentinel errors.
func statusError(status int, body []byte) error {
	var e struct {
		Error string `json:"error"`
	}
	msg := string(body)
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		msg = e.Error
	}

	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", recommend.ErrNotFound, msg)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", recommend.ErrInvalidArgument, msg)
	default:
		return fmt.Errorf("request failed (HTTP %d): %s", status, msg)
	}
}
