// Package gqlclient is a small GraphQL-over-HTTP client used by the smoke
// tool and by operators scripting against the API.
package gqlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client issues GraphQL operations against a single endpoint.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken attaches a bearer credential to every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = strings.TrimSpace(token) }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// New creates a client with sensible defaults.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		http:     &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Error is one GraphQL error entry from the response.
type Error struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path"`
	Extensions map[string]any `json:"extensions"`
}

// Code returns the extensions code, or "" when absent.
func (e Error) Code() string {
	code, _ := e.Extensions["code"].(string)
	return code
}

func (e Error) Error() string {
	if code := e.Code(); code != "" {
		return fmt.Sprintf("%s: %s", code, e.Message)
	}
	return e.Message
}

// Errors is the full error list of a response. A partial response carries
// both data and errors; callers decide whether that is fatal.
type Errors []Error

func (es Errors) Error() string {
	msgs := make([]string, 0, len(es))
	for _, e := range es {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors Errors          `json:"errors"`
}

// Do executes one operation and decodes the data block into out (which may
// be nil). GraphQL-level errors are returned as Errors alongside whatever
// partial data arrived.
func (c *Client) Do(ctx context.Context, query string, variables map[string]any, out any) (Errors, error) {
	payload, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/graphql", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("graphql endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if out != nil && len(parsed.Data) > 0 && string(parsed.Data) != "null" {
		if err := json.Unmarshal(parsed.Data, out); err != nil {
			return nil, fmt.Errorf("decode data: %w", err)
		}
	}
	if len(parsed.Errors) > 0 {
		return parsed.Errors, nil
	}
	return nil, nil
}

// Query runs an operation and fails on any GraphQL error. It is the
// convenience path for callers that do not tolerate partial results.
func (c *Client) Query(ctx context.Context, query string, variables map[string]any, out any) error {
	gqlErrs, err := c.Do(ctx, query, variables, out)
	if err != nil {
		return err
	}
	if len(gqlErrs) > 0 {
		return gqlErrs
	}
	return nil
}

// WithTimeout returns a context with default timeout useful for CLI tools.
func WithTimeout(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = 10 * time.Second
	}
	return context.WithTimeout(parent, d)
}
