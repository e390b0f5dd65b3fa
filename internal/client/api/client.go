// Package api is the REST gateway: one configured HTTP client through which
// every backend call goes. It owns bearer-token injection, request ids,
// JSON encoding, and the mapping of HTTP statuses onto the error taxonomy.
// It deliberately owns no auth state: the token comes from a TokenSource.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/estatekeeper/internal/common"
	"github.com/dmitrijs2005/estatekeeper/internal/logging"
)

// TokenSource yields the current bearer token, if any. The session manager
// is the intended implementation; the gateway never caches the value.
type TokenSource func() (token string, ok bool)

// Client is the API gateway.
type Client struct {
	baseURL string
	http    *http.Client
	log     logging.Logger

	// onUnauthorized is called once per 401 response, after the error is
	// built but before it is returned. No remediation is wired by default;
	// the observed backend behavior leaves 401 handling to the caller.
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithOnUnauthorized registers the 401 observer.
func WithOnUnauthorized(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithHTTPClient replaces the underlying HTTP client (tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New builds a gateway for the given base URL. tokens may be nil for an
// unauthenticated client.
func New(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
		http: &http.Client{
			Timeout:   timeout,
			Transport: &authTransport{base: http.DefaultTransport, tokens: tokens},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// authTransport decorates every outgoing request with the bearer token and
// a request id. This is the one place authentication headers are attached.
type authTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if t.tokens != nil {
		if token, ok := t.tokens(); ok {
			clone.Header.Set("Authorization", "Bearer "+token)
		}
	}
	clone.Header.Set("X-Request-Id", uuid.NewString())
	return t.base.RoundTrip(clone)
}

// Get performs GET <base>/<path> and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post performs POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put performs PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete performs DELETE and decodes the response into out (the backend
// returns the deleted record).
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %s %s: %v", common.ErrorUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "request finished", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readErrorMessage pulls a human-readable message out of an error body.
// The backend is inconsistent about the key it uses.
func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}
