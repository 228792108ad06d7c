// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

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
	"unicode/utf8"

	apperr "ayga/mcp/internal/errors"
	"ayga/mcp/internal/httperrors"
	"ayga/mcp/internal/logging"
)

// DefaultTimeout bounds every single HTTP round-trip to the executor.
const DefaultTimeout = 120 * time.Second

// maxBodyBytes caps how much of a response body is read into memory.
const maxBodyBytes = 32 << 20

// HTTP implements API over the executor REST endpoints.
type HTTP struct {
	// baseURL is the base URL for all HTTP requests (e.g., "https://redis.ayga.tech")
	baseURL string
	// endpoints contains the URL paths for the executor routes
	endpoints Endpoints
	// client is the underlying HTTP client with configured timeout
	client *http.Client
	// tokens supplies the bearer token; nil means anonymous requests
	tokens TokenSource
	// userAgent is sent with every request
	userAgent string
}

// Option configures the HTTP client.
type Option func(*HTTP)

// WithTokenSource attaches bearer tokens from ts to authenticated calls.
func WithTokenSource(ts TokenSource) Option {
	return func(h *HTTP) { h.tokens = ts }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTP) {
		if c != nil {
			h.client = c
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTP) {
		if d > 0 {
			h.client.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(h *HTTP) { h.userAgent = ua }
}

// WithEndpoints overrides the executor routes.
func WithEndpoints(e Endpoints) Option {
	return func(h *HTTP) { h.endpoints = e }
}

// newHTTP creates a new HTTP client with the given base URL and endpoints.
// It configures a 120-second timeout for all requests.
func newHTTP(baseURL string, endpoints Endpoints, opts ...Option) *HTTP {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	h := &HTTP{
		baseURL:   strings.TrimRight(baseURL, "/"),
		endpoints: endpoints,
		client:    &http.Client{Timeout: DefaultTimeout},
		userAgent: "ayga-mcp",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// BaseURL returns the executor base URL without a trailing slash.
func (h *HTTP) BaseURL() string { return h.baseURL }

// setStandardHeaders sets headers common to every executor request.
func (h *HTTP) setStandardHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}
}

// authorize attaches the bearer token when a token source is configured.
func (h *HTTP) authorize(ctx context.Context, req *http.Request) error {
	if h.tokens == nil {
		return nil
	}
	token, err := h.tokens.Token(ctx)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

// newRequest builds a request for path, encoding body as JSON when non-nil.
func (h *HTTP) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, r)
	if err != nil {
		return nil, err
	}
	h.setStandardHeaders(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// send performs req and returns the status code and the (capped) body.
// authed requests carry the bearer token. Transport failures are returned
// as Transport errors with a short human-friendly description.
func (h *HTTP) send(ctx context.Context, req *http.Request, authed bool) (int, []byte, error) {
	if authed {
		if err := h.authorize(ctx, req); err != nil {
			return 0, nil, err
		}
	}
	resp, err := h.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, ctx.Err()
		}
		return 0, nil, apperr.Wrap(apperr.Transport, httperrors.Describe(err), err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, apperr.Wrap(apperr.Transport, "failed to read executor response", err)
	}
	return resp.StatusCode, b, nil
}

// maxDetailBytes caps the response excerpt quoted in error messages.
const maxDetailBytes = 500

// truncate shortens s to at most n bytes without splitting a UTF-8 rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

// statusError builds an error of kind for a non-success HTTP status.
func statusError(kind apperr.Kind, op string, code int, body []byte) *apperr.E {
	detail := strings.TrimSpace(logging.Mask(string(body)))
	detail = truncate(detail, maxDetailBytes)
	msg := fmt.Sprintf("%s failed: %d %s", op, code, http.StatusText(code))
	if detail != "" {
		msg = fmt.Sprintf("%s failed: %d %s", op, code, detail)
	}
	if code == http.StatusUnauthorized || code == http.StatusForbidden {
		kind = apperr.Auth
	}
	return apperr.New(kind, msg).WithStatus(code)
}

// getJSON fetches path and returns the body when it is valid JSON.
func (h *HTTP) getJSON(ctx context.Context, op, path string, authed bool) (json.RawMessage, error) {
	req, err := h.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	code, body, err := h.send(ctx, req, authed)
	if err != nil {
		return nil, err
	}
	if code != http.StatusOK {
		return nil, statusError(apperr.Executor, op, code, body)
	}
	if !json.Valid(body) {
		return nil, apperr.Newf(apperr.Executor, "%s returned a non-JSON response", op).WithStatus(code)
	}
	return json.RawMessage(body), nil
}

// Health calls GET /health. No authentication required.
func (h *HTTP) Health(ctx context.Context) (json.RawMessage, error) {
	return h.getJSON(ctx, "health", h.endpoints.Health, false)
}

// Version extracts the executor version from the health document, or "unknown".
func (h *HTTP) Version(ctx context.Context) (string, error) {
	raw, err := h.Health(ctx)
	if err != nil {
		return "", err
	}
	var out struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(raw, &out); err != nil || out.Version == "" {
		return "unknown", nil
	}
	return out.Version, nil
}
