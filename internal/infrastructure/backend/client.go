// Package backend is the HTTP client for the external job board REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/core/ports"
)

// DefaultTimeout is the per-request timeout when none is configured.
const DefaultTimeout = 15 * time.Second

const maxErrorBody = 64 << 10

var _ ports.Backend = (*Client)(nil)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Endpoint string
	Status   int
	Message  string
	// IsVerified is set when the backend reports the account's verification
	// state, as the login endpoint does for unverified emails.
	IsVerified *bool
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend %s: %d: %s", e.Endpoint, e.Status, e.Message)
	}
	return fmt.Sprintf("backend %s: HTTP status %d", e.Endpoint, e.Status)
}

// Unwrap maps the status onto the domain errors pages react to.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized && e.IsVerified != nil && !*e.IsVerified {
		return domain.ErrEmailNotVerified
	}
	switch e.Status {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusUnauthorized:
		return domain.ErrUnauthenticated
	case http.StatusForbidden:
		return domain.ErrForbidden
	}
	if e.Status >= 500 {
		return domain.ErrUpstreamUnavailable
	}
	return nil
}

// Observer receives the outcome of every request. Status is 0 when the
// request never got a response.
type Observer func(endpoint string, status int, elapsed time.Duration)

// Options configures a Client.
type Options struct {
	Timeout   time.Duration
	Transport http.RoundTripper
	UserAgent string
	Observe   Observer
}

// Client talks to the backend. It never retries.
type Client struct {
	base      *url.URL
	http      *http.Client
	userAgent string
	observe   Observer
	log       zerolog.Logger
}

// New validates baseURL and builds a Client.
func New(baseURL string, opts Options, log zerolog.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend: invalid base URL %q", baseURL)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = "jobboard-web"
	}
	observe := opts.Observe
	if observe == nil {
		observe = func(string, int, time.Duration) {}
	}
	return &Client{
		base:      u,
		http:      &http.Client{Timeout: timeout, Transport: opts.Transport},
		userAgent: ua,
		observe:   observe,
		log:       log,
	}, nil
}

// request describes one call. endpoint is the route template used as the
// metric label; path is the concrete path.
type request struct {
	method         string
	endpoint       string
	path           string
	token          string
	query          url.Values
	body           any
	rawBody        io.Reader
	contentType    string
	idempotencyKey string
	// whole decodes the full body instead of the "data" member.
	whole bool
}

// envelope is the common response wrapper.
type envelope struct {
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	IsVerified *bool           `json:"isVerified"`
}

func (c *Client) send(ctx context.Context, r request) (*http.Response, error) {
	u := *c.base
	u.Path = c.base.Path + r.path
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	body := r.rawBody
	contentType := r.contentType
	if r.body != nil {
		raw, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", r.endpoint, err)
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", r.endpoint, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	if r.idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", r.idempotencyKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(r.endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.log.Warn().Err(err).Str("endpoint", r.endpoint).Msg("backend unreachable")
		return nil, fmt.Errorf("%s %s: %w: %v", r.method, r.endpoint, domain.ErrUpstreamUnavailable, err)
	}
	c.observe(r.endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer func() { _ = resp.Body.Close() }()
		return nil, c.apiError(r.endpoint, resp)
	}
	return resp, nil
}

func (c *Client) apiError(endpoint string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{Endpoint: endpoint, Status: resp.StatusCode}
	var env envelope
	if json.Unmarshal(raw, &env) == nil {
		apiErr.Message = env.Message
		apiErr.IsVerified = env.IsVerified
	}
	if resp.StatusCode >= 500 {
		c.log.Warn().Int("status", resp.StatusCode).Str("endpoint", endpoint).Msg("backend error")
	}
	return apiErr
}

// call sends r, decodes the response into out (when non-nil) and returns the
// backend's message, if any.
func (c *Client) call(ctx context.Context, r request, out any) (string, error) {
	resp, err := c.send(ctx, r)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s response: %w", r.endpoint, err)
	}
	msg, err := decode(raw, out, r.whole)
	if err != nil {
		return "", fmt.Errorf("decode %s response: %w", r.endpoint, err)
	}
	return msg, nil
}

// decode unwraps {"data": ...} when present. Endpoints that answer with a
// bare object or array are decoded as is.
func decode(raw []byte, out any, whole bool) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", nil
	}
	var env envelope
	isObject := raw[0] == '{' && json.Unmarshal(raw, &env) == nil
	if out == nil {
		return env.Message, nil
	}
	payload := raw
	if isObject && !whole && len(env.Data) > 0 && string(env.Data) != "null" {
		payload = env.Data
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return "", err
	}
	return env.Message, nil
}

// Ping reports whether the backend answers HTTP at all.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base.String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend ping: %w", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("backend ping: HTTP status %d", resp.StatusCode)
	}
	return nil
}

// IsAPIError extracts the backend error from err.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func escape(segment string) string {
	return url.PathEscape(segment)
}
