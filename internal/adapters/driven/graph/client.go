package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/graphscope/internal/core/domain"
	"github.com/custodia-labs/graphscope/internal/core/ports/driven"
	"github.com/custodia-labs/graphscope/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.GraphAPI = (*Client)(nil)

const (
	// DefaultTimeout is used when the configuration has no request timeout.
	DefaultTimeout = 30 * time.Second

	// maxBodySize caps how much of a response body is read.
	maxBodySize = 4 << 20
)

// Client issues GET requests against the graph API.
type Client struct {
	config      driven.ConfigSource
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimiter replaces the limiter built from the configuration.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(c *Client) {
		c.rateLimiter = rl
	}
}

// NewClient creates a graph API client. The base URL, version and request
// timeout are read from config on every request.
func NewClient(config driven.ConfigSource, opts ...Option) *Client {
	c := &Client{
		config:     config,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rateLimiter == nil {
		c.rateLimiter = NewRateLimiter(config.Config().RequestsPerSecond)
	}
	return c
}

// BuildURL returns <graph-base>/<version>/<path>?<params>.
func BuildURL(base, version, path string, params url.Values) (string, error) {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return "", fmt.Errorf("parse graph base: %w", err)
	}
	u = u.JoinPath(version, strings.TrimLeft(path, "/"))
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}
	return u.String(), nil
}

// Get fetches path with params as the query string.
// A 2xx response returns the decoded body (nil when empty, {"raw": text}
// when not JSON). Any other outcome is a *domain.APIError with status 0
// for transport failures.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (domain.ProviderResponse, error) {
	cfg := c.config.Config()

	requestURL, err := BuildURL(cfg.GraphBase, cfg.GraphVersion, path, params)
	if err != nil {
		return nil, &domain.APIError{Message: err.Error()}
	}
	safeURL := logger.RedactURL(requestURL)

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, &domain.APIError{Message: fmt.Sprintf("rate limit wait: %v", err), URL: safeURL}
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &domain.APIError{Message: err.Error(), URL: safeURL}
	}
	req.Header.Set("Accept", "application/json")

	logger.Debug("GET %s", safeURL)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.APIError{Message: transportMessage(err), URL: safeURL}
	}
	defer resp.Body.Close()

	c.rateLimiter.UpdateFromResponse(resp)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &domain.APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("read response: %v", err),
			URL:        safeURL,
		}
	}
	logger.Debug("GET %s -> %d (%s, %d bytes)", safeURL, resp.StatusCode, time.Since(start).Round(time.Millisecond), len(body))

	payload := decodeBody(body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := domain.ComposeErrorDetail(payload)
		if detail == "" {
			detail = fmt.Sprintf("Request failed (%d).", resp.StatusCode)
		}
		return nil, &domain.APIError{
			StatusCode: resp.StatusCode,
			Message:    detail,
			Payload:    payload,
			URL:        safeURL,
		}
	}

	return payload, nil
}

// Me fetches the user's profile with the given comma-joined fields.
func (c *Client) Me(ctx context.Context, token, fields string) (domain.ProviderResponse, error) {
	params := url.Values{}
	params.Set("fields", fields)
	params.Set("access_token", token)
	return c.Get(ctx, "me", params)
}

// Picture fetches the profile picture metadata. redirect=0 asks for JSON
// instead of a redirect to the image.
func (c *Client) Picture(ctx context.Context, token string, pictureType domain.PictureType) (domain.ProviderResponse, error) {
	params := url.Values{}
	params.Set("type", pictureType.String())
	params.Set("redirect", "0")
	params.Set("access_token", token)
	return c.Get(ctx, "me/picture", params)
}

// Permissions fetches the granted and declined permissions.
func (c *Client) Permissions(ctx context.Context, token string) (domain.ProviderResponse, error) {
	params := url.Values{}
	params.Set("access_token", token)
	return c.Get(ctx, "me/permissions", params)
}

// decodeBody parses body as JSON. Only a zero-length body decodes to nil;
// any other text that is not JSON, whitespace included, is wrapped as
// {"raw": text}.
func decodeBody(body []byte) domain.ProviderResponse {
	if len(body) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return map[string]any{"raw": string(body)}
	}
	return v
}

// transportMessage describes a failed round trip without the request URL,
// which *url.Error would otherwise embed with the token in it.
func transportMessage(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out."
	case errors.Is(err, context.Canceled):
		return "Request cancelled."
	default:
		return fmt.Sprintf("Network error: %v", err)
	}
}
