// Package wordpress provides an authenticated client for the WordPress REST
// API (wp/v2). One Client is bound to one site; the site manager owns the
// mapping from site ids to clients.
package wordpress

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/olgasafonova/wordpress-mcp-server/internal/apierrors"
	"github.com/olgasafonova/wordpress-mcp-server/internal/infra"
	"github.com/olgasafonova/wordpress-mcp-server/metrics"
)

const (
	// RESTRoot is the wp/v2 REST API root path segment.
	RESTRoot = "wp-json/wp/v2/"

	// DefaultTimeout for API requests.
	DefaultTimeout = 30 * time.Second

	// MaxConcurrentRequests limits parallel API calls per site.
	MaxConcurrentRequests = 5

	// DefaultUserAgent identifies the client to the site.
	DefaultUserAgent = "wordpress-mcp-server/1.0 (github.com/olgasafonova/wordpress-mcp-server)"
)

// Client is an authenticated HTTP binding to one WordPress site.
type Client struct {
	siteID     string
	baseURL    string // normalized: ends with the REST root and a trailing slash
	authHeader string
	userAgent  string
	maxRetries int

	httpClient *http.Client
	logger     *slog.Logger
	breaker    *infra.CircuitBreaker
	semaphore  chan struct{}
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMaxRetries overrides the retry count for transient failures.
func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// NewClient creates a client for one site. The base URL is normalized so it
// always ends with the REST root and a single trailing slash; credentials
// become a static Basic auth header. No network I/O happens here — callers
// run Probe before trusting the client.
func NewClient(siteID, rawURL, username, password string, opts ...Option) *Client {
	c := &Client{
		siteID:     siteID,
		baseURL:    NormalizeBaseURL(rawURL),
		authHeader: "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password)),
		userAgent:  DefaultUserAgent,
		maxRetries: 3,
		httpClient: newHTTPClient(DefaultTimeout),
		logger:     slog.Default(),
		breaker:    infra.NewCircuitBreaker(),
		semaphore:  make(chan struct{}, MaxConcurrentRequests),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SiteID returns the id of the site this client is bound to.
func (c *Client) SiteID() string {
	return c.siteID
}

// BaseURL returns the normalized REST API root URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// NormalizeBaseURL ensures the URL ends with the wp/v2 REST root and a single
// trailing slash. URLs that already contain the REST root only get the slash
// fixed up.
func NormalizeBaseURL(raw string) string {
	u := strings.TrimRight(raw, "/")
	if !strings.Contains(u, "wp-json") {
		u += "/" + strings.TrimRight(RESTRoot, "/")
	}
	return u + "/"
}

// Probe issues a single idempotent GET against the REST root. Any 2xx status
// is success.
func (c *Client) Probe(ctx context.Context) error {
	body, status, err := c.Do(ctx, http.MethodGet, "", nil, nil)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return restError(status, body)
	}
	return nil
}

// Do performs one REST request and returns the raw body and status code.
// path is relative to the REST root ("posts", "types", "posts/42"). Network
// errors and 5xx responses are retried with quadratic backoff; 429 honors
// Retry-After; 4xx is returned to the caller without retry.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body []byte) ([]byte, int, error) {
	if !c.breaker.Allow() {
		stats := c.breaker.Stats()
		return nil, 0, &infra.ErrCircuitOpen{
			SiteID:  c.siteID,
			RetryAt: stats.LastFailure.Add(30 * time.Second),
		}
	}

	select {
	case c.semaphore <- struct{}{}:
		defer func() { <-c.semaphore }()
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("context canceled while waiting for request slot: %w", ctx.Err())
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	start := time.Now()
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			metrics.SiteAPIRetries.WithLabelValues(c.siteID).Inc()
			backoff := time.Duration(attempt*attempt) * 100 * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, 0, fmt.Errorf("context canceled during backoff: %w", ctx.Err())
			}
		}

		// Fresh request each attempt; the body reader is consumed on send.
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", c.authHeader)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.userAgent)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			c.logger.Warn("WordPress API request failed, retrying",
				"site", c.siteID,
				"attempt", attempt+1,
				"error", err)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
				if seconds, parseErr := strconv.Atoi(retryAfter); parseErr == nil {
					c.logger.Warn("Rate limited by site, waiting",
						"site", c.siteID,
						"retry_after", seconds)
					select {
					case <-time.After(time.Duration(seconds) * time.Second):
					case <-ctx.Done():
						return nil, 0, ctx.Err()
					}
					continue
				}
			}
			lastErr = fmt.Errorf("rate limited (429)")
			continue
		}

		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error %d: %s", resp.StatusCode, truncate(string(respBody), 200))
			c.logger.Warn("WordPress API server error, retrying",
				"site", c.siteID,
				"status", resp.StatusCode,
				"attempt", attempt+1)
			continue
		}

		c.breaker.RecordSuccess()
		metrics.RecordAPICall(c.siteID, method, time.Since(start).Seconds(), true)
		return respBody, resp.StatusCode, nil
	}

	wasOpen := c.breaker.State() == infra.CircuitOpen
	c.breaker.RecordFailure()
	if !wasOpen && c.breaker.State() == infra.CircuitOpen {
		metrics.CircuitBreakerOpens.WithLabelValues(c.siteID).Inc()
	}
	metrics.RecordAPICall(c.siteID, method, time.Since(start).Seconds(), false)
	return nil, 0, lastErr
}

// GetJSON performs a GET and decodes a 2xx response into out. Non-2xx
// responses become a RESTError with the WordPress error code and message.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	body, status, err := c.Do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return decodeResponse(status, body, out)
}

// SendJSON marshals payload, performs the given method (POST/PUT/PATCH) and
// decodes a 2xx response into out.
func (c *Client) SendJSON(ctx context.Context, method, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}
	respBody, status, err := c.Do(ctx, method, path, nil, body)
	if err != nil {
		return err
	}
	return decodeResponse(status, respBody, out)
}

// Delete performs a DELETE and decodes a 2xx response into out.
func (c *Client) Delete(ctx context.Context, path string, query url.Values, out any) error {
	body, status, err := c.Do(ctx, http.MethodDelete, path, query, nil)
	if err != nil {
		return err
	}
	return decodeResponse(status, body, out)
}

func decodeResponse(status int, body []byte, out any) error {
	if status < 200 || status > 299 {
		return restError(status, body)
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// restError builds a RESTError from a WordPress error body, which carries
// {"code": "...", "message": "..."}.
func restError(status int, body []byte) error {
	var wpErr struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &wpErr) == nil && (wpErr.Code != "" || wpErr.Message != "") {
		return &apierrors.RESTError{StatusCode: status, Code: wpErr.Code, Message: wpErr.Message}
	}
	return &apierrors.RESTError{StatusCode: status, Message: truncate(string(body), 200)}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// newHTTPClient creates an HTTP client with tuned transport settings.
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		MaxConnsPerHost:       50,
		IdleConnTimeout:       120 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		DisableCompression:    false,
		ForceAttemptHTTP2:     true,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
