package api

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultArrivalDelay = 800 * time.Millisecond
	defaultUserAgent    = "gomate/0.1"

	// maxErrorBody caps how much of an error response is read for its message
	maxErrorBody = 4 << 10
)

// cryptoRandIntn returns a random integer [0, n) using crypto/rand
func cryptoRandIntn(n int) int {
	if n <= 0 {
		return 0
	}
	nBig, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return int(time.Now().UnixNano() % int64(n))
	}
	return int(nBig.Int64())
}

// Client talks to the status and auth endpoints
type Client struct {
	httpClient   *http.Client
	baseURL      string
	authURL      string
	userAgent    string
	arrivalDelay time.Duration
	randIntn     func(n int) int
	logger       *slog.Logger
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL points the status requests at another host
func WithBaseURL(base string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(base, "/")
	}
}

// WithAuthURL sets the full login endpoint URL
func WithAuthURL(authURL string) ClientOption {
	return func(c *Client) {
		c.authURL = authURL
	}
}

// WithArrivalDelay sets the simulated round trip of the arrivals feed
func WithArrivalDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		c.arrivalDelay = d
	}
}

// WithRandom replaces the jitter source used by the arrivals feed
func WithRandom(intn func(n int) int) ClientOption {
	return func(c *Client) {
		c.randIntn = intn
	}
}

// WithLogger sets the logger used for warnings
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a new API client
func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL:      BaseURL,
		authURL:      AuthURL,
		userAgent:    defaultUserAgent,
		arrivalDelay: defaultArrivalDelay,
		randIntn:     cryptoRandIntn,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if _, err := url.ParseRequestURI(c.baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", c.baseURL, err)
	}
	if _, err := url.ParseRequestURI(c.authURL); err != nil {
		return nil, fmt.Errorf("invalid auth URL %q: %w", c.authURL, err)
	}

	return c, nil
}

// BaseURL returns the status API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs an HTTP request and returns the body of a 2xx response
func (c *Client) doRequest(ctx context.Context, method, reqURL string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Correlation-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		endpoint := extractEndpoint(reqURL)
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if msg := extractMessage(errBody); msg != "" {
			return nil, NewAPIErrorWithMessage(resp.StatusCode, endpoint, msg)
		}
		return nil, NewAPIError(resp.StatusCode, resp.Status, endpoint)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

// extractEndpoint extracts the endpoint path from a full URL
func extractEndpoint(fullURL string) string {
	u, err := url.Parse(fullURL)
	if err != nil {
		return fullURL
	}
	return u.Path
}

// extractMessage pulls a human-readable message out of an error body.
// JSON bodies are searched for "message" then "error"; anything else is
// returned as trimmed text.
func extractMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	var payload map[string]any
	if err := json.Unmarshal(trimmed, &payload); err == nil {
		for _, key := range []string{"message", "error"} {
			if s, ok := payload[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
		return ""
	}

	msg := string(trimmed)
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
