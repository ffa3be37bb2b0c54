// Package httpclient implements the JSON client used to talk to the energy API.
//
// Every logical request is retried on network failures and 5xx responses,
// with a constant delay between attempts. 4xx responses and decode failures
// are returned immediately. The client keeps no state between calls and is
// safe for concurrent use.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vietddude/chargewindow/internal/metrics"
)

const (
	DefaultMaxRetries     = 3
	DefaultRetryDelay     = 2 * time.Second
	DefaultAttemptTimeout = 30 * time.Second

	// RequestIDHeader carries the identifier shared by all attempts of one call.
	RequestIDHeader = "X-Request-ID"
)

// Config holds the client settings. It is copied at construction and never
// mutated afterwards.
type Config struct {
	BaseURL string `yaml:"base_url"`

	// MaxRetries is the number of retries after the first attempt.
	// Zero selects the default; a negative value disables retries.
	MaxRetries int `yaml:"max_retries"`

	// RetryDelay is the constant wait between attempts.
	// Zero selects the default; a negative value retries without waiting.
	RetryDelay time.Duration `yaml:"retry_delay"`

	// AttemptTimeout bounds a single attempt. Zero selects the default;
	// a negative value leaves attempts unbounded.
	AttemptTimeout time.Duration `yaml:"attempt_timeout"`
}

// DefaultConfig returns the stock retry policy for baseURL.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:        baseURL,
		MaxRetries:     DefaultMaxRetries,
		RetryDelay:     DefaultRetryDelay,
		AttemptTimeout: DefaultAttemptTimeout,
	}
}

// RequestOption customises the outgoing request of every attempt.
type RequestOption func(*http.Request)

// WithHeader sets a header, replacing any value already present.
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

// Request describes one logical call.
type Request struct {
	Method  string
	Path    string
	Body    any
	Options []RequestOption
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithSleeper overrides how the client waits between attempts.
func WithSleeper(s Sleeper) Option {
	return func(c *Client) {
		if s != nil {
			c.sleeper = s
		}
	}
}

// WithLogger sets the logger used for attempt diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// Client sends JSON requests to a fixed base URL with bounded retries.
type Client struct {
	cfg        Config
	httpClient *http.Client
	sleeper    Sleeper
	log        *slog.Logger
}

// New creates a client for cfg.BaseURL.
func New(cfg Config, opts ...Option) *Client {
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	} else if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = DefaultRetryDelay
	} else if cfg.RetryDelay < 0 {
		cfg.RetryDelay = 0
	}
	if cfg.AttemptTimeout == 0 {
		cfg.AttemptTimeout = DefaultAttemptTimeout
	}

	c := &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		sleeper: timerSleeper{},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "httpclient")
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// Get issues a GET to base URL + path and decodes the body into out.
func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Options: opts}, out)
}

// Post issues a POST with body serialized as JSON. A nil body sends no content.
func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body, Options: opts}, out)
}

// GetJSON is Get with the decoded value returned directly.
func GetJSON[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (T, error) {
	var out T
	if err := c.Get(ctx, path, &out, opts...); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// PostJSON is Post with the decoded value returned directly.
func PostJSON[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (T, error) {
	var out T
	if err := c.Post(ctx, path, body, &out, opts...); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

type attemptResult struct {
	status int
	body   []byte
	err    error
}

// Do runs req until it succeeds, fails terminally or runs out of attempts.
// When out is nil the response body is discarded.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	var payload []byte
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		payload = data
	}

	url := c.cfg.BaseURL + req.Path
	requestID := uuid.NewString()
	log := c.log.With("method", method, "url", url, "request_id", requestID)

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			metrics.HTTPRequestsTotal.WithLabelValues(method, "cancelled").Inc()
			return err
		}

		res := c.send(ctx, method, url, payload, requestID, req.Options)

		// A cancelled caller is never retried.
		if res.err != nil && ctx.Err() != nil {
			metrics.HTTPRequestsTotal.WithLabelValues(method, "cancelled").Inc()
			return ctx.Err()
		}

		budgetLeft := attempt < c.cfg.MaxRetries
		switch Classify(res.status, res.err, budgetLeft) {
		case OutcomeSuccess:
			metrics.HTTPAttemptsTotal.WithLabelValues(method, "success").Inc()
			if out != nil {
				if err := json.Unmarshal(res.body, out); err != nil {
					metrics.HTTPRequestsTotal.WithLabelValues(method, "error").Inc()
					return fmt.Errorf("%w: %w", ErrDecode, err)
				}
			}
			metrics.HTTPRequestsTotal.WithLabelValues(method, "success").Inc()
			log.Debug("Request succeeded", "attempts", attempt+1, "status", res.status)
			return nil

		case OutcomeTerminal:
			metrics.HTTPAttemptsTotal.WithLabelValues(method, attemptLabel(res)).Inc()
			metrics.HTTPRequestsTotal.WithLabelValues(method, "error").Inc()
			if res.err != nil {
				log.Error("Request failed", "attempts", attempt+1, "error", res.err)
				return fmt.Errorf("%s %s failed after %d attempts: %w", method, url, attempt+1, res.err)
			}
			log.Error("Request failed", "attempts", attempt+1, "status", res.status)
			return &HTTPError{StatusCode: res.status, Method: method, URL: url}

		case OutcomeRetry:
			reason := attemptLabel(res)
			metrics.HTTPAttemptsTotal.WithLabelValues(method, reason).Inc()
			metrics.HTTPRetriesTotal.WithLabelValues(method, reason).Inc()
			if res.err != nil {
				lastErr = res.err
				log.Warn("Network error, retrying", "attempt", attempt+1, "delay", c.cfg.RetryDelay, "error", res.err)
			} else {
				lastErr = &HTTPError{StatusCode: res.status, Method: method, URL: url}
				log.Warn("Server error, retrying", "attempt", attempt+1, "delay", c.cfg.RetryDelay, "status", res.status)
			}

			if err := c.sleeper.Sleep(ctx, c.cfg.RetryDelay); err != nil {
				metrics.HTTPRequestsTotal.WithLabelValues(method, "cancelled").Inc()
				return err
			}
		}
	}

	metrics.HTTPRequestsTotal.WithLabelValues(method, "error").Inc()
	if lastErr != nil {
		return lastErr
	}
	return ErrUnknown
}

// send performs a single attempt. Transport failures are reported in err;
// any received response is reported through status and body.
func (c *Client) send(
	ctx context.Context,
	method, url string,
	payload []byte,
	requestID string,
	opts []RequestOption,
) attemptResult {
	start := time.Now()
	defer func() {
		metrics.HTTPAttemptLatency.WithLabelValues(method).Observe(time.Since(start).Seconds())
	}()

	attemptCtx := ctx
	if c.cfg.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, c.cfg.AttemptTimeout)
		defer cancel()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(attemptCtx, method, url, body)
	if err != nil {
		return attemptResult{err: fmt.Errorf("create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(RequestIDHeader, requestID)
	for _, opt := range opts {
		opt(httpReq)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return attemptResult{err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return attemptResult{err: fmt.Errorf("read response: %w", err)}
	}

	return attemptResult{status: resp.StatusCode, body: data}
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func attemptLabel(res attemptResult) string {
	switch {
	case res.err != nil:
		return "network_error"
	case isServerError(res.status):
		return "server_error"
	default:
		return "client_error"
	}
}
