// Package client implements the core Shopify Admin REST client: one
// transport binding per session, a rate-limit-aware request executor,
// and error classification.
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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/mauricepattyn/craft-shopify/pkg/logging"
)

// Prometheus metrics for Admin API requests.
var (
	adminRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shopify_admin_requests_total",
		Help: "Total Admin API requests by path and status",
	}, []string{"path", "status"})

	adminRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shopify_admin_request_duration_seconds",
		Help:    "Admin API request duration in seconds by path",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"path"})

	adminRateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shopify_admin_rate_limited_total",
		Help: "Total 429 responses received from the Admin API",
	})

	adminRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shopify_admin_retries_total",
		Help: "Total retry attempts after a 429 response",
	})

	adminRetryExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shopify_admin_retry_exhausted_total",
		Help: "Total requests that exhausted the 429 retry ceiling",
	})
)

const (
	// maxRetries is the retry ceiling for 429 responses per logical
	// request: at most 5 retries, 6 tries in total.
	maxRetries = 5

	// successPause is a fixed pause after every successful request. It is
	// a proactive throttle that keeps sequential callers under the Admin
	// API leaky bucket, independent of reactive 429 handling.
	successPause = 500 * time.Millisecond

	// defaultRetryAfter applies when a 429 response carries no
	// Retry-After header.
	defaultRetryAfter = time.Second
)

// Config holds the client configuration.
type Config struct {
	// Shop is the shop hostname, e.g. "example.myshopify.com".
	Shop string

	// AccessToken is the offline Admin API token sent with every request.
	AccessToken string

	// APIVersion selects the versioned REST base path.
	APIVersion string

	// HTTPClient overrides the default transport (30s timeout).
	HTTPClient *http.Client
}

// Client is the transport binding for one shop session. It is a handle,
// not a cache: beyond the identity copied at construction it holds no
// state. It is designed for sequential use; the executor's sleeps block
// the calling goroutine.
type Client struct {
	shop        string
	accessToken string
	apiVersion  string
	baseURL     string
	httpClient  *http.Client
	sleep       func(time.Duration)
	logger      zerolog.Logger
}

// Response is one decoded Admin API response: the JSON body and the
// response headers (pagination cursors arrive in the Link header).
type Response struct {
	Body   map[string]any
	Header http.Header
}

// New creates a client bound to a shop and access token.
func New(cfg Config) (*Client, error) {
	if cfg.Shop == "" {
		return nil, fmt.Errorf("shop hostname is required")
	}
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("access token is required")
	}

	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = "2024-01"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	logger := logging.New("client")

	return &Client{
		shop:        cfg.Shop,
		accessToken: cfg.AccessToken,
		apiVersion:  apiVersion,
		baseURL:     "https://" + cfg.Shop,
		httpClient:  httpClient,
		sleep:       time.Sleep,
		logger:      logger.With().Str("shop", cfg.Shop).Logger(),
	}, nil
}

// Shop returns the bound shop hostname.
func (c *Client) Shop() string {
	return c.shop
}

// Do performs one logical GET against the Admin API, absorbing 429
// throttling with server-directed retries up to the retry ceiling.
//
// The ctx covers the HTTP requests only. The proactive post-success
// pause and the 429 backoff are plain blocking sleeps with no
// cancellation; callers needing a deadline must bound the whole
// operation at a higher layer.
func (c *Client) Do(ctx context.Context, path string, query url.Values) (*Response, error) {
	for attempt := 0; ; attempt++ {
		res := c.tryOnce(ctx, path, query)

		switch res.outcome {
		case outcomeSuccess:
			c.sleep(successPause)
			return res.resp, nil

		case outcomeRateLimited:
			adminRateLimitedTotal.Inc()
			if attempt >= maxRetries {
				adminRetryExhaustedTotal.Inc()
				c.logger.Warn().
					Str("path", path).
					Int("max_retries", maxRetries).
					Msg("Rate limit retries exhausted")
				return nil, fmt.Errorf("%w after %d retries: %v", ErrRetryExhausted, maxRetries, res.err)
			}
			adminRetriesTotal.Inc()
			c.logger.Warn().
				Str("path", path).
				Int("attempt", attempt+1).
				Dur("retry_after", res.retryAfter).
				Msg("Rate limited, backing off")
			c.sleep(res.retryAfter)

		default:
			// Non-429 failures are never retried at this layer.
			return nil, res.err
		}
	}
}

// FetchOne performs one logical GET and returns the decoded body.
func (c *Client) FetchOne(ctx context.Context, path string, query url.Values) (map[string]any, error) {
	resp, err := c.Do(ctx, path, query)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// tryOnce issues a single request attempt and classifies its result.
func (c *Client) tryOnce(ctx context.Context, path string, query url.Values) attemptResult {
	u := c.url(path, query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fatal(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	adminRequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	if err != nil {
		adminRequestsTotal.WithLabelValues(path, "network_error").Inc()
		return fatal(fmt.Errorf("execute request: %w", err))
	}
	defer resp.Body.Close()

	adminRequestsTotal.WithLabelValues(path, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fatal(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return attemptResult{
			outcome:    outcomeRateLimited,
			retryAfter: retryAfterDelay(resp.Header),
			err:        &APIError{StatusCode: resp.StatusCode, Detail: string(body)},
		}
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn().
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("Admin API request failed")
		return fatal(&APIError{StatusCode: resp.StatusCode, Detail: string(body)})
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return fatal(fmt.Errorf("decode response: %w", err))
	}

	// A 2xx body can still carry an application-level failure.
	if errs, ok := decoded["errors"]; ok {
		detail, err := json.Marshal(errs)
		if err != nil {
			detail = body
		}
		c.logger.Warn().
			Str("path", path).
			RawJSON("errors", detail).
			Msg("Admin API returned an errors payload")
		return fatal(&APIError{StatusCode: resp.StatusCode, Detail: string(detail)})
	}

	c.logger.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("Admin API request succeeded")

	return attemptResult{
		outcome: outcomeSuccess,
		resp:    &Response{Body: decoded, Header: resp.Header.Clone()},
	}
}

// url builds the versioned request URL for a path relative to the Admin
// API base, e.g. "products.json".
func (c *Client) url(path string, query url.Values) string {
	u := fmt.Sprintf("%s/admin/api/%s/%s", c.baseURL, c.apiVersion, path)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// SetBaseURL overrides the https://{shop} base (for testing).
func (c *Client) SetBaseURL(base string) {
	c.baseURL = base
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// SetSleep replaces the blocking sleep used for the post-success pause
// and the 429 backoff (for testing).
func (c *Client) SetSleep(sleep func(time.Duration)) {
	c.sleep = sleep
}
