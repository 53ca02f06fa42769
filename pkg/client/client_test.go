package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mauricepattyn/craft-shopify/internal/testutil"
)

// sleepRecorder captures sleeps instead of blocking, keeping the retry
// and pause tests instant and deterministic.
type sleepRecorder struct {
	mu     sync.Mutex
	sleeps []time.Duration
}

func (s *sleepRecorder) sleep(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sleeps = append(s.sleeps, d)
}

func (s *sleepRecorder) recorded() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, len(s.sleeps))
	copy(out, s.sleeps)
	return out
}

func newTestClient(t *testing.T, mock *testutil.MockAdmin) (*Client, *sleepRecorder) {
	t.Helper()

	c, err := New(Config{
		Shop:        "example.myshopify.com",
		AccessToken: "shpat_test",
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	c.SetBaseURL(mock.URL())

	rec := &sleepRecorder{}
	c.SetSleep(rec.sleep)
	return c, rec
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name:   "valid config",
			config: Config{Shop: "example.myshopify.com", AccessToken: "shpat_x"},
		},
		{
			name:        "missing shop",
			config:      Config{AccessToken: "shpat_x"},
			expectError: true,
		},
		{
			name:        "missing access token",
			config:      Config{Shop: "example.myshopify.com"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.config)
			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if c == nil {
				t.Error("Client is nil")
			}
		})
	}
}

func TestFetchOne_Success(t *testing.T) {
	mock := testutil.NewMockAdmin()
	defer mock.Close()
	mock.SetJSONResponse("shop.json", http.StatusOK, `{"shop":{"id":1,"name":"Example"}}`)

	c, rec := newTestClient(t, mock)

	body, err := c.FetchOne(context.Background(), "shop.json", nil)
	if err != nil {
		t.Fatalf("FetchOne() failed: %v", err)
	}

	shop, ok := body["shop"].(map[string]any)
	if !ok {
		t.Fatalf("Body missing shop object: %v", body)
	}
	if shop["name"] != "Example" {
		t.Errorf("shop.name = %v, want Example", shop["name"])
	}

	if mock.RequestCount() != 1 {
		t.Errorf("Request count = %d, want 1", mock.RequestCount())
	}

	sleeps := rec.recorded()
	if len(sleeps) != 1 || sleeps[0] < 500*time.Millisecond {
		t.Errorf("Expected one post-success pause of >= 500ms, got %v", sleeps)
	}
}

func TestFetchOne_SendsAccessToken(t *testing.T) {
	mock := testutil.NewMockAdmin()
	defer mock.Close()
	mock.SetJSONResponse("shop.json", http.StatusOK, `{"shop":{}}`)

	c, _ := newTestClient(t, mock)

	if _, err := c.FetchOne(context.Background(), "shop.json", nil); err != nil {
		t.Fatalf("FetchOne() failed: %v", err)
	}

	reqs := mock.Requests()
	if got := reqs[0].Header.Get("X-Shopify-Access-Token"); got != "shpat_test" {
		t.Errorf("X-Shopify-Access-Token = %q, want shpat_test", got)
	}
}

func TestFetchOne_RetriesRateLimit(t *testing.T) {
	mock := testutil.NewMockAdmin()
	defer mock.Close()
	mock.SetRateLimitedThenOK("products/1.json", 2, "3", `{"product":{"id":1}}`)

	c, rec := newTestClient(t, mock)

	body, err := c.FetchOne(context.Background(), "products/1.json", nil)
	if err != nil {
		t.Fatalf("FetchOne() failed after retries: %v", err)
	}
	if _, ok := body["product"]; !ok {
		t.Errorf("Body missing product: %v", body)
	}

	// Two 429s then success: 3 requests, two 3s backoffs, one pause.
	if mock.RequestCount() != 3 {
		t.Errorf("Request count = %d, want 3", mock.RequestCount())
	}

	var backoff time.Duration
	for _, d := range rec.recorded() {
		if d >= time.Second {
			backoff += d
		}
	}
	if backoff != 6*time.Second {
		t.Errorf("Cumulative backoff = %v, want 6s (2 x Retry-After 3)", backoff)
	}
}

func TestFetchOne_RetryExhausted(t *testing.T) {
	mock := testutil.NewMockAdmin()
	defer mock.Close()
	mock.SetRateLimitedThenOK("products.json", 100, "1", `{}`)

	c, rec := newTestClient(t, mock)

	_, err := c.FetchOne(context.Background(), "products.json", nil)
	if err == nil {
		t.Fatal("Expected error after exhausting retries")
	}
	if !errors.Is(err, ErrRetryExhausted) {
		t.Errorf("Error = %v, want ErrRetryExhausted", err)
	}

	// Initial try plus exactly 5 retries, never a 6th.
	if mock.RequestCount() != 6 {
		t.Errorf("Request count = %d, want 6", mock.RequestCount())
	}

	// Five backoff sleeps, no post-success pause.
	if got := len(rec.recorded()); got != 5 {
		t.Errorf("Sleep count = %d, want 5", got)
	}
}

func TestFetchOne_ServerErrorNotRetried(t *testing.T) {
	mock := testutil.NewMockAdmin()
	defer mock.Close()
	mock.SetJSONResponse("products.json", http.StatusInternalServerError, `{"errors":"Internal Server Error"}`)

	c, rec := newTestClient(t, mock)

	_, err := c.FetchOne(context.Background(), "products.json", nil)
	if err == nil {
		t.Fatal("Expected error for 500 response")
	}

	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("Error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", apiErr.StatusCode)
	}

	if mock.RequestCount() != 1 {
		t.Errorf("Request count = %d, want 1 (no retry on non-429)", mock.RequestCount())
	}
	if len(rec.recorded()) != 0 {
		t.Errorf("Expected no sleeps on the error path, got %v", rec.recorded())
	}
}

func TestFetchOne_ErrorsPayloadOn200(t *testing.T) {
	mock := testutil.NewMockAdmin()
	defer mock.Close()
	mock.SetJSONResponse("products/42.json", http.StatusOK, `{"errors":["Not Found","Gone"]}`)

	c, _ := newTestClient(t, mock)

	_, err := c.FetchOne(context.Background(), "products/42.json", nil)
	if err == nil {
		t.Fatal("Expected error for errors payload despite HTTP 200")
	}

	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("Error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Detail, "Not Found") {
		t.Errorf("Detail = %q, want serialized errors payload", apiErr.Detail)
	}
}

func TestFetchOne_QueryParamsForwarded(t *testing.T) {
	mock := testutil.NewMockAdmin()
	defer mock.Close()
	mock.SetJSONResponse("products.json", http.StatusOK, `{"products":[]}`)

	c, _ := newTestClient(t, mock)

	query := url.Values{"status": {"active"}, "vendor": {"Acme"}}
	if _, err := c.FetchOne(context.Background(), "products.json", query); err != nil {
		t.Fatalf("FetchOne() failed: %v", err)
	}

	got := mock.Requests()[0].Query
	if got.Get("status") != "active" || got.Get("vendor") != "Acme" {
		t.Errorf("Forwarded query = %v, want status=active vendor=Acme", got)
	}
}

func TestRetryAfterDelay(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected time.Duration
	}{
		{"absent defaults to 1s", "", time.Second},
		{"whole seconds", "3", 3 * time.Second},
		{"decimal truncated to whole seconds", "2.7", 2 * time.Second},
		{"sub-second clamps to 1s", "0.5", time.Second},
		{"garbage defaults to 1s", "soon", time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			if tt.header != "" {
				h.Set("Retry-After", tt.header)
			}
			if got := retryAfterDelay(h); got != tt.expected {
				t.Errorf("retryAfterDelay(%q) = %v, want %v", tt.header, got, tt.expected)
			}
		})
	}
}
