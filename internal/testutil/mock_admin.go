// Package testutil provides testing utilities for the Shopify access
// layer.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
)

// RecordedRequest captures one request the mock server received.
type RecordedRequest struct {
	Path   string
	Query  url.Values
	Header http.Header
}

// MockAdmin is a configurable mock Shopify Admin API server.
type MockAdmin struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc
	requests []RecordedRequest
}

// NewMockAdmin creates a new mock Admin API server.
func NewMockAdmin() *MockAdmin {
	mock := &MockAdmin{
		handlers: make(map[string]http.HandlerFunc),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.requests = append(mock.requests, RecordedRequest{
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
		})
		handler, exists := mock.handlers[strippedPath(r.URL.Path)]
		mock.mu.Unlock()

		if exists {
			handler(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))

	return mock
}

// strippedPath removes the /admin/api/{version} prefix so handlers can be
// registered by resource path alone.
func strippedPath(path string) string {
	if !strings.HasPrefix(path, "/admin/api/") {
		return strings.TrimPrefix(path, "/")
	}
	rest := strings.TrimPrefix(path, "/admin/api/")
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return rest[i+1:]
	}
	return rest
}

// URL returns the mock server URL.
func (m *MockAdmin) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockAdmin) Close() {
	m.server.Close()
}

// SetHandler registers a handler for a resource path such as
// "products.json".
func (m *MockAdmin) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetJSONResponse registers a fixed JSON response for a resource path.
func (m *MockAdmin) SetJSONResponse(path string, status int, body string) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		w.Write([]byte(body))
	})
}

// SetRateLimitedThenOK registers a handler that answers the first n
// requests with 429 (and the given Retry-After value) and every request
// after that with 200 and the given body.
func (m *MockAdmin) SetRateLimitedThenOK(path string, n int, retryAfter, body string) {
	var mu sync.Mutex
	served := 0
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		served++
		limited := served <= n
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if limited {
			if retryAfter != "" {
				w.Header().Set("Retry-After", retryAfter)
			}
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"errors":"Exceeded 2 calls per second for api client"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	})
}

// SetPagedCollection registers a cursor-linked collection. Each element
// of pages is the JSON array content (without brackets) of one page,
// served under the given body key. Pages after the first require the
// page_info cursor issued by the previous page's Link header.
func (m *MockAdmin) SetPagedCollection(path, key string, pages []string) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		page := 0
		if cursor := r.URL.Query().Get("page_info"); cursor != "" {
			fmt.Sscanf(cursor, "cursor-%d", &page)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if page < 0 || page >= len(pages) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"errors":"invalid page_info"}`))
			return
		}

		if page < len(pages)-1 {
			next := fmt.Sprintf("%s/%s?limit=250&page_info=cursor-%d", m.server.URL, r.URL.Path[1:], page+1)
			w.Header().Set("Link", fmt.Sprintf(`<%s>; rel="next"`, next))
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{%q:[%s]}`, key, pages[page])
	})
}

// Requests returns a copy of all recorded requests.
func (m *MockAdmin) Requests() []RecordedRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]RecordedRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// RequestCount returns the number of requests received.
func (m *MockAdmin) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.requests)
}

// Reset clears recorded requests.
func (m *MockAdmin) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
}
