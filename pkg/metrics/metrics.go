// Package metrics provides the centralized Prometheus metrics registry
// for the Shopify access layer. All metrics are defined in their
// respective packages (client, pagination) to maintain modularity and
// avoid circular dependencies.
//
// This package provides documentation and reference for all available
// metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the access layer.
// All metrics are automatically registered via promauto in their
// respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - shopify_admin_requests_total{path, status} (Counter): Total requests by resource path and HTTP status
//   - shopify_admin_request_duration_seconds{path} (Histogram): Request duration by resource path
//
// Retry Metrics (pkg/client):
//   - shopify_admin_rate_limited_total (Counter): 429 responses received
//   - shopify_admin_retries_total (Counter): Retry attempts after rate limiting
//   - shopify_admin_retry_exhausted_total (Counter): Requests that exhausted the retry ceiling
//
// Pagination Metrics (pkg/pagination):
//   - shopify_admin_pages_fetched_total{endpoint} (Counter): Pages fetched per collection endpoint
//   - shopify_admin_collection_items{endpoint} (Histogram): Items returned per full collection fetch
//
// Example Prometheus Queries:
//
//   # Rate Limit Pressure
//   rate(shopify_admin_rate_limited_total[5m])
//
//   # Retry Exhaustion (should stay at zero)
//   increase(shopify_admin_retry_exhausted_total[1h])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(shopify_admin_request_duration_seconds_bucket[5m]))
//
//   # Pages Fetched Per Endpoint
//   sum by (endpoint) (rate(shopify_admin_pages_fetched_total[5m]))
