package client

import (
	"net/http"
	"strconv"
	"time"
)

// attemptOutcome classifies the result of one request attempt. The retry
// loop in Do switches on this instead of sniffing status codes out of
// error values.
type attemptOutcome int

const (
	outcomeSuccess attemptOutcome = iota
	outcomeRateLimited
	outcomeFatal
)

// attemptResult is the typed result of a single attempt: a decoded
// response on success, a server-directed backoff on 429, or a fatal
// error for everything else.
type attemptResult struct {
	outcome    attemptOutcome
	resp       *Response
	retryAfter time.Duration
	err        error
}

func fatal(err error) attemptResult {
	return attemptResult{outcome: outcomeFatal, err: err}
}

// retryAfterDelay reads the Retry-After header as whole seconds. Absent,
// unparsable or sub-second values fall back to one second.
func retryAfterDelay(header http.Header) time.Duration {
	raw := header.Get("Retry-After")
	if raw == "" {
		return defaultRetryAfter
	}

	// Shopify sends decimal seconds, e.g. "2.0".
	secs, err := strconv.ParseFloat(raw, 64)
	if err != nil || secs < 1 {
		return defaultRetryAfter
	}
	return time.Duration(int(secs)) * time.Second
}
