package client

import (
	"errors"
	"fmt"
)

// ErrRetryExhausted is returned when a request stays rate limited through
// the full retry ceiling.
var ErrRetryExhausted = errors.New("retry attempts exhausted")

// APIError is a failed Admin API request: a non-2xx response, or a 2xx
// response whose body carries an errors payload.
type APIError struct {
	// StatusCode is the HTTP status of the failing response.
	StatusCode int

	// Detail holds the raw error body, or the serialized errors payload
	// for application-level failures.
	Detail string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("shopify admin error (status %d): %s", e.StatusCode, e.Detail)
}

// AsAPIError unwraps an *APIError from err, if present.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
