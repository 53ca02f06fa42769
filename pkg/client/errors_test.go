package client

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		apiError *APIError
		expected string
	}{
		{
			name:     "http error body",
			apiError: &APIError{StatusCode: 500, Detail: "Internal Server Error"},
			expected: "shopify admin error (status 500): Internal Server Error",
		},
		{
			name:     "errors payload on 200",
			apiError: &APIError{StatusCode: 200, Detail: `["Not Found"]`},
			expected: `shopify admin error (status 200): ["Not Found"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.apiError.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAsAPIError(t *testing.T) {
	apiErr := &APIError{StatusCode: 404, Detail: "Not Found"}
	wrapped := fmt.Errorf("fetch product: %w", apiErr)

	got, ok := AsAPIError(wrapped)
	if !ok {
		t.Fatal("AsAPIError() did not find wrapped *APIError")
	}
	if got.StatusCode != 404 {
		t.Errorf("StatusCode = %d, want 404", got.StatusCode)
	}

	if _, ok := AsAPIError(errors.New("plain")); ok {
		t.Error("AsAPIError() matched a plain error")
	}
}
