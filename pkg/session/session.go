// Package session binds a shop identity to an offline access token and
// owns the lazy, build-once construction of the HTTP client bound to it.
package session

import "os"

// Scopes is the fixed scope list this access layer operates under.
var Scopes = []string{"write_products", "read_products", "read_inventory"}

// DefaultHost identifies background invocations with no host context.
const DefaultHost = "localhost"

// offlineState is the fixed state placeholder for offline sessions; there
// is no OAuth round trip to carry a real state through.
const offlineState = "offline"

// Session binds a shop identity to its access token. It is immutable
// after construction: a Session is only ever replaced, never mutated.
type Session struct {
	// Shop is the shop hostname, e.g. "example.myshopify.com".
	Shop string

	// AccessToken is the pre-issued offline Admin API token.
	AccessToken string

	// IsOnline is always false: this layer performs background access
	// with an offline token, never user-scoped online access.
	IsOnline bool

	// State is a fixed placeholder; see offlineState.
	State string
}

// New creates an offline session for a shop.
func New(shop, accessToken string) *Session {
	return &Session{
		Shop:        shop,
		AccessToken: accessToken,
		IsOnline:    false,
		State:       offlineState,
	}
}

// hostIdentifier names the environment running this process, for the
// authentication context's bookkeeping.
func hostIdentifier() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return DefaultHost
	}
	return host
}
