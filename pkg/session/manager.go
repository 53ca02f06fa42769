package session

import (
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mauricepattyn/craft-shopify/pkg/client"
	"github.com/mauricepattyn/craft-shopify/pkg/config"
	"github.com/mauricepattyn/craft-shopify/pkg/logging"
)

// ErrNotConfigured is returned when a client is requested before the
// Shopify API key and secret are configured.
var ErrNotConfigured = errors.New("shopify api key and secret are not configured")

// Manager owns the process's single Session and client binding. Both are
// built lazily on first use and cached for the Manager's lifetime. A
// mutex guards construction so concurrent first calls cannot build
// duplicates; after that both values are effectively read-only.
type Manager struct {
	cfg    *config.Config
	store  *Store
	logger zerolog.Logger

	mu      sync.Mutex
	session *Session
	client  *client.Client
}

// NewManager creates a manager over the given configuration. Nothing is
// constructed until the first Session or Client call.
func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		cfg:    cfg,
		store:  NewStore(cfg.SessionDir),
		logger: logging.New("session"),
	}
}

// Session returns the cached Session, building it on first call. ok is
// false while the API key or secret cannot be resolved; that is a valid
// "not configured" state, not an error, and resolution is retried on the
// next call (configuration values may be late-bound).
func (m *Manager) Session() (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionLocked()
}

func (m *Manager) sessionLocked() (*Session, bool) {
	if m.session != nil {
		return m.session, true
	}

	// $ENV_VAR references resolve now, not at config load time.
	apiKey := resolve(m.cfg.APIKey)
	apiSecret := resolve(m.cfg.APISecret)
	if apiKey == "" || apiSecret == "" {
		return nil, false
	}

	shop := config.NormalizeShop(resolve(m.cfg.Shop))
	token := resolve(m.cfg.AccessToken)
	host := hostIdentifier()

	sess := New(shop, token)
	if err := m.store.Save(sess, host); err != nil {
		// Bookkeeping only; a failed write never blocks access.
		m.logger.Warn().Err(err).Str("shop", shop).Msg("Failed to persist session record")
	}

	m.logger.Info().
		Str("shop", shop).
		Str("host", host).
		Strs("scopes", Scopes).
		Msg("Session created")

	m.session = sess
	return m.session, true
}

// Client returns the cached client binding, building it from the Session
// on first call. It returns ErrNotConfigured while no Session can be
// built.
func (m *Manager) Client() (*client.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		return m.client, nil
	}

	sess, ok := m.sessionLocked()
	if !ok {
		return nil, ErrNotConfigured
	}

	c, err := client.New(client.Config{
		Shop:        sess.Shop,
		AccessToken: sess.AccessToken,
		APIVersion:  m.cfg.APIVersion,
	})
	if err != nil {
		return nil, err
	}

	m.client = c
	return m.client, nil
}

func resolve(value string) string {
	return strings.TrimSpace(os.ExpandEnv(value))
}
