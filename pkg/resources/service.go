package resources

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/mauricepattyn/craft-shopify/pkg/client"
	"github.com/mauricepattyn/craft-shopify/pkg/config"
	"github.com/mauricepattyn/craft-shopify/pkg/logging"
	"github.com/mauricepattyn/craft-shopify/pkg/pagination"
	"github.com/mauricepattyn/craft-shopify/pkg/session"
)

// Service exposes the typed resource accessors. It borrows the manager's
// cached client binding on every call; it owns no transport state itself.
type Service struct {
	manager *session.Manager
	cfg     *config.Config
	logger  zerolog.Logger
}

// NewService creates the accessor service.
func NewService(manager *session.Manager, cfg *config.Config) *Service {
	return &Service{
		manager: manager,
		cfg:     cfg,
		logger:  logging.New("resources"),
	}
}

func (s *Service) client() (*client.Client, error) {
	return s.manager.Client()
}

// fetchAll runs the paginator over a collection with the manager's
// cached client.
func (s *Service) fetchAll(ctx context.Context, col pagination.Collection, params url.Values) ([]map[string]any, error) {
	c, err := s.client()
	if err != nil {
		return nil, err
	}
	return pagination.New(c).FetchAll(ctx, col, params)
}
