package resources

import (
	"context"
	"fmt"
)

// GetShop fetches the shop settings record.
func (s *Service) GetShop(ctx context.Context) (*Shop, error) {
	c, err := s.client()
	if err != nil {
		return nil, err
	}

	body, err := c.FetchOne(ctx, "shop.json", nil)
	if err != nil {
		return nil, fmt.Errorf("get shop: %w", err)
	}

	var shop Shop
	if err := decode(body["shop"], &shop); err != nil {
		return nil, fmt.Errorf("get shop: %w", err)
	}
	return &shop, nil
}
