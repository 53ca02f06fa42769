package resources

import (
	"context"
	"fmt"

	"github.com/mauricepattyn/craft-shopify/pkg/pagination"
)

// ProductMetafields fetches every metafield attached to a product. When
// product metafield fetching is disabled by configuration, it
// short-circuits to an empty result without touching the API.
func (s *Service) ProductMetafields(ctx context.Context, productID int64) ([]Metafield, error) {
	if !s.cfg.FetchProductMetafields {
		s.logger.Debug().Int64("product_id", productID).Msg("Product metafield fetching disabled")
		return nil, nil
	}

	col := pagination.RESTCollection{
		Endpoint: fmt.Sprintf("products/%d/metafields.json", productID),
		Key:      "metafields",
	}

	items, err := s.fetchAll(ctx, col, nil)
	if err != nil {
		return nil, fmt.Errorf("list metafields of product %d: %w", productID, err)
	}
	return decodeList[Metafield](items)
}

// VariantMetafields fetches every metafield attached to a variant,
// gated by its own feature flag like ProductMetafields.
func (s *Service) VariantMetafields(ctx context.Context, variantID int64) ([]Metafield, error) {
	if !s.cfg.FetchVariantMetafields {
		s.logger.Debug().Int64("variant_id", variantID).Msg("Variant metafield fetching disabled")
		return nil, nil
	}

	col := pagination.RESTCollection{
		Endpoint: fmt.Sprintf("variants/%d/metafields.json", variantID),
		Key:      "metafields",
	}

	items, err := s.fetchAll(ctx, col, nil)
	if err != nil {
		return nil, fmt.Errorf("list metafields of variant %d: %w", variantID, err)
	}
	return decodeList[Metafield](items)
}
