package resources

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mauricepattyn/craft-shopify/pkg/pagination"
)

var productCollection = pagination.RESTCollection{Endpoint: "products.json", Key: "products"}

// ListProducts fetches every product across all pages. params may carry
// Admin API filters (status, vendor, ...); any caller-supplied page size
// is overridden by the paginator.
func (s *Service) ListProducts(ctx context.Context, params url.Values) ([]Product, error) {
	items, err := s.fetchAll(ctx, productCollection, params)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return decodeList[Product](items)
}

// GetProduct fetches one product by id.
func (s *Service) GetProduct(ctx context.Context, id int64) (*Product, error) {
	c, err := s.client()
	if err != nil {
		return nil, err
	}

	body, err := c.FetchOne(ctx, fmt.Sprintf("products/%d.json", id), nil)
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}

	var product Product
	if err := decode(body["product"], &product); err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &product, nil
}

// ListVariants fetches every variant of a product across all pages.
func (s *Service) ListVariants(ctx context.Context, productID int64) ([]Variant, error) {
	col := pagination.RESTCollection{
		Endpoint: fmt.Sprintf("products/%d/variants.json", productID),
		Key:      "variants",
	}

	items, err := s.fetchAll(ctx, col, nil)
	if err != nil {
		return nil, fmt.Errorf("list variants of product %d: %w", productID, err)
	}
	return decodeList[Variant](items)
}

// GetVariant fetches one variant by id.
func (s *Service) GetVariant(ctx context.Context, id int64) (*Variant, error) {
	c, err := s.client()
	if err != nil {
		return nil, err
	}

	body, err := c.FetchOne(ctx, fmt.Sprintf("variants/%d.json", id), nil)
	if err != nil {
		return nil, fmt.Errorf("get variant %d: %w", id, err)
	}

	var variant Variant
	if err := decode(body["variant"], &variant); err != nil {
		return nil, fmt.Errorf("get variant %d: %w", id, err)
	}
	return &variant, nil
}
