// Package resources provides typed accessors for Admin API resources on
// top of the core request executor and paginator. Each accessor only
// names a path or collection and reshapes the returned payload; all
// throttling, retry and cursor handling lives below.
package resources

import (
	"encoding/json"
	"fmt"
)

// Product is one product record.
type Product struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Handle      string    `json:"handle"`
	Vendor      string    `json:"vendor"`
	ProductType string    `json:"product_type"`
	Status      string    `json:"status"`
	Tags        string    `json:"tags"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
	Variants    []Variant `json:"variants"`
}

// Variant is one product variant record.
type Variant struct {
	ID                int64  `json:"id"`
	ProductID         int64  `json:"product_id"`
	Title             string `json:"title"`
	SKU               string `json:"sku"`
	Price             string `json:"price"`
	CompareAtPrice    string `json:"compare_at_price"`
	Position          int    `json:"position"`
	InventoryItemID   int64  `json:"inventory_item_id"`
	InventoryQuantity int    `json:"inventory_quantity"`
}

// Metafield is one metafield record attached to a product or variant.
type Metafield struct {
	ID            int64  `json:"id"`
	Namespace     string `json:"namespace"`
	Key           string `json:"key"`
	Value         any    `json:"value"`
	Type          string `json:"type"`
	OwnerID       int64  `json:"owner_id"`
	OwnerResource string `json:"owner_resource"`
}

// Shop is the shop settings record.
type Shop struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Domain          string `json:"domain"`
	MyshopifyDomain string `json:"myshopify_domain"`
	Currency        string `json:"currency"`
	PlanName        string `json:"plan_name"`
}

// decode reinterprets the core's untyped key/value data as a typed
// record via a JSON round trip.
func decode(v any, out any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("reencode resource: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode resource: %w", err)
	}
	return nil
}

// decodeList decodes a page-concatenated collection into typed records,
// preserving order.
func decodeList[T any](items []map[string]any) ([]T, error) {
	out := make([]T, 0, len(items))
	for i, item := range items {
		var record T
		if err := decode(item, &record); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, record)
	}
	return out, nil
}
