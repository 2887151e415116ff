package catalog

import (
	"context"

	"github.com/craftshop/backend/internal/domain/shared"
)

// ProductRepository defines the persistence interface for products
type ProductRepository interface {
	shared.Repository[Product]

	// FindBySKU finds a product by its SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// SearchByName finds active products whose name or SKU matches the query,
	// best matches first
	SearchByName(ctx context.Context, query string, limit int) ([]Product, error)
}
