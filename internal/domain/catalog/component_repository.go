package catalog

import (
	"context"

	"github.com/craftshop/backend/internal/domain/shared"
)

// ComponentRepository defines the persistence interface for components
type ComponentRepository interface {
	shared.Repository[Component]

	// FindBySKU finds a component by its SKU
	FindBySKU(ctx context.Context, sku string) (*Component, error)

	// SearchByName finds components whose name or SKU matches the query,
	// best matches first
	SearchByName(ctx context.Context, query string, limit int) ([]Component, error)
}
