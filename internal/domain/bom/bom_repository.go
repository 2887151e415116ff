package bom

import (
	"context"

	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Summary is a read model for BOM lists: header fields plus derived counts,
// so callers never fetch lines just to render a table row
type Summary struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Revision    string          `json:"version"`
	Name        string          `json:"name"`
	Status      Status          `json:"status"`
	LineCount   int             `json:"line_count"`
	TotalCost   decimal.Decimal `json:"total_cost"`
}

// Repository defines the persistence interface for BOM aggregates
type Repository interface {
	// FindByID loads a BOM with all its lines
	FindByID(ctx context.Context, id uuid.UUID) (*BOM, error)

	// FindByLineID loads the BOM owning the given line, with all its lines
	FindByLineID(ctx context.Context, lineID uuid.UUID) (*BOM, error)

	// FindActiveByProduct returns the active BOM for a product, or
	// shared.ErrNotFound when the product has none
	FindActiveByProduct(ctx context.Context, productID uuid.UUID) (*BOM, error)

	// ListSummaries returns paginated BOM summaries, optionally filtered by
	// status via filter.Filters["status"]
	ListSummaries(ctx context.Context, filter shared.Filter) (shared.Paginated[Summary], error)

	// ExistsByProductAndRevision checks for a duplicate version of a product's BOM
	ExistsByProductAndRevision(ctx context.Context, productID uuid.UUID, revision string) (bool, error)

	// Save persists the BOM and reconciles its lines: lines no longer on the
	// aggregate are deleted, the rest upserted, all in one transaction
	Save(ctx context.Context, b *BOM) error

	// SaveWithLock persists the BOM guarded by its optimistic version and
	// reconciles its lines only when the guard holds. Returns
	// shared.ErrConcurrencyConflict when the stored version moved, leaving
	// the concurrent writer's lines intact. Line mutations must go through
	// this, not Save.
	SaveWithLock(ctx context.Context, b *BOM) error

	// UpdateStatusGuarded transitions a BOM's status only if it currently has
	// the expected status. Returns false without error when the guard fails,
	// which is how concurrent approvals lose cleanly.
	UpdateStatusGuarded(ctx context.Context, id uuid.UUID, from, to Status) (bool, error)

	// Delete removes the BOM and all its lines
	Delete(ctx context.Context, id uuid.UUID) error
}
