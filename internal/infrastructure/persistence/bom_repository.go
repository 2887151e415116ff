package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/craftshop/backend/internal/domain/bom"
	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBOMRepository implements bom.Repository using GORM
type GormBOMRepository struct {
	db *gorm.DB
}

// NewGormBOMRepository creates a new GormBOMRepository
func NewGormBOMRepository(db *gorm.DB) *GormBOMRepository {
	return &GormBOMRepository{db: db}
}

// FindByID finds a BOM with its lines by ID
func (r *GormBOMRepository) FindByID(ctx context.Context, id uuid.UUID) (*bom.BOM, error) {
	var b bom.BOM
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_number ASC")
		}).
		First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FindByLineID finds the BOM owning the given line
func (r *GormBOMRepository) FindByLineID(ctx context.Context, lineID uuid.UUID) (*bom.BOM, error) {
	var line bom.Line
	if err := r.db.WithContext(ctx).
		First(&line, "id = ?", lineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return r.FindByID(ctx, line.BOMID)
}

// FindActiveByProduct returns the active BOM for a product
func (r *GormBOMRepository) FindActiveByProduct(ctx context.Context, productID uuid.UUID) (*bom.BOM, error) {
	var b bom.BOM
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_number ASC")
		}).
		Where("product_id = ? AND status = ?", productID, bom.StatusActive).
		First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ListSummaries returns paginated BOM summaries with line counts computed in
// the database, so list callers never load line rows
func (r *GormBOMRepository) ListSummaries(ctx context.Context, filter shared.Filter) (shared.Paginated[bom.Summary], error) {
	base := r.db.WithContext(ctx).Model(&bom.BOM{})
	if status, ok := filter.Filters["status"]; ok {
		base = base.Where("boms.status = ?", status)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return shared.Paginated[bom.Summary]{}, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var summaries []bom.Summary
	if err := base.
		Select("boms.id, boms.product_id, boms.product_name, boms.revision, boms.name, boms.status, boms.total_cost, count(bom_lines.id) as line_count").
		Joins("LEFT JOIN bom_lines ON bom_lines.bom_id = boms.id").
		Group("boms.id, boms.product_id, boms.product_name, boms.revision, boms.name, boms.status, boms.total_cost, boms.created_at").
		Order("boms.created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Scan(&summaries).Error; err != nil {
		return shared.Paginated[bom.Summary]{}, err
	}

	return shared.NewPaginated(summaries, total, page, pageSize), nil
}

// ExistsByProductAndRevision checks for a duplicate version of a product's BOM
func (r *GormBOMRepository) ExistsByProductAndRevision(ctx context.Context, productID uuid.UUID, revision string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&bom.BOM{}).
		Where("product_id = ? AND revision = ?", productID, revision).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a BOM and reconciles its lines: lines no longer on
// the aggregate are deleted, the rest saved, in one transaction
func (r *GormBOMRepository) Save(ctx context.Context, b *bom.BOM) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(b).Error; err != nil {
			return translateUniqueViolation(err)
		}
		return reconcileLines(tx, b)
	})
}

// SaveWithLock saves the BOM with optimistic locking: the header update is
// guarded by the aggregate version, and only when the guard holds are the
// lines reconciled, all in one transaction. A caller holding a stale snapshot
// gets shared.ErrConcurrencyConflict and none of its line changes applied, so
// two concurrent editors of the same BOM cannot lose each other's lines.
func (r *GormBOMRepository) SaveWithLock(ctx context.Context, b *bom.BOM) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		currentVersion := b.Version
		b.Version++
		b.UpdatedAt = time.Now()

		result := tx.Model(&bom.BOM{}).
			Where("id = ? AND version = ?", b.ID, currentVersion).
			Updates(map[string]interface{}{
				"name":          b.Name,
				"description":   b.Description,
				"status":        b.Status,
				"labor_cost":    b.LaborCost,
				"overhead_cost": b.OverheadCost,
				"total_cost":    b.TotalCost,
				"notes":         b.Notes,
				"approved_at":   b.ApprovedAt,
				"retired_at":    b.RetiredAt,
				"version":       b.Version,
				"updated_at":    b.UpdatedAt,
			})
		if result.Error != nil {
			return translateUniqueViolation(result.Error)
		}
		if result.RowsAffected == 0 {
			b.Version = currentVersion
			return shared.ErrConcurrencyConflict
		}

		return reconcileLines(tx, b)
	})
}

// reconcileLines brings the stored line rows in sync with the aggregate:
// lines no longer on the aggregate are deleted, the rest upserted
func reconcileLines(tx *gorm.DB, b *bom.BOM) error {
	currentLineIDs := make([]uuid.UUID, len(b.Lines))
	for i, line := range b.Lines {
		currentLineIDs[i] = line.ID
	}

	if len(currentLineIDs) > 0 {
		if err := tx.Where("bom_id = ? AND id NOT IN ?", b.ID, currentLineIDs).
			Delete(&bom.Line{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("bom_id = ?", b.ID).
			Delete(&bom.Line{}).Error; err != nil {
			return err
		}
	}

	for i := range b.Lines {
		b.Lines[i].BOMID = b.ID
		if err := tx.Save(&b.Lines[i]).Error; err != nil {
			return translateUniqueViolation(err)
		}
	}

	return nil
}

// UpdateStatusGuarded transitions a BOM's status only when it currently has
// the expected status. The conditional UPDATE is what keeps the one-active-
// BOM-per-product invariant under concurrent approvals: the loser's guard
// matches zero rows. When both racers pass their guards (two drafts approved
// for a product with no active BOM yet), the partial unique index on active
// BOMs blocks the second promote and its 23505 comes back as
// shared.ErrConcurrencyConflict.
func (r *GormBOMRepository) UpdateStatusGuarded(ctx context.Context, id uuid.UUID, from, to bom.Status) (bool, error) {
	now := time.Now()
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": now,
	}
	switch to {
	case bom.StatusActive:
		updates["approved_at"] = now
	case bom.StatusObsolete:
		updates["retired_at"] = now
	}

	result := r.db.WithContext(ctx).
		Model(&bom.BOM{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, translateUniqueViolation(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Delete removes a BOM and all its lines
func (r *GormBOMRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bom_id = ?", id).Delete(&bom.Line{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&bom.BOM{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormBOMRepository implements the repository interface
var _ bom.Repository = (*GormBOMRepository)(nil)
