package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/craftshop/backend/internal/domain/catalog"
	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormComponentRepository implements catalog.ComponentRepository using GORM
type GormComponentRepository struct {
	db *gorm.DB
}

// NewGormComponentRepository creates a new GormComponentRepository
func NewGormComponentRepository(db *gorm.DB) *GormComponentRepository {
	return &GormComponentRepository{db: db}
}

// FindByID finds a component by its ID
func (r *GormComponentRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Component, error) {
	var component catalog.Component
	if err := r.db.WithContext(ctx).First(&component, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &component, nil
}

// FindBySKU finds a component by its SKU
func (r *GormComponentRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Component, error) {
	var component catalog.Component
	if err := r.db.WithContext(ctx).
		Where("sku = ?", strings.ToUpper(sku)).
		First(&component).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &component, nil
}

// FindAll finds components with filtering and pagination
func (r *GormComponentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Component, error) {
	var components []catalog.Component
	query := applyFilter(r.db.WithContext(ctx).Model(&catalog.Component{}), filter)
	if err := query.Find(&components).Error; err != nil {
		return nil, err
	}
	return components, nil
}

// SearchByName finds components whose name or SKU matches the query.
// Final ranking happens in the resolver.
func (r *GormComponentRepository) SearchByName(ctx context.Context, query string, limit int) ([]catalog.Component, error) {
	var components []catalog.Component
	pattern := "%" + strings.ToLower(query) + "%"
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern).
		Order("name ASC").
		Limit(limit).
		Find(&components).Error; err != nil {
		return nil, err
	}
	return components, nil
}

// Save creates or updates a component
func (r *GormComponentRepository) Save(ctx context.Context, component *catalog.Component) error {
	return r.db.WithContext(ctx).Save(component).Error
}

// Delete deletes a component
func (r *GormComponentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Component{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts components matching the filter
func (r *GormComponentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.Component{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormComponentRepository implements the repository interface
var _ catalog.ComponentRepository = (*GormComponentRepository)(nil)
