package persistence

import (
	"github.com/craftshop/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyFilter applies search, custom filters, ordering and pagination
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applyFilterWithoutPagination(query, filter)

	query = query.Order(orderClause(filter.OrderBy, filter.OrderDir, catalogSortColumns, "created_at"))

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

// applyFilterWithoutPagination applies search and custom filters only
func applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR sku LIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "is_manual":
			query = query.Where("is_manual = ?", value)
		}
	}

	return query
}
