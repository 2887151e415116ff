package persistence

import (
	"strings"
)

// catalogSortColumns are the columns list endpoints may sort by.
// OrderBy comes straight from the query string, so anything outside
// this set falls back to the default instead of reaching SQL.
var catalogSortColumns = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"sku":        true,
	"name":       true,
	"unit_cost":  true,
	"status":     true,
}

// orderClause builds a safe "column DIRECTION" fragment from
// client-supplied sort parameters.
func orderClause(orderBy, orderDir string, allowed map[string]bool, defaultColumn string) string {
	column := strings.TrimSpace(orderBy)
	if !allowed[column] {
		column = defaultColumn
	}

	direction := "DESC"
	if strings.EqualFold(strings.TrimSpace(orderDir), "ASC") {
		direction = "ASC"
	}

	return column + " " + direction
}
