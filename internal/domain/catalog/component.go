package catalog

import (
	"strings"

	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Component represents a purchased part or raw material in the catalog.
// Components are the leaf-level entries referenced by BOM lines.
type Component struct {
	shared.BaseAggregateRoot
	SKU         string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Unit        string          `gorm:"type:varchar(20);not null;default:'ea'"`
	IsManual    bool            `gorm:"not null;default:false"` // Created from a manual scan fallback, not a curated catalog entry
}

// TableName returns the table name for GORM
func (Component) TableName() string {
	return "components"
}

// NewComponent creates a new catalog component
func NewComponent(sku, name, unit string, unitCost decimal.Decimal) (*Component, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "Component SKU cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Component name cannot be empty")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	if unit == "" {
		unit = "ea"
	}

	return &Component{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               strings.ToUpper(sku),
		Name:              name,
		Unit:              unit,
		UnitCost:          unitCost,
	}, nil
}

// NewManualComponent creates a component from operator-supplied data when a
// scan or search could not be matched against the catalog. The entry carries
// a provenance flag so downstream consumers can distinguish it from curated
// catalog data.
func NewManualComponent(name string, unitCost decimal.Decimal) (*Component, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Component name cannot be empty")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	base := shared.NewBaseAggregateRoot()
	return &Component{
		BaseAggregateRoot: base,
		SKU:               "MAN-" + strings.ToUpper(base.ID.String()[:8]),
		Name:              name,
		Unit:              "ea",
		UnitCost:          unitCost,
		IsManual:          true,
	}, nil
}
