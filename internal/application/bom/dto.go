package bom

import (
	"time"

	"github.com/craftshop/backend/internal/domain/bom"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateBOMRequest represents a request to create a new BOM draft
type CreateBOMRequest struct {
	ProductID    uuid.UUID       `json:"product_id" binding:"required"`
	Revision     string          `json:"version" binding:"required,min=1,max=20"`
	Name         string          `json:"name" binding:"required,min=1,max=200"`
	Description  string          `json:"description" binding:"max=2000"`
	LaborCost    decimal.Decimal `json:"labor_cost"`
	OverheadCost decimal.Decimal `json:"overhead_cost"`
	Notes        string          `json:"notes" binding:"max=2000"`
}

// AddLineRequest represents a request to add a line to a draft BOM.
// Extended cost is never accepted from the caller; it is recomputed.
type AddLineRequest struct {
	ComponentType       string          `json:"component_type" binding:"required,oneof=product component"`
	ProductID           *uuid.UUID      `json:"product_id"`
	ComponentID         *uuid.UUID      `json:"component_id"`
	TargetName          string          `json:"target_name" binding:"max=200"`
	Quantity            decimal.Decimal `json:"quantity" binding:"required"`
	UnitOfMeasure       string          `json:"unit_of_measure" binding:"required,min=1,max=20"`
	ReferenceDesignator string          `json:"reference_designator" binding:"max=100"`
	UnitCost            decimal.Decimal `json:"unit_cost"`
	IsOptional          bool            `json:"is_optional"`
	IsManual            bool            `json:"is_manual"`
	Notes               string          `json:"notes" binding:"max=2000"`
}

// LineResponse represents a BOM line in API responses
type LineResponse struct {
	ID                  uuid.UUID       `json:"id"`
	BOMID               uuid.UUID       `json:"bom_id"`
	LineNumber          int             `json:"line_number"`
	ComponentType       string          `json:"component_type"`
	ProductID           *uuid.UUID      `json:"product_id,omitempty"`
	ComponentID         *uuid.UUID      `json:"component_id,omitempty"`
	TargetName          string          `json:"target_name"`
	Quantity            decimal.Decimal `json:"quantity"`
	UnitOfMeasure       string          `json:"unit_of_measure"`
	ReferenceDesignator string          `json:"reference_designator,omitempty"`
	UnitCost            decimal.Decimal `json:"unit_cost"`
	ExtendedCost        decimal.Decimal `json:"extended_cost"`
	IsOptional          bool            `json:"is_optional"`
	IsManual            bool            `json:"is_manual"`
	Notes               string          `json:"notes,omitempty"`
}

// BOMResponse represents a full BOM with lines in API responses
type BOMResponse struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Revision     string          `json:"version"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Status       string          `json:"status"`
	LaborCost    decimal.Decimal `json:"labor_cost"`
	OverheadCost decimal.Decimal `json:"overhead_cost"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	Notes        string          `json:"notes,omitempty"`
	Lines        []LineResponse  `json:"lines"`
	ApprovedAt   *time.Time      `json:"approved_at,omitempty"`
	RetiredAt    *time.Time      `json:"retired_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// SummaryResponse represents a BOM list entry in API responses
type SummaryResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Revision    string          `json:"version"`
	Name        string          `json:"name"`
	Status      string          `json:"status"`
	LineCount   int             `json:"line_count"`
	TotalCost   decimal.Decimal `json:"total_cost"`
}

// ListFilter carries list query options
type ListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=draft active obsolete"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToLineResponse converts a domain line to a response DTO
func ToLineResponse(line *bom.Line) LineResponse {
	return LineResponse{
		ID:                  line.ID,
		BOMID:               line.BOMID,
		LineNumber:          line.LineNumber,
		ComponentType:       string(line.Target.Type),
		ProductID:           line.Target.ProductID,
		ComponentID:         line.Target.ComponentID,
		TargetName:          line.TargetName,
		Quantity:            line.Quantity,
		UnitOfMeasure:       line.UnitOfMeasure,
		ReferenceDesignator: line.ReferenceDesignator,
		UnitCost:            line.UnitCost,
		ExtendedCost:        line.ExtendedCost,
		IsOptional:          line.IsOptional,
		IsManual:            line.IsManual,
		Notes:               line.Notes,
	}
}

// ToBOMResponse converts a domain BOM to a response DTO
func ToBOMResponse(b *bom.BOM) BOMResponse {
	lines := make([]LineResponse, 0, len(b.Lines))
	for idx := range b.Lines {
		lines = append(lines, ToLineResponse(&b.Lines[idx]))
	}

	return BOMResponse{
		ID:           b.ID,
		ProductID:    b.ProductID,
		ProductName:  b.ProductName,
		Revision:     b.Revision,
		Name:         b.Name,
		Description:  b.Description,
		Status:       b.Status.String(),
		LaborCost:    b.LaborCost,
		OverheadCost: b.OverheadCost,
		TotalCost:    b.TotalCost,
		Notes:        b.Notes,
		Lines:        lines,
		ApprovedAt:   b.ApprovedAt,
		RetiredAt:    b.RetiredAt,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// ToSummaryResponse converts a repository summary to a response DTO
func ToSummaryResponse(s bom.Summary) SummaryResponse {
	return SummaryResponse{
		ID:          s.ID,
		ProductID:   s.ProductID,
		ProductName: s.ProductName,
		Revision:    s.Revision,
		Name:        s.Name,
		Status:      s.Status.String(),
		LineCount:   s.LineCount,
		TotalCost:   s.TotalCost,
	}
}
