package bom

import (
	"fmt"
	"strings"
	"time"

	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle status of a BOM
type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusObsolete Status = "obsolete"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusObsolete:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusDraft:
		// A draft is either approved or discarded without ever activating
		return target == StatusActive || target == StatusObsolete
	case StatusActive:
		return target == StatusObsolete
	case StatusObsolete:
		return false // Terminal state
	}
	return false
}

// TargetType discriminates what a BOM line references
type TargetType string

const (
	TargetTypeProduct   TargetType = "product"
	TargetTypeComponent TargetType = "component"
)

// IsValid checks if the target type is known
func (t TargetType) IsValid() bool {
	return t == TargetTypeProduct || t == TargetTypeComponent
}

// LineTarget identifies what a BOM line references: either a sub-product or
// a catalog component, never both. Constructors set exactly one id so the
// exactly-one-variant rule holds structurally; Validate re-checks it at the
// persistence boundary where rows arrive without going through a constructor.
type LineTarget struct {
	Type        TargetType `gorm:"column:component_type;type:varchar(20);not null" json:"component_type"`
	ProductID   *uuid.UUID `gorm:"type:uuid;index" json:"product_id,omitempty"`
	ComponentID *uuid.UUID `gorm:"type:uuid;index" json:"component_id,omitempty"`
}

// ProductTarget creates a line target referencing a sub-product
func ProductTarget(productID uuid.UUID) LineTarget {
	return LineTarget{Type: TargetTypeProduct, ProductID: &productID}
}

// ComponentTarget creates a line target referencing a component
func ComponentTarget(componentID uuid.UUID) LineTarget {
	return LineTarget{Type: TargetTypeComponent, ComponentID: &componentID}
}

// Validate checks that exactly one reference is set and matches the type
func (t LineTarget) Validate() error {
	if !t.Type.IsValid() {
		return shared.NewDomainError("INVALID_TARGET_TYPE", fmt.Sprintf("Unknown component type %q", string(t.Type)))
	}
	switch t.Type {
	case TargetTypeProduct:
		if t.ProductID == nil || *t.ProductID == uuid.Nil {
			return shared.NewDomainError("INVALID_TARGET", "Product line must reference a product")
		}
		if t.ComponentID != nil {
			return shared.NewDomainError("INVALID_TARGET", "Product line must not reference a component")
		}
	case TargetTypeComponent:
		if t.ComponentID == nil || *t.ComponentID == uuid.Nil {
			return shared.NewDomainError("INVALID_TARGET", "Component line must reference a component")
		}
		if t.ProductID != nil {
			return shared.NewDomainError("INVALID_TARGET", "Component line must not reference a product")
		}
	}
	return nil
}

// TargetID returns the referenced id regardless of variant
func (t LineTarget) TargetID() uuid.UUID {
	switch t.Type {
	case TargetTypeProduct:
		if t.ProductID != nil {
			return *t.ProductID
		}
	case TargetTypeComponent:
		if t.ComponentID != nil {
			return *t.ComponentID
		}
	}
	return uuid.Nil
}

// Line represents one entry of a BOM referencing a product or component
// with a quantity and cost
type Line struct {
	ID                  uuid.UUID       `json:"id"`
	BOMID               uuid.UUID       `gorm:"type:uuid;not null;index" json:"bom_id"`
	LineNumber          int             `gorm:"not null" json:"line_number"`
	Target              LineTarget      `gorm:"embedded" json:"target"`
	TargetName          string          `gorm:"type:varchar(200);not null" json:"target_name"`
	Quantity            decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"quantity"`
	UnitOfMeasure       string          `gorm:"type:varchar(20);not null" json:"unit_of_measure"`
	ReferenceDesignator string          `gorm:"type:varchar(100)" json:"reference_designator,omitempty"`
	UnitCost            decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unit_cost"`
	ExtendedCost        decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"extended_cost"`
	IsOptional          bool            `gorm:"not null;default:false" json:"is_optional"`
	IsManual            bool            `gorm:"not null;default:false" json:"is_manual"`
	Notes               string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// TableName returns the table name for GORM
func (Line) TableName() string {
	return "bom_lines"
}

// LineInput carries caller-supplied fields for a new BOM line.
// ExtendedCost is intentionally absent: it is derived, never accepted.
type LineInput struct {
	Target              LineTarget
	TargetName          string
	Quantity            decimal.Decimal
	UnitOfMeasure       string
	ReferenceDesignator string
	UnitCost            decimal.Decimal
	IsOptional          bool
	IsManual            bool
	Notes               string
}

// NewLine creates a new BOM line from validated input
func NewLine(bomID uuid.UUID, lineNumber int, input LineInput) (*Line, error) {
	if err := input.Target.Validate(); err != nil {
		return nil, err
	}
	if input.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if input.UnitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	if input.UnitOfMeasure == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit of measure cannot be empty")
	}
	if lineNumber <= 0 {
		return nil, shared.NewDomainError("INVALID_LINE_NUMBER", "Line number must be positive")
	}

	now := time.Now()
	return &Line{
		ID:                  uuid.New(),
		BOMID:               bomID,
		LineNumber:          lineNumber,
		Target:              input.Target,
		TargetName:          input.TargetName,
		Quantity:            input.Quantity,
		UnitOfMeasure:       input.UnitOfMeasure,
		ReferenceDesignator: input.ReferenceDesignator,
		UnitCost:            input.UnitCost,
		ExtendedCost:        input.Quantity.Mul(input.UnitCost),
		IsOptional:          input.IsOptional,
		IsManual:            input.IsManual,
		Notes:               input.Notes,
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}

// BOM represents a versioned bill of materials for a product.
// It is the aggregate root owning its lines; every line mutation recomputes
// the cost rollup so TotalCost never drifts from the lines.
type BOM struct {
	shared.BaseAggregateRoot
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName  string          `gorm:"type:varchar(200);not null" json:"product_name"`
	Revision     string          `gorm:"type:varchar(20);not null" json:"version"`
	Name         string          `gorm:"type:varchar(200);not null" json:"name"`
	Description  string          `gorm:"type:text" json:"description,omitempty"`
	Status       Status          `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	LaborCost    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"labor_cost"`
	OverheadCost decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"overhead_cost"`
	TotalCost    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total_cost"`
	Notes        string          `gorm:"type:text" json:"notes,omitempty"`
	Lines        []Line          `gorm:"foreignKey:BOMID" json:"lines"`
	ApprovedAt   *time.Time      `json:"approved_at,omitempty"`
	RetiredAt    *time.Time      `json:"retired_at,omitempty"`
}

// TableName returns the table name for GORM
func (BOM) TableName() string {
	return "boms"
}

// NewBOM creates a new BOM in draft status
func NewBOM(productID uuid.UUID, productName, revision, name, description string, laborCost, overheadCost decimal.Decimal, notes string) (*BOM, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if strings.TrimSpace(revision) == "" {
		return nil, shared.NewDomainError("INVALID_VERSION", "Version cannot be empty")
	}
	if len(revision) > 20 {
		return nil, shared.NewDomainError("INVALID_VERSION", "Version cannot exceed 20 characters")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if laborCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Labor cost cannot be negative")
	}
	if overheadCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Overhead cost cannot be negative")
	}

	b := &BOM{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		ProductName:       productName,
		Revision:          strings.TrimSpace(revision),
		Name:              name,
		Description:       description,
		Status:            StatusDraft,
		LaborCost:         laborCost,
		OverheadCost:      overheadCost,
		Notes:             notes,
		Lines:             make([]Line, 0),
	}
	b.TotalCost = Rollup(b.LaborCost, b.OverheadCost, b.Lines)

	b.AddDomainEvent(NewBOMCreatedEvent(b))

	return b, nil
}

// AddLine adds a new line to the BOM and recomputes the rollup.
// Only allowed in draft status. The line number is assigned as one past the
// highest existing number so numbers stay strictly increasing even after
// deletions leave gaps.
func (b *BOM) AddLine(input LineInput) (*Line, error) {
	if b.Status != StatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add lines to a non-draft BOM")
	}

	line, err := NewLine(b.ID, b.nextLineNumber(), input)
	if err != nil {
		return nil, err
	}

	b.Lines = append(b.Lines, *line)
	b.recalculateTotal()
	b.UpdatedAt = time.Now()

	return line, nil
}

// RemoveLine removes a line from the BOM and recomputes the rollup.
// Only allowed in draft status.
func (b *BOM) RemoveLine(lineID uuid.UUID) error {
	if b.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove lines from a non-draft BOM")
	}

	for idx, line := range b.Lines {
		if line.ID == lineID {
			b.Lines = append(b.Lines[:idx], b.Lines[idx+1:]...)
			b.recalculateTotal()
			b.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("LINE_NOT_FOUND", "BOM line not found")
}

// Approve marks the BOM as the active version for its product, transitioning
// from draft to active. Demoting the previously active BOM of the same product
// happens in the same unit of work at the application layer.
func (b *BOM) Approve() error {
	if !b.Status.CanTransitionTo(StatusActive) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve BOM in %s status", b.Status))
	}

	now := time.Now()
	b.Status = StatusActive
	b.ApprovedAt = &now
	b.UpdatedAt = now

	b.AddDomainEvent(NewBOMApprovedEvent(b))

	return nil
}

// Retire marks an active BOM as obsolete without a replacement
func (b *BOM) Retire() error {
	if b.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot retire BOM in %s status", b.Status))
	}

	now := time.Now()
	b.Status = StatusObsolete
	b.RetiredAt = &now
	b.UpdatedAt = now

	b.AddDomainEvent(NewBOMRetiredEvent(b))

	return nil
}

// Discard marks a draft BOM as obsolete without it ever activating
func (b *BOM) Discard() error {
	if b.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot discard BOM in %s status", b.Status))
	}

	now := time.Now()
	b.Status = StatusObsolete
	b.RetiredAt = &now
	b.UpdatedAt = now

	b.AddDomainEvent(NewBOMRetiredEvent(b))

	return nil
}

// CanDelete returns true if the BOM may be deleted. An active BOM must be
// superseded or retired first.
func (b *BOM) CanDelete() bool {
	return b.Status != StatusActive
}

// IsDraft returns true if the BOM is in draft status
func (b *BOM) IsDraft() bool {
	return b.Status == StatusDraft
}

// IsActive returns true if the BOM is the active version for its product
func (b *BOM) IsActive() bool {
	return b.Status == StatusActive
}

// IsObsolete returns true if the BOM is obsolete
func (b *BOM) IsObsolete() bool {
	return b.Status == StatusObsolete
}

// LineCount returns the number of lines on the BOM
func (b *BOM) LineCount() int {
	return len(b.Lines)
}

// GetLine returns a line by its ID
func (b *BOM) GetLine(lineID uuid.UUID) *Line {
	for idx := range b.Lines {
		if b.Lines[idx].ID == lineID {
			return &b.Lines[idx]
		}
	}
	return nil
}

// nextLineNumber returns one past the highest existing line number
func (b *BOM) nextLineNumber() int {
	maxNum := 0
	for _, line := range b.Lines {
		if line.LineNumber > maxNum {
			maxNum = line.LineNumber
		}
	}
	return maxNum + 1
}

// recalculateTotal recomputes the cost rollup from current lines
func (b *BOM) recalculateTotal() {
	b.TotalCost = Rollup(b.LaborCost, b.OverheadCost, b.Lines)
}

// Rollup computes a BOM's total cost: labor plus overhead plus the sum of
// every line's extended cost. Optional lines are included; the optional flag
// is metadata for downstream consumers, not an exclusion from costing.
func Rollup(laborCost, overheadCost decimal.Decimal, lines []Line) decimal.Decimal {
	total := laborCost.Add(overheadCost)
	for _, line := range lines {
		total = total.Add(line.Quantity.Mul(line.UnitCost))
	}
	return total
}
