package bom

import (
	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types for the BOM aggregate
const (
	EventTypeBOMCreated  = "bom.created"
	EventTypeBOMApproved = "bom.approved"
	EventTypeBOMRetired  = "bom.retired"
	EventTypeBOMDeleted  = "bom.deleted"
)

// BOMCreatedEvent is raised when a new BOM draft is created
type BOMCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Revision  string    `json:"version"`
	Name      string    `json:"name"`
}

// NewBOMCreatedEvent creates a new BOMCreatedEvent
func NewBOMCreatedEvent(b *BOM) *BOMCreatedEvent {
	return &BOMCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBOMCreated, "BOM", b.ID),
		ProductID:       b.ProductID,
		Revision:        b.Revision,
		Name:            b.Name,
	}
}

// BOMApprovedEvent is raised when a draft BOM becomes the active version
// for its product. SupersededBOMID is set when a previously active BOM was
// demoted in the same unit of work.
type BOMApprovedEvent struct {
	shared.BaseDomainEvent
	ProductID       uuid.UUID  `json:"product_id"`
	Revision        string     `json:"version"`
	SupersededBOMID *uuid.UUID `json:"superseded_bom_id,omitempty"`
}

// NewBOMApprovedEvent creates a new BOMApprovedEvent
func NewBOMApprovedEvent(b *BOM) *BOMApprovedEvent {
	return &BOMApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBOMApproved, "BOM", b.ID),
		ProductID:       b.ProductID,
		Revision:        b.Revision,
	}
}

// WithSupersededBOM records the demoted BOM on the approval event
func (e *BOMApprovedEvent) WithSupersededBOM(supersededID uuid.UUID) *BOMApprovedEvent {
	e.SupersededBOMID = &supersededID
	return e
}

// BOMRetiredEvent is raised when a BOM becomes obsolete, either by explicit
// retirement of an active BOM or by discarding a draft
type BOMRetiredEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Revision  string    `json:"version"`
}

// NewBOMRetiredEvent creates a new BOMRetiredEvent
func NewBOMRetiredEvent(b *BOM) *BOMRetiredEvent {
	return &BOMRetiredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBOMRetired, "BOM", b.ID),
		ProductID:       b.ProductID,
		Revision:        b.Revision,
	}
}

// BOMDeletedEvent is raised when a BOM and its lines are destroyed
type BOMDeletedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Revision  string    `json:"version"`
}

// NewBOMDeletedEvent creates a new BOMDeletedEvent
func NewBOMDeletedEvent(b *BOM) *BOMDeletedEvent {
	return &BOMDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBOMDeleted, "BOM", b.ID),
		ProductID:       b.ProductID,
		Revision:        b.Revision,
	}
}
