package bom

import (
	"context"

	"github.com/craftshop/backend/internal/domain/bom"
	"github.com/craftshop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ActivityLogHandler records BOM lifecycle transitions to the structured log.
// It gives operators an audit trail of who-did-what across draft, approval,
// retirement and deletion without a dedicated audit store.
type ActivityLogHandler struct {
	logger *zap.Logger
}

// NewActivityLogHandler creates a new handler for BOM lifecycle events.
func NewActivityLogHandler(logger *zap.Logger) *ActivityLogHandler {
	return &ActivityLogHandler{logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *ActivityLogHandler) EventTypes() []string {
	return []string{
		bom.EventTypeBOMCreated,
		bom.EventTypeBOMApproved,
		bom.EventTypeBOMRetired,
		bom.EventTypeBOMDeleted,
	}
}

// Handle logs a single BOM lifecycle event
func (h *ActivityLogHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("bom_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	}

	switch e := event.(type) {
	case *bom.BOMCreatedEvent:
		fields = append(fields,
			zap.String("product_id", e.ProductID.String()),
			zap.String("version", e.Revision),
			zap.String("name", e.Name),
		)
	case *bom.BOMApprovedEvent:
		fields = append(fields,
			zap.String("product_id", e.ProductID.String()),
			zap.String("version", e.Revision),
		)
		if e.SupersededBOMID != nil {
			fields = append(fields, zap.String("superseded_bom_id", e.SupersededBOMID.String()))
		}
	case *bom.BOMRetiredEvent:
		fields = append(fields,
			zap.String("product_id", e.ProductID.String()),
			zap.String("version", e.Revision),
		)
	case *bom.BOMDeletedEvent:
		fields = append(fields,
			zap.String("product_id", e.ProductID.String()),
			zap.String("version", e.Revision),
		)
	}

	h.logger.Info("BOM lifecycle event", fields...)
	return nil
}
