package bom

import (
	"context"
	"errors"

	"github.com/craftshop/backend/internal/domain/bom"
	"github.com/craftshop/backend/internal/domain/catalog"
	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Service handles BOM business operations: the registry (create, line
// mutations, delete) and the approval state machine (approve, retire, discard)
type Service struct {
	bomRepo       bom.Repository
	productRepo   catalog.ProductRepository
	componentRepo catalog.ComponentRepository
	txScope       TransactionScope
	publisher     shared.EventPublisher
}

// NewService creates a new BOM service. The publisher may be nil, in which
// case domain events are dropped after each successful operation.
func NewService(
	bomRepo bom.Repository,
	productRepo catalog.ProductRepository,
	componentRepo catalog.ComponentRepository,
	txScope TransactionScope,
	publisher shared.EventPublisher,
) *Service {
	return &Service{
		bomRepo:       bomRepo,
		productRepo:   productRepo,
		componentRepo: componentRepo,
		txScope:       txScope,
		publisher:     publisher,
	}
}

// Create creates a new BOM draft for a product
func (s *Service) Create(ctx context.Context, req CreateBOMRequest) (*BOMResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return nil, err
	}

	exists, err := s.bomRepo.ExistsByProductAndRevision(ctx, req.ProductID, req.Revision)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A BOM with this version already exists for the product")
	}

	b, err := bom.NewBOM(req.ProductID, product.Name, req.Revision, req.Name, req.Description, req.LaborCost, req.OverheadCost, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.bomRepo.Save(ctx, b); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, b)

	response := ToBOMResponse(b)
	return &response, nil
}

// GetByID retrieves a BOM with all its lines
func (s *Service) GetByID(ctx context.Context, bomID uuid.UUID) (*BOMResponse, error) {
	b, err := s.bomRepo.FindByID(ctx, bomID)
	if err != nil {
		return nil, err
	}

	response := ToBOMResponse(b)
	return &response, nil
}

// List retrieves BOM summaries with optional status filtering
func (s *Service) List(ctx context.Context, filter ListFilter) (*shared.Paginated[SummaryResponse], error) {
	repoFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		status := bom.Status(filter.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Unknown status filter")
		}
		repoFilter.Filters["status"] = status
	}

	page, err := s.bomRepo.ListSummaries(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	items := make([]SummaryResponse, 0, len(page.Items))
	for _, summary := range page.Items {
		items = append(items, ToSummaryResponse(summary))
	}
	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// AddLine adds a line to a draft BOM and recomputes the rollup, all in one
// transaction keyed by the BOM. The save is guarded by the aggregate version,
// so two editors who loaded the same snapshot cannot lose each other's lines:
// the second save fails with a concurrency conflict and the caller retries on
// fresh state.
func (s *Service) AddLine(ctx context.Context, bomID uuid.UUID, req AddLineRequest) (*LineResponse, error) {
	input, err := s.buildLineInput(ctx, req)
	if err != nil {
		return nil, err
	}

	var line *bom.Line
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		b, err := repos.BOMRepo().FindByID(ctx, bomID)
		if err != nil {
			return err
		}

		line, err = b.AddLine(*input)
		if err != nil {
			return err
		}

		return repos.BOMRepo().SaveWithLock(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	response := ToLineResponse(line)
	return &response, nil
}

// RemoveLine removes a line from a draft BOM and recomputes the rollup
func (s *Service) RemoveLine(ctx context.Context, lineID uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		b, err := repos.BOMRepo().FindByLineID(ctx, lineID)
		if err != nil {
			return err
		}

		if err := b.RemoveLine(lineID); err != nil {
			return err
		}

		return repos.BOMRepo().SaveWithLock(ctx, b)
	})
}

// Approve makes a draft BOM the active version for its product. The demotion
// of the previously active BOM and the activation of the target happen in one
// transaction, each guarded by the expected current status, so two concurrent
// approvals for the same product cannot both leave an active record: the
// loser's guard fails and the whole transaction rolls back.
func (s *Service) Approve(ctx context.Context, bomID uuid.UUID) (*BOMResponse, error) {
	var approved *bom.BOM
	var superseded *uuid.UUID

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		b, err := repos.BOMRepo().FindByID(ctx, bomID)
		if err != nil {
			return err
		}
		if !b.IsDraft() {
			return shared.NewDomainError("INVALID_STATE", "Only a draft BOM can be approved")
		}

		previous, err := repos.BOMRepo().FindActiveByProduct(ctx, b.ProductID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		if previous != nil {
			ok, err := repos.BOMRepo().UpdateStatusGuarded(ctx, previous.ID, bom.StatusActive, bom.StatusObsolete)
			if err != nil {
				return err
			}
			if !ok {
				return shared.ErrConcurrencyConflict
			}
			superseded = &previous.ID
		}

		ok, err := repos.BOMRepo().UpdateStatusGuarded(ctx, b.ID, bom.StatusDraft, bom.StatusActive)
		if err != nil {
			return err
		}
		if !ok {
			return shared.ErrConcurrencyConflict
		}

		approved, err = repos.BOMRepo().FindByID(ctx, bomID)
		return err
	})
	if err != nil {
		return nil, err
	}

	event := bom.NewBOMApprovedEvent(approved)
	if superseded != nil {
		event.WithSupersededBOM(*superseded)
	}
	s.publish(ctx, event)

	response := ToBOMResponse(approved)
	return &response, nil
}

// Retire marks an active BOM obsolete without a replacement
func (s *Service) Retire(ctx context.Context, bomID uuid.UUID) (*BOMResponse, error) {
	var retired *bom.BOM

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		b, err := repos.BOMRepo().FindByID(ctx, bomID)
		if err != nil {
			return err
		}
		if !b.IsActive() {
			return shared.NewDomainError("INVALID_STATE", "Only an active BOM can be retired")
		}

		ok, err := repos.BOMRepo().UpdateStatusGuarded(ctx, b.ID, bom.StatusActive, bom.StatusObsolete)
		if err != nil {
			return err
		}
		if !ok {
			return shared.ErrConcurrencyConflict
		}

		retired, err = repos.BOMRepo().FindByID(ctx, bomID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, bom.NewBOMRetiredEvent(retired))

	response := ToBOMResponse(retired)
	return &response, nil
}

// Discard marks a draft BOM obsolete without it ever activating, keeping the
// record for the product's revision history
func (s *Service) Discard(ctx context.Context, bomID uuid.UUID) (*BOMResponse, error) {
	var discarded *bom.BOM

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		b, err := repos.BOMRepo().FindByID(ctx, bomID)
		if err != nil {
			return err
		}
		if !b.IsDraft() {
			return shared.NewDomainError("INVALID_STATE", "Only a draft BOM can be discarded")
		}

		ok, err := repos.BOMRepo().UpdateStatusGuarded(ctx, b.ID, bom.StatusDraft, bom.StatusObsolete)
		if err != nil {
			return err
		}
		if !ok {
			return shared.ErrConcurrencyConflict
		}

		discarded, err = repos.BOMRepo().FindByID(ctx, bomID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, bom.NewBOMRetiredEvent(discarded))

	response := ToBOMResponse(discarded)
	return &response, nil
}

// Delete removes a BOM and all its lines. An active BOM must be retired or
// superseded first.
func (s *Service) Delete(ctx context.Context, bomID uuid.UUID) error {
	b, err := s.bomRepo.FindByID(ctx, bomID)
	if err != nil {
		return err
	}
	if !b.CanDelete() {
		return shared.NewDomainError("INVALID_STATE", "Cannot delete an active BOM; retire or supersede it first")
	}

	if err := s.bomRepo.Delete(ctx, bomID); err != nil {
		return err
	}

	s.publish(ctx, bom.NewBOMDeletedEvent(b))
	return nil
}

// buildLineInput validates the request's target against the catalog and fills
// in the display name. Manual lines skip catalog validation; the line then
// carries whatever identity the resolver minted.
func (s *Service) buildLineInput(ctx context.Context, req AddLineRequest) (*bom.LineInput, error) {
	var target bom.LineTarget
	switch bom.TargetType(req.ComponentType) {
	case bom.TargetTypeProduct:
		if req.ProductID == nil {
			return nil, shared.NewDomainError("INVALID_TARGET", "Product line must reference a product")
		}
		target = bom.ProductTarget(*req.ProductID)
		if req.ComponentID != nil {
			target.ComponentID = req.ComponentID // let Validate reject it
		}
	case bom.TargetTypeComponent:
		if req.ComponentID == nil {
			return nil, shared.NewDomainError("INVALID_TARGET", "Component line must reference a component")
		}
		target = bom.ComponentTarget(*req.ComponentID)
		if req.ProductID != nil {
			target.ProductID = req.ProductID
		}
	default:
		return nil, shared.NewDomainError("INVALID_TARGET_TYPE", "Unknown component type")
	}

	if err := target.Validate(); err != nil {
		return nil, err
	}

	targetName := req.TargetName
	if !req.IsManual {
		switch target.Type {
		case bom.TargetTypeProduct:
			product, err := s.productRepo.FindByID(ctx, *target.ProductID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return nil, shared.NewDomainError("INVALID_TARGET", "Referenced product not found in catalog")
				}
				return nil, err
			}
			targetName = product.Name
		case bom.TargetTypeComponent:
			component, err := s.componentRepo.FindByID(ctx, *target.ComponentID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return nil, shared.NewDomainError("INVALID_TARGET", "Referenced component not found in catalog")
				}
				return nil, err
			}
			targetName = component.Name
		}
	}

	return &bom.LineInput{
		Target:              target,
		TargetName:          targetName,
		Quantity:            req.Quantity,
		UnitOfMeasure:       req.UnitOfMeasure,
		ReferenceDesignator: req.ReferenceDesignator,
		UnitCost:            req.UnitCost,
		IsOptional:          req.IsOptional,
		IsManual:            req.IsManual,
		Notes:               req.Notes,
	}, nil
}

func (s *Service) publishEvents(ctx context.Context, b *bom.BOM) {
	if s.publisher == nil {
		b.ClearDomainEvents()
		return
	}
	events := b.GetDomainEvents()
	if len(events) > 0 {
		_ = s.publisher.Publish(ctx, events...)
	}
	b.ClearDomainEvents()
}

func (s *Service) publish(ctx context.Context, event shared.DomainEvent) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(ctx, event)
}
