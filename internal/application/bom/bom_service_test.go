package bom

import (
	"context"
	"testing"

	"github.com/craftshop/backend/internal/domain/bom"
	"github.com/craftshop/backend/internal/domain/catalog"
	"github.com/craftshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBOMRepository is a mock implementation of bom.Repository
type MockBOMRepository struct {
	mock.Mock
}

func (m *MockBOMRepository) FindByID(ctx context.Context, id uuid.UUID) (*bom.BOM, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bom.BOM), args.Error(1)
}

func (m *MockBOMRepository) FindByLineID(ctx context.Context, lineID uuid.UUID) (*bom.BOM, error) {
	args := m.Called(ctx, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bom.BOM), args.Error(1)
}

func (m *MockBOMRepository) FindActiveByProduct(ctx context.Context, productID uuid.UUID) (*bom.BOM, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bom.BOM), args.Error(1)
}

func (m *MockBOMRepository) ListSummaries(ctx context.Context, filter shared.Filter) (shared.Paginated[bom.Summary], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[bom.Summary]), args.Error(1)
}

func (m *MockBOMRepository) ExistsByProductAndRevision(ctx context.Context, productID uuid.UUID, revision string) (bool, error) {
	args := m.Called(ctx, productID, revision)
	return args.Bool(0), args.Error(1)
}

func (m *MockBOMRepository) Save(ctx context.Context, b *bom.BOM) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBOMRepository) SaveWithLock(ctx context.Context, b *bom.BOM) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBOMRepository) UpdateStatusGuarded(ctx context.Context, id uuid.UUID, from, to bom.Status) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockBOMRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) SearchByName(ctx context.Context, query string, limit int) ([]catalog.Product, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

// MockComponentRepository is a mock implementation of catalog.ComponentRepository
type MockComponentRepository struct {
	mock.Mock
}

func (m *MockComponentRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Component, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Component), args.Error(1)
}

func (m *MockComponentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Component, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Component), args.Error(1)
}

func (m *MockComponentRepository) Save(ctx context.Context, component *catalog.Component) error {
	args := m.Called(ctx, component)
	return args.Error(0)
}

func (m *MockComponentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockComponentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockComponentRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Component, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Component), args.Error(1)
}

func (m *MockComponentRepository) SearchByName(ctx context.Context, query string, limit int) ([]catalog.Component, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]catalog.Component), args.Error(1)
}

type serviceFixture struct {
	service       *Service
	bomRepo       *MockBOMRepository
	productRepo   *MockProductRepository
	componentRepo *MockComponentRepository
}

func newServiceFixture() *serviceFixture {
	bomRepo := new(MockBOMRepository)
	productRepo := new(MockProductRepository)
	componentRepo := new(MockComponentRepository)
	txScope := NewNoOpTransactionScope(bomRepo)
	return &serviceFixture{
		service:       NewService(bomRepo, productRepo, componentRepo, txScope, nil),
		bomRepo:       bomRepo,
		productRepo:   productRepo,
		componentRepo: componentRepo,
	}
}

func mustProduct(t *testing.T, name string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("PRD-1", name, decimal.Zero)
	require.NoError(t, err)
	return p
}

func mustDraftBOM(t *testing.T, productID uuid.UUID) *bom.BOM {
	t.Helper()
	b, err := bom.NewBOM(productID, "Frame", "1.0", "Frame Assy", "", decimal.NewFromInt(10), decimal.NewFromInt(5), "")
	require.NoError(t, err)
	b.ClearDomainEvents()
	return b
}

func TestService_Create(t *testing.T) {
	t.Run("creates draft with base rollup", func(t *testing.T) {
		f := newServiceFixture()
		product := mustProduct(t, "Frame")

		f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		f.bomRepo.On("ExistsByProductAndRevision", mock.Anything, product.ID, "1.0").Return(false, nil)
		f.bomRepo.On("Save", mock.Anything, mock.AnythingOfType("*bom.BOM")).Return(nil)

		resp, err := f.service.Create(context.Background(), CreateBOMRequest{
			ProductID:    product.ID,
			Revision:     "1.0",
			Name:         "Frame Assy",
			LaborCost:    decimal.NewFromInt(10),
			OverheadCost: decimal.NewFromInt(5),
		})
		require.NoError(t, err)

		assert.Equal(t, "draft", resp.Status)
		assert.Equal(t, "Frame", resp.ProductName)
		assert.True(t, resp.TotalCost.Equal(decimal.NewFromInt(15)))
		assert.Empty(t, resp.Lines)
		f.bomRepo.AssertExpectations(t)
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newServiceFixture()
		productID := uuid.New()
		f.productRepo.On("FindByID", mock.Anything, productID).Return(nil, shared.ErrNotFound)

		_, err := f.service.Create(context.Background(), CreateBOMRequest{
			ProductID: productID,
			Revision:  "1.0",
			Name:      "Frame Assy",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})

	t.Run("duplicate version for product", func(t *testing.T) {
		f := newServiceFixture()
		product := mustProduct(t, "Frame")

		f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		f.bomRepo.On("ExistsByProductAndRevision", mock.Anything, product.ID, "1.0").Return(true, nil)

		_, err := f.service.Create(context.Background(), CreateBOMRequest{
			ProductID: product.ID,
			Revision:  "1.0",
			Name:      "Frame Assy",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}

func TestService_AddLine(t *testing.T) {
	t.Run("adds component line and persists recomputed rollup", func(t *testing.T) {
		f := newServiceFixture()
		b := mustDraftBOM(t, uuid.New())
		component, err := catalog.NewComponent("C1", "Bracket", "ea", decimal.NewFromFloat(2.5))
		require.NoError(t, err)

		f.componentRepo.On("FindByID", mock.Anything, component.ID).Return(component, nil)
		f.bomRepo.On("FindByID", mock.Anything, b.ID).Return(b, nil)

		var savedTotal decimal.Decimal
		f.bomRepo.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*bom.BOM")).
			Run(func(args mock.Arguments) {
				savedTotal = args.Get(1).(*bom.BOM).TotalCost
			}).Return(nil)

		resp, err := f.service.AddLine(context.Background(), b.ID, AddLineRequest{
			ComponentType: "component",
			ComponentID:   &component.ID,
			Quantity:      decimal.NewFromInt(3),
			UnitOfMeasure: "ea",
			UnitCost:      decimal.NewFromFloat(2.5),
		})
		require.NoError(t, err)

		assert.Equal(t, 1, resp.LineNumber)
		assert.Equal(t, "Bracket", resp.TargetName)
		assert.True(t, resp.ExtendedCost.Equal(decimal.NewFromFloat(7.5)))
		// 10 labor + 5 overhead + 3*2.5
		assert.True(t, savedTotal.Equal(decimal.NewFromFloat(22.5)),
			"expected 22.5, got %s", savedTotal)
	})

	t.Run("rejects component missing from catalog", func(t *testing.T) {
		f := newServiceFixture()
		componentID := uuid.New()
		f.componentRepo.On("FindByID", mock.Anything, componentID).Return(nil, shared.ErrNotFound)

		_, err := f.service.AddLine(context.Background(), uuid.New(), AddLineRequest{
			ComponentType: "component",
			ComponentID:   &componentID,
			Quantity:      decimal.NewFromInt(1),
			UnitOfMeasure: "ea",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TARGET", domainErr.Code)
	})

	t.Run("manual line skips catalog validation", func(t *testing.T) {
		f := newServiceFixture()
		b := mustDraftBOM(t, uuid.New())
		manualID := uuid.New()

		f.bomRepo.On("FindByID", mock.Anything, b.ID).Return(b, nil)
		f.bomRepo.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*bom.BOM")).Return(nil)

		resp, err := f.service.AddLine(context.Background(), b.ID, AddLineRequest{
			ComponentType: "component",
			ComponentID:   &manualID,
			TargetName:    "Unknown bracket",
			Quantity:      decimal.NewFromInt(2),
			UnitOfMeasure: "ea",
			UnitCost:      decimal.NewFromFloat(1.25),
			IsManual:      true,
			Notes:         "scanned: BRK-XL,2,LOT9",
		})
		require.NoError(t, err)

		assert.True(t, resp.IsManual)
		assert.Equal(t, "Unknown bracket", resp.TargetName)
		assert.Equal(t, "scanned: BRK-XL,2,LOT9", resp.Notes)
		f.componentRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("rejects xor violation before touching the registry", func(t *testing.T) {
		f := newServiceFixture()
		productID := uuid.New()
		componentID := uuid.New()

		_, err := f.service.AddLine(context.Background(), uuid.New(), AddLineRequest{
			ComponentType: "component",
			ProductID:     &productID,
			ComponentID:   &componentID,
			Quantity:      decimal.NewFromInt(1),
			UnitOfMeasure: "ea",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TARGET", domainErr.Code)
		f.bomRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("surfaces conflict when a concurrent editor saved first", func(t *testing.T) {
		f := newServiceFixture()
		b := mustDraftBOM(t, uuid.New())
		component, err := catalog.NewComponent("C1", "Bracket", "ea", decimal.NewFromFloat(2.5))
		require.NoError(t, err)

		f.componentRepo.On("FindByID", mock.Anything, component.ID).Return(component, nil)
		f.bomRepo.On("FindByID", mock.Anything, b.ID).Return(b, nil)
		// the other editor's save already bumped the stored version
		f.bomRepo.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*bom.BOM")).
			Return(shared.ErrConcurrencyConflict)

		_, err = f.service.AddLine(context.Background(), b.ID, AddLineRequest{
			ComponentType: "component",
			ComponentID:   &component.ID,
			Quantity:      decimal.NewFromInt(1),
			UnitOfMeasure: "ea",
		})
		require.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})

	t.Run("rejects line on non-draft BOM", func(t *testing.T) {
		f := newServiceFixture()
		b := mustDraftBOM(t, uuid.New())
		require.NoError(t, b.Approve())
		component, err := catalog.NewComponent("C1", "Bracket", "ea", decimal.Zero)
		require.NoError(t, err)

		f.componentRepo.On("FindByID", mock.Anything, component.ID).Return(component, nil)
		f.bomRepo.On("FindByID", mock.Anything, b.ID).Return(b, nil)

		_, err = f.service.AddLine(context.Background(), b.ID, AddLineRequest{
			ComponentType: "component",
			ComponentID:   &component.ID,
			Quantity:      decimal.NewFromInt(1),
			UnitOfMeasure: "ea",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestService_RemoveLine(t *testing.T) {
	f := newServiceFixture()
	b := mustDraftBOM(t, uuid.New())
	line, err := b.AddLine(bom.LineInput{
		Target:        bom.ComponentTarget(uuid.New()),
		TargetName:    "Bracket",
		Quantity:      decimal.NewFromInt(3),
		UnitOfMeasure: "ea",
		UnitCost:      decimal.NewFromFloat(2.5),
	})
	require.NoError(t, err)

	f.bomRepo.On("FindByLineID", mock.Anything, line.ID).Return(b, nil)

	var savedTotal decimal.Decimal
	f.bomRepo.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*bom.BOM")).
		Run(func(args mock.Arguments) {
			savedTotal = args.Get(1).(*bom.BOM).TotalCost
		}).Return(nil)

	require.NoError(t, f.service.RemoveLine(context.Background(), line.ID))
	assert.True(t, savedTotal.Equal(decimal.NewFromInt(15)))
}

func TestService_Approve(t *testing.T) {
	t.Run("demotes previously active BOM of the same product", func(t *testing.T) {
		f := newServiceFixture()
		productID := uuid.New()

		draft := mustDraftBOM(t, productID)
		previous := mustDraftBOM(t, productID)
		previous.Revision = "0.9"
		require.NoError(t, previous.Approve())

		activated := mustDraftBOM(t, productID)
		activated.BaseEntity.ID = draft.ID
		require.NoError(t, activated.Approve())
		activated.ClearDomainEvents()

		f.bomRepo.On("FindByID", mock.Anything, draft.ID).Return(draft, nil).Once()
		f.bomRepo.On("FindActiveByProduct", mock.Anything, productID).Return(previous, nil)
		f.bomRepo.On("UpdateStatusGuarded", mock.Anything, previous.ID, bom.StatusActive, bom.StatusObsolete).Return(true, nil)
		f.bomRepo.On("UpdateStatusGuarded", mock.Anything, draft.ID, bom.StatusDraft, bom.StatusActive).Return(true, nil)
		f.bomRepo.On("FindByID", mock.Anything, draft.ID).Return(activated, nil).Once()

		resp, err := f.service.Approve(context.Background(), draft.ID)
		require.NoError(t, err)

		assert.Equal(t, "active", resp.Status)
		f.bomRepo.AssertExpectations(t)
	})

	t.Run("first approval for a product needs no demotion", func(t *testing.T) {
		f := newServiceFixture()
		productID := uuid.New()
		draft := mustDraftBOM(t, productID)

		activated := mustDraftBOM(t, productID)
		activated.BaseEntity.ID = draft.ID
		require.NoError(t, activated.Approve())
		activated.ClearDomainEvents()

		f.bomRepo.On("FindByID", mock.Anything, draft.ID).Return(draft, nil).Once()
		f.bomRepo.On("FindActiveByProduct", mock.Anything, productID).Return(nil, shared.ErrNotFound)
		f.bomRepo.On("UpdateStatusGuarded", mock.Anything, draft.ID, bom.StatusDraft, bom.StatusActive).Return(true, nil)
		f.bomRepo.On("FindByID", mock.Anything, draft.ID).Return(activated, nil).Once()

		resp, err := f.service.Approve(context.Background(), draft.ID)
		require.NoError(t, err)
		assert.Equal(t, "active", resp.Status)
	})

	t.Run("approve on non-draft yields invalid state, not a second active row", func(t *testing.T) {
		f := newServiceFixture()
		active := mustDraftBOM(t, uuid.New())
		require.NoError(t, active.Approve())

		f.bomRepo.On("FindByID", mock.Anything, active.ID).Return(active, nil)

		_, err := f.service.Approve(context.Background(), active.ID)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		f.bomRepo.AssertNotCalled(t, "UpdateStatusGuarded", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("losing a concurrent approval surfaces a conflict", func(t *testing.T) {
		f := newServiceFixture()
		productID := uuid.New()
		draft := mustDraftBOM(t, productID)

		f.bomRepo.On("FindByID", mock.Anything, draft.ID).Return(draft, nil)
		f.bomRepo.On("FindActiveByProduct", mock.Anything, productID).Return(nil, shared.ErrNotFound)
		// Another approval slipped in between the read and the guarded update
		f.bomRepo.On("UpdateStatusGuarded", mock.Anything, draft.ID, bom.StatusDraft, bom.StatusActive).Return(false, nil)

		_, err := f.service.Approve(context.Background(), draft.ID)
		require.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestService_Retire(t *testing.T) {
	t.Run("retires active BOM", func(t *testing.T) {
		f := newServiceFixture()
		active := mustDraftBOM(t, uuid.New())
		require.NoError(t, active.Approve())
		active.ClearDomainEvents()

		retired := mustDraftBOM(t, active.ProductID)
		retired.BaseEntity.ID = active.ID
		require.NoError(t, retired.Approve())
		require.NoError(t, retired.Retire())
		retired.ClearDomainEvents()

		f.bomRepo.On("FindByID", mock.Anything, active.ID).Return(active, nil).Once()
		f.bomRepo.On("UpdateStatusGuarded", mock.Anything, active.ID, bom.StatusActive, bom.StatusObsolete).Return(true, nil)
		f.bomRepo.On("FindByID", mock.Anything, active.ID).Return(retired, nil).Once()

		resp, err := f.service.Retire(context.Background(), active.ID)
		require.NoError(t, err)
		assert.Equal(t, "obsolete", resp.Status)
	})

	t.Run("retire draft fails", func(t *testing.T) {
		f := newServiceFixture()
		draft := mustDraftBOM(t, uuid.New())
		f.bomRepo.On("FindByID", mock.Anything, draft.ID).Return(draft, nil)

		_, err := f.service.Retire(context.Background(), draft.ID)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestService_Discard(t *testing.T) {
	t.Run("discards draft BOM", func(t *testing.T) {
		f := newServiceFixture()
		draft := mustDraftBOM(t, uuid.New())

		discarded := mustDraftBOM(t, draft.ProductID)
		discarded.BaseEntity.ID = draft.ID
		require.NoError(t, discarded.Discard())
		discarded.ClearDomainEvents()

		f.bomRepo.On("FindByID", mock.Anything, draft.ID).Return(draft, nil).Once()
		f.bomRepo.On("UpdateStatusGuarded", mock.Anything, draft.ID, bom.StatusDraft, bom.StatusObsolete).Return(true, nil)
		f.bomRepo.On("FindByID", mock.Anything, draft.ID).Return(discarded, nil).Once()

		resp, err := f.service.Discard(context.Background(), draft.ID)
		require.NoError(t, err)
		assert.Equal(t, "obsolete", resp.Status)
	})

	t.Run("discard active fails", func(t *testing.T) {
		f := newServiceFixture()
		active := mustDraftBOM(t, uuid.New())
		require.NoError(t, active.Approve())
		f.bomRepo.On("FindByID", mock.Anything, active.ID).Return(active, nil)

		_, err := f.service.Discard(context.Background(), active.ID)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("guard failure surfaces conflict", func(t *testing.T) {
		f := newServiceFixture()
		draft := mustDraftBOM(t, uuid.New())
		f.bomRepo.On("FindByID", mock.Anything, draft.ID).Return(draft, nil)
		f.bomRepo.On("UpdateStatusGuarded", mock.Anything, draft.ID, bom.StatusDraft, bom.StatusObsolete).Return(false, nil)

		_, err := f.service.Discard(context.Background(), draft.ID)
		require.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("deletes draft BOM", func(t *testing.T) {
		f := newServiceFixture()
		draft := mustDraftBOM(t, uuid.New())

		f.bomRepo.On("FindByID", mock.Anything, draft.ID).Return(draft, nil)
		f.bomRepo.On("Delete", mock.Anything, draft.ID).Return(nil)

		require.NoError(t, f.service.Delete(context.Background(), draft.ID))
		f.bomRepo.AssertExpectations(t)
	})

	t.Run("refuses to delete active BOM", func(t *testing.T) {
		f := newServiceFixture()
		active := mustDraftBOM(t, uuid.New())
		require.NoError(t, active.Approve())

		f.bomRepo.On("FindByID", mock.Anything, active.ID).Return(active, nil)

		err := f.service.Delete(context.Background(), active.ID)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		f.bomRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestService_List(t *testing.T) {
	f := newServiceFixture()
	summary := bom.Summary{
		ID:          uuid.New(),
		ProductID:   uuid.New(),
		ProductName: "Frame",
		Revision:    "1.0",
		Name:        "Frame Assy",
		Status:      bom.StatusActive,
		LineCount:   4,
		TotalCost:   decimal.NewFromFloat(22.5),
	}

	f.bomRepo.On("ListSummaries", mock.Anything, mock.MatchedBy(func(filter shared.Filter) bool {
		return filter.Filters["status"] == bom.StatusActive
	})).Return(shared.NewPaginated([]bom.Summary{summary}, 1, 1, 20), nil)

	page, err := f.service.List(context.Background(), ListFilter{Status: "active"})
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.Equal(t, "active", page.Items[0].Status)
	assert.Equal(t, 4, page.Items[0].LineCount)
	assert.Equal(t, int64(1), page.Total)
}
