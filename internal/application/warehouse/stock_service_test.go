package warehouse

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/warehouse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stockFixture struct {
	service      *StockService
	itemRepo     *MockStockItemRepository
	movementRepo *MockStockMovementRepository
}

func newStockFixture() *stockFixture {
	f := &stockFixture{
		itemRepo:     new(MockStockItemRepository),
		movementRepo: new(MockStockMovementRepository),
	}
	f.service = NewStockService(f.itemRepo, f.movementRepo, zap.NewNop())
	return f
}

func TestStockService_CreateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a new consumable", func(t *testing.T) {
		f := newStockFixture()
		siteID := uuid.New()

		f.itemRepo.On("FindBySiteAndName", ctx, siteID, "LED Bulb 9W").Return(nil, nil)
		f.itemRepo.On("Create", ctx, mock.AnythingOfType("*warehouse.StockItem")).Return(nil)

		item, err := f.service.CreateItem(ctx, CreateItemRequest{
			SiteID:            siteID,
			Name:              "LED Bulb 9W",
			Unit:              "pcs",
			Quantity:          40,
			LowStockThreshold: 10,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(40), item.Quantity)
		assert.Equal(t, warehouse.StockStatusInStock, item.Status)
	})

	t.Run("rejects a duplicate name at the same site", func(t *testing.T) {
		f := newStockFixture()
		siteID := uuid.New()

		existing, err := warehouse.NewStockItem(siteID, "LED Bulb 9W", "pcs", 5, 2)
		require.NoError(t, err)
		f.itemRepo.On("FindBySiteAndName", ctx, siteID, "LED Bulb 9W").Return(existing, nil)

		_, err = f.service.CreateItem(ctx, CreateItemRequest{
			SiteID:   siteID,
			Name:     "LED Bulb 9W",
			Unit:     "pcs",
			Quantity: 40,
		})
		assert.Error(t, err)
		f.itemRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestStockService_RecordMovement(t *testing.T) {
	ctx := context.Background()
	recordedBy := uuid.New()

	newItem := func(t *testing.T, qty int64) *warehouse.StockItem {
		t.Helper()
		item, err := warehouse.NewStockItem(uuid.New(), "Mop Handle", "pcs", qty, 5)
		require.NoError(t, err)
		return item
	}

	t.Run("IN movement raises the quantity", func(t *testing.T) {
		f := newStockFixture()
		item := newItem(t, 10)

		f.itemRepo.On("FindByID", ctx, item.ID).Return(item, nil)
		f.itemRepo.On("Save", ctx, item).Return(nil)
		f.movementRepo.On("Create", ctx, mock.AnythingOfType("*warehouse.StockMovement")).Return(nil)

		movement, err := f.service.RecordMovement(ctx, RecordMovementRequest{
			ItemID:     item.ID,
			Type:       warehouse.MovementTypeIn,
			Quantity:   15,
			Reference:  "PO-2031",
			RecordedBy: recordedBy,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(25), item.Quantity)
		assert.Equal(t, "PO-2031", movement.Reference)
	})

	t.Run("OUT movement cannot exceed the quantity on hand", func(t *testing.T) {
		f := newStockFixture()
		item := newItem(t, 10)

		f.itemRepo.On("FindByID", ctx, item.ID).Return(item, nil)

		_, err := f.service.RecordMovement(ctx, RecordMovementRequest{
			ItemID:     item.ID,
			Type:       warehouse.MovementTypeOut,
			Quantity:   11,
			RecordedBy: recordedBy,
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		f.movementRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("OUT movement drops the item to low stock", func(t *testing.T) {
		f := newStockFixture()
		item := newItem(t, 10)

		f.itemRepo.On("FindByID", ctx, item.ID).Return(item, nil)
		f.itemRepo.On("Save", ctx, item).Return(nil)
		f.movementRepo.On("Create", ctx, mock.AnythingOfType("*warehouse.StockMovement")).Return(nil)

		_, err := f.service.RecordMovement(ctx, RecordMovementRequest{
			ItemID:     item.ID,
			Type:       warehouse.MovementTypeOut,
			Quantity:   6,
			RecordedBy: recordedBy,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(4), item.Quantity)
		assert.Equal(t, warehouse.StockStatusLowStock, item.Status)
	})

	t.Run("transfer credits the matching item at the destination", func(t *testing.T) {
		f := newStockFixture()
		item := newItem(t, 20)
		destSiteID := uuid.New()
		dest, err := warehouse.NewStockItem(destSiteID, item.Name, "pcs", 3, 5)
		require.NoError(t, err)

		f.itemRepo.On("FindByID", ctx, item.ID).Return(item, nil)
		f.itemRepo.On("FindBySiteAndName", ctx, destSiteID, item.Name).Return(dest, nil)
		f.itemRepo.On("Save", ctx, mock.AnythingOfType("*warehouse.StockItem")).Return(nil)
		f.movementRepo.On("Create", ctx, mock.AnythingOfType("*warehouse.StockMovement")).Return(nil)

		movement, err := f.service.RecordMovement(ctx, RecordMovementRequest{
			ItemID:     item.ID,
			Type:       warehouse.MovementTypeTransfer,
			Quantity:   8,
			ToSiteID:   &destSiteID,
			RecordedBy: recordedBy,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(12), item.Quantity)
		assert.Equal(t, int64(11), dest.Quantity)
		require.NotNil(t, movement.ToSiteID)
		assert.Equal(t, destSiteID, *movement.ToSiteID)
	})

	t.Run("transfer creates the destination item when missing", func(t *testing.T) {
		f := newStockFixture()
		item := newItem(t, 20)
		destSiteID := uuid.New()

		var created *warehouse.StockItem
		f.itemRepo.On("FindByID", ctx, item.ID).Return(item, nil)
		f.itemRepo.On("FindBySiteAndName", ctx, destSiteID, item.Name).Return(nil, nil)
		f.itemRepo.On("Create", ctx, mock.AnythingOfType("*warehouse.StockItem")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*warehouse.StockItem)
			}).Return(nil)
		f.itemRepo.On("Save", ctx, item).Return(nil)
		f.movementRepo.On("Create", ctx, mock.AnythingOfType("*warehouse.StockMovement")).Return(nil)

		_, err := f.service.RecordMovement(ctx, RecordMovementRequest{
			ItemID:     item.ID,
			Type:       warehouse.MovementTypeTransfer,
			Quantity:   8,
			ToSiteID:   &destSiteID,
			RecordedBy: recordedBy,
		})
		require.NoError(t, err)

		require.NotNil(t, created)
		assert.Equal(t, destSiteID, created.SiteID)
		assert.Equal(t, int64(8), created.Quantity)
	})

	t.Run("transfer to the same site is rejected", func(t *testing.T) {
		f := newStockFixture()
		item := newItem(t, 20)

		f.itemRepo.On("FindByID", ctx, item.ID).Return(item, nil)

		_, err := f.service.RecordMovement(ctx, RecordMovementRequest{
			ItemID:     item.ID,
			Type:       warehouse.MovementTypeTransfer,
			Quantity:   8,
			ToSiteID:   &item.SiteID,
			RecordedBy: recordedBy,
		})
		assert.Error(t, err)
	})
}
