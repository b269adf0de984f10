package warehouse

import (
	"context"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/warehouse"
	"github.com/stretchr/testify/mock"
)

// MockStockItemRepository is a mock implementation of warehouse.StockItemRepository
type MockStockItemRepository struct {
	mock.Mock
}

func (m *MockStockItemRepository) Create(ctx context.Context, item *warehouse.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.StockItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindBySiteAndName(ctx context.Context, siteID uuid.UUID, name string) (*warehouse.StockItem, error) {
	args := m.Called(ctx, siteID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*warehouse.StockItem, int64, error) {
	args := m.Called(ctx, siteID, filter)
	return args.Get(0).([]*warehouse.StockItem), args.Get(1).(int64), args.Error(2)
}

func (m *MockStockItemRepository) FindLowStock(ctx context.Context, siteID uuid.UUID) ([]*warehouse.StockItem, error) {
	args := m.Called(ctx, siteID)
	return args.Get(0).([]*warehouse.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) Save(ctx context.Context, item *warehouse.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// MockStockMovementRepository is a mock implementation of warehouse.StockMovementRepository
type MockStockMovementRepository struct {
	mock.Mock
}

func (m *MockStockMovementRepository) Create(ctx context.Context, movement *warehouse.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockStockMovementRepository) FindByItem(ctx context.Context, itemID uuid.UUID, filter shared.Filter) ([]*warehouse.StockMovement, int64, error) {
	args := m.Called(ctx, itemID, filter)
	return args.Get(0).([]*warehouse.StockMovement), args.Get(1).(int64), args.Error(2)
}
