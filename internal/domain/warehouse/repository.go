package warehouse

import (
	"context"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
)

// StockItemRepository persists stock items
type StockItemRepository interface {
	Create(ctx context.Context, item *StockItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*StockItem, error)
	FindBySiteAndName(ctx context.Context, siteID uuid.UUID, name string) (*StockItem, error)
	FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*StockItem, int64, error)
	FindLowStock(ctx context.Context, siteID uuid.UUID) ([]*StockItem, error)
	Save(ctx context.Context, item *StockItem) error
}

// StockMovementRepository persists stock movements
type StockMovementRepository interface {
	Create(ctx context.Context, movement *StockMovement) error
	FindByItem(ctx context.Context, itemID uuid.UUID, filter shared.Filter) ([]*StockMovement, int64, error)
}
