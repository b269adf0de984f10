package warehouse

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/warehouse"
	"go.uber.org/zap"
)

// StockService manages per-site consumable stock and its movement audit
type StockService struct {
	itemRepo     warehouse.StockItemRepository
	movementRepo warehouse.StockMovementRepository
	logger       *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(
	itemRepo warehouse.StockItemRepository,
	movementRepo warehouse.StockMovementRepository,
	logger *zap.Logger,
) *StockService {
	return &StockService{
		itemRepo:     itemRepo,
		movementRepo: movementRepo,
		logger:       logger,
	}
}

// CreateItemRequest registers a consumable at a site
type CreateItemRequest struct {
	SiteID            uuid.UUID
	Name              string
	Unit              string
	Quantity          int64
	LowStockThreshold int64
}

// CreateItem registers a stock item, rejecting duplicates per site
func (s *StockService) CreateItem(ctx context.Context, req CreateItemRequest) (*warehouse.StockItem, error) {
	existing, err := s.itemRepo.FindBySiteAndName(ctx, req.SiteID, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing item: %w", err)
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An item with this name already exists at the site")
	}

	item, err := warehouse.NewStockItem(req.SiteID, req.Name, req.Unit, req.Quantity, req.LowStockThreshold)
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	return item, nil
}

// GetItem returns one stock item by id
func (s *StockService) GetItem(ctx context.Context, id uuid.UUID) (*warehouse.StockItem, error) {
	if id == uuid.Nil {
		return nil, shared.NewValidationError("Item ID is required")
	}
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		return nil, shared.ErrNotFound
	}
	return item, nil
}

// ListItemsBySite returns a site's stock items
func (s *StockService) ListItemsBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*warehouse.StockItem, int64, error) {
	if siteID == uuid.Nil {
		return nil, 0, shared.NewValidationError("Site ID is required")
	}
	return s.itemRepo.FindBySite(ctx, siteID, filter)
}

// ListLowStock returns the items at or under their threshold at a site
func (s *StockService) ListLowStock(ctx context.Context, siteID uuid.UUID) ([]*warehouse.StockItem, error) {
	if siteID == uuid.Nil {
		return nil, shared.NewValidationError("Site ID is required")
	}
	return s.itemRepo.FindLowStock(ctx, siteID)
}

// RecordMovementRequest adjusts one item's quantity with an audit record
type RecordMovementRequest struct {
	ItemID     uuid.UUID
	Type       warehouse.MovementType
	Quantity   int64
	ToSiteID   *uuid.UUID
	Reference  string
	RecordedBy uuid.UUID
}

// RecordMovement applies an IN, OUT or TRANSFER movement. Transfers debit
// the source item and credit (or create) the matching item at the
// destination site.
func (s *StockService) RecordMovement(ctx context.Context, req RecordMovementRequest) (*warehouse.StockMovement, error) {
	item, err := s.GetItem(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	movement, err := warehouse.NewStockMovement(item.ID, item.SiteID, req.Type, req.Quantity, req.RecordedBy)
	if err != nil {
		return nil, err
	}
	if req.Reference != "" {
		movement.WithReference(req.Reference)
	}

	switch req.Type {
	case warehouse.MovementTypeIn:
		if err := item.Receive(req.Quantity); err != nil {
			return nil, err
		}
	case warehouse.MovementTypeOut:
		if err := item.Issue(req.Quantity); err != nil {
			return nil, err
		}
	case warehouse.MovementTypeTransfer:
		if req.ToSiteID == nil {
			return nil, shared.NewValidationError("Destination site is required for transfers")
		}
		if _, err := movement.WithDestination(*req.ToSiteID); err != nil {
			return nil, err
		}
		if err := item.Issue(req.Quantity); err != nil {
			return nil, err
		}
		if err := s.receiveAtDestination(ctx, item, *req.ToSiteID, req.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}
	if err := s.movementRepo.Create(ctx, movement); err != nil {
		return nil, fmt.Errorf("failed to record movement: %w", err)
	}

	s.logger.Info("stock movement recorded",
		zap.String("item_id", item.ID.String()),
		zap.String("type", req.Type.String()),
		zap.Int64("quantity", req.Quantity),
	)
	return movement, nil
}

// receiveAtDestination credits the same-named item at the destination site,
// creating it with the source's threshold when it does not exist yet.
func (s *StockService) receiveAtDestination(ctx context.Context, source *warehouse.StockItem, toSiteID uuid.UUID, quantity int64) error {
	dest, err := s.itemRepo.FindBySiteAndName(ctx, toSiteID, source.Name)
	if err != nil {
		return fmt.Errorf("failed to find destination item: %w", err)
	}
	if dest == nil {
		dest, err = warehouse.NewStockItem(toSiteID, source.Name, source.Unit, quantity, source.LowStockThreshold)
		if err != nil {
			return err
		}
		if err := s.itemRepo.Create(ctx, dest); err != nil {
			return fmt.Errorf("failed to create destination item: %w", err)
		}
		return nil
	}
	if err := dest.Receive(quantity); err != nil {
		return err
	}
	if err := s.itemRepo.Save(ctx, dest); err != nil {
		return fmt.Errorf("failed to save destination item: %w", err)
	}
	return nil
}

// ListMovements returns an item's movement history
func (s *StockService) ListMovements(ctx context.Context, itemID uuid.UUID, filter shared.Filter) ([]*warehouse.StockMovement, int64, error) {
	if itemID == uuid.Nil {
		return nil, 0, shared.NewValidationError("Item ID is required")
	}
	return s.movementRepo.FindByItem(ctx, itemID, filter)
}
