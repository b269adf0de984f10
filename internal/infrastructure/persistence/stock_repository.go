package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/warehouse"
	"github.com/propman/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStockItemRepository implements warehouse.StockItemRepository using GORM
type GormStockItemRepository struct {
	db *gorm.DB
}

// NewGormStockItemRepository creates a new GORM-based stock item repository
func NewGormStockItemRepository(db *gorm.DB) *GormStockItemRepository {
	return &GormStockItemRepository{db: db}
}

// Create inserts a stock item. Item names are unique per site.
func (r *GormStockItemRepository) Create(ctx context.Context, item *warehouse.StockItem) error {
	model := models.StockItemModelFromDomain(item)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create stock item: %w", err)
	}
	return nil
}

// FindByID finds a stock item by ID
func (r *GormStockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.StockItem, error) {
	var model models.StockItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySiteAndName finds a site's item by name, used to merge transfers
// into the receiving site's existing stock.
func (r *GormStockItemRepository) FindBySiteAndName(ctx context.Context, siteID uuid.UUID, name string) (*warehouse.StockItem, error) {
	var model models.StockItemModel
	err := r.db.WithContext(ctx).
		First(&model, "site_id = ? AND name = ?", siteID, name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySite returns a page of a site's stock items plus the total count
func (r *GormStockItemRepository) FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*warehouse.StockItem, int64, error) {
	var total int64
	countQuery := r.applySearch(
		r.db.WithContext(ctx).Model(&models.StockItemModel{}).Where("site_id = ?", siteID),
		filter,
	)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var itemModels []models.StockItemModel
	query := r.applyFilter(
		r.applySearch(r.db.WithContext(ctx).Where("site_id = ?", siteID), filter),
		filter,
	)
	if err := query.Find(&itemModels).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*warehouse.StockItem, len(itemModels))
	for i := range itemModels {
		items[i] = itemModels[i].ToDomain()
	}
	return items, total, nil
}

// FindLowStock returns a site's items at or below their low-stock threshold
func (r *GormStockItemRepository) FindLowStock(ctx context.Context, siteID uuid.UUID) ([]*warehouse.StockItem, error) {
	var itemModels []models.StockItemModel
	err := r.db.WithContext(ctx).
		Where("site_id = ? AND status IN ?", siteID,
			[]warehouse.StockStatus{warehouse.StockStatusLowStock, warehouse.StockStatusOutOfStock}).
		Order("quantity ASC").
		Find(&itemModels).Error
	if err != nil {
		return nil, err
	}

	items := make([]*warehouse.StockItem, len(itemModels))
	for i := range itemModels {
		items[i] = itemModels[i].ToDomain()
	}
	return items, nil
}

// Save persists stock item mutations with optimistic locking
func (r *GormStockItemRepository) Save(ctx context.Context, item *warehouse.StockItem) error {
	model := models.StockItemModelFromDomain(item)
	result := r.db.WithContext(ctx).
		Model(&models.StockItemModel{}).
		Where("id = ? AND version = ?", item.ID, item.Version-1).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to save stock item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// applySearch applies name search and status filtering
func (r *GormStockItemRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return query
}

// applyFilter applies pagination and ordering to the query
func (r *GormStockItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, CommonSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// GormStockMovementRepository implements warehouse.StockMovementRepository using GORM
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GORM-based stock movement repository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Create inserts a movement record
func (r *GormStockMovementRepository) Create(ctx context.Context, movement *warehouse.StockMovement) error {
	model := models.StockMovementModelFromDomain(movement)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create stock movement: %w", err)
	}
	return nil
}

// FindByItem returns a page of an item's movements plus the total count
func (r *GormStockMovementRepository) FindByItem(ctx context.Context, itemID uuid.UUID, filter shared.Filter) ([]*warehouse.StockMovement, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.StockMovementModel{}).
		Where("item_id = ?", itemID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Where("item_id = ?", itemID)
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	query = query.Order("moved_at DESC")

	var movementModels []models.StockMovementModel
	if err := query.Find(&movementModels).Error; err != nil {
		return nil, 0, err
	}

	movements := make([]*warehouse.StockMovement, len(movementModels))
	for i := range movementModels {
		movements[i] = movementModels[i].ToDomain()
	}
	return movements, total, nil
}
