package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/party"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUnitRepository implements party.UnitRepository using GORM
type GormUnitRepository struct {
	db *gorm.DB
}

// NewGormUnitRepository creates a new GORM-based unit repository
func NewGormUnitRepository(db *gorm.DB) *GormUnitRepository {
	return &GormUnitRepository{db: db}
}

// Create inserts a unit
func (r *GormUnitRepository) Create(ctx context.Context, unit *party.Unit) error {
	model := models.UnitModelFromDomain(unit)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create unit: %w", err)
	}
	return nil
}

// FindByID finds a unit by ID
func (r *GormUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*party.Unit, error) {
	var model models.UnitModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySite returns a page of a site's units plus the total count
func (r *GormUnitRepository) FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*party.Unit, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.UnitModel{}).
		Where("site_id = ?", siteID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var unitModels []models.UnitModel
	query := r.applyFilter(r.db.WithContext(ctx).Where("site_id = ?", siteID), filter)
	if err := query.Find(&unitModels).Error; err != nil {
		return nil, 0, err
	}

	units := make([]*party.Unit, len(unitModels))
	for i := range unitModels {
		units[i] = unitModels[i].ToDomain()
	}
	return units, total, nil
}

// FindByLandlord returns every unit a landlord owns
func (r *GormUnitRepository) FindByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*party.Unit, error) {
	var unitModels []models.UnitModel
	err := r.db.WithContext(ctx).
		Where("landlord_id = ?", landlordID).
		Order("created_at ASC").
		Find(&unitModels).Error
	if err != nil {
		return nil, err
	}

	units := make([]*party.Unit, len(unitModels))
	for i := range unitModels {
		units[i] = unitModels[i].ToDomain()
	}
	return units, nil
}

// FindBillable returns every unit with a configured maintenance rate, the
// work list for scheduled bill generation.
func (r *GormUnitRepository) FindBillable(ctx context.Context) ([]*party.Unit, error) {
	var unitModels []models.UnitModel
	err := r.db.WithContext(ctx).
		Where("maintenance_rate > 0").
		Order("created_at ASC").
		Find(&unitModels).Error
	if err != nil {
		return nil, err
	}

	units := make([]*party.Unit, len(unitModels))
	for i := range unitModels {
		units[i] = unitModels[i].ToDomain()
	}
	return units, nil
}

// applyFilter applies pagination and ordering to the query
func (r *GormUnitRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, CommonSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// Save persists unit mutations with optimistic locking
func (r *GormUnitRepository) Save(ctx context.Context, unit *party.Unit) error {
	model := models.UnitModelFromDomain(unit)
	result := r.db.WithContext(ctx).
		Model(&models.UnitModel{}).
		Where("id = ? AND version = ?", unit.ID, unit.Version-1).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to save unit: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}
