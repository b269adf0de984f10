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

// GormLandlordRepository implements party.LandlordRepository using GORM
type GormLandlordRepository struct {
	db *gorm.DB
}

// NewGormLandlordRepository creates a new GORM-based landlord repository
func NewGormLandlordRepository(db *gorm.DB) *GormLandlordRepository {
	return &GormLandlordRepository{db: db}
}

// Create inserts a landlord. Phone numbers are unique across landlords.
func (r *GormLandlordRepository) Create(ctx context.Context, landlord *party.Landlord) error {
	model := models.LandlordModelFromDomain(landlord)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create landlord: %w", err)
	}
	return nil
}

// FindByID finds a landlord by ID
func (r *GormLandlordRepository) FindByID(ctx context.Context, id uuid.UUID) (*party.Landlord, error) {
	var model models.LandlordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPhone finds a landlord by phone number
func (r *GormLandlordRepository) FindByPhone(ctx context.Context, phone string) (*party.Landlord, error) {
	var model models.LandlordModel
	if err := r.db.WithContext(ctx).First(&model, "phone = ?", phone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of landlords plus the total count
func (r *GormLandlordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*party.Landlord, int64, error) {
	var total int64
	countQuery := applyPartySearch(r.db.WithContext(ctx).Model(&models.LandlordModel{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var landlordModels []models.LandlordModel
	query := applyPartyFilter(applyPartySearch(r.db.WithContext(ctx), filter), filter)
	if err := query.Find(&landlordModels).Error; err != nil {
		return nil, 0, err
	}

	landlords := make([]*party.Landlord, len(landlordModels))
	for i := range landlordModels {
		landlords[i] = landlordModels[i].ToDomain()
	}
	return landlords, total, nil
}

// Save persists landlord mutations with optimistic locking
func (r *GormLandlordRepository) Save(ctx context.Context, landlord *party.Landlord) error {
	model := models.LandlordModelFromDomain(landlord)
	result := r.db.WithContext(ctx).
		Model(&models.LandlordModel{}).
		Where("id = ? AND version = ?", landlord.ID, landlord.Version-1).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to save landlord: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// applyPartySearch applies name/phone/email search shared by party repositories
func applyPartySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return query
}

// applyPartyFilter applies pagination and ordering shared by party repositories
func applyPartyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, PartySortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}
