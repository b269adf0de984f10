package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/ledger"
	"github.com/propman/backend/internal/domain/party"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormWalletTopUpRepository implements party.WalletTopUpRepository using GORM
type GormWalletTopUpRepository struct {
	db *gorm.DB
}

// NewGormWalletTopUpRepository creates a new GORM-based wallet top-up repository
func NewGormWalletTopUpRepository(db *gorm.DB) *GormWalletTopUpRepository {
	return &GormWalletTopUpRepository{db: db}
}

// Create inserts a top-up attempt
func (r *GormWalletTopUpRepository) Create(ctx context.Context, topUp *party.WalletTopUp) error {
	model := models.WalletTopUpModelFromDomain(topUp)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create wallet top-up: %w", err)
	}
	return nil
}

// FindByID finds a top-up by ID
func (r *GormWalletTopUpRepository) FindByID(ctx context.Context, id uuid.UUID) (*party.WalletTopUp, error) {
	var model models.WalletTopUpModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByGatewayOrderID finds the top-up a gateway callback refers to
func (r *GormWalletTopUpRepository) FindByGatewayOrderID(ctx context.Context, orderID string) (*party.WalletTopUp, error) {
	var model models.WalletTopUpModel
	if err := r.db.WithContext(ctx).First(&model, "gateway_order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByParty returns a page of a party's top-ups plus the total count
func (r *GormWalletTopUpRepository) FindByParty(ctx context.Context, partyType ledger.PartyType, partyID uuid.UUID, filter shared.Filter) ([]*party.WalletTopUp, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.WalletTopUpModel{}).
		Where("party_type = ? AND party_id = ?", partyType, partyID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var topUpModels []models.WalletTopUpModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Where("party_type = ? AND party_id = ?", partyType, partyID),
		filter,
	)
	if err := query.Find(&topUpModels).Error; err != nil {
		return nil, 0, err
	}

	topUps := make([]*party.WalletTopUp, len(topUpModels))
	for i := range topUpModels {
		topUps[i] = topUpModels[i].ToDomain()
	}
	return topUps, total, nil
}

// applyFilter applies pagination and ordering to the query
func (r *GormWalletTopUpRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, CommonSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// Save persists top-up mutations with optimistic locking
func (r *GormWalletTopUpRepository) Save(ctx context.Context, topUp *party.WalletTopUp) error {
	model := models.WalletTopUpModelFromDomain(topUp)
	result := r.db.WithContext(ctx).
		Model(&models.WalletTopUpModel{}).
		Where("id = ? AND version = ?", topUp.ID, topUp.Version-1).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to save wallet top-up: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}
