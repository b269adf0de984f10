package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/ledger"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLedgerEntryRepository implements ledger.LedgerEntryRepository using GORM
type GormLedgerEntryRepository struct {
	db *gorm.DB
}

// NewGormLedgerEntryRepository creates a new GORM-based ledger entry repository
func NewGormLedgerEntryRepository(db *gorm.DB) *GormLedgerEntryRepository {
	return &GormLedgerEntryRepository{db: db}
}

// Create inserts a ledger entry. The unique (landlord_id, sequence) index is
// the concurrency control: when a racing writer took the sequence first, the
// insert fails and the caller re-reads the chain head and retries.
func (r *GormLedgerEntryRepository) Create(ctx context.Context, entry *ledger.LedgerEntry) error {
	model := models.LedgerEntryModelFromDomain(entry)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrConcurrencyConflict
		}
		return fmt.Errorf("failed to create ledger entry: %w", err)
	}
	return nil
}

// FindByID finds a ledger entry by ID
func (r *GormLedgerEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.LedgerEntry, error) {
	var model models.LedgerEntryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindLatestByLandlord returns the highest-sequence entry for a landlord
func (r *GormLedgerEntryRepository) FindLatestByLandlord(ctx context.Context, landlordID uuid.UUID) (*ledger.LedgerEntry, error) {
	var model models.LedgerEntryModel
	err := r.db.WithContext(ctx).
		Where("landlord_id = ?", landlordID).
		Order("sequence DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByLandlord returns a page of a landlord's entries plus the total count
func (r *GormLedgerEntryRepository) FindByLandlord(ctx context.Context, landlordID uuid.UUID, filter shared.Filter) ([]*ledger.LedgerEntry, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.LedgerEntryModel{}).
		Where("landlord_id = ?", landlordID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var entryModels []models.LedgerEntryModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Where("landlord_id = ?", landlordID),
		filter,
	)
	if err := query.Find(&entryModels).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]*ledger.LedgerEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = entryModels[i].ToDomain()
	}
	return entries, total, nil
}

// FindByBill returns the entries recorded against a bill
func (r *GormLedgerEntryRepository) FindByBill(ctx context.Context, billID uuid.UUID) ([]*ledger.LedgerEntry, error) {
	var entryModels []models.LedgerEntryModel
	err := r.db.WithContext(ctx).
		Where("bill_id = ?", billID).
		Order("sequence ASC").
		Find(&entryModels).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*ledger.LedgerEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = entryModels[i].ToDomain()
	}
	return entries, nil
}

// applyFilter applies pagination and ordering to the query
func (r *GormLedgerEntryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, LedgerSortFields, "sequence")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}
