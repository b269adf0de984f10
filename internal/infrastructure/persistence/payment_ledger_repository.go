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

// GormPaymentLedgerRepository implements ledger.PaymentLedgerRepository using GORM
type GormPaymentLedgerRepository struct {
	db *gorm.DB
}

// NewGormPaymentLedgerRepository creates a new GORM-based payment ledger repository
func NewGormPaymentLedgerRepository(db *gorm.DB) *GormPaymentLedgerRepository {
	return &GormPaymentLedgerRepository{db: db}
}

// Create inserts a payment-ledger entry under the same conditional-write
// contract as the landlord ledger: a duplicate (scope, sequence) insert is a
// concurrency conflict the caller resolves by retrying.
func (r *GormPaymentLedgerRepository) Create(ctx context.Context, entry *ledger.PaymentLedgerEntry) error {
	model := models.PaymentLedgerEntryModelFromDomain(entry)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrConcurrencyConflict
		}
		return fmt.Errorf("failed to create payment ledger entry: %w", err)
	}
	return nil
}

// FindByID finds a payment-ledger entry by ID
func (r *GormPaymentLedgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.PaymentLedgerEntry, error) {
	var model models.PaymentLedgerEntryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindLatestByScope returns the highest-sequence entry for a scope
func (r *GormPaymentLedgerRepository) FindLatestByScope(ctx context.Context, scope ledger.PaymentScope) (*ledger.PaymentLedgerEntry, error) {
	var model models.PaymentLedgerEntryModel
	err := r.scopeQuery(r.db.WithContext(ctx), scope).
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

// FindByScope returns a page of a scope's entries plus the total count
func (r *GormPaymentLedgerRepository) FindByScope(ctx context.Context, scope ledger.PaymentScope, filter shared.Filter) ([]*ledger.PaymentLedgerEntry, int64, error) {
	var total int64
	err := r.scopeQuery(r.db.WithContext(ctx).Model(&models.PaymentLedgerEntryModel{}), scope).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var entryModels []models.PaymentLedgerEntryModel
	query := r.applyFilter(r.scopeQuery(r.db.WithContext(ctx), scope), filter)
	if err := query.Find(&entryModels).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]*ledger.PaymentLedgerEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = entryModels[i].ToDomain()
	}
	return entries, total, nil
}

// scopeQuery narrows a query to one (party, site, unit) scope
func (r *GormPaymentLedgerRepository) scopeQuery(query *gorm.DB, scope ledger.PaymentScope) *gorm.DB {
	return query.Where(
		"party_type = ? AND party_id = ? AND site_id = ? AND unit_id = ?",
		scope.PartyType, scope.PartyID, scope.SiteID, scope.UnitID,
	)
}

// applyFilter applies pagination and ordering to the query
func (r *GormPaymentLedgerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, LedgerSortFields, "sequence")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}
