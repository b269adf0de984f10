package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/billing"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBillRepository implements billing.BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GORM-based bill repository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// Create inserts a bill. A duplicate (unit, cycle, period_start) insert means
// another run already generated this period's bill.
func (r *GormBillRepository) Create(ctx context.Context, bill *billing.Bill) error {
	model := models.BillModelFromDomain(bill)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create bill: %w", err)
	}
	return nil
}

// FindByID finds a bill by ID
func (r *GormBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	var model models.BillModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindUnpaidByLandlord returns unpaid bills ordered oldest-generated-first,
// the order the settlement reconciler consumes advances in.
func (r *GormBillRepository) FindUnpaidByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*billing.Bill, error) {
	var billModels []models.BillModel
	err := r.db.WithContext(ctx).
		Where("landlord_id = ? AND status = ?", landlordID, billing.BillStatusUnpaid).
		Order("created_at ASC").
		Find(&billModels).Error
	if err != nil {
		return nil, err
	}

	bills := make([]*billing.Bill, len(billModels))
	for i := range billModels {
		bills[i] = billModels[i].ToDomain()
	}
	return bills, nil
}

// FindByLandlord returns a page of a landlord's bills plus the total count
func (r *GormBillRepository) FindByLandlord(ctx context.Context, landlordID uuid.UUID, filter shared.Filter) ([]*billing.Bill, int64, error) {
	return r.findPaged(ctx, "landlord_id = ?", landlordID, filter)
}

// FindByUnit returns a page of a unit's bills plus the total count
func (r *GormBillRepository) FindByUnit(ctx context.Context, unitID uuid.UUID, filter shared.Filter) ([]*billing.Bill, int64, error) {
	return r.findPaged(ctx, "unit_id = ?", unitID, filter)
}

// ExistsForPeriod reports whether a bill already covers the unit's period
func (r *GormBillRepository) ExistsForPeriod(ctx context.Context, unitID uuid.UUID, cycle billing.BillingCycle, periodStart time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BillModel{}).
		Where("unit_id = ? AND cycle = ? AND period_start = ?", unitID, cycle, periodStart).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save persists status and payment mutations with optimistic locking.
// The update is conditioned on the prior version; zero rows affected means
// another writer got there first.
func (r *GormBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	model := models.BillModelFromDomain(bill)
	result := r.db.WithContext(ctx).
		Model(&models.BillModel{}).
		Where("id = ? AND version = ?", bill.ID, bill.Version-1).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to save bill: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// findPaged runs one scoped count plus one scoped page query
func (r *GormBillRepository) findPaged(ctx context.Context, cond string, arg interface{}, filter shared.Filter) ([]*billing.Bill, int64, error) {
	var total int64
	countQuery := r.applyStatusFilter(
		r.db.WithContext(ctx).Model(&models.BillModel{}).Where(cond, arg),
		filter,
	)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var billModels []models.BillModel
	query := r.applyFilter(r.applyStatusFilter(r.db.WithContext(ctx).Where(cond, arg), filter), filter)
	if err := query.Find(&billModels).Error; err != nil {
		return nil, 0, err
	}

	bills := make([]*billing.Bill, len(billModels))
	for i := range billModels {
		bills[i] = billModels[i].ToDomain()
	}
	return bills, total, nil
}

// applyStatusFilter narrows the query to a requested bill status
func (r *GormBillRepository) applyStatusFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return query
}

// applyFilter applies pagination and ordering to the query
func (r *GormBillRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, BillSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}
