package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/billing"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBillPaymentRepository implements billing.BillPaymentRepository using GORM
type GormBillPaymentRepository struct {
	db *gorm.DB
}

// NewGormBillPaymentRepository creates a new GORM-based bill payment repository
func NewGormBillPaymentRepository(db *gorm.DB) *GormBillPaymentRepository {
	return &GormBillPaymentRepository{db: db}
}

// Create inserts a payment attempt
func (r *GormBillPaymentRepository) Create(ctx context.Context, payment *billing.BillPayment) error {
	model := models.BillPaymentModelFromDomain(payment)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create bill payment: %w", err)
	}
	return nil
}

// FindByID finds a payment by ID
func (r *GormBillPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.BillPayment, error) {
	var model models.BillPaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByGatewayOrderID finds the payment a gateway callback refers to
func (r *GormBillPaymentRepository) FindByGatewayOrderID(ctx context.Context, orderID string) (*billing.BillPayment, error) {
	var model models.BillPaymentModel
	if err := r.db.WithContext(ctx).First(&model, "gateway_order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBill returns every payment attempt against a bill, newest first
func (r *GormBillPaymentRepository) FindByBill(ctx context.Context, billID uuid.UUID) ([]*billing.BillPayment, error) {
	var paymentModels []models.BillPaymentModel
	err := r.db.WithContext(ctx).
		Where("bill_id = ?", billID).
		Order("created_at DESC").
		Find(&paymentModels).Error
	if err != nil {
		return nil, err
	}

	payments := make([]*billing.BillPayment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = paymentModels[i].ToDomain()
	}
	return payments, nil
}

// Save persists payment mutations with optimistic locking
func (r *GormBillPaymentRepository) Save(ctx context.Context, payment *billing.BillPayment) error {
	model := models.BillPaymentModelFromDomain(payment)
	result := r.db.WithContext(ctx).
		Model(&models.BillPaymentModel{}).
		Where("id = ? AND version = ?", payment.ID, payment.Version-1).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to save bill payment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}
