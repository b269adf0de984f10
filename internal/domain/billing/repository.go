package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
)

// BillRepository persists bills
type BillRepository interface {
	Create(ctx context.Context, bill *Bill) error
	FindByID(ctx context.Context, id uuid.UUID) (*Bill, error)
	// FindUnpaidByLandlord returns unpaid bills ordered oldest-generated-first.
	// Chronological order is load-bearing for the settlement reconciler.
	FindUnpaidByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*Bill, error)
	FindByLandlord(ctx context.Context, landlordID uuid.UUID, filter shared.Filter) ([]*Bill, int64, error)
	FindByUnit(ctx context.Context, unitID uuid.UUID, filter shared.Filter) ([]*Bill, int64, error)
	// ExistsForPeriod reports whether a bill already covers the unit's period,
	// used to keep scheduled generation idempotent.
	ExistsForPeriod(ctx context.Context, unitID uuid.UUID, cycle BillingCycle, periodStart time.Time) (bool, error)
	// Save persists status/payment mutations with optimistic locking; it
	// fails with shared.ErrConcurrencyConflict on a stale version.
	Save(ctx context.Context, bill *Bill) error
}

// BillPaymentRepository persists gateway payment attempts
type BillPaymentRepository interface {
	Create(ctx context.Context, payment *BillPayment) error
	FindByID(ctx context.Context, id uuid.UUID) (*BillPayment, error)
	FindByGatewayOrderID(ctx context.Context, orderID string) (*BillPayment, error)
	FindByBill(ctx context.Context, billID uuid.UUID) ([]*BillPayment, error)
	Save(ctx context.Context, payment *BillPayment) error
}
