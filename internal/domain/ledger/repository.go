package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
)

// LedgerEntryRepository persists landlord-scoped ledger entries.
//
// Create must fail with shared.ErrConcurrencyConflict when another entry with
// the same (landlord, sequence) was inserted meanwhile; callers retry by
// re-reading the latest entry.
type LedgerEntryRepository interface {
	Create(ctx context.Context, entry *LedgerEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*LedgerEntry, error)
	// FindLatestByLandlord returns the highest-sequence entry for a landlord,
	// or shared.ErrNotFound when the landlord has no entries yet.
	FindLatestByLandlord(ctx context.Context, landlordID uuid.UUID) (*LedgerEntry, error)
	FindByLandlord(ctx context.Context, landlordID uuid.UUID, filter shared.Filter) ([]*LedgerEntry, int64, error)
	FindByBill(ctx context.Context, billID uuid.UUID) ([]*LedgerEntry, error)
}

// PaymentLedgerRepository persists (party, site, unit)-scoped payment-ledger
// entries with the same conditional-write contract as LedgerEntryRepository.
type PaymentLedgerRepository interface {
	Create(ctx context.Context, entry *PaymentLedgerEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentLedgerEntry, error)
	// FindLatestByScope returns the highest-sequence entry for a scope, or
	// shared.ErrNotFound when the scope has no entries yet.
	FindLatestByScope(ctx context.Context, scope PaymentScope) (*PaymentLedgerEntry, error)
	FindByScope(ctx context.Context, scope PaymentScope, filter shared.Filter) ([]*PaymentLedgerEntry, int64, error)
}
