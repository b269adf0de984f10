package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/ledger"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentLedgerService appends entries to the (party, site, unit) scoped
// dual-column payment ledger.
type PaymentLedgerService struct {
	entryRepo ledger.PaymentLedgerRepository
}

// NewPaymentLedgerService creates a new PaymentLedgerService
func NewPaymentLedgerService(entryRepo ledger.PaymentLedgerRepository) *PaymentLedgerService {
	return &PaymentLedgerService{entryRepo: entryRepo}
}

// RecordPaymentEntryRequest describes one debit or credit to append
type RecordPaymentEntryRequest struct {
	Scope        ledger.PaymentScope
	BillID       *uuid.UUID
	EntryType    ledger.EntryType
	DebitAmount  decimal.Decimal
	CreditAmount decimal.Decimal
	Remark       string
	PaymentMode  string
}

// Record appends a payment-ledger entry. A scope with no prior entries
// starts from a zero opening balance. The same bounded retry as the
// landlord ledger resolves concurrent writers on one scope.
func (s *PaymentLedgerService) Record(ctx context.Context, req RecordPaymentEntryRequest) (*ledger.PaymentLedgerEntry, error) {
	if err := req.Scope.Validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		opening := decimal.Zero
		var sequence uint64 = 1

		latest, err := s.entryRepo.FindLatestByScope(ctx, req.Scope)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("failed to read latest payment ledger entry: %w", err)
		}
		if latest != nil {
			opening = latest.ClosingBalance
			sequence = latest.Sequence + 1
		}

		entry, err := ledger.NewPaymentLedgerEntry(
			req.Scope, req.EntryType,
			req.DebitAmount, req.CreditAmount,
			opening, sequence,
		)
		if err != nil {
			return nil, err
		}
		if req.BillID != nil {
			entry.WithBillID(*req.BillID)
		}
		if req.Remark != "" {
			entry.WithRemark(req.Remark)
		}
		if req.PaymentMode != "" {
			entry.WithPaymentMode(req.PaymentMode)
		}

		if err := s.entryRepo.Create(ctx, entry); err != nil {
			if errors.Is(err, shared.ErrConcurrencyConflict) {
				lastErr = err
				continue
			}
			return nil, fmt.Errorf("failed to create payment ledger entry: %w", err)
		}
		return entry, nil
	}

	return nil, lastErr
}

// GetEntries returns a scope's payment-ledger entries
func (s *PaymentLedgerService) GetEntries(ctx context.Context, scope ledger.PaymentScope, filter shared.Filter) ([]*ledger.PaymentLedgerEntry, int64, error) {
	if err := scope.Validate(); err != nil {
		return nil, 0, err
	}
	return s.entryRepo.FindByScope(ctx, scope, filter)
}

// GetCurrentBalance returns a scope's signed running balance (credit positive)
func (s *PaymentLedgerService) GetCurrentBalance(ctx context.Context, scope ledger.PaymentScope) (decimal.Decimal, error) {
	if err := scope.Validate(); err != nil {
		return decimal.Zero, err
	}

	latest, err := s.entryRepo.FindLatestByScope(ctx, scope)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to read latest payment ledger entry: %w", err)
	}

	return latest.ClosingBalance, nil
}
