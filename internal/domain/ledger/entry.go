package ledger

import (
	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LedgerEntry is an immutable record of one transaction against a landlord's
// running balance. Entries are scoped per landlord and ordered by Sequence;
// the closing balance of entry N is the opening balance of entry N+1.
type LedgerEntry struct {
	shared.BaseEntity
	LandlordID      uuid.UUID
	SiteID          uuid.UUID
	UnitID          uuid.UUID
	BillID          *uuid.UUID
	Purpose         string
	TransactionType TransactionType
	Amount          decimal.Decimal
	OpeningBalance  Balance
	ClosingBalance  Balance
	// Sequence is monotonic per landlord. It makes ordering deterministic
	// under same-timestamp inserts and backs the conflict detection on
	// concurrent writers via a unique (landlord_id, sequence) index.
	Sequence uint64
}

// NewLedgerEntry creates a ledger entry by applying the transaction to the
// given opening balance. Fails with a validation error when a required field
// is missing or the amount is not positive.
func NewLedgerEntry(
	landlordID, siteID, unitID uuid.UUID,
	txType TransactionType,
	amount decimal.Decimal,
	opening Balance,
	sequence uint64,
) (*LedgerEntry, error) {
	if landlordID == uuid.Nil {
		return nil, shared.NewValidationError("Landlord ID is required")
	}
	if siteID == uuid.Nil {
		return nil, shared.NewValidationError("Site ID is required")
	}
	if unitID == uuid.Nil {
		return nil, shared.NewValidationError("Unit ID is required")
	}
	if !txType.IsValid() {
		return nil, shared.NewValidationError("Invalid transaction type")
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("Amount must be positive")
	}

	closing, err := opening.Apply(txType, amount)
	if err != nil {
		return nil, err
	}

	return &LedgerEntry{
		BaseEntity:      shared.NewBaseEntity(),
		LandlordID:      landlordID,
		SiteID:          siteID,
		UnitID:          unitID,
		TransactionType: txType,
		Amount:          amount,
		OpeningBalance:  opening,
		ClosingBalance:  closing,
		Sequence:        sequence,
	}, nil
}

// WithBillID links the entry to the bill it was recorded for
func (e *LedgerEntry) WithBillID(billID uuid.UUID) *LedgerEntry {
	e.BillID = &billID
	return e
}

// WithPurpose sets a human-readable purpose on the entry
func (e *LedgerEntry) WithPurpose(purpose string) *LedgerEntry {
	e.Purpose = purpose
	return e
}

// Verify checks the entry's internal invariant: the closing balance must
// equal the opening balance with this entry's transaction applied.
func (e *LedgerEntry) Verify() error {
	closing, err := e.OpeningBalance.Apply(e.TransactionType, e.Amount)
	if err != nil {
		return err
	}
	if !closing.Equal(e.ClosingBalance) {
		return shared.NewDomainError("LEDGER_INVARIANT", "Closing balance does not match applied transaction")
	}
	return nil
}

// ChainsAfter returns true if this entry's opening balance continues the
// given predecessor's closing balance.
func (e *LedgerEntry) ChainsAfter(prev *LedgerEntry) bool {
	if prev == nil {
		return true
	}
	return e.Sequence == prev.Sequence+1 && e.OpeningBalance.Equal(prev.ClosingBalance)
}
