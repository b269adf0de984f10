package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PartyType identifies whether a payment-ledger scope belongs to a landlord
// or a tenant.
type PartyType string

const (
	PartyTypeLandlord PartyType = "LANDLORD"
	PartyTypeTenant   PartyType = "TENANT"
)

// IsValid returns true if the party type is valid
func (t PartyType) IsValid() bool {
	switch t {
	case PartyTypeLandlord, PartyTypeTenant:
		return true
	}
	return false
}

// String returns the string representation of PartyType
func (t PartyType) String() string {
	return string(t)
}

// EntryType represents the direction of a payment-ledger entry
type EntryType string

const (
	EntryTypeDebit  EntryType = "DEBIT"
	EntryTypeCredit EntryType = "CREDIT"
)

// IsValid returns true if the entry type is valid
func (t EntryType) IsValid() bool {
	switch t {
	case EntryTypeDebit, EntryTypeCredit:
		return true
	}
	return false
}

// String returns the string representation of EntryType
func (t EntryType) String() string {
	return string(t)
}

// PaymentScope is the key a payment-ledger running balance is maintained
// under: one party on one unit of one site.
type PaymentScope struct {
	PartyType PartyType
	PartyID   uuid.UUID
	SiteID    uuid.UUID
	UnitID    uuid.UUID
}

// Validate checks that every scope component is present
func (s PaymentScope) Validate() error {
	if !s.PartyType.IsValid() {
		return shared.NewValidationError("Invalid party type")
	}
	if s.PartyID == uuid.Nil {
		return shared.NewValidationError("Party ID is required")
	}
	if s.SiteID == uuid.Nil {
		return shared.NewValidationError("Site ID is required")
	}
	if s.UnitID == uuid.Nil {
		return shared.NewValidationError("Unit ID is required")
	}
	return nil
}

// PaymentLedgerEntry is an immutable dual-column ledger record. Unlike
// LedgerEntry its running balance is a plain signed number and its scope is
// the full (party, site, unit) triple.
type PaymentLedgerEntry struct {
	shared.BaseEntity
	Scope          PaymentScope
	BillID         *uuid.UUID
	EntryType      EntryType
	DebitAmount    decimal.Decimal
	CreditAmount   decimal.Decimal
	OpeningBalance decimal.Decimal
	ClosingBalance decimal.Decimal
	Remark         string
	PaymentMode    string
	EntryDate      time.Time
	// Sequence is monotonic per scope, same role as LedgerEntry.Sequence.
	Sequence uint64
}

// NewPaymentLedgerEntry creates a payment-ledger entry from the prior closing
// balance. Exactly one of debit and credit must be nonzero, matching the
// entry type.
func NewPaymentLedgerEntry(
	scope PaymentScope,
	entryType EntryType,
	debitAmount, creditAmount decimal.Decimal,
	opening decimal.Decimal,
	sequence uint64,
) (*PaymentLedgerEntry, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if !entryType.IsValid() {
		return nil, shared.NewValidationError("Invalid entry type")
	}
	if debitAmount.IsNegative() || creditAmount.IsNegative() {
		return nil, shared.NewValidationError("Debit and credit amounts cannot be negative")
	}
	switch entryType {
	case EntryTypeDebit:
		if !debitAmount.IsPositive() || !creditAmount.IsZero() {
			return nil, shared.NewValidationError("Debit entry requires a positive debit amount and zero credit")
		}
	case EntryTypeCredit:
		if !creditAmount.IsPositive() || !debitAmount.IsZero() {
			return nil, shared.NewValidationError("Credit entry requires a positive credit amount and zero debit")
		}
	}

	return &PaymentLedgerEntry{
		BaseEntity:     shared.NewBaseEntity(),
		Scope:          scope,
		EntryType:      entryType,
		DebitAmount:    debitAmount,
		CreditAmount:   creditAmount,
		OpeningBalance: opening,
		ClosingBalance: opening.Add(creditAmount).Sub(debitAmount),
		EntryDate:      time.Now(),
		Sequence:       sequence,
	}, nil
}

// WithBillID links the entry to the bill it settles or raises
func (e *PaymentLedgerEntry) WithBillID(billID uuid.UUID) *PaymentLedgerEntry {
	e.BillID = &billID
	return e
}

// WithRemark sets a description on the entry
func (e *PaymentLedgerEntry) WithRemark(remark string) *PaymentLedgerEntry {
	e.Remark = remark
	return e
}

// WithPaymentMode records how the money moved (gateway, cash, adjustment)
func (e *PaymentLedgerEntry) WithPaymentMode(mode string) *PaymentLedgerEntry {
	e.PaymentMode = mode
	return e
}

// Verify checks the dual-column invariant: closing = opening + credit - debit
func (e *PaymentLedgerEntry) Verify() error {
	expected := e.OpeningBalance.Add(e.CreditAmount).Sub(e.DebitAmount)
	if !expected.Equal(e.ClosingBalance) {
		return shared.NewDomainError("LEDGER_INVARIANT", "Closing balance does not match debit/credit application")
	}
	return nil
}
