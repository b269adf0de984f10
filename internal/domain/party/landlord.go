package party

import (
	"strings"

	"github.com/propman/backend/internal/domain/ledger"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PartyStatus represents whether a party is active in the system
type PartyStatus string

const (
	PartyStatusActive   PartyStatus = "ACTIVE"
	PartyStatusInactive PartyStatus = "INACTIVE"
)

// IsValid returns true if the status is valid
func (s PartyStatus) IsValid() bool {
	switch s {
	case PartyStatusActive, PartyStatusInactive:
		return true
	}
	return false
}

// Landlord owns one or more units and is the billed party for maintenance
// and electricity charges. OpeningBalance seeds the ledger before the first
// entry exists; WalletBalance is the gateway-topped-up spending balance.
type Landlord struct {
	shared.BaseAggregateRoot
	Name           string
	Email          string
	Phone          string
	Status         PartyStatus
	OpeningBalance ledger.Balance
	WalletBalance  decimal.Decimal
}

// NewLandlord creates an active landlord with a zero opening balance
func NewLandlord(name, email, phone string) (*Landlord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Landlord name is required")
	}
	if phone == "" {
		return nil, shared.NewValidationError("Landlord phone is required")
	}

	return &Landlord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		Phone:             phone,
		Status:            PartyStatusActive,
		OpeningBalance:    ledger.ZeroBalance(),
		WalletBalance:     decimal.Zero,
	}, nil
}

// UpdateContact changes the landlord's contact details
func (l *Landlord) UpdateContact(name, email, phone string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("Landlord name is required")
	}
	if phone == "" {
		return shared.NewValidationError("Landlord phone is required")
	}
	l.Name = name
	l.Email = email
	l.Phone = phone
	l.IncrementVersion()
	return nil
}

// SetOpeningBalance seeds the ledger starting point during onboarding
func (l *Landlord) SetOpeningBalance(b ledger.Balance) {
	l.OpeningBalance = b
	l.IncrementVersion()
}

// CreditWallet adds a verified top-up to the wallet
func (l *Landlord) CreditWallet(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewValidationError("Top-up amount must be positive")
	}
	l.WalletBalance = l.WalletBalance.Add(amount)
	l.IncrementVersion()
	return nil
}

// DebitWallet spends from the wallet, rejecting overdrafts
func (l *Landlord) DebitWallet(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewValidationError("Debit amount must be positive")
	}
	if l.WalletBalance.LessThan(amount) {
		return shared.ErrInsufficientBalance
	}
	l.WalletBalance = l.WalletBalance.Sub(amount)
	l.IncrementVersion()
	return nil
}

// Deactivate removes the landlord from active billing
func (l *Landlord) Deactivate() {
	l.Status = PartyStatusInactive
	l.IncrementVersion()
}
