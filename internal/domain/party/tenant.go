package party

import (
	"strings"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Tenant occupies a unit. Tenants hold a wallet for electricity and
// incidental charges and participate in the payment ledger per unit.
type Tenant struct {
	shared.BaseAggregateRoot
	Name          string
	Email         string
	Phone         string
	Status        PartyStatus
	SiteID        uuid.UUID
	UnitID        *uuid.UUID
	WalletBalance decimal.Decimal
}

// NewTenant creates an active tenant attached to a site
func NewTenant(name, email, phone string, siteID uuid.UUID) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Tenant name is required")
	}
	if phone == "" {
		return nil, shared.NewValidationError("Tenant phone is required")
	}
	if siteID == uuid.Nil {
		return nil, shared.NewValidationError("Site ID is required")
	}

	return &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		Phone:             phone,
		Status:            PartyStatusActive,
		SiteID:            siteID,
		WalletBalance:     decimal.Zero,
	}, nil
}

// UpdateContact changes the tenant's contact details
func (t *Tenant) UpdateContact(name, email, phone string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("Tenant name is required")
	}
	if phone == "" {
		return shared.NewValidationError("Tenant phone is required")
	}
	t.Name = name
	t.Email = email
	t.Phone = phone
	t.IncrementVersion()
	return nil
}

// AssignUnit moves the tenant into a unit
func (t *Tenant) AssignUnit(unitID uuid.UUID) error {
	if unitID == uuid.Nil {
		return shared.NewValidationError("Unit ID is required")
	}
	t.UnitID = &unitID
	t.IncrementVersion()
	return nil
}

// VacateUnit releases the tenant's unit
func (t *Tenant) VacateUnit() {
	t.UnitID = nil
	t.IncrementVersion()
}

// CreditWallet adds a verified top-up to the wallet
func (t *Tenant) CreditWallet(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewValidationError("Top-up amount must be positive")
	}
	t.WalletBalance = t.WalletBalance.Add(amount)
	t.IncrementVersion()
	return nil
}

// DebitWallet spends from the wallet, rejecting overdrafts
func (t *Tenant) DebitWallet(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewValidationError("Debit amount must be positive")
	}
	if t.WalletBalance.LessThan(amount) {
		return shared.ErrInsufficientBalance
	}
	t.WalletBalance = t.WalletBalance.Sub(amount)
	t.IncrementVersion()
	return nil
}
