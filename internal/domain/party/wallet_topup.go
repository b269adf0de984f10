package party

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/ledger"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TopUpStatus represents the state of a wallet top-up attempt
type TopUpStatus string

const (
	TopUpStatusPending TopUpStatus = "PENDING"
	TopUpStatusSuccess TopUpStatus = "SUCCESS"
	TopUpStatusFailed  TopUpStatus = "FAILED"
)

// IsValid returns true if the status is valid
func (s TopUpStatus) IsValid() bool {
	switch s {
	case TopUpStatusPending, TopUpStatusSuccess, TopUpStatusFailed:
		return true
	}
	return false
}

// WalletTopUp correlates a gateway order with the party wallet it funds.
// Created pending before the order opens; settles only on a verified
// callback.
type WalletTopUp struct {
	shared.BaseAggregateRoot
	PartyType        ledger.PartyType
	PartyID          uuid.UUID
	SiteID           uuid.UUID
	UnitID           uuid.UUID
	Amount           decimal.Decimal
	Currency         string
	GatewayOrderID   string
	GatewayPaymentID string
	Status           TopUpStatus
	FailureReason    string
	CompletedAt      *time.Time
}

// NewWalletTopUp creates a pending top-up attempt
func NewWalletTopUp(partyType ledger.PartyType, partyID, siteID, unitID uuid.UUID, amount decimal.Decimal) (*WalletTopUp, error) {
	if !partyType.IsValid() {
		return nil, shared.NewValidationError("Invalid party type")
	}
	if partyID == uuid.Nil {
		return nil, shared.NewValidationError("Party ID is required")
	}
	if siteID == uuid.Nil {
		return nil, shared.NewValidationError("Site ID is required")
	}
	if unitID == uuid.Nil {
		return nil, shared.NewValidationError("Unit ID is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("Top-up amount must be positive")
	}

	return &WalletTopUp{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PartyType:         partyType,
		PartyID:           partyID,
		SiteID:            siteID,
		UnitID:            unitID,
		Amount:            amount,
		Currency:          "INR",
		Status:            TopUpStatusPending,
	}, nil
}

// AttachGatewayOrder records the order opened for this top-up
func (t *WalletTopUp) AttachGatewayOrder(orderID string) error {
	if t.Status != TopUpStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Gateway order can only attach to a pending top-up")
	}
	if orderID == "" {
		return shared.NewValidationError("Gateway order ID is required")
	}
	t.GatewayOrderID = orderID
	t.IncrementVersion()
	return nil
}

// MarkSuccess completes the top-up after signature verification
func (t *WalletTopUp) MarkSuccess(paymentID string, at time.Time) error {
	if t.Status != TopUpStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending top-ups can succeed")
	}
	if t.GatewayOrderID == "" {
		return shared.NewDomainError("INVALID_STATE", "Top-up has no gateway order")
	}
	if paymentID == "" {
		return shared.NewValidationError("Gateway payment ID is required")
	}
	t.GatewayPaymentID = paymentID
	t.Status = TopUpStatusSuccess
	t.CompletedAt = &at
	t.IncrementVersion()
	return nil
}

// MarkFailed records a failed attempt
func (t *WalletTopUp) MarkFailed(reason string, at time.Time) error {
	if t.Status != TopUpStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending top-ups can fail")
	}
	t.Status = TopUpStatusFailed
	t.FailureReason = reason
	t.CompletedAt = &at
	t.IncrementVersion()
	return nil
}

// WalletTopUpRepository persists top-up attempts
type WalletTopUpRepository interface {
	Create(ctx context.Context, topUp *WalletTopUp) error
	FindByID(ctx context.Context, id uuid.UUID) (*WalletTopUp, error)
	FindByGatewayOrderID(ctx context.Context, orderID string) (*WalletTopUp, error)
	FindByParty(ctx context.Context, partyType ledger.PartyType, partyID uuid.UUID, filter shared.Filter) ([]*WalletTopUp, int64, error)
	Save(ctx context.Context, topUp *WalletTopUp) error
}
