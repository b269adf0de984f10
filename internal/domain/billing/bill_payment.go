package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the state of an attempted gateway payment
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusSuccess  PaymentStatus = "SUCCESS"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// IsValid returns true if the payment status is valid
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusFailed, PaymentStatusSuccess, PaymentStatusRefunded:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// BillPayment is one attempted or completed gateway transaction against a
// bill. It is created PENDING before the gateway order exists and moves to
// SUCCESS or FAILED only on a verified callback.
type BillPayment struct {
	shared.BaseAggregateRoot
	BillID           uuid.UUID
	PaidByUserID     uuid.UUID
	Amount           decimal.Decimal
	Currency         string
	GatewayOrderID   string
	GatewayPaymentID string
	GatewaySignature string
	Status           PaymentStatus
	FailureReason    string
	CompletedAt      *time.Time
}

// NewBillPayment creates a pending payment attempt for a bill
func NewBillPayment(billID, paidByUserID uuid.UUID, amount decimal.Decimal, currency string) (*BillPayment, error) {
	if billID == uuid.Nil {
		return nil, shared.NewValidationError("Bill ID is required")
	}
	if paidByUserID == uuid.Nil {
		return nil, shared.NewValidationError("Paying user ID is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("Payment amount must be positive")
	}
	if currency == "" {
		currency = "INR"
	}

	return &BillPayment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BillID:            billID,
		PaidByUserID:      paidByUserID,
		Amount:            amount,
		Currency:          currency,
		Status:            PaymentStatusPending,
	}, nil
}

// AttachGatewayOrder records the order the gateway created for this attempt
func (p *BillPayment) AttachGatewayOrder(orderID string) error {
	if p.Status != PaymentStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Gateway order can only attach to a pending payment")
	}
	if orderID == "" {
		return shared.NewValidationError("Gateway order ID is required")
	}
	p.GatewayOrderID = orderID
	p.IncrementVersion()
	return nil
}

// MarkSuccess completes the payment after signature verification
func (p *BillPayment) MarkSuccess(paymentID, signature string, at time.Time) error {
	if p.Status != PaymentStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending payments can succeed")
	}
	if p.GatewayOrderID == "" {
		return shared.NewDomainError("INVALID_STATE", "Payment has no gateway order")
	}
	if paymentID == "" || signature == "" {
		return shared.NewValidationError("Gateway payment ID and signature are required")
	}
	p.GatewayPaymentID = paymentID
	p.GatewaySignature = signature
	p.Status = PaymentStatusSuccess
	p.CompletedAt = &at
	p.IncrementVersion()
	return nil
}

// MarkFailed records a failed or rejected attempt
func (p *BillPayment) MarkFailed(reason string, at time.Time) error {
	if p.Status != PaymentStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending payments can fail")
	}
	p.Status = PaymentStatusFailed
	p.FailureReason = reason
	p.CompletedAt = &at
	p.IncrementVersion()
	return nil
}

// MarkRefunded flags a successful payment as refunded by the gateway
func (p *BillPayment) MarkRefunded(at time.Time) error {
	if p.Status != PaymentStatusSuccess {
		return shared.NewDomainError("INVALID_STATE", "Only successful payments can be refunded")
	}
	p.Status = PaymentStatusRefunded
	p.CompletedAt = &at
	p.IncrementVersion()
	return nil
}
