package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// BillModel is the persistence model for the Bill domain aggregate.
// One bill per (unit, cycle, period_start) is enforced at the index level so
// scheduled generation stays idempotent across overlapping runs.
type BillModel struct {
	AggregateModel
	LandlordID  uuid.UUID            `gorm:"type:uuid;not null;index"`
	TenantID    *uuid.UUID           `gorm:"type:uuid;index"`
	SiteID      uuid.UUID            `gorm:"type:uuid;not null;index"`
	UnitID      uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:idx_bill_unit_period,priority:1"`
	Cycle       billing.BillingCycle `gorm:"type:varchar(20);not null;uniqueIndex:idx_bill_unit_period,priority:2"`
	PeriodStart time.Time            `gorm:"not null;uniqueIndex:idx_bill_unit_period,priority:3"`
	PeriodEnd   time.Time            `gorm:"not null"`

	MaintenanceAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	GSTAmount         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ElectricityAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ElectricityJSON   string          `gorm:"type:jsonb"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(18,4);not null"`

	Status  billing.BillStatus `gorm:"type:varchar(20);not null;default:'UNPAID';index"`
	PaidAt  *time.Time
	PaidBy  string `gorm:"type:varchar(100)"`
	Remarks string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BillModel) TableName() string {
	return "bills"
}

// ToDomain converts the persistence model to a domain Bill aggregate.
func (m *BillModel) ToDomain() *billing.Bill {
	var breakup *billing.ElectricityBreakup
	if m.ElectricityJSON != "" {
		var b billing.ElectricityBreakup
		if err := json.Unmarshal([]byte(m.ElectricityJSON), &b); err == nil {
			breakup = &b
		}
	}

	return &billing.Bill{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		LandlordID:        m.LandlordID,
		TenantID:          m.TenantID,
		SiteID:            m.SiteID,
		UnitID:            m.UnitID,
		Cycle:             m.Cycle,
		PeriodStart:       m.PeriodStart,
		PeriodEnd:         m.PeriodEnd,
		MaintenanceAmount: m.MaintenanceAmount,
		GSTAmount:         m.GSTAmount,
		ElectricityAmount: m.ElectricityAmount,
		Electricity:       breakup,
		TotalAmount:       m.TotalAmount,
		Status:            m.Status,
		PaidAt:            m.PaidAt,
		PaidBy:            m.PaidBy,
		Remarks:           m.Remarks,
	}
}

// FromDomain populates the persistence model from a domain Bill aggregate.
func (m *BillModel) FromDomain(b *billing.Bill) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.LandlordID = b.LandlordID
	m.TenantID = b.TenantID
	m.SiteID = b.SiteID
	m.UnitID = b.UnitID
	m.Cycle = b.Cycle
	m.PeriodStart = b.PeriodStart
	m.PeriodEnd = b.PeriodEnd
	m.MaintenanceAmount = b.MaintenanceAmount
	m.GSTAmount = b.GSTAmount
	m.ElectricityAmount = b.ElectricityAmount
	m.TotalAmount = b.TotalAmount
	m.Status = b.Status
	m.PaidAt = b.PaidAt
	m.PaidBy = b.PaidBy
	m.Remarks = b.Remarks

	m.ElectricityJSON = ""
	if b.Electricity != nil {
		if jsonBytes, err := json.Marshal(b.Electricity); err == nil {
			m.ElectricityJSON = string(jsonBytes)
		}
	}
}

// BillModelFromDomain creates a persistence model from a domain aggregate
func BillModelFromDomain(b *billing.Bill) *BillModel {
	m := &BillModel{}
	m.FromDomain(b)
	return m
}

// BillPaymentModel is the persistence model for the BillPayment domain aggregate.
type BillPaymentModel struct {
	AggregateModel
	BillID           uuid.UUID             `gorm:"type:uuid;not null;index"`
	PaidByUserID     uuid.UUID             `gorm:"type:uuid;not null"`
	Amount           decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Currency         string                `gorm:"type:varchar(10);not null;default:'INR'"`
	GatewayOrderID   string                `gorm:"type:varchar(100);uniqueIndex"`
	GatewayPaymentID string                `gorm:"type:varchar(100)"`
	GatewaySignature string                `gorm:"type:varchar(200)"`
	Status           billing.PaymentStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	FailureReason    string                `gorm:"type:varchar(500)"`
	CompletedAt      *time.Time
}

// TableName returns the table name for GORM
func (BillPaymentModel) TableName() string {
	return "bill_payments"
}

// ToDomain converts the persistence model to a domain BillPayment aggregate.
func (m *BillPaymentModel) ToDomain() *billing.BillPayment {
	return &billing.BillPayment{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		BillID:            m.BillID,
		PaidByUserID:      m.PaidByUserID,
		Amount:            m.Amount,
		Currency:          m.Currency,
		GatewayOrderID:    m.GatewayOrderID,
		GatewayPaymentID:  m.GatewayPaymentID,
		GatewaySignature:  m.GatewaySignature,
		Status:            m.Status,
		FailureReason:     m.FailureReason,
		CompletedAt:       m.CompletedAt,
	}
}

// FromDomain populates the persistence model from a domain BillPayment aggregate.
func (m *BillPaymentModel) FromDomain(p *billing.BillPayment) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.BillID = p.BillID
	m.PaidByUserID = p.PaidByUserID
	m.Amount = p.Amount
	m.Currency = p.Currency
	m.GatewayOrderID = p.GatewayOrderID
	m.GatewayPaymentID = p.GatewayPaymentID
	m.GatewaySignature = p.GatewaySignature
	m.Status = p.Status
	m.FailureReason = p.FailureReason
	m.CompletedAt = p.CompletedAt
}

// BillPaymentModelFromDomain creates a persistence model from a domain aggregate
func BillPaymentModelFromDomain(p *billing.BillPayment) *BillPaymentModel {
	m := &BillPaymentModel{}
	m.FromDomain(p)
	return m
}
