package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BillStatus represents the lifecycle state of a bill. Bills are never
// deleted; they only move through statuses.
type BillStatus string

const (
	BillStatusUnpaid       BillStatus = "UNPAID"
	BillStatusPaid         BillStatus = "PAID"
	BillStatusUnderProcess BillStatus = "UNDER_PROCESS"
)

// IsValid returns true if the status is valid
func (s BillStatus) IsValid() bool {
	switch s {
	case BillStatusUnpaid, BillStatusPaid, BillStatusUnderProcess:
		return true
	}
	return false
}

// String returns the string representation of BillStatus
func (s BillStatus) String() string {
	return string(s)
}

// BillingCycle represents the period a generated bill covers
type BillingCycle string

const (
	BillingCycleMonthly   BillingCycle = "MONTHLY"
	BillingCycleQuarterly BillingCycle = "QUARTERLY"
	BillingCycleAnnual    BillingCycle = "ANNUAL"
)

// IsValid returns true if the billing cycle is valid
func (c BillingCycle) IsValid() bool {
	switch c {
	case BillingCycleMonthly, BillingCycleQuarterly, BillingCycleAnnual:
		return true
	}
	return false
}

// Months returns the number of months one cycle covers
func (c BillingCycle) Months() int {
	switch c {
	case BillingCycleQuarterly:
		return 3
	case BillingCycleAnnual:
		return 12
	default:
		return 1
	}
}

// PaidByAuto marks bills settled by the reconciler from a standing advance,
// without an explicit payment transaction.
const PaidByAuto = "Auto"

// Bill is a billing-period record for one (landlord, site, unit). All charge
// amounts are fixed at generation time; only status and payment metadata
// change afterwards.
type Bill struct {
	shared.BaseAggregateRoot
	LandlordID  uuid.UUID
	TenantID    *uuid.UUID
	SiteID      uuid.UUID
	UnitID      uuid.UUID
	Cycle       BillingCycle
	PeriodStart time.Time
	PeriodEnd   time.Time

	MaintenanceAmount decimal.Decimal
	GSTAmount         decimal.Decimal
	ElectricityAmount decimal.Decimal
	Electricity       *ElectricityBreakup
	TotalAmount       decimal.Decimal

	Status  BillStatus
	PaidAt  *time.Time
	PaidBy  string
	Remarks string
}

// ElectricityBreakup records how the electricity charge was computed
type ElectricityBreakup struct {
	PreviousReading decimal.Decimal `json:"previous_reading"`
	CurrentReading  decimal.Decimal `json:"current_reading"`
	UnitsConsumed   decimal.Decimal `json:"units_consumed"`
	RatePerUnit     decimal.Decimal `json:"rate_per_unit"`
}

// NewBill creates an unpaid bill from a computed charge sheet
func NewBill(
	landlordID, siteID, unitID uuid.UUID,
	cycle BillingCycle,
	periodStart time.Time,
	charges ChargeSheet,
) (*Bill, error) {
	if landlordID == uuid.Nil {
		return nil, shared.NewValidationError("Landlord ID is required")
	}
	if siteID == uuid.Nil {
		return nil, shared.NewValidationError("Site ID is required")
	}
	if unitID == uuid.Nil {
		return nil, shared.NewValidationError("Unit ID is required")
	}
	if !cycle.IsValid() {
		return nil, shared.NewValidationError("Invalid billing cycle")
	}
	if !charges.Total.IsPositive() {
		return nil, shared.NewValidationError("Bill total must be positive")
	}

	return &Bill{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		LandlordID:        landlordID,
		SiteID:            siteID,
		UnitID:            unitID,
		Cycle:             cycle,
		PeriodStart:       periodStart,
		PeriodEnd:         periodStart.AddDate(0, cycle.Months(), 0).Add(-time.Nanosecond),
		MaintenanceAmount: charges.Maintenance,
		GSTAmount:         charges.GST,
		ElectricityAmount: charges.Electricity,
		Electricity:       charges.ElectricityBreakup,
		TotalAmount:       charges.Total,
		Status:            BillStatusUnpaid,
	}, nil
}

// WithTenant records the tenant occupying the unit when the bill was raised
func (b *Bill) WithTenant(tenantID uuid.UUID) *Bill {
	b.TenantID = &tenantID
	return b
}

// IsUnpaid returns true if the bill still awaits payment
func (b *Bill) IsUnpaid() bool {
	return b.Status == BillStatusUnpaid
}

// MarkUnderProcess moves an unpaid bill into the gateway-pending state
func (b *Bill) MarkUnderProcess() error {
	if b.Status != BillStatusUnpaid {
		return shared.NewDomainError("INVALID_STATE", "Only unpaid bills can move under process")
	}
	b.Status = BillStatusUnderProcess
	b.IncrementVersion()
	return nil
}

// ReturnToUnpaid reverts an under-process bill after a failed payment
func (b *Bill) ReturnToUnpaid() error {
	if b.Status != BillStatusUnderProcess {
		return shared.NewDomainError("INVALID_STATE", "Only under-process bills can return to unpaid")
	}
	b.Status = BillStatusUnpaid
	b.IncrementVersion()
	return nil
}

// MarkPaid settles the bill. paidBy names the actor: a user reference for
// explicit payments or PaidByAuto for advance-settled bills.
func (b *Bill) MarkPaid(paidBy string, paidAt time.Time) error {
	if b.Status == BillStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Bill is already paid")
	}
	if paidBy == "" {
		return shared.NewValidationError("Paid-by reference is required")
	}
	b.Status = BillStatusPaid
	b.PaidBy = paidBy
	b.PaidAt = &paidAt
	b.IncrementVersion()
	return nil
}
