package party

import (
	"strings"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/billing"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Site is one managed property: a building or complex containing units
type Site struct {
	shared.BaseAggregateRoot
	Name    string
	Address string
	City    string
}

// NewSite creates a site
func NewSite(name, address, city string) (*Site, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Site name is required")
	}
	return &Site{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Address:           address,
		City:              city,
	}, nil
}

// Unit is a billable space inside a site, owned by a landlord. It carries
// everything bill generation needs: area, maintenance basis/rate, GST and
// the current electricity meter state.
type Unit struct {
	shared.BaseAggregateRoot
	SiteID     uuid.UUID
	LandlordID uuid.UUID
	Label      string

	AreaSqft         decimal.Decimal
	MaintenanceBasis billing.MaintenanceBasis
	MaintenanceRate  decimal.Decimal
	GSTPercent       decimal.Decimal
	Cycle            billing.BillingCycle

	MeterReading    decimal.Decimal
	ElectricityRate decimal.Decimal
}

// NewUnit creates a unit under a site for a landlord
func NewUnit(siteID, landlordID uuid.UUID, label string, areaSqft decimal.Decimal) (*Unit, error) {
	if siteID == uuid.Nil {
		return nil, shared.NewValidationError("Site ID is required")
	}
	if landlordID == uuid.Nil {
		return nil, shared.NewValidationError("Landlord ID is required")
	}
	if strings.TrimSpace(label) == "" {
		return nil, shared.NewValidationError("Unit label is required")
	}
	if areaSqft.IsNegative() {
		return nil, shared.NewValidationError("Unit area cannot be negative")
	}

	return &Unit{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SiteID:            siteID,
		LandlordID:        landlordID,
		Label:             label,
		AreaSqft:          areaSqft,
		MaintenanceBasis:  billing.MaintenanceBasisPerSqft,
		Cycle:             billing.BillingCycleMonthly,
	}, nil
}

// ConfigureBilling sets the rates the generator reads for this unit
func (u *Unit) ConfigureBilling(basis billing.MaintenanceBasis, rate, gstPercent, electricityRate decimal.Decimal, cycle billing.BillingCycle) error {
	if !basis.IsValid() {
		return shared.NewValidationError("Invalid maintenance basis")
	}
	if !cycle.IsValid() {
		return shared.NewValidationError("Invalid billing cycle")
	}
	if rate.IsNegative() || gstPercent.IsNegative() || electricityRate.IsNegative() {
		return shared.NewValidationError("Rates cannot be negative")
	}
	u.MaintenanceBasis = basis
	u.MaintenanceRate = rate
	u.GSTPercent = gstPercent
	u.ElectricityRate = electricityRate
	u.Cycle = cycle
	u.IncrementVersion()
	return nil
}

// RecordMeterReading advances the electricity meter and returns the prior
// reading, which the bill generator uses as the period's starting point.
func (u *Unit) RecordMeterReading(reading decimal.Decimal) (decimal.Decimal, error) {
	if reading.LessThan(u.MeterReading) {
		return decimal.Zero, shared.NewDomainError("INVALID_READING", "Meter reading cannot go backwards")
	}
	previous := u.MeterReading
	u.MeterReading = reading
	u.IncrementVersion()
	return previous, nil
}
