package billing

import (
	"github.com/propman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MaintenanceBasis selects how the maintenance charge is computed for a unit
type MaintenanceBasis string

const (
	// MaintenanceBasisPerSqft charges rate × unit area
	MaintenanceBasisPerSqft MaintenanceBasis = "PER_SQFT"
	// MaintenanceBasisFlat charges a fixed amount per cycle
	MaintenanceBasisFlat MaintenanceBasis = "FLAT"
)

// IsValid returns true if the basis is valid
func (b MaintenanceBasis) IsValid() bool {
	switch b {
	case MaintenanceBasisPerSqft, MaintenanceBasisFlat:
		return true
	}
	return false
}

// ChargeInput carries the raw rates and readings a bill is computed from
type ChargeInput struct {
	Basis           MaintenanceBasis
	MaintenanceRate decimal.Decimal // per sqft per month, or flat per cycle
	AreaSqft        decimal.Decimal
	GSTPercent      decimal.Decimal
	PreviousReading decimal.Decimal
	CurrentReading  decimal.Decimal
	RatePerUnit     decimal.Decimal
	Months          int
}

// ChargeSheet is the computed, two-decimal charge breakdown of one bill.
// Amounts are truncated (not rounded) to two decimals at generation time;
// ledger arithmetic downstream keeps full precision of these stored values.
type ChargeSheet struct {
	Maintenance        decimal.Decimal
	GST                decimal.Decimal
	Electricity        decimal.Decimal
	ElectricityBreakup *ElectricityBreakup
	Total              decimal.Decimal
}

// ComputeCharges turns rates and meter readings into a charge sheet
func ComputeCharges(in ChargeInput) (ChargeSheet, error) {
	if !in.Basis.IsValid() {
		return ChargeSheet{}, shared.NewValidationError("Invalid maintenance basis")
	}
	if in.MaintenanceRate.IsNegative() {
		return ChargeSheet{}, shared.NewValidationError("Maintenance rate cannot be negative")
	}
	if in.GSTPercent.IsNegative() {
		return ChargeSheet{}, shared.NewValidationError("GST percent cannot be negative")
	}
	if in.CurrentReading.LessThan(in.PreviousReading) {
		return ChargeSheet{}, shared.NewDomainError("INVALID_READING", "Current meter reading is behind the previous reading")
	}
	if in.Months <= 0 {
		in.Months = 1
	}

	months := decimal.NewFromInt(int64(in.Months))

	var maintenance decimal.Decimal
	switch in.Basis {
	case MaintenanceBasisPerSqft:
		if !in.AreaSqft.IsPositive() {
			return ChargeSheet{}, shared.NewValidationError("Unit area is required for per-sqft maintenance")
		}
		maintenance = in.MaintenanceRate.Mul(in.AreaSqft).Mul(months)
	case MaintenanceBasisFlat:
		maintenance = in.MaintenanceRate
	}
	maintenance = maintenance.Truncate(2)

	gst := maintenance.Mul(in.GSTPercent).Div(decimal.NewFromInt(100)).Truncate(2)

	units := in.CurrentReading.Sub(in.PreviousReading)
	electricity := units.Mul(in.RatePerUnit).Truncate(2)

	sheet := ChargeSheet{
		Maintenance: maintenance,
		GST:         gst,
		Electricity: electricity,
		Total:       maintenance.Add(gst).Add(electricity),
	}
	if units.IsPositive() || in.RatePerUnit.IsPositive() {
		sheet.ElectricityBreakup = &ElectricityBreakup{
			PreviousReading: in.PreviousReading,
			CurrentReading:  in.CurrentReading,
			UnitsConsumed:   units,
			RatePerUnit:     in.RatePerUnit,
		}
	}
	return sheet, nil
}
