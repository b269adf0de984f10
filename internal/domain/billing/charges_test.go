package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeCharges(t *testing.T) {
	t.Run("per-sqft maintenance with GST and electricity", func(t *testing.T) {
		sheet, err := ComputeCharges(ChargeInput{
			Basis:           MaintenanceBasisPerSqft,
			MaintenanceRate: decimal.RequireFromString("2.5"),
			AreaSqft:        decimal.NewFromInt(1000),
			GSTPercent:      decimal.NewFromInt(18),
			PreviousReading: decimal.NewFromInt(1200),
			CurrentReading:  decimal.NewFromInt(1350),
			RatePerUnit:     decimal.RequireFromString("7.2"),
			Months:          1,
		})
		require.NoError(t, err)

		assert.True(t, decimal.NewFromInt(2500).Equal(sheet.Maintenance))
		assert.True(t, decimal.NewFromInt(450).Equal(sheet.GST))
		assert.True(t, decimal.NewFromInt(1080).Equal(sheet.Electricity))
		assert.True(t, decimal.NewFromInt(4030).Equal(sheet.Total))

		require.NotNil(t, sheet.ElectricityBreakup)
		assert.True(t, decimal.NewFromInt(150).Equal(sheet.ElectricityBreakup.UnitsConsumed))
	})

	t.Run("flat maintenance ignores area", func(t *testing.T) {
		sheet, err := ComputeCharges(ChargeInput{
			Basis:           MaintenanceBasisFlat,
			MaintenanceRate: decimal.NewFromInt(1800),
			GSTPercent:      decimal.Zero,
		})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(1800).Equal(sheet.Maintenance))
		assert.True(t, sheet.GST.IsZero())
	})

	t.Run("amounts truncate to two decimals", func(t *testing.T) {
		sheet, err := ComputeCharges(ChargeInput{
			Basis:           MaintenanceBasisPerSqft,
			MaintenanceRate: decimal.RequireFromString("1.111"),
			AreaSqft:        decimal.NewFromInt(3),
			GSTPercent:      decimal.NewFromInt(18),
			Months:          1,
		})
		require.NoError(t, err)

		// 1.111 * 3 = 3.333 -> 3.33 truncated, not 3.34 rounded
		assert.Equal(t, "3.33", sheet.Maintenance.StringFixed(2))
		// 3.33 * 18% = 0.5994 -> 0.59 truncated
		assert.Equal(t, "0.59", sheet.GST.StringFixed(2))
	})

	t.Run("quarterly cycle multiplies per-sqft maintenance", func(t *testing.T) {
		sheet, err := ComputeCharges(ChargeInput{
			Basis:           MaintenanceBasisPerSqft,
			MaintenanceRate: decimal.NewFromInt(2),
			AreaSqft:        decimal.NewFromInt(500),
			Months:          3,
		})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(3000).Equal(sheet.Maintenance))
	})

	t.Run("meter rollback is rejected", func(t *testing.T) {
		_, err := ComputeCharges(ChargeInput{
			Basis:           MaintenanceBasisFlat,
			MaintenanceRate: decimal.NewFromInt(100),
			PreviousReading: decimal.NewFromInt(500),
			CurrentReading:  decimal.NewFromInt(400),
		})
		assert.Error(t, err)
	})

	t.Run("per-sqft without area is rejected", func(t *testing.T) {
		_, err := ComputeCharges(ChargeInput{
			Basis:           MaintenanceBasisPerSqft,
			MaintenanceRate: decimal.NewFromInt(2),
		})
		assert.Error(t, err)
	})

	t.Run("invalid basis is rejected", func(t *testing.T) {
		_, err := ComputeCharges(ChargeInput{Basis: MaintenanceBasis("USAGE")})
		assert.Error(t, err)
	})
}
