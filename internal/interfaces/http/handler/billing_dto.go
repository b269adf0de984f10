package handler

import (
	"time"

	"github.com/propman/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// ElectricityBreakupResponse records how the electricity charge was computed
type ElectricityBreakupResponse struct {
	PreviousReading decimal.Decimal `json:"previous_reading"`
	CurrentReading  decimal.Decimal `json:"current_reading"`
	UnitsConsumed   decimal.Decimal `json:"units_consumed"`
	RatePerUnit     decimal.Decimal `json:"rate_per_unit"`
}

// BillResponse represents a generated bill in API responses
type BillResponse struct {
	ID                string                      `json:"id"`
	LandlordID        string                      `json:"landlord_id"`
	TenantID          *string                     `json:"tenant_id,omitempty"`
	SiteID            string                      `json:"site_id"`
	UnitID            string                      `json:"unit_id"`
	Cycle             string                      `json:"cycle"`
	PeriodStart       time.Time                   `json:"period_start"`
	PeriodEnd         time.Time                   `json:"period_end"`
	MaintenanceAmount decimal.Decimal             `json:"maintenance_amount"`
	GSTAmount         decimal.Decimal             `json:"gst_amount"`
	ElectricityAmount decimal.Decimal             `json:"electricity_amount"`
	Electricity       *ElectricityBreakupResponse `json:"electricity,omitempty"`
	TotalAmount       decimal.Decimal             `json:"total_amount"`
	Status            string                      `json:"status"`
	PaidAt            *time.Time                  `json:"paid_at,omitempty"`
	PaidBy            string                      `json:"paid_by,omitempty"`
	Remarks           string                      `json:"remarks,omitempty"`
	CreatedAt         time.Time                   `json:"created_at"`
	UpdatedAt         time.Time                   `json:"updated_at"`
	Version           int                         `json:"version"`
}

func billResponseOf(b *billing.Bill) BillResponse {
	resp := BillResponse{
		ID:                b.ID.String(),
		LandlordID:        b.LandlordID.String(),
		SiteID:            b.SiteID.String(),
		UnitID:            b.UnitID.String(),
		Cycle:             string(b.Cycle),
		PeriodStart:       b.PeriodStart,
		PeriodEnd:         b.PeriodEnd,
		MaintenanceAmount: b.MaintenanceAmount,
		GSTAmount:         b.GSTAmount,
		ElectricityAmount: b.ElectricityAmount,
		TotalAmount:       b.TotalAmount,
		Status:            string(b.Status),
		PaidAt:            b.PaidAt,
		PaidBy:            b.PaidBy,
		Remarks:           b.Remarks,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
		Version:           b.Version,
	}
	if b.TenantID != nil {
		tenantID := b.TenantID.String()
		resp.TenantID = &tenantID
	}
	if b.Electricity != nil {
		resp.Electricity = &ElectricityBreakupResponse{
			PreviousReading: b.Electricity.PreviousReading,
			CurrentReading:  b.Electricity.CurrentReading,
			UnitsConsumed:   b.Electricity.UnitsConsumed,
			RatePerUnit:     b.Electricity.RatePerUnit,
		}
	}
	return resp
}

// BillPaymentResponse represents a gateway payment attempt against a bill
type BillPaymentResponse struct {
	ID               string          `json:"id"`
	BillID           string          `json:"bill_id"`
	PaidByUserID     string          `json:"paid_by_user_id"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	GatewayOrderID   string          `json:"gateway_order_id"`
	GatewayPaymentID string          `json:"gateway_payment_id,omitempty"`
	Status           string          `json:"status"`
	FailureReason    string          `json:"failure_reason,omitempty"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

func billPaymentResponseOf(p *billing.BillPayment) BillPaymentResponse {
	return BillPaymentResponse{
		ID:               p.ID.String(),
		BillID:           p.BillID.String(),
		PaidByUserID:     p.PaidByUserID.String(),
		Amount:           p.Amount,
		Currency:         p.Currency,
		GatewayOrderID:   p.GatewayOrderID,
		GatewayPaymentID: p.GatewayPaymentID,
		Status:           string(p.Status),
		FailureReason:    p.FailureReason,
		CompletedAt:      p.CompletedAt,
		CreatedAt:        p.CreatedAt,
	}
}
