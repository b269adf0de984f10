package handler

import (
	"time"

	"github.com/propman/backend/internal/domain/party"
	"github.com/shopspring/decimal"
)

// BalanceResponse renders a directional balance as amount plus DR/CR marker
type BalanceResponse struct {
	Amount decimal.Decimal `json:"amount"`
	Type   string          `json:"type"`
}

// LandlordResponse represents a landlord in API responses
type LandlordResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Status         string          `json:"status"`
	OpeningBalance BalanceResponse `json:"opening_balance"`
	WalletBalance  decimal.Decimal `json:"wallet_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int             `json:"version"`
}

func landlordResponseOf(l *party.Landlord) LandlordResponse {
	return LandlordResponse{
		ID:     l.ID.String(),
		Name:   l.Name,
		Email:  l.Email,
		Phone:  l.Phone,
		Status: string(l.Status),
		OpeningBalance: BalanceResponse{
			Amount: l.OpeningBalance.Amount,
			Type:   string(l.OpeningBalance.Type),
		},
		WalletBalance: l.WalletBalance,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
		Version:       l.Version,
	}
}

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Status        string          `json:"status"`
	SiteID        string          `json:"site_id"`
	UnitID        *string         `json:"unit_id,omitempty"`
	WalletBalance decimal.Decimal `json:"wallet_balance"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

func tenantResponseOf(t *party.Tenant) TenantResponse {
	resp := TenantResponse{
		ID:            t.ID.String(),
		Name:          t.Name,
		Email:         t.Email,
		Phone:         t.Phone,
		Status:        string(t.Status),
		SiteID:        t.SiteID.String(),
		WalletBalance: t.WalletBalance,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
		Version:       t.Version,
	}
	if t.UnitID != nil {
		unitID := t.UnitID.String()
		resp.UnitID = &unitID
	}
	return resp
}

// SiteResponse represents a site in API responses
type SiteResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

func siteResponseOf(s *party.Site) SiteResponse {
	return SiteResponse{
		ID:        s.ID.String(),
		Name:      s.Name,
		Address:   s.Address,
		City:      s.City,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Version:   s.Version,
	}
}

// UnitResponse represents a unit with its billing configuration
type UnitResponse struct {
	ID               string          `json:"id"`
	SiteID           string          `json:"site_id"`
	LandlordID       string          `json:"landlord_id"`
	Label            string          `json:"label"`
	AreaSqft         decimal.Decimal `json:"area_sqft"`
	MaintenanceBasis string          `json:"maintenance_basis"`
	MaintenanceRate  decimal.Decimal `json:"maintenance_rate"`
	GSTPercent       decimal.Decimal `json:"gst_percent"`
	Cycle            string          `json:"cycle"`
	MeterReading     decimal.Decimal `json:"meter_reading"`
	ElectricityRate  decimal.Decimal `json:"electricity_rate"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	Version          int             `json:"version"`
}

func unitResponseOf(u *party.Unit) UnitResponse {
	return UnitResponse{
		ID:               u.ID.String(),
		SiteID:           u.SiteID.String(),
		LandlordID:       u.LandlordID.String(),
		Label:            u.Label,
		AreaSqft:         u.AreaSqft,
		MaintenanceBasis: string(u.MaintenanceBasis),
		MaintenanceRate:  u.MaintenanceRate,
		GSTPercent:       u.GSTPercent,
		Cycle:            string(u.Cycle),
		MeterReading:     u.MeterReading,
		ElectricityRate:  u.ElectricityRate,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
		Version:          u.Version,
	}
}

// WalletTopUpResponse represents a wallet top-up attempt
type WalletTopUpResponse struct {
	ID               string          `json:"id"`
	PartyType        string          `json:"party_type"`
	PartyID          string          `json:"party_id"`
	SiteID           string          `json:"site_id"`
	UnitID           string          `json:"unit_id"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	GatewayOrderID   string          `json:"gateway_order_id"`
	GatewayPaymentID string          `json:"gateway_payment_id,omitempty"`
	Status           string          `json:"status"`
	FailureReason    string          `json:"failure_reason,omitempty"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

func walletTopUpResponseOf(t *party.WalletTopUp) WalletTopUpResponse {
	return WalletTopUpResponse{
		ID:               t.ID.String(),
		PartyType:        string(t.PartyType),
		PartyID:          t.PartyID.String(),
		SiteID:           t.SiteID.String(),
		UnitID:           t.UnitID.String(),
		Amount:           t.Amount,
		Currency:         t.Currency,
		GatewayOrderID:   t.GatewayOrderID,
		GatewayPaymentID: t.GatewayPaymentID,
		Status:           string(t.Status),
		FailureReason:    t.FailureReason,
		CompletedAt:      t.CompletedAt,
		CreatedAt:        t.CreatedAt,
	}
}
