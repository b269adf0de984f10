package handler

import (
	"time"

	"github.com/propman/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// LedgerEntryResponse represents a landlord ledger entry
type LedgerEntryResponse struct {
	ID              string          `json:"id"`
	LandlordID      string          `json:"landlord_id"`
	SiteID          string          `json:"site_id"`
	UnitID          string          `json:"unit_id"`
	BillID          *string         `json:"bill_id,omitempty"`
	Purpose         string          `json:"purpose"`
	TransactionType string          `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount"`
	OpeningBalance  BalanceResponse `json:"opening_balance"`
	ClosingBalance  BalanceResponse `json:"closing_balance"`
	Sequence        uint64          `json:"sequence"`
	CreatedAt       time.Time       `json:"created_at"`
}

func ledgerEntryResponseOf(e *ledger.LedgerEntry) LedgerEntryResponse {
	resp := LedgerEntryResponse{
		ID:              e.ID.String(),
		LandlordID:      e.LandlordID.String(),
		SiteID:          e.SiteID.String(),
		UnitID:          e.UnitID.String(),
		Purpose:         e.Purpose,
		TransactionType: string(e.TransactionType),
		Amount:          e.Amount,
		OpeningBalance: BalanceResponse{
			Amount: e.OpeningBalance.Amount,
			Type:   string(e.OpeningBalance.Type),
		},
		ClosingBalance: BalanceResponse{
			Amount: e.ClosingBalance.Amount,
			Type:   string(e.ClosingBalance.Type),
		},
		Sequence:  e.Sequence,
		CreatedAt: e.CreatedAt,
	}
	if e.BillID != nil {
		billID := e.BillID.String()
		resp.BillID = &billID
	}
	return resp
}

// PaymentLedgerEntryResponse represents a dual-column payment ledger entry
type PaymentLedgerEntryResponse struct {
	ID             string          `json:"id"`
	PartyType      string          `json:"party_type"`
	PartyID        string          `json:"party_id"`
	SiteID         string          `json:"site_id"`
	UnitID         string          `json:"unit_id"`
	BillID         *string         `json:"bill_id,omitempty"`
	EntryType      string          `json:"entry_type"`
	DebitAmount    decimal.Decimal `json:"debit_amount"`
	CreditAmount   decimal.Decimal `json:"credit_amount"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	Remark         string          `json:"remark,omitempty"`
	PaymentMode    string          `json:"payment_mode,omitempty"`
	EntryDate      time.Time       `json:"entry_date"`
	Sequence       uint64          `json:"sequence"`
	CreatedAt      time.Time       `json:"created_at"`
}

func paymentLedgerEntryResponseOf(e *ledger.PaymentLedgerEntry) PaymentLedgerEntryResponse {
	resp := PaymentLedgerEntryResponse{
		ID:             e.ID.String(),
		PartyType:      string(e.Scope.PartyType),
		PartyID:        e.Scope.PartyID.String(),
		SiteID:         e.Scope.SiteID.String(),
		UnitID:         e.Scope.UnitID.String(),
		EntryType:      string(e.EntryType),
		DebitAmount:    e.DebitAmount,
		CreditAmount:   e.CreditAmount,
		OpeningBalance: e.OpeningBalance,
		ClosingBalance: e.ClosingBalance,
		Remark:         e.Remark,
		PaymentMode:    e.PaymentMode,
		EntryDate:      e.EntryDate,
		Sequence:       e.Sequence,
		CreatedAt:      e.CreatedAt,
	}
	if e.BillID != nil {
		billID := e.BillID.String()
		resp.BillID = &billID
	}
	return resp
}
