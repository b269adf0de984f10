package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// LedgerEntryModel is the persistence model for the LedgerEntry domain entity.
// The unique (landlord_id, sequence) index backs the conditional write: two
// writers racing on the same sequence collide on insert and one retries.
type LedgerEntryModel struct {
	BaseModel
	LandlordID      uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:idx_ledger_landlord_sequence,priority:1"`
	Sequence        uint64                 `gorm:"not null;uniqueIndex:idx_ledger_landlord_sequence,priority:2"`
	SiteID          uuid.UUID              `gorm:"type:uuid;not null;index"`
	UnitID          uuid.UUID              `gorm:"type:uuid;not null;index"`
	BillID          *uuid.UUID             `gorm:"type:uuid;index"`
	Purpose         string                 `gorm:"type:varchar(200)"`
	TransactionType ledger.TransactionType `gorm:"type:varchar(20);not null"`
	Amount          decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	OpeningAmount   decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	OpeningType     ledger.BalanceType     `gorm:"type:varchar(10)"`
	ClosingAmount   decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	ClosingType     ledger.BalanceType     `gorm:"type:varchar(10)"`
}

// TableName returns the table name for GORM
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// ToDomain converts the persistence model to a domain LedgerEntry entity.
func (m *LedgerEntryModel) ToDomain() *ledger.LedgerEntry {
	return &ledger.LedgerEntry{
		BaseEntity:      m.BaseModel.ToDomain(),
		LandlordID:      m.LandlordID,
		SiteID:          m.SiteID,
		UnitID:          m.UnitID,
		BillID:          m.BillID,
		Purpose:         m.Purpose,
		TransactionType: m.TransactionType,
		Amount:          m.Amount,
		OpeningBalance:  ledger.Balance{Amount: m.OpeningAmount, Type: m.OpeningType},
		ClosingBalance:  ledger.Balance{Amount: m.ClosingAmount, Type: m.ClosingType},
		Sequence:        m.Sequence,
	}
}

// FromDomain populates the persistence model from a domain LedgerEntry entity.
func (m *LedgerEntryModel) FromDomain(e *ledger.LedgerEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.LandlordID = e.LandlordID
	m.Sequence = e.Sequence
	m.SiteID = e.SiteID
	m.UnitID = e.UnitID
	m.BillID = e.BillID
	m.Purpose = e.Purpose
	m.TransactionType = e.TransactionType
	m.Amount = e.Amount
	m.OpeningAmount = e.OpeningBalance.Amount
	m.OpeningType = e.OpeningBalance.Type
	m.ClosingAmount = e.ClosingBalance.Amount
	m.ClosingType = e.ClosingBalance.Type
}

// LedgerEntryModelFromDomain creates a persistence model from a domain entity
func LedgerEntryModelFromDomain(e *ledger.LedgerEntry) *LedgerEntryModel {
	m := &LedgerEntryModel{}
	m.FromDomain(e)
	return m
}

// PaymentLedgerEntryModel is the persistence model for the PaymentLedgerEntry
// domain entity. Its unique index spans the full scope plus the sequence.
type PaymentLedgerEntryModel struct {
	BaseModel
	PartyType      ledger.PartyType `gorm:"type:varchar(20);not null;uniqueIndex:idx_payment_ledger_scope_sequence,priority:1"`
	PartyID        uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_payment_ledger_scope_sequence,priority:2"`
	SiteID         uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_payment_ledger_scope_sequence,priority:3"`
	UnitID         uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_payment_ledger_scope_sequence,priority:4"`
	Sequence       uint64           `gorm:"not null;uniqueIndex:idx_payment_ledger_scope_sequence,priority:5"`
	BillID         *uuid.UUID       `gorm:"type:uuid;index"`
	EntryType      ledger.EntryType `gorm:"type:varchar(10);not null"`
	DebitAmount    decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	CreditAmount   decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	OpeningBalance decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	ClosingBalance decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Remark         string           `gorm:"type:varchar(500)"`
	PaymentMode    string           `gorm:"type:varchar(50)"`
	EntryDate      time.Time        `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (PaymentLedgerEntryModel) TableName() string {
	return "payment_ledger_entries"
}

// ToDomain converts the persistence model to a domain PaymentLedgerEntry entity.
func (m *PaymentLedgerEntryModel) ToDomain() *ledger.PaymentLedgerEntry {
	return &ledger.PaymentLedgerEntry{
		BaseEntity: m.BaseModel.ToDomain(),
		Scope: ledger.PaymentScope{
			PartyType: m.PartyType,
			PartyID:   m.PartyID,
			SiteID:    m.SiteID,
			UnitID:    m.UnitID,
		},
		BillID:         m.BillID,
		EntryType:      m.EntryType,
		DebitAmount:    m.DebitAmount,
		CreditAmount:   m.CreditAmount,
		OpeningBalance: m.OpeningBalance,
		ClosingBalance: m.ClosingBalance,
		Remark:         m.Remark,
		PaymentMode:    m.PaymentMode,
		EntryDate:      m.EntryDate,
		Sequence:       m.Sequence,
	}
}

// FromDomain populates the persistence model from a domain PaymentLedgerEntry entity.
func (m *PaymentLedgerEntryModel) FromDomain(e *ledger.PaymentLedgerEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.PartyType = e.Scope.PartyType
	m.PartyID = e.Scope.PartyID
	m.SiteID = e.Scope.SiteID
	m.UnitID = e.Scope.UnitID
	m.Sequence = e.Sequence
	m.BillID = e.BillID
	m.EntryType = e.EntryType
	m.DebitAmount = e.DebitAmount
	m.CreditAmount = e.CreditAmount
	m.OpeningBalance = e.OpeningBalance
	m.ClosingBalance = e.ClosingBalance
	m.Remark = e.Remark
	m.PaymentMode = e.PaymentMode
	m.EntryDate = e.EntryDate
}

// PaymentLedgerEntryModelFromDomain creates a persistence model from a domain entity
func PaymentLedgerEntryModelFromDomain(e *ledger.PaymentLedgerEntry) *PaymentLedgerEntryModel {
	m := &PaymentLedgerEntryModel{}
	m.FromDomain(e)
	return m
}
