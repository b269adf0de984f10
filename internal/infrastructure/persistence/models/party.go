package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/billing"
	"github.com/propman/backend/internal/domain/ledger"
	"github.com/propman/backend/internal/domain/party"
	"github.com/shopspring/decimal"
)

// LandlordModel is the persistence model for the Landlord domain aggregate.
type LandlordModel struct {
	AggregateModel
	Name                 string             `gorm:"type:varchar(200);not null"`
	Email                string             `gorm:"type:varchar(200);index"`
	Phone                string             `gorm:"type:varchar(50);not null;uniqueIndex"`
	Status               party.PartyStatus  `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	OpeningBalanceAmount decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	OpeningBalanceType   ledger.BalanceType `gorm:"type:varchar(10)"`
	WalletBalance        decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (LandlordModel) TableName() string {
	return "landlords"
}

// ToDomain converts the persistence model to a domain Landlord aggregate.
func (m *LandlordModel) ToDomain() *party.Landlord {
	return &party.Landlord{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Email:             m.Email,
		Phone:             m.Phone,
		Status:            m.Status,
		OpeningBalance:    ledger.Balance{Amount: m.OpeningBalanceAmount, Type: m.OpeningBalanceType},
		WalletBalance:     m.WalletBalance,
	}
}

// FromDomain populates the persistence model from a domain Landlord aggregate.
func (m *LandlordModel) FromDomain(l *party.Landlord) {
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	m.Name = l.Name
	m.Email = l.Email
	m.Phone = l.Phone
	m.Status = l.Status
	m.OpeningBalanceAmount = l.OpeningBalance.Amount
	m.OpeningBalanceType = l.OpeningBalance.Type
	m.WalletBalance = l.WalletBalance
}

// LandlordModelFromDomain creates a persistence model from a domain aggregate
func LandlordModelFromDomain(l *party.Landlord) *LandlordModel {
	m := &LandlordModel{}
	m.FromDomain(l)
	return m
}

// TenantModel is the persistence model for the Tenant domain aggregate.
type TenantModel struct {
	AggregateModel
	Name          string            `gorm:"type:varchar(200);not null"`
	Email         string            `gorm:"type:varchar(200);index"`
	Phone         string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	Status        party.PartyStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	SiteID        uuid.UUID         `gorm:"type:uuid;not null;index"`
	UnitID        *uuid.UUID        `gorm:"type:uuid;index"`
	WalletBalance decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant aggregate.
func (m *TenantModel) ToDomain() *party.Tenant {
	return &party.Tenant{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Email:             m.Email,
		Phone:             m.Phone,
		Status:            m.Status,
		SiteID:            m.SiteID,
		UnitID:            m.UnitID,
		WalletBalance:     m.WalletBalance,
	}
}

// FromDomain populates the persistence model from a domain Tenant aggregate.
func (m *TenantModel) FromDomain(t *party.Tenant) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.Name = t.Name
	m.Email = t.Email
	m.Phone = t.Phone
	m.Status = t.Status
	m.SiteID = t.SiteID
	m.UnitID = t.UnitID
	m.WalletBalance = t.WalletBalance
}

// TenantModelFromDomain creates a persistence model from a domain aggregate
func TenantModelFromDomain(t *party.Tenant) *TenantModel {
	m := &TenantModel{}
	m.FromDomain(t)
	return m
}

// SiteModel is the persistence model for the Site domain aggregate.
type SiteModel struct {
	AggregateModel
	Name    string `gorm:"type:varchar(200);not null"`
	Address string `gorm:"type:text"`
	City    string `gorm:"type:varchar(100);index"`
}

// TableName returns the table name for GORM
func (SiteModel) TableName() string {
	return "sites"
}

// ToDomain converts the persistence model to a domain Site aggregate.
func (m *SiteModel) ToDomain() *party.Site {
	return &party.Site{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Address:           m.Address,
		City:              m.City,
	}
}

// FromDomain populates the persistence model from a domain Site aggregate.
func (m *SiteModel) FromDomain(s *party.Site) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.Name = s.Name
	m.Address = s.Address
	m.City = s.City
}

// SiteModelFromDomain creates a persistence model from a domain aggregate
func SiteModelFromDomain(s *party.Site) *SiteModel {
	m := &SiteModel{}
	m.FromDomain(s)
	return m
}

// UnitModel is the persistence model for the Unit domain aggregate.
type UnitModel struct {
	AggregateModel
	SiteID     uuid.UUID `gorm:"type:uuid;not null;index"`
	LandlordID uuid.UUID `gorm:"type:uuid;not null;index"`
	Label      string    `gorm:"type:varchar(100);not null"`

	AreaSqft         decimal.Decimal          `gorm:"type:decimal(18,4);not null;default:0"`
	MaintenanceBasis billing.MaintenanceBasis `gorm:"type:varchar(20);not null"`
	MaintenanceRate  decimal.Decimal          `gorm:"type:decimal(18,4);not null;default:0"`
	GSTPercent       decimal.Decimal          `gorm:"type:decimal(18,4);not null;default:0"`
	Cycle            billing.BillingCycle     `gorm:"type:varchar(20);not null;default:'MONTHLY'"`

	MeterReading    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ElectricityRate decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (UnitModel) TableName() string {
	return "units"
}

// ToDomain converts the persistence model to a domain Unit aggregate.
func (m *UnitModel) ToDomain() *party.Unit {
	return &party.Unit{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		SiteID:            m.SiteID,
		LandlordID:        m.LandlordID,
		Label:             m.Label,
		AreaSqft:          m.AreaSqft,
		MaintenanceBasis:  m.MaintenanceBasis,
		MaintenanceRate:   m.MaintenanceRate,
		GSTPercent:        m.GSTPercent,
		Cycle:             m.Cycle,
		MeterReading:      m.MeterReading,
		ElectricityRate:   m.ElectricityRate,
	}
}

// FromDomain populates the persistence model from a domain Unit aggregate.
func (m *UnitModel) FromDomain(u *party.Unit) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.SiteID = u.SiteID
	m.LandlordID = u.LandlordID
	m.Label = u.Label
	m.AreaSqft = u.AreaSqft
	m.MaintenanceBasis = u.MaintenanceBasis
	m.MaintenanceRate = u.MaintenanceRate
	m.GSTPercent = u.GSTPercent
	m.Cycle = u.Cycle
	m.MeterReading = u.MeterReading
	m.ElectricityRate = u.ElectricityRate
}

// UnitModelFromDomain creates a persistence model from a domain aggregate
func UnitModelFromDomain(u *party.Unit) *UnitModel {
	m := &UnitModel{}
	m.FromDomain(u)
	return m
}

// WalletTopUpModel is the persistence model for the WalletTopUp domain aggregate.
type WalletTopUpModel struct {
	AggregateModel
	PartyType        ledger.PartyType  `gorm:"type:varchar(20);not null;index:idx_topup_party,priority:1"`
	PartyID          uuid.UUID         `gorm:"type:uuid;not null;index:idx_topup_party,priority:2"`
	SiteID           uuid.UUID         `gorm:"type:uuid;not null"`
	UnitID           uuid.UUID         `gorm:"type:uuid;not null"`
	Amount           decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Currency         string            `gorm:"type:varchar(10);not null;default:'INR'"`
	GatewayOrderID   string            `gorm:"type:varchar(100);uniqueIndex"`
	GatewayPaymentID string            `gorm:"type:varchar(100)"`
	Status           party.TopUpStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	FailureReason    string            `gorm:"type:varchar(500)"`
	CompletedAt      *time.Time
}

// TableName returns the table name for GORM
func (WalletTopUpModel) TableName() string {
	return "wallet_topups"
}

// ToDomain converts the persistence model to a domain WalletTopUp aggregate.
func (m *WalletTopUpModel) ToDomain() *party.WalletTopUp {
	return &party.WalletTopUp{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		PartyType:         m.PartyType,
		PartyID:           m.PartyID,
		SiteID:            m.SiteID,
		UnitID:            m.UnitID,
		Amount:            m.Amount,
		Currency:          m.Currency,
		GatewayOrderID:    m.GatewayOrderID,
		GatewayPaymentID:  m.GatewayPaymentID,
		Status:            m.Status,
		FailureReason:     m.FailureReason,
		CompletedAt:       m.CompletedAt,
	}
}

// FromDomain populates the persistence model from a domain WalletTopUp aggregate.
func (m *WalletTopUpModel) FromDomain(t *party.WalletTopUp) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.PartyType = t.PartyType
	m.PartyID = t.PartyID
	m.SiteID = t.SiteID
	m.UnitID = t.UnitID
	m.Amount = t.Amount
	m.Currency = t.Currency
	m.GatewayOrderID = t.GatewayOrderID
	m.GatewayPaymentID = t.GatewayPaymentID
	m.Status = t.Status
	m.FailureReason = t.FailureReason
	m.CompletedAt = t.CompletedAt
}

// WalletTopUpModelFromDomain creates a persistence model from a domain aggregate
func WalletTopUpModelFromDomain(t *party.WalletTopUp) *WalletTopUpModel {
	m := &WalletTopUpModel{}
	m.FromDomain(t)
	return m
}
