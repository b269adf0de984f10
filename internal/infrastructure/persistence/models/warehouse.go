package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/warehouse"
)

// StockItemModel is the persistence model for the StockItem domain aggregate.
// Item names are unique per site so receipts merge into the existing item.
type StockItemModel struct {
	AggregateModel
	SiteID            uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_stock_site_name,priority:1"`
	Name              string                `gorm:"type:varchar(200);not null;uniqueIndex:idx_stock_site_name,priority:2"`
	Unit              string                `gorm:"type:varchar(50)"`
	Quantity          int64                 `gorm:"not null;default:0"`
	LowStockThreshold int64                 `gorm:"not null;default:0"`
	Status            warehouse.StockStatus `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for GORM
func (StockItemModel) TableName() string {
	return "stock_items"
}

// ToDomain converts the persistence model to a domain StockItem aggregate.
func (m *StockItemModel) ToDomain() *warehouse.StockItem {
	return &warehouse.StockItem{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		SiteID:            m.SiteID,
		Name:              m.Name,
		Unit:              m.Unit,
		Quantity:          m.Quantity,
		LowStockThreshold: m.LowStockThreshold,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain StockItem aggregate.
func (m *StockItemModel) FromDomain(i *warehouse.StockItem) {
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	m.SiteID = i.SiteID
	m.Name = i.Name
	m.Unit = i.Unit
	m.Quantity = i.Quantity
	m.LowStockThreshold = i.LowStockThreshold
	m.Status = i.Status
}

// StockItemModelFromDomain creates a persistence model from a domain aggregate
func StockItemModelFromDomain(i *warehouse.StockItem) *StockItemModel {
	m := &StockItemModel{}
	m.FromDomain(i)
	return m
}

// StockMovementModel is the persistence model for the StockMovement domain entity.
type StockMovementModel struct {
	BaseModel
	ItemID     uuid.UUID              `gorm:"type:uuid;not null;index"`
	SiteID     uuid.UUID              `gorm:"type:uuid;not null;index"`
	Type       warehouse.MovementType `gorm:"type:varchar(20);not null"`
	Quantity   int64                  `gorm:"not null"`
	ToSiteID   *uuid.UUID             `gorm:"type:uuid"`
	Reference  string                 `gorm:"type:varchar(100)"`
	MovedAt    time.Time              `gorm:"not null;index"`
	RecordedBy uuid.UUID              `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (StockMovementModel) TableName() string {
	return "stock_movements"
}

// ToDomain converts the persistence model to a domain StockMovement entity.
func (m *StockMovementModel) ToDomain() *warehouse.StockMovement {
	return &warehouse.StockMovement{
		BaseEntity: m.BaseModel.ToDomain(),
		ItemID:     m.ItemID,
		SiteID:     m.SiteID,
		Type:       m.Type,
		Quantity:   m.Quantity,
		ToSiteID:   m.ToSiteID,
		Reference:  m.Reference,
		MovedAt:    m.MovedAt,
		RecordedBy: m.RecordedBy,
	}
}

// FromDomain populates the persistence model from a domain StockMovement entity.
func (m *StockMovementModel) FromDomain(mv *warehouse.StockMovement) {
	m.FromDomainBaseEntity(mv.BaseEntity)
	m.ItemID = mv.ItemID
	m.SiteID = mv.SiteID
	m.Type = mv.Type
	m.Quantity = mv.Quantity
	m.ToSiteID = mv.ToSiteID
	m.Reference = mv.Reference
	m.MovedAt = mv.MovedAt
	m.RecordedBy = mv.RecordedBy
}

// StockMovementModelFromDomain creates a persistence model from a domain entity
func StockMovementModelFromDomain(mv *warehouse.StockMovement) *StockMovementModel {
	m := &StockMovementModel{}
	m.FromDomain(mv)
	return m
}
