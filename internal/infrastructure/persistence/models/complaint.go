package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/complaint"
)

// ComplaintModel is the persistence model for the Complaint domain aggregate.
type ComplaintModel struct {
	AggregateModel
	TenantID    uuid.UUID          `gorm:"type:uuid;not null;index"`
	SiteID      uuid.UUID          `gorm:"type:uuid;not null;index"`
	UnitID      uuid.UUID          `gorm:"type:uuid;not null;index"`
	Category    complaint.Category `gorm:"type:varchar(20);not null"`
	Subject     string             `gorm:"type:varchar(200);not null"`
	Description string             `gorm:"type:text"`
	Status      complaint.Status   `gorm:"type:varchar(20);not null;default:'OPEN';index"`
	Resolution  string             `gorm:"type:text"`
	ResolvedAt  *time.Time
}

// TableName returns the table name for GORM
func (ComplaintModel) TableName() string {
	return "complaints"
}

// ToDomain converts the persistence model to a domain Complaint aggregate.
func (m *ComplaintModel) ToDomain() *complaint.Complaint {
	return &complaint.Complaint{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		TenantID:          m.TenantID,
		SiteID:            m.SiteID,
		UnitID:            m.UnitID,
		Category:          m.Category,
		Subject:           m.Subject,
		Description:       m.Description,
		Status:            m.Status,
		Resolution:        m.Resolution,
		ResolvedAt:        m.ResolvedAt,
	}
}

// FromDomain populates the persistence model from a domain Complaint aggregate.
func (m *ComplaintModel) FromDomain(c *complaint.Complaint) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.TenantID = c.TenantID
	m.SiteID = c.SiteID
	m.UnitID = c.UnitID
	m.Category = c.Category
	m.Subject = c.Subject
	m.Description = c.Description
	m.Status = c.Status
	m.Resolution = c.Resolution
	m.ResolvedAt = c.ResolvedAt
}

// ComplaintModelFromDomain creates a persistence model from a domain aggregate
func ComplaintModelFromDomain(c *complaint.Complaint) *ComplaintModel {
	m := &ComplaintModel{}
	m.FromDomain(c)
	return m
}
