package complaint

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
)

// Status represents the lifecycle state of a complaint
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusResolved   Status = "RESOLVED"
	StatusClosed     Status = "CLOSED"
)

// IsValid returns true if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// canTransitionTo defines the allowed status moves. Closed is terminal;
// resolved complaints can be reopened by moving back to in-progress.
func (s Status) canTransitionTo(next Status) bool {
	switch s {
	case StatusOpen:
		return next == StatusInProgress || next == StatusClosed
	case StatusInProgress:
		return next == StatusResolved || next == StatusClosed
	case StatusResolved:
		return next == StatusClosed || next == StatusInProgress
	}
	return false
}

// Category groups complaints for routing to the right maintenance crew
type Category string

const (
	CategoryPlumbing   Category = "PLUMBING"
	CategoryElectrical Category = "ELECTRICAL"
	CategoryCleaning   Category = "CLEANING"
	CategorySecurity   Category = "SECURITY"
	CategoryOther      Category = "OTHER"
)

// IsValid returns true if the category is valid
func (c Category) IsValid() bool {
	switch c {
	case CategoryPlumbing, CategoryElectrical, CategoryCleaning, CategorySecurity, CategoryOther:
		return true
	}
	return false
}

// Complaint is a maintenance issue raised by a tenant against their unit
type Complaint struct {
	shared.BaseAggregateRoot
	TenantID    uuid.UUID
	SiteID      uuid.UUID
	UnitID      uuid.UUID
	Category    Category
	Subject     string
	Description string
	Status      Status
	Resolution  string
	ResolvedAt  *time.Time
}

// NewComplaint creates an open complaint
func NewComplaint(tenantID, siteID, unitID uuid.UUID, category Category, subject, description string) (*Complaint, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewValidationError("Tenant ID is required")
	}
	if siteID == uuid.Nil {
		return nil, shared.NewValidationError("Site ID is required")
	}
	if unitID == uuid.Nil {
		return nil, shared.NewValidationError("Unit ID is required")
	}
	if !category.IsValid() {
		return nil, shared.NewValidationError("Invalid complaint category")
	}
	if strings.TrimSpace(subject) == "" {
		return nil, shared.NewValidationError("Complaint subject is required")
	}

	return &Complaint{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenantID,
		SiteID:            siteID,
		UnitID:            unitID,
		Category:          category,
		Subject:           subject,
		Description:       description,
		Status:            StatusOpen,
	}, nil
}

// TransitionTo moves the complaint through its lifecycle
func (c *Complaint) TransitionTo(next Status) error {
	if !next.IsValid() {
		return shared.NewValidationError("Invalid complaint status")
	}
	if !c.Status.canTransitionTo(next) {
		return shared.NewDomainError("INVALID_STATE", "Complaint cannot move from "+c.Status.String()+" to "+next.String())
	}
	c.Status = next
	c.IncrementVersion()
	return nil
}

// Resolve completes the complaint with a resolution note
func (c *Complaint) Resolve(resolution string, at time.Time) error {
	if strings.TrimSpace(resolution) == "" {
		return shared.NewValidationError("Resolution note is required")
	}
	if err := c.TransitionTo(StatusResolved); err != nil {
		return err
	}
	c.Resolution = resolution
	c.ResolvedAt = &at
	return nil
}
