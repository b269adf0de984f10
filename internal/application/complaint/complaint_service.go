package complaint

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/complaint"
	"github.com/propman/backend/internal/domain/party"
	"github.com/propman/backend/internal/domain/shared"
)

// ComplaintService tracks maintenance complaints from intake to closure
type ComplaintService struct {
	complaintRepo complaint.Repository
	tenantRepo    party.TenantRepository
}

// NewComplaintService creates a new ComplaintService
func NewComplaintService(complaintRepo complaint.Repository, tenantRepo party.TenantRepository) *ComplaintService {
	return &ComplaintService{
		complaintRepo: complaintRepo,
		tenantRepo:    tenantRepo,
	}
}

// CreateComplaintRequest is a tenant's issue report
type CreateComplaintRequest struct {
	TenantID    uuid.UUID
	Category    complaint.Category
	Subject     string
	Description string
}

// CreateComplaint opens a complaint against the tenant's assigned unit
func (s *ComplaintService) CreateComplaint(ctx context.Context, req CreateComplaintRequest) (*complaint.Complaint, error) {
	if req.TenantID == uuid.Nil {
		return nil, shared.NewValidationError("Tenant ID is required")
	}

	tenant, err := s.tenantRepo.FindByID(ctx, req.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	if tenant == nil {
		return nil, shared.ErrNotFound
	}
	if tenant.UnitID == nil {
		return nil, shared.NewDomainError("NO_UNIT", "Tenant has no assigned unit to complain about")
	}

	c, err := complaint.NewComplaint(tenant.ID, tenant.SiteID, *tenant.UnitID, req.Category, req.Subject, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.complaintRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create complaint: %w", err)
	}
	return c, nil
}

// GetComplaint returns one complaint by id
func (s *ComplaintService) GetComplaint(ctx context.Context, id uuid.UUID) (*complaint.Complaint, error) {
	if id == uuid.Nil {
		return nil, shared.NewValidationError("Complaint ID is required")
	}
	c, err := s.complaintRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}
	if c == nil {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

// ListComplaintsByTenant returns a tenant's complaints
func (s *ComplaintService) ListComplaintsByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*complaint.Complaint, int64, error) {
	if tenantID == uuid.Nil {
		return nil, 0, shared.NewValidationError("Tenant ID is required")
	}
	return s.complaintRepo.FindByTenant(ctx, tenantID, filter)
}

// ListComplaintsBySite returns a site's complaints for the back office
func (s *ComplaintService) ListComplaintsBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*complaint.Complaint, int64, error) {
	if siteID == uuid.Nil {
		return nil, 0, shared.NewValidationError("Site ID is required")
	}
	return s.complaintRepo.FindBySite(ctx, siteID, filter)
}

// TransitionComplaint moves a complaint through its lifecycle
func (s *ComplaintService) TransitionComplaint(ctx context.Context, id uuid.UUID, next complaint.Status) (*complaint.Complaint, error) {
	c, err := s.GetComplaint(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.TransitionTo(next); err != nil {
		return nil, err
	}
	if err := s.complaintRepo.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save complaint: %w", err)
	}
	return c, nil
}

// ResolveComplaint completes a complaint with a resolution note
func (s *ComplaintService) ResolveComplaint(ctx context.Context, id uuid.UUID, resolution string) (*complaint.Complaint, error) {
	c, err := s.GetComplaint(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Resolve(resolution, time.Now()); err != nil {
		return nil, err
	}
	if err := s.complaintRepo.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save complaint: %w", err)
	}
	return c, nil
}
