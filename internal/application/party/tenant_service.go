package party

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/party"
	"github.com/propman/backend/internal/domain/shared"
)

// TenantService handles tenant onboarding and unit occupancy
type TenantService struct {
	tenantRepo party.TenantRepository
	unitRepo   party.UnitRepository
}

// NewTenantService creates a new TenantService
func NewTenantService(tenantRepo party.TenantRepository, unitRepo party.UnitRepository) *TenantService {
	return &TenantService{tenantRepo: tenantRepo, unitRepo: unitRepo}
}

// CreateTenantRequest carries the onboarding fields
type CreateTenantRequest struct {
	Name   string
	Email  string
	Phone  string
	SiteID uuid.UUID
	UnitID *uuid.UUID
}

// CreateTenant onboards a tenant, optionally assigning a unit immediately
func (s *TenantService) CreateTenant(ctx context.Context, req CreateTenantRequest) (*party.Tenant, error) {
	existing, err := s.tenantRepo.FindByPhone(ctx, req.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing tenant: %w", err)
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A tenant with this phone already exists")
	}

	tenant, err := party.NewTenant(req.Name, req.Email, req.Phone, req.SiteID)
	if err != nil {
		return nil, err
	}
	if req.UnitID != nil {
		if err := s.checkUnit(ctx, *req.UnitID, req.SiteID); err != nil {
			return nil, err
		}
		if err := tenant.AssignUnit(*req.UnitID); err != nil {
			return nil, err
		}
	}

	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}
	return tenant, nil
}

func (s *TenantService) checkUnit(ctx context.Context, unitID, siteID uuid.UUID) error {
	unit, err := s.unitRepo.FindByID(ctx, unitID)
	if err != nil {
		return fmt.Errorf("failed to get unit: %w", err)
	}
	if unit == nil {
		return shared.ErrNotFound
	}
	if unit.SiteID != siteID {
		return shared.NewDomainError("INVALID_UNIT", "Unit does not belong to the tenant's site")
	}
	return nil
}

// GetTenant returns one tenant by id
func (s *TenantService) GetTenant(ctx context.Context, id uuid.UUID) (*party.Tenant, error) {
	if id == uuid.Nil {
		return nil, shared.NewValidationError("Tenant ID is required")
	}
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	if tenant == nil {
		return nil, shared.ErrNotFound
	}
	return tenant, nil
}

// ListTenantsBySite returns a site's tenants
func (s *TenantService) ListTenantsBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*party.Tenant, int64, error) {
	if siteID == uuid.Nil {
		return nil, 0, shared.NewValidationError("Site ID is required")
	}
	return s.tenantRepo.FindBySite(ctx, siteID, filter)
}

// AssignUnit moves a tenant into a unit on their site
func (s *TenantService) AssignUnit(ctx context.Context, tenantID, unitID uuid.UUID) (*party.Tenant, error) {
	tenant, err := s.GetTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := s.checkUnit(ctx, unitID, tenant.SiteID); err != nil {
		return nil, err
	}
	if err := tenant.AssignUnit(unitID); err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to save tenant: %w", err)
	}
	return tenant, nil
}

// VacateUnit releases a tenant's unit
func (s *TenantService) VacateUnit(ctx context.Context, tenantID uuid.UUID) (*party.Tenant, error) {
	tenant, err := s.GetTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	tenant.VacateUnit()
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to save tenant: %w", err)
	}
	return tenant, nil
}

// UpdateTenantRequest carries mutable profile fields
type UpdateTenantRequest struct {
	Name  string
	Email string
	Phone string
}

// UpdateTenant changes a tenant's contact details
func (s *TenantService) UpdateTenant(ctx context.Context, id uuid.UUID, req UpdateTenantRequest) (*party.Tenant, error) {
	tenant, err := s.GetTenant(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := tenant.UpdateContact(req.Name, req.Email, req.Phone); err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to save tenant: %w", err)
	}
	return tenant, nil
}
