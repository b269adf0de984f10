package party

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/billing"
	"github.com/propman/backend/internal/domain/party"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PropertyService manages sites and their units
type PropertyService struct {
	siteRepo     party.SiteRepository
	unitRepo     party.UnitRepository
	landlordRepo party.LandlordRepository
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(
	siteRepo party.SiteRepository,
	unitRepo party.UnitRepository,
	landlordRepo party.LandlordRepository,
) *PropertyService {
	return &PropertyService{
		siteRepo:     siteRepo,
		unitRepo:     unitRepo,
		landlordRepo: landlordRepo,
	}
}

// CreateSite registers a managed property
func (s *PropertyService) CreateSite(ctx context.Context, name, address, city string) (*party.Site, error) {
	site, err := party.NewSite(name, address, city)
	if err != nil {
		return nil, err
	}
	if err := s.siteRepo.Create(ctx, site); err != nil {
		return nil, fmt.Errorf("failed to create site: %w", err)
	}
	return site, nil
}

// GetSite returns one site by id
func (s *PropertyService) GetSite(ctx context.Context, id uuid.UUID) (*party.Site, error) {
	if id == uuid.Nil {
		return nil, shared.NewValidationError("Site ID is required")
	}
	site, err := s.siteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get site: %w", err)
	}
	if site == nil {
		return nil, shared.ErrNotFound
	}
	return site, nil
}

// ListSites returns all sites matching the filter
func (s *PropertyService) ListSites(ctx context.Context, filter shared.Filter) ([]*party.Site, int64, error) {
	return s.siteRepo.FindAll(ctx, filter)
}

// CreateUnitRequest registers a billable unit under a site
type CreateUnitRequest struct {
	SiteID     uuid.UUID
	LandlordID uuid.UUID
	Label      string
	AreaSqft   decimal.Decimal
}

// CreateUnit registers a unit, verifying its site and landlord exist
func (s *PropertyService) CreateUnit(ctx context.Context, req CreateUnitRequest) (*party.Unit, error) {
	site, err := s.siteRepo.FindByID(ctx, req.SiteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get site: %w", err)
	}
	if site == nil {
		return nil, shared.ErrNotFound
	}
	landlord, err := s.landlordRepo.FindByID(ctx, req.LandlordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get landlord: %w", err)
	}
	if landlord == nil {
		return nil, shared.ErrNotFound
	}

	unit, err := party.NewUnit(req.SiteID, req.LandlordID, req.Label, req.AreaSqft)
	if err != nil {
		return nil, err
	}
	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return nil, fmt.Errorf("failed to create unit: %w", err)
	}
	return unit, nil
}

// GetUnit returns one unit by id
func (s *PropertyService) GetUnit(ctx context.Context, id uuid.UUID) (*party.Unit, error) {
	if id == uuid.Nil {
		return nil, shared.NewValidationError("Unit ID is required")
	}
	unit, err := s.unitRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}
	if unit == nil {
		return nil, shared.ErrNotFound
	}
	return unit, nil
}

// ListUnitsBySite returns a site's units
func (s *PropertyService) ListUnitsBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*party.Unit, int64, error) {
	if siteID == uuid.Nil {
		return nil, 0, shared.NewValidationError("Site ID is required")
	}
	return s.unitRepo.FindBySite(ctx, siteID, filter)
}

// ConfigureBillingRequest sets the rates bill generation reads for a unit
type ConfigureBillingRequest struct {
	Basis           billing.MaintenanceBasis
	MaintenanceRate decimal.Decimal
	GSTPercent      decimal.Decimal
	ElectricityRate decimal.Decimal
	Cycle           billing.BillingCycle
}

// ConfigureUnitBilling updates a unit's billing configuration
func (s *PropertyService) ConfigureUnitBilling(ctx context.Context, unitID uuid.UUID, req ConfigureBillingRequest) (*party.Unit, error) {
	unit, err := s.GetUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if err := unit.ConfigureBilling(req.Basis, req.MaintenanceRate, req.GSTPercent, req.ElectricityRate, req.Cycle); err != nil {
		return nil, err
	}
	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, fmt.Errorf("failed to save unit: %w", err)
	}
	return unit, nil
}

// RecordMeterReading advances a unit's electricity meter outside of bill
// generation, e.g. for an interim reading.
func (s *PropertyService) RecordMeterReading(ctx context.Context, unitID uuid.UUID, reading decimal.Decimal) (*party.Unit, error) {
	unit, err := s.GetUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if _, err := unit.RecordMeterReading(reading); err != nil {
		return nil, err
	}
	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, fmt.Errorf("failed to save unit: %w", err)
	}
	return unit, nil
}
