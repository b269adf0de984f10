package party

import (
	"context"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
)

// LandlordRepository persists landlords
type LandlordRepository interface {
	Create(ctx context.Context, landlord *Landlord) error
	FindByID(ctx context.Context, id uuid.UUID) (*Landlord, error)
	FindByPhone(ctx context.Context, phone string) (*Landlord, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Landlord, int64, error)
	Save(ctx context.Context, landlord *Landlord) error
}

// TenantRepository persists tenants
type TenantRepository interface {
	Create(ctx context.Context, tenant *Tenant) error
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	FindByPhone(ctx context.Context, phone string) (*Tenant, error)
	FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*Tenant, int64, error)
	Save(ctx context.Context, tenant *Tenant) error
}

// SiteRepository persists sites
type SiteRepository interface {
	Create(ctx context.Context, site *Site) error
	FindByID(ctx context.Context, id uuid.UUID) (*Site, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Site, int64, error)
	Save(ctx context.Context, site *Site) error
}

// UnitRepository persists units
type UnitRepository interface {
	Create(ctx context.Context, unit *Unit) error
	FindByID(ctx context.Context, id uuid.UUID) (*Unit, error)
	FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*Unit, int64, error)
	FindByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*Unit, error)
	// FindBillable returns every unit with a configured maintenance rate,
	// the scheduled generator's work list.
	FindBillable(ctx context.Context) ([]*Unit, error)
	Save(ctx context.Context, unit *Unit) error
}
