package complaint

import (
	"context"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
)

// Repository persists complaints
type Repository interface {
	Create(ctx context.Context, complaint *Complaint) error
	FindByID(ctx context.Context, id uuid.UUID) (*Complaint, error)
	FindByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*Complaint, int64, error)
	FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*Complaint, int64, error)
	Save(ctx context.Context, complaint *Complaint) error
}
