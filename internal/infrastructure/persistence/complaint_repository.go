package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/complaint"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormComplaintRepository implements complaint.Repository using GORM
type GormComplaintRepository struct {
	db *gorm.DB
}

// NewGormComplaintRepository creates a new GORM-based complaint repository
func NewGormComplaintRepository(db *gorm.DB) *GormComplaintRepository {
	return &GormComplaintRepository{db: db}
}

// Create inserts a complaint
func (r *GormComplaintRepository) Create(ctx context.Context, c *complaint.Complaint) error {
	model := models.ComplaintModelFromDomain(c)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create complaint: %w", err)
	}
	return nil
}

// FindByID finds a complaint by ID
func (r *GormComplaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*complaint.Complaint, error) {
	var model models.ComplaintModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTenant returns a page of a tenant's complaints plus the total count
func (r *GormComplaintRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*complaint.Complaint, int64, error) {
	return r.findPaged(ctx, "tenant_id = ?", tenantID, filter)
}

// FindBySite returns a page of a site's complaints plus the total count
func (r *GormComplaintRepository) FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*complaint.Complaint, int64, error) {
	return r.findPaged(ctx, "site_id = ?", siteID, filter)
}

// Save persists complaint mutations with optimistic locking
func (r *GormComplaintRepository) Save(ctx context.Context, c *complaint.Complaint) error {
	model := models.ComplaintModelFromDomain(c)
	result := r.db.WithContext(ctx).
		Model(&models.ComplaintModel{}).
		Where("id = ? AND version = ?", c.ID, c.Version-1).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to save complaint: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// findPaged runs one scoped count plus one scoped page query
func (r *GormComplaintRepository) findPaged(ctx context.Context, cond string, arg interface{}, filter shared.Filter) ([]*complaint.Complaint, int64, error) {
	var total int64
	countQuery := r.applyStatusFilter(
		r.db.WithContext(ctx).Model(&models.ComplaintModel{}).Where(cond, arg),
		filter,
	)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var complaintModels []models.ComplaintModel
	query := r.applyFilter(r.applyStatusFilter(r.db.WithContext(ctx).Where(cond, arg), filter), filter)
	if err := query.Find(&complaintModels).Error; err != nil {
		return nil, 0, err
	}

	complaints := make([]*complaint.Complaint, len(complaintModels))
	for i := range complaintModels {
		complaints[i] = complaintModels[i].ToDomain()
	}
	return complaints, total, nil
}

// applyStatusFilter narrows the query to a requested status or category
func (r *GormComplaintRepository) applyStatusFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if category, ok := filter.Filters["category"]; ok {
		query = query.Where("category = ?", category)
	}
	return query
}

// applyFilter applies pagination and ordering to the query
func (r *GormComplaintRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, CommonSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}
