package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/party"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSiteRepository implements party.SiteRepository using GORM
type GormSiteRepository struct {
	db *gorm.DB
}

// NewGormSiteRepository creates a new GORM-based site repository
func NewGormSiteRepository(db *gorm.DB) *GormSiteRepository {
	return &GormSiteRepository{db: db}
}

// Create inserts a site
func (r *GormSiteRepository) Create(ctx context.Context, site *party.Site) error {
	model := models.SiteModelFromDomain(site)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create site: %w", err)
	}
	return nil
}

// FindByID finds a site by ID
func (r *GormSiteRepository) FindByID(ctx context.Context, id uuid.UUID) (*party.Site, error) {
	var model models.SiteModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of sites plus the total count
func (r *GormSiteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*party.Site, int64, error) {
	var total int64
	countQuery := r.applySearch(r.db.WithContext(ctx).Model(&models.SiteModel{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var siteModels []models.SiteModel
	query := applyPartyFilter(r.applySearch(r.db.WithContext(ctx), filter), filter)
	if err := query.Find(&siteModels).Error; err != nil {
		return nil, 0, err
	}

	sites := make([]*party.Site, len(siteModels))
	for i := range siteModels {
		sites[i] = siteModels[i].ToDomain()
	}
	return sites, total, nil
}

// Save persists site mutations with optimistic locking
func (r *GormSiteRepository) Save(ctx context.Context, site *party.Site) error {
	model := models.SiteModelFromDomain(site)
	result := r.db.WithContext(ctx).
		Model(&models.SiteModel{}).
		Where("id = ? AND version = ?", site.ID, site.Version-1).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to save site: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// applySearch applies name/city search to the query
func (r *GormSiteRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR city ILIKE ?", pattern, pattern)
	}
	if city, ok := filter.Filters["city"]; ok {
		query = query.Where("city = ?", city)
	}
	return query
}
