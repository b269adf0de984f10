package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	partyapp "github.com/propman/backend/internal/application/party"
	"github.com/propman/backend/internal/interfaces/http/dto"
	"github.com/propman/backend/internal/interfaces/http/middleware"
)

// TenantHandler handles tenant onboarding and unit assignment endpoints
type TenantHandler struct {
	BaseHandler
	tenantService *partyapp.TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenantService *partyapp.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// CreateTenantRequest represents a tenant onboarding request
type CreateTenantRequest struct {
	Name   string  `json:"name" binding:"required,min=1,max=200"`
	Email  string  `json:"email" binding:"omitempty,email,max=200"`
	Phone  string  `json:"phone" binding:"required,min=6,max=20"`
	SiteID string  `json:"site_id" binding:"required,uuid"`
	UnitID *string `json:"unit_id" binding:"omitempty,uuid"`
}

// UpdateTenantRequest represents a tenant contact update
type UpdateTenantRequest struct {
	Name  string `json:"name" binding:"omitempty,min=1,max=200"`
	Email string `json:"email" binding:"omitempty,email,max=200"`
	Phone string `json:"phone" binding:"omitempty,min=6,max=20"`
}

// AssignUnitRequest represents a unit assignment
type AssignUnitRequest struct {
	UnitID string `json:"unit_id" binding:"required,uuid"`
}

// Create onboards a tenant, optionally assigning a unit right away
func (h *TenantHandler) Create(c *gin.Context) {
	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	siteID, err := uuid.Parse(req.SiteID)
	if err != nil {
		h.BadRequest(c, "Invalid site ID format")
		return
	}

	appReq := partyapp.CreateTenantRequest{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		SiteID: siteID,
	}
	if req.UnitID != nil {
		unitID, err := uuid.Parse(*req.UnitID)
		if err != nil {
			h.BadRequest(c, "Invalid unit ID format")
			return
		}
		appReq.UnitID = &unitID
	}

	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tenantResponseOf(tenant))
}

// GetByID retrieves a tenant by ID
func (h *TenantHandler) GetByID(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	tenant, err := h.tenantService.GetTenant(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenantResponseOf(tenant))
}

// ListBySite returns the tenants of one site
func (h *TenantHandler) ListBySite(c *gin.Context) {
	siteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid site ID format")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := listFilter(req)
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	tenants, total, err := h.tenantService.ListTenantsBySite(c.Request.Context(), siteID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]TenantResponse, len(tenants))
	for i, tenant := range tenants {
		responses[i] = tenantResponseOf(tenant)
	}

	h.SuccessWithMeta(c, responses, total, filter.Page, filter.PageSize)
}

// AssignUnit moves a tenant into a unit
func (h *TenantHandler) AssignUnit(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	var req AssignUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	unitID, err := uuid.Parse(req.UnitID)
	if err != nil {
		h.BadRequest(c, "Invalid unit ID format")
		return
	}

	tenant, err := h.tenantService.AssignUnit(c.Request.Context(), tenantID, unitID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenantResponseOf(tenant))
}

// VacateUnit moves a tenant out of their current unit
func (h *TenantHandler) VacateUnit(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	tenant, err := h.tenantService.VacateUnit(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenantResponseOf(tenant))
}

// Update changes a tenant's contact details
func (h *TenantHandler) Update(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	var req UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	tenant, err := h.tenantService.UpdateTenant(c.Request.Context(), tenantID, partyapp.UpdateTenantRequest{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenantResponseOf(tenant))
}
