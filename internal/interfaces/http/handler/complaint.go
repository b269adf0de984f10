package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	complaintapp "github.com/propman/backend/internal/application/complaint"
	"github.com/propman/backend/internal/domain/complaint"
	"github.com/propman/backend/internal/interfaces/http/dto"
	"github.com/propman/backend/internal/interfaces/http/middleware"
)

// ComplaintHandler handles tenant complaint endpoints
type ComplaintHandler struct {
	BaseHandler
	complaintService *complaintapp.ComplaintService
}

// NewComplaintHandler creates a new ComplaintHandler
func NewComplaintHandler(complaintService *complaintapp.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaintService}
}

// CreateComplaintRequest represents a new complaint
type CreateComplaintRequest struct {
	TenantID    string `json:"tenant_id" binding:"required,uuid"`
	Category    string `json:"category" binding:"required,min=1,max=50"`
	Subject     string `json:"subject" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
}

// TransitionComplaintRequest represents a complaint status change
type TransitionComplaintRequest struct {
	Status string `json:"status" binding:"required,oneof=OPEN IN_PROGRESS RESOLVED CLOSED"`
}

// ResolveComplaintRequest represents a complaint resolution
type ResolveComplaintRequest struct {
	Resolution string `json:"resolution" binding:"required,min=1,max=2000"`
}

// ComplaintResponse represents a complaint in API responses
type ComplaintResponse struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenant_id"`
	SiteID      string     `json:"site_id"`
	UnitID      string     `json:"unit_id"`
	Category    string     `json:"category"`
	Subject     string     `json:"subject"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Resolution  string     `json:"resolution,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Version     int        `json:"version"`
}

func complaintResponseOf(cm *complaint.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:          cm.ID.String(),
		TenantID:    cm.TenantID.String(),
		SiteID:      cm.SiteID.String(),
		UnitID:      cm.UnitID.String(),
		Category:    string(cm.Category),
		Subject:     cm.Subject,
		Description: cm.Description,
		Status:      string(cm.Status),
		Resolution:  cm.Resolution,
		ResolvedAt:  cm.ResolvedAt,
		CreatedAt:   cm.CreatedAt,
		UpdatedAt:   cm.UpdatedAt,
		Version:     cm.Version,
	}
}

// Create files a complaint for a tenant's current unit
func (h *ComplaintHandler) Create(c *gin.Context) {
	var req CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	tenantID, err := uuid.Parse(req.TenantID)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	created, err := h.complaintService.CreateComplaint(c.Request.Context(), complaintapp.CreateComplaintRequest{
		TenantID:    tenantID,
		Category:    complaint.Category(req.Category),
		Subject:     req.Subject,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, complaintResponseOf(created))
}

// GetByID retrieves a complaint by ID
func (h *ComplaintHandler) GetByID(c *gin.Context) {
	complaintID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid complaint ID format")
		return
	}

	found, err := h.complaintService.GetComplaint(c.Request.Context(), complaintID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, complaintResponseOf(found))
}

// ListByTenant returns one tenant's complaints
func (h *ComplaintHandler) ListByTenant(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("tenantId"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
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

	complaints, total, err := h.complaintService.ListComplaintsByTenant(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]ComplaintResponse, len(complaints))
	for i, cm := range complaints {
		responses[i] = complaintResponseOf(cm)
	}

	h.SuccessWithMeta(c, responses, total, filter.Page, filter.PageSize)
}

// ListBySite returns one site's complaints
func (h *ComplaintHandler) ListBySite(c *gin.Context) {
	siteID, err := uuid.Parse(c.Param("siteId"))
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
	if category := c.Query("category"); category != "" {
		filter.Filters["category"] = category
	}

	complaints, total, err := h.complaintService.ListComplaintsBySite(c.Request.Context(), siteID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]ComplaintResponse, len(complaints))
	for i, cm := range complaints {
		responses[i] = complaintResponseOf(cm)
	}

	h.SuccessWithMeta(c, responses, total, filter.Page, filter.PageSize)
}

// Transition moves a complaint to the next workflow status
func (h *ComplaintHandler) Transition(c *gin.Context) {
	complaintID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid complaint ID format")
		return
	}

	var req TransitionComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	updated, err := h.complaintService.TransitionComplaint(c.Request.Context(), complaintID, complaint.Status(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, complaintResponseOf(updated))
}

// Resolve closes out a complaint with a resolution note
func (h *ComplaintHandler) Resolve(c *gin.Context) {
	complaintID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid complaint ID format")
		return
	}

	var req ResolveComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resolved, err := h.complaintService.ResolveComplaint(c.Request.Context(), complaintID, req.Resolution)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, complaintResponseOf(resolved))
}
