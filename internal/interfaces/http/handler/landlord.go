package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	partyapp "github.com/propman/backend/internal/application/party"
	"github.com/propman/backend/internal/domain/ledger"
	"github.com/propman/backend/internal/interfaces/http/dto"
	"github.com/propman/backend/internal/interfaces/http/middleware"
)

// LandlordHandler handles landlord onboarding and management endpoints
type LandlordHandler struct {
	BaseHandler
	landlordService *partyapp.LandlordService
}

// NewLandlordHandler creates a new LandlordHandler
func NewLandlordHandler(landlordService *partyapp.LandlordService) *LandlordHandler {
	return &LandlordHandler{landlordService: landlordService}
}

// CreateLandlordRequest represents a landlord onboarding request
type CreateLandlordRequest struct {
	Name               string   `json:"name" binding:"required,min=1,max=200"`
	Email              string   `json:"email" binding:"omitempty,email,max=200"`
	Phone              string   `json:"phone" binding:"required,min=6,max=20"`
	OpeningBalance     *float64 `json:"opening_balance" binding:"omitempty,gte=0"`
	OpeningBalanceType string   `json:"opening_balance_type" binding:"omitempty,oneof=DEBIT CREDIT"`
}

// UpdateLandlordRequest represents a landlord contact update
type UpdateLandlordRequest struct {
	Name  string `json:"name" binding:"omitempty,min=1,max=200"`
	Email string `json:"email" binding:"omitempty,email,max=200"`
	Phone string `json:"phone" binding:"omitempty,min=6,max=20"`
}

// Create onboards a landlord, optionally seeding an opening balance
func (h *LandlordHandler) Create(c *gin.Context) {
	var req CreateLandlordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	appReq := partyapp.CreateLandlordRequest{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}
	if req.OpeningBalance != nil {
		appReq.OpeningBalance = toDecimal(*req.OpeningBalance)
		appReq.OpeningBalanceType = ledger.BalanceType(req.OpeningBalanceType)
	}

	landlord, err := h.landlordService.CreateLandlord(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, landlordResponseOf(landlord))
}

// GetByID retrieves a landlord by ID
func (h *LandlordHandler) GetByID(c *gin.Context) {
	landlordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid landlord ID format")
		return
	}

	landlord, err := h.landlordService.GetLandlord(c.Request.Context(), landlordID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, landlordResponseOf(landlord))
}

// List returns a paginated list of landlords
func (h *LandlordHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := listFilter(req)
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	landlords, total, err := h.landlordService.ListLandlords(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]LandlordResponse, len(landlords))
	for i, landlord := range landlords {
		responses[i] = landlordResponseOf(landlord)
	}

	h.SuccessWithMeta(c, responses, total, filter.Page, filter.PageSize)
}

// Update changes a landlord's contact details
func (h *LandlordHandler) Update(c *gin.Context) {
	landlordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid landlord ID format")
		return
	}

	var req UpdateLandlordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	landlord, err := h.landlordService.UpdateLandlord(c.Request.Context(), landlordID, partyapp.UpdateLandlordRequest{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, landlordResponseOf(landlord))
}

// Deactivate marks a landlord as inactive
func (h *LandlordHandler) Deactivate(c *gin.Context) {
	landlordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid landlord ID format")
		return
	}

	if err := h.landlordService.DeactivateLandlord(c.Request.Context(), landlordID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Landlord deactivated"})
}
