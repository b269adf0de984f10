package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	partyapp "github.com/propman/backend/internal/application/party"
	"github.com/propman/backend/internal/domain/billing"
	"github.com/propman/backend/internal/interfaces/http/dto"
	"github.com/propman/backend/internal/interfaces/http/middleware"
)

// PropertyHandler handles site and unit management endpoints
type PropertyHandler struct {
	BaseHandler
	propertyService *partyapp.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(propertyService *partyapp.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// CreateSiteRequest represents a site creation request
type CreateSiteRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Address string `json:"address" binding:"required,min=1,max=500"`
	City    string `json:"city" binding:"required,min=1,max=100"`
}

// CreateUnitRequest represents a unit creation request
type CreateUnitRequest struct {
	SiteID     string  `json:"site_id" binding:"required,uuid"`
	LandlordID string  `json:"landlord_id" binding:"required,uuid"`
	Label      string  `json:"label" binding:"required,min=1,max=100"`
	AreaSqft   float64 `json:"area_sqft" binding:"required,gt=0"`
}

// ConfigureBillingRequest represents a unit billing configuration update
type ConfigureBillingRequest struct {
	Basis           string  `json:"basis" binding:"required,oneof=PER_SQFT FLAT"`
	MaintenanceRate float64 `json:"maintenance_rate" binding:"gte=0"`
	GSTPercent      float64 `json:"gst_percent" binding:"gte=0,lte=100"`
	ElectricityRate float64 `json:"electricity_rate" binding:"gte=0"`
	Cycle           string  `json:"cycle" binding:"required,oneof=MONTHLY QUARTERLY ANNUAL"`
}

// RecordMeterReadingRequest represents a meter reading submission
type RecordMeterReadingRequest struct {
	Reading float64 `json:"reading" binding:"gte=0"`
}

// CreateSite registers a new site
func (h *PropertyHandler) CreateSite(c *gin.Context) {
	var req CreateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	site, err := h.propertyService.CreateSite(c.Request.Context(), req.Name, req.Address, req.City)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, siteResponseOf(site))
}

// GetSite retrieves a site by ID
func (h *PropertyHandler) GetSite(c *gin.Context) {
	siteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid site ID format")
		return
	}

	site, err := h.propertyService.GetSite(c.Request.Context(), siteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, siteResponseOf(site))
}

// ListSites returns a paginated list of sites
func (h *PropertyHandler) ListSites(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := listFilter(req)
	if city := c.Query("city"); city != "" {
		filter.Filters["city"] = city
	}

	sites, total, err := h.propertyService.ListSites(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]SiteResponse, len(sites))
	for i, site := range sites {
		responses[i] = siteResponseOf(site)
	}

	h.SuccessWithMeta(c, responses, total, filter.Page, filter.PageSize)
}

// CreateUnit registers a unit under a site for a landlord
func (h *PropertyHandler) CreateUnit(c *gin.Context) {
	var req CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	siteID, err := uuid.Parse(req.SiteID)
	if err != nil {
		h.BadRequest(c, "Invalid site ID format")
		return
	}
	landlordID, err := uuid.Parse(req.LandlordID)
	if err != nil {
		h.BadRequest(c, "Invalid landlord ID format")
		return
	}

	unit, err := h.propertyService.CreateUnit(c.Request.Context(), partyapp.CreateUnitRequest{
		SiteID:     siteID,
		LandlordID: landlordID,
		Label:      req.Label,
		AreaSqft:   toDecimal(req.AreaSqft),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, unitResponseOf(unit))
}

// GetUnit retrieves a unit by ID
func (h *PropertyHandler) GetUnit(c *gin.Context) {
	unitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid unit ID format")
		return
	}

	unit, err := h.propertyService.GetUnit(c.Request.Context(), unitID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, unitResponseOf(unit))
}

// ListUnitsBySite returns the units of one site
func (h *PropertyHandler) ListUnitsBySite(c *gin.Context) {
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

	units, total, err := h.propertyService.ListUnitsBySite(c.Request.Context(), siteID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]UnitResponse, len(units))
	for i, unit := range units {
		responses[i] = unitResponseOf(unit)
	}

	h.SuccessWithMeta(c, responses, total, filter.Page, filter.PageSize)
}

// ConfigureBilling updates a unit's maintenance, GST and electricity settings
func (h *PropertyHandler) ConfigureBilling(c *gin.Context) {
	unitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid unit ID format")
		return
	}

	var req ConfigureBillingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	unit, err := h.propertyService.ConfigureUnitBilling(c.Request.Context(), unitID, partyapp.ConfigureBillingRequest{
		Basis:           billing.MaintenanceBasis(req.Basis),
		MaintenanceRate: toDecimal(req.MaintenanceRate),
		GSTPercent:      toDecimal(req.GSTPercent),
		ElectricityRate: toDecimal(req.ElectricityRate),
		Cycle:           billing.BillingCycle(req.Cycle),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, unitResponseOf(unit))
}

// RecordMeterReading stores the latest cumulative meter reading for a unit
func (h *PropertyHandler) RecordMeterReading(c *gin.Context) {
	unitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid unit ID format")
		return
	}

	var req RecordMeterReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	unit, err := h.propertyService.RecordMeterReading(c.Request.Context(), unitID, toDecimal(req.Reading))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, unitResponseOf(unit))
}
