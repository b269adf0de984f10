package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/propman/backend/internal/application/billing"
	"github.com/propman/backend/internal/infrastructure/scheduler"
	"github.com/propman/backend/internal/interfaces/http/dto"
	"github.com/propman/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
)

// BillingHandler handles bill generation and lookup endpoints
type BillingHandler struct {
	BaseHandler
	billingService   *billingapp.BillingService
	billingScheduler *scheduler.BillingScheduler
}

// NewBillingHandler creates a new BillingHandler. The scheduler may be nil
// when the billing job is disabled; manual runs then call the service
// directly.
func NewBillingHandler(billingService *billingapp.BillingService, billingScheduler *scheduler.BillingScheduler) *BillingHandler {
	return &BillingHandler{
		billingService:   billingService,
		billingScheduler: billingScheduler,
	}
}

// GenerateBillRequest represents a single-unit bill generation request
type GenerateBillRequest struct {
	UnitID         string   `json:"unit_id" binding:"required,uuid"`
	PeriodStart    string   `json:"period_start" binding:"required,datetime=2006-01-02"`
	CurrentReading *float64 `json:"current_reading" binding:"omitempty,gte=0"`
	TenantID       *string  `json:"tenant_id" binding:"omitempty,uuid"`
	Remarks        string   `json:"remarks" binding:"max=500"`
}

// RunBillingRequest represents a manual billing cycle run. Without a
// period_start the run bills the current month.
type RunBillingRequest struct {
	PeriodStart string `json:"period_start" binding:"omitempty,datetime=2006-01-02"`
}

// Generate creates one bill for one unit and period
func (h *BillingHandler) Generate(c *gin.Context) {
	var req GenerateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	unitID, err := uuid.Parse(req.UnitID)
	if err != nil {
		h.BadRequest(c, "Invalid unit ID format")
		return
	}
	periodStart, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		h.BadRequest(c, "Invalid period start date")
		return
	}

	appReq := billingapp.GenerateBillRequest{
		UnitID:      unitID,
		PeriodStart: periodStart,
		Remarks:     req.Remarks,
	}
	if req.CurrentReading != nil {
		reading := decimal.NewFromFloat(*req.CurrentReading)
		appReq.CurrentReading = &reading
	}
	if req.TenantID != nil {
		tenantID, err := uuid.Parse(*req.TenantID)
		if err != nil {
			h.BadRequest(c, "Invalid tenant ID format")
			return
		}
		appReq.TenantID = &tenantID
	}

	bill, err := h.billingService.GenerateBill(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, billResponseOf(bill))
}

// Run triggers a billing cycle over every billable unit
func (h *BillingHandler) Run(c *gin.Context) {
	// Body is optional; an empty request bills the current month
	var req RunBillingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.HandleValidationError(c, err)
			return
		}
	}

	periodStart := monthStart(time.Now())
	if req.PeriodStart != "" {
		parsed, err := time.Parse("2006-01-02", req.PeriodStart)
		if err != nil {
			h.BadRequest(c, "Invalid period start date")
			return
		}
		periodStart = parsed
	}

	var summary *billingapp.GenerationSummary
	var err error
	if h.billingScheduler != nil {
		summary, err = h.billingScheduler.TriggerManualRun(c.Request.Context(), periodStart)
	} else {
		summary, err = h.billingService.GenerateForBillableUnits(c.Request.Context(), periodStart)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"period_start": periodStart.Format("2006-01-02"),
		"summary":      summary,
	})
}

// GetByID retrieves a bill by ID
func (h *BillingHandler) GetByID(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	bill, err := h.billingService.GetBill(c.Request.Context(), billID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, billResponseOf(bill))
}

// ListByLandlord returns a landlord's bills
func (h *BillingHandler) ListByLandlord(c *gin.Context) {
	landlordID, err := uuid.Parse(c.Param("landlordId"))
	if err != nil {
		h.BadRequest(c, "Invalid landlord ID format")
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

	bills, total, err := h.billingService.ListBillsByLandlord(c.Request.Context(), landlordID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]BillResponse, len(bills))
	for i, bill := range bills {
		responses[i] = billResponseOf(bill)
	}

	h.SuccessWithMeta(c, responses, total, filter.Page, filter.PageSize)
}

// ListByUnit returns a unit's bills
func (h *BillingHandler) ListByUnit(c *gin.Context) {
	unitID, err := uuid.Parse(c.Param("unitId"))
	if err != nil {
		h.BadRequest(c, "Invalid unit ID format")
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

	bills, total, err := h.billingService.ListBillsByUnit(c.Request.Context(), unitID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]BillResponse, len(bills))
	for i, bill := range bills {
		responses[i] = billResponseOf(bill)
	}

	h.SuccessWithMeta(c, responses, total, filter.Page, filter.PageSize)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
