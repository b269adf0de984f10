package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	ledgerapp "github.com/propman/backend/internal/application/ledger"
)

// PayableHandler handles consolidated payable reconciliation endpoints
type PayableHandler struct {
	BaseHandler
	payableService *ledgerapp.ConsolidatedPayableService
}

// NewPayableHandler creates a new PayableHandler
func NewPayableHandler(payableService *ledgerapp.ConsolidatedPayableService) *PayableHandler {
	return &PayableHandler{payableService: payableService}
}

// GetConsolidatedPayable returns the settlement plan for a landlord without
// committing anything
func (h *PayableHandler) GetConsolidatedPayable(c *gin.Context) {
	landlordID, err := uuid.Parse(c.Param("landlordId"))
	if err != nil {
		h.BadRequest(c, "Invalid landlord ID format")
		return
	}

	result, err := h.payableService.GetConsolidatedPayable(c.Request.Context(), landlordID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Settle commits the settlement plan, marking fully covered bills as paid
func (h *PayableHandler) Settle(c *gin.Context) {
	landlordID, err := uuid.Parse(c.Param("landlordId"))
	if err != nil {
		h.BadRequest(c, "Invalid landlord ID format")
		return
	}

	result, err := h.payableService.Settle(c.Request.Context(), landlordID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
