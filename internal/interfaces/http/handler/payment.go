package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/propman/backend/internal/application/billing"
	"github.com/propman/backend/internal/interfaces/http/middleware"
)

// PaymentHandler handles bill payment initiation and gateway callbacks
type PaymentHandler struct {
	BaseHandler
	paymentService *billingapp.BillPaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *billingapp.BillPaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// InitiatePaymentRequest represents a request to pay a bill via the gateway
type InitiatePaymentRequest struct {
	BillID string `json:"bill_id" binding:"required,uuid"`
}

// PaymentCallbackRequest represents the gateway's payment confirmation callback
type PaymentCallbackRequest struct {
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
}

// Initiate opens a gateway order for a bill's outstanding amount
func (h *PaymentHandler) Initiate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	billID, err := uuid.Parse(req.BillID)
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	payment, err := h.paymentService.InitiatePayment(c.Request.Context(), billID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, billPaymentResponseOf(payment))
}

// Callback completes a bill payment from the gateway confirmation.
// Unauthenticated; the request is trusted only after signature verification.
func (h *PaymentHandler) Callback(c *gin.Context) {
	var req PaymentCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	payment, err := h.paymentService.HandleCallback(c.Request.Context(), billingapp.PaymentCallbackRequest{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, billPaymentResponseOf(payment))
}

// GetByID retrieves a payment attempt by ID
func (h *PaymentHandler) GetByID(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), paymentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, billPaymentResponseOf(payment))
}

// ListByBill returns every payment attempt against one bill
func (h *PaymentHandler) ListByBill(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	payments, err := h.paymentService.ListPaymentsByBill(c.Request.Context(), billID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]BillPaymentResponse, len(payments))
	for i, payment := range payments {
		responses[i] = billPaymentResponseOf(payment)
	}

	h.Success(c, responses)
}
