package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	partyapp "github.com/propman/backend/internal/application/party"
	"github.com/propman/backend/internal/domain/ledger"
	"github.com/propman/backend/internal/interfaces/http/middleware"
)

// WalletHandler handles wallet top-up initiation and gateway callbacks
type WalletHandler struct {
	BaseHandler
	walletService *partyapp.WalletService
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(walletService *partyapp.WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// InitiateTopUpRequest represents a wallet top-up request
type InitiateTopUpRequest struct {
	PartyType string  `json:"party_type" binding:"required,oneof=LANDLORD TENANT"`
	PartyID   string  `json:"party_id" binding:"required,uuid"`
	SiteID    string  `json:"site_id" binding:"required,uuid"`
	UnitID    string  `json:"unit_id" binding:"required,uuid"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
}

// TopUpCallbackRequest represents the gateway's payment confirmation callback
type TopUpCallbackRequest struct {
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
}

// InitiateTopUp opens a gateway order to credit a party's wallet
func (h *WalletHandler) InitiateTopUp(c *gin.Context) {
	var req InitiateTopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	partyID, err := uuid.Parse(req.PartyID)
	if err != nil {
		h.BadRequest(c, "Invalid party ID format")
		return
	}
	siteID, err := uuid.Parse(req.SiteID)
	if err != nil {
		h.BadRequest(c, "Invalid site ID format")
		return
	}
	unitID, err := uuid.Parse(req.UnitID)
	if err != nil {
		h.BadRequest(c, "Invalid unit ID format")
		return
	}

	topUp, err := h.walletService.InitiateTopUp(c.Request.Context(), partyapp.InitiateTopUpRequest{
		PartyType: ledger.PartyType(req.PartyType),
		PartyID:   partyID,
		SiteID:    siteID,
		UnitID:    unitID,
		Amount:    toDecimal(req.Amount),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, walletTopUpResponseOf(topUp))
}

// Callback completes a top-up from the gateway confirmation. Unauthenticated;
// the request is trusted only after signature verification.
func (h *WalletHandler) Callback(c *gin.Context) {
	var req TopUpCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	topUp, err := h.walletService.HandleCallback(c.Request.Context(), partyapp.TopUpCallbackRequest{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, walletTopUpResponseOf(topUp))
}
