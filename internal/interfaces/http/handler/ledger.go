package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	ledgerapp "github.com/propman/backend/internal/application/ledger"
	"github.com/propman/backend/internal/domain/ledger"
	"github.com/propman/backend/internal/interfaces/http/dto"
	"github.com/propman/backend/internal/interfaces/http/middleware"
)

// LedgerHandler handles landlord ledger and payment ledger endpoints
type LedgerHandler struct {
	BaseHandler
	ledgerService        *ledgerapp.LedgerService
	paymentLedgerService *ledgerapp.PaymentLedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *ledgerapp.LedgerService, paymentLedgerService *ledgerapp.PaymentLedgerService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService:        ledgerService,
		paymentLedgerService: paymentLedgerService,
	}
}

// RecordEntryRequest represents a manual landlord ledger posting
type RecordEntryRequest struct {
	LandlordID      string  `json:"landlord_id" binding:"required,uuid"`
	SiteID          string  `json:"site_id" binding:"required,uuid"`
	UnitID          string  `json:"unit_id" binding:"required,uuid"`
	BillID          *string `json:"bill_id" binding:"omitempty,uuid"`
	Purpose         string  `json:"purpose" binding:"required,min=1,max=200"`
	TransactionType string  `json:"transaction_type" binding:"required,oneof=BILL PAYMENT OPENING_BALANCE"`
	Amount          float64 `json:"amount" binding:"required,gt=0"`
}

// RecordPaymentEntryRequest represents a manual payment ledger posting
type RecordPaymentEntryRequest struct {
	PartyType    string  `json:"party_type" binding:"required,oneof=LANDLORD TENANT"`
	PartyID      string  `json:"party_id" binding:"required,uuid"`
	SiteID       string  `json:"site_id" binding:"required,uuid"`
	UnitID       string  `json:"unit_id" binding:"required,uuid"`
	BillID       *string `json:"bill_id" binding:"omitempty,uuid"`
	EntryType    string  `json:"entry_type" binding:"required,oneof=DEBIT CREDIT"`
	DebitAmount  float64 `json:"debit_amount" binding:"gte=0"`
	CreditAmount float64 `json:"credit_amount" binding:"gte=0"`
	Remark       string  `json:"remark" binding:"max=500"`
	PaymentMode  string  `json:"payment_mode" binding:"max=50"`
}

// CurrentBalanceResponse represents a landlord's running balance
type CurrentBalanceResponse struct {
	LandlordID string          `json:"landlord_id"`
	Balance    BalanceResponse `json:"balance"`
}

// RecordEntry posts a manual entry to a landlord's ledger
func (h *LedgerHandler) RecordEntry(c *gin.Context) {
	var req RecordEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	landlordID, err := uuid.Parse(req.LandlordID)
	if err != nil {
		h.BadRequest(c, "Invalid landlord ID format")
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

	appReq := ledgerapp.RecordEntryRequest{
		LandlordID:      landlordID,
		SiteID:          siteID,
		UnitID:          unitID,
		Purpose:         req.Purpose,
		TransactionType: ledger.TransactionType(req.TransactionType),
		Amount:          toDecimal(req.Amount),
	}
	if req.BillID != nil {
		billID, err := uuid.Parse(*req.BillID)
		if err != nil {
			h.BadRequest(c, "Invalid bill ID format")
			return
		}
		appReq.BillID = &billID
	}

	entry, err := h.ledgerService.Record(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, ledgerEntryResponseOf(entry))
}

// GetEntries returns a landlord's ledger statement, newest first
func (h *LedgerHandler) GetEntries(c *gin.Context) {
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

	entries, total, err := h.ledgerService.GetEntries(c.Request.Context(), landlordID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]LedgerEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = ledgerEntryResponseOf(entry)
	}

	h.SuccessWithMeta(c, responses, total, filter.Page, filter.PageSize)
}

// GetCurrentBalance returns a landlord's running balance
func (h *LedgerHandler) GetCurrentBalance(c *gin.Context) {
	landlordID, err := uuid.Parse(c.Param("landlordId"))
	if err != nil {
		h.BadRequest(c, "Invalid landlord ID format")
		return
	}

	balance, err := h.ledgerService.GetCurrentBalance(c.Request.Context(), landlordID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, CurrentBalanceResponse{
		LandlordID: landlordID.String(),
		Balance: BalanceResponse{
			Amount: balance.Amount,
			Type:   string(balance.Type),
		},
	})
}

// RecordPaymentEntry posts a manual entry to a payment ledger scope
func (h *LedgerHandler) RecordPaymentEntry(c *gin.Context) {
	var req RecordPaymentEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	scope, ok := h.parseScope(c, req.PartyType, req.PartyID, req.SiteID, req.UnitID)
	if !ok {
		return
	}

	appReq := ledgerapp.RecordPaymentEntryRequest{
		Scope:        scope,
		EntryType:    ledger.EntryType(req.EntryType),
		DebitAmount:  toDecimal(req.DebitAmount),
		CreditAmount: toDecimal(req.CreditAmount),
		Remark:       req.Remark,
		PaymentMode:  req.PaymentMode,
	}
	if req.BillID != nil {
		billID, err := uuid.Parse(*req.BillID)
		if err != nil {
			h.BadRequest(c, "Invalid bill ID format")
			return
		}
		appReq.BillID = &billID
	}

	entry, err := h.paymentLedgerService.Record(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, paymentLedgerEntryResponseOf(entry))
}

// GetPaymentEntries returns a scope's payment ledger, newest first. The scope
// comes from the party_type, party_id, site_id and unit_id query parameters.
func (h *LedgerHandler) GetPaymentEntries(c *gin.Context) {
	scope, ok := h.parseScope(c, c.Query("party_type"), c.Query("party_id"), c.Query("site_id"), c.Query("unit_id"))
	if !ok {
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := listFilter(req)

	entries, total, err := h.paymentLedgerService.GetEntries(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]PaymentLedgerEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = paymentLedgerEntryResponseOf(entry)
	}

	h.SuccessWithMeta(c, responses, total, filter.Page, filter.PageSize)
}

// GetPaymentBalance returns a scope's running payment ledger balance
func (h *LedgerHandler) GetPaymentBalance(c *gin.Context) {
	scope, ok := h.parseScope(c, c.Query("party_type"), c.Query("party_id"), c.Query("site_id"), c.Query("unit_id"))
	if !ok {
		return
	}

	balance, err := h.paymentLedgerService.GetCurrentBalance(c.Request.Context(), scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"party_type": string(scope.PartyType),
		"party_id":   scope.PartyID.String(),
		"site_id":    scope.SiteID.String(),
		"unit_id":    scope.UnitID.String(),
		"balance":    balance,
	})
}

func (h *LedgerHandler) parseScope(c *gin.Context, partyType, partyID, siteID, unitID string) (ledger.PaymentScope, bool) {
	if partyType != string(ledger.PartyTypeLandlord) && partyType != string(ledger.PartyTypeTenant) {
		h.BadRequest(c, "party_type must be LANDLORD or TENANT")
		return ledger.PaymentScope{}, false
	}
	pid, err := uuid.Parse(partyID)
	if err != nil {
		h.BadRequest(c, "Invalid party ID format")
		return ledger.PaymentScope{}, false
	}
	sid, err := uuid.Parse(siteID)
	if err != nil {
		h.BadRequest(c, "Invalid site ID format")
		return ledger.PaymentScope{}, false
	}
	uid, err := uuid.Parse(unitID)
	if err != nil {
		h.BadRequest(c, "Invalid unit ID format")
		return ledger.PaymentScope{}, false
	}
	return ledger.PaymentScope{
		PartyType: ledger.PartyType(partyType),
		PartyID:   pid,
		SiteID:    sid,
		UnitID:    uid,
	}, true
}
