package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	warehouseapp "github.com/propman/backend/internal/application/warehouse"
	"github.com/propman/backend/internal/domain/warehouse"
	"github.com/propman/backend/internal/interfaces/http/dto"
	"github.com/propman/backend/internal/interfaces/http/middleware"
)

// StockHandler handles warehouse stock endpoints
type StockHandler struct {
	BaseHandler
	stockService *warehouseapp.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *warehouseapp.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// CreateStockItemRequest represents a new stock item
type CreateStockItemRequest struct {
	SiteID            string `json:"site_id" binding:"required,uuid"`
	Name              string `json:"name" binding:"required,min=1,max=200"`
	Unit              string `json:"unit" binding:"required,min=1,max=20"`
	Quantity          int64  `json:"quantity" binding:"gte=0"`
	LowStockThreshold int64  `json:"low_stock_threshold" binding:"gte=0"`
}

// RecordMovementRequest represents a stock movement
type RecordMovementRequest struct {
	ItemID    string  `json:"item_id" binding:"required,uuid"`
	Type      string  `json:"type" binding:"required,oneof=IN OUT TRANSFER"`
	Quantity  int64   `json:"quantity" binding:"required,gt=0"`
	ToSiteID  *string `json:"to_site_id" binding:"omitempty,uuid"`
	Reference string  `json:"reference" binding:"max=200"`
}

// StockItemResponse represents a stock item in API responses
type StockItemResponse struct {
	ID                string    `json:"id"`
	SiteID            string    `json:"site_id"`
	Name              string    `json:"name"`
	Unit              string    `json:"unit"`
	Quantity          int64     `json:"quantity"`
	LowStockThreshold int64     `json:"low_stock_threshold"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	Version           int       `json:"version"`
}

func stockItemResponseOf(item *warehouse.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:                item.ID.String(),
		SiteID:            item.SiteID.String(),
		Name:              item.Name,
		Unit:              item.Unit,
		Quantity:          item.Quantity,
		LowStockThreshold: item.LowStockThreshold,
		Status:            string(item.Status),
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
		Version:           item.Version,
	}
}

// StockMovementResponse represents a stock movement in API responses
type StockMovementResponse struct {
	ID         string    `json:"id"`
	ItemID     string    `json:"item_id"`
	SiteID     string    `json:"site_id"`
	Type       string    `json:"type"`
	Quantity   int64     `json:"quantity"`
	ToSiteID   *string   `json:"to_site_id,omitempty"`
	Reference  string    `json:"reference,omitempty"`
	MovedAt    time.Time `json:"moved_at"`
	RecordedBy string    `json:"recorded_by"`
}

func stockMovementResponseOf(m *warehouse.StockMovement) StockMovementResponse {
	resp := StockMovementResponse{
		ID:         m.ID.String(),
		ItemID:     m.ItemID.String(),
		SiteID:     m.SiteID.String(),
		Type:       string(m.Type),
		Quantity:   m.Quantity,
		Reference:  m.Reference,
		MovedAt:    m.MovedAt,
		RecordedBy: m.RecordedBy.String(),
	}
	if m.ToSiteID != nil {
		toSiteID := m.ToSiteID.String()
		resp.ToSiteID = &toSiteID
	}
	return resp
}

// CreateItem registers a stock item at a site
func (h *StockHandler) CreateItem(c *gin.Context) {
	var req CreateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	siteID, err := uuid.Parse(req.SiteID)
	if err != nil {
		h.BadRequest(c, "Invalid site ID format")
		return
	}

	item, err := h.stockService.CreateItem(c.Request.Context(), warehouseapp.CreateItemRequest{
		SiteID:            siteID,
		Name:              req.Name,
		Unit:              req.Unit,
		Quantity:          req.Quantity,
		LowStockThreshold: req.LowStockThreshold,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, stockItemResponseOf(item))
}

// GetItem retrieves a stock item by ID
func (h *StockHandler) GetItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	item, err := h.stockService.GetItem(c.Request.Context(), itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stockItemResponseOf(item))
}

// ListItemsBySite returns the stock items at one site
func (h *StockHandler) ListItemsBySite(c *gin.Context) {
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

	items, total, err := h.stockService.ListItemsBySite(c.Request.Context(), siteID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]StockItemResponse, len(items))
	for i, item := range items {
		responses[i] = stockItemResponseOf(item)
	}

	h.SuccessWithMeta(c, responses, total, filter.Page, filter.PageSize)
}

// ListLowStock returns the items at or under their low-stock threshold
func (h *StockHandler) ListLowStock(c *gin.Context) {
	siteID, err := uuid.Parse(c.Param("siteId"))
	if err != nil {
		h.BadRequest(c, "Invalid site ID format")
		return
	}

	items, err := h.stockService.ListLowStock(c.Request.Context(), siteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]StockItemResponse, len(items))
	for i, item := range items {
		responses[i] = stockItemResponseOf(item)
	}

	h.Success(c, responses)
}

// RecordMovement applies an IN, OUT or TRANSFER movement to an item
func (h *StockHandler) RecordMovement(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	appReq := warehouseapp.RecordMovementRequest{
		ItemID:     itemID,
		Type:       warehouse.MovementType(req.Type),
		Quantity:   req.Quantity,
		Reference:  req.Reference,
		RecordedBy: userID,
	}
	if req.ToSiteID != nil {
		toSiteID, err := uuid.Parse(*req.ToSiteID)
		if err != nil {
			h.BadRequest(c, "Invalid destination site ID format")
			return
		}
		appReq.ToSiteID = &toSiteID
	}

	movement, err := h.stockService.RecordMovement(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, stockMovementResponseOf(movement))
}

// ListMovements returns an item's movement history
func (h *StockHandler) ListMovements(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := listFilter(req)

	movements, total, err := h.stockService.ListMovements(c.Request.Context(), itemID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]StockMovementResponse, len(movements))
	for i, movement := range movements {
		responses[i] = stockMovementResponseOf(movement)
	}

	h.SuccessWithMeta(c, responses, total, filter.Page, filter.PageSize)
}
