package warehouse

import (
	"strings"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
)

// StockStatus is derived from quantity against the low-stock threshold
type StockStatus string

const (
	StockStatusInStock    StockStatus = "IN_STOCK"
	StockStatusLowStock   StockStatus = "LOW_STOCK"
	StockStatusOutOfStock StockStatus = "OUT_OF_STOCK"
)

// IsValid returns true if the status is valid
func (s StockStatus) IsValid() bool {
	switch s {
	case StockStatusInStock, StockStatusLowStock, StockStatusOutOfStock:
		return true
	}
	return false
}

// String returns the string representation of StockStatus
func (s StockStatus) String() string {
	return string(s)
}

// StockItem is a consumable tracked per site: cleaning supplies, spare
// parts, meter seals. Quantity is whole units.
type StockItem struct {
	shared.BaseAggregateRoot
	SiteID            uuid.UUID
	Name              string
	Unit              string
	Quantity          int64
	LowStockThreshold int64
	Status            StockStatus
}

// NewStockItem creates a stock item with an initial quantity
func NewStockItem(siteID uuid.UUID, name, unit string, quantity, lowStockThreshold int64) (*StockItem, error) {
	if siteID == uuid.Nil {
		return nil, shared.NewValidationError("Site ID is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("Item name is required")
	}
	if quantity < 0 {
		return nil, shared.NewValidationError("Quantity cannot be negative")
	}
	if lowStockThreshold < 0 {
		return nil, shared.NewValidationError("Low stock threshold cannot be negative")
	}

	item := &StockItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SiteID:            siteID,
		Name:              name,
		Unit:              unit,
		Quantity:          quantity,
		LowStockThreshold: lowStockThreshold,
	}
	item.refreshStatus()
	return item, nil
}

// refreshStatus recomputes the derived status after any quantity change
func (i *StockItem) refreshStatus() {
	switch {
	case i.Quantity == 0:
		i.Status = StockStatusOutOfStock
	case i.Quantity <= i.LowStockThreshold:
		i.Status = StockStatusLowStock
	default:
		i.Status = StockStatusInStock
	}
}

// Receive adds quantity from an inbound movement
func (i *StockItem) Receive(quantity int64) error {
	if quantity <= 0 {
		return shared.NewValidationError("Quantity must be positive")
	}
	i.Quantity += quantity
	i.refreshStatus()
	i.IncrementVersion()
	return nil
}

// Issue removes quantity for an outbound movement. Issuing more than is
// on hand is rejected, never driven negative.
func (i *StockItem) Issue(quantity int64) error {
	if quantity <= 0 {
		return shared.NewValidationError("Quantity must be positive")
	}
	if quantity > i.Quantity {
		return shared.ErrInsufficientStock
	}
	i.Quantity -= quantity
	i.refreshStatus()
	i.IncrementVersion()
	return nil
}

// SetThreshold updates the low-stock threshold and rederives the status
func (i *StockItem) SetThreshold(threshold int64) error {
	if threshold < 0 {
		return shared.NewValidationError("Low stock threshold cannot be negative")
	}
	i.LowStockThreshold = threshold
	i.refreshStatus()
	i.IncrementVersion()
	return nil
}
