package warehouse

import (
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
)

// MovementType classifies a stock movement
type MovementType string

const (
	MovementTypeIn       MovementType = "IN"
	MovementTypeOut      MovementType = "OUT"
	MovementTypeTransfer MovementType = "TRANSFER"
)

// IsValid returns true if the movement type is valid
func (m MovementType) IsValid() bool {
	switch m {
	case MovementTypeIn, MovementTypeOut, MovementTypeTransfer:
		return true
	}
	return false
}

// String returns the string representation of MovementType
func (m MovementType) String() string {
	return string(m)
}

// StockMovement is the audit record of one quantity change. Transfers
// carry the destination site; the paired item adjustment happens in the
// application layer.
type StockMovement struct {
	shared.BaseEntity
	ItemID     uuid.UUID
	SiteID     uuid.UUID
	Type       MovementType
	Quantity   int64
	ToSiteID   *uuid.UUID
	Reference  string
	MovedAt    time.Time
	RecordedBy uuid.UUID
}

// NewStockMovement creates a movement record
func NewStockMovement(itemID, siteID uuid.UUID, movementType MovementType, quantity int64, recordedBy uuid.UUID) (*StockMovement, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewValidationError("Item ID is required")
	}
	if siteID == uuid.Nil {
		return nil, shared.NewValidationError("Site ID is required")
	}
	if !movementType.IsValid() {
		return nil, shared.NewValidationError("Invalid movement type")
	}
	if quantity <= 0 {
		return nil, shared.NewValidationError("Quantity must be positive")
	}

	return &StockMovement{
		BaseEntity: shared.NewBaseEntity(),
		ItemID:     itemID,
		SiteID:     siteID,
		Type:       movementType,
		Quantity:   quantity,
		MovedAt:    time.Now(),
		RecordedBy: recordedBy,
	}, nil
}

// WithDestination sets the receiving site on a transfer
func (m *StockMovement) WithDestination(toSiteID uuid.UUID) (*StockMovement, error) {
	if m.Type != MovementTypeTransfer {
		return nil, shared.NewValidationError("Destination only applies to transfers")
	}
	if toSiteID == uuid.Nil {
		return nil, shared.NewValidationError("Destination site is required")
	}
	if toSiteID == m.SiteID {
		return nil, shared.NewValidationError("Cannot transfer to the same site")
	}
	m.ToSiteID = &toSiteID
	return m, nil
}

// WithReference attaches a free-form reference, e.g. a purchase order number
func (m *StockMovement) WithReference(reference string) *StockMovement {
	m.Reference = reference
	return m
}
