package billing

import (
	"context"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest asks the payment gateway to open an order that a payer
// can complete from a client application.
type CreateOrderRequest struct {
	Amount   decimal.Decimal
	Currency string
	Receipt  string
	Notes    map[string]string
}

// CreateOrderResponse carries the gateway's order reference
type CreateOrderResponse struct {
	OrderID string
	Status  string
}

// PaymentGateway is the port to the external payment provider. The adapter
// in infrastructure/payment implements it; the domain only depends on this
// contract.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error)
	// VerifySignature checks the HMAC-SHA256 signature the gateway computes
	// over "orderID|paymentID". It must use a constant-time comparison.
	VerifySignature(orderID, paymentID, signature string) bool
}
