package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/propman/backend/internal/domain/billing"
	"github.com/propman/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
)

const defaultGatewayTimeout = 10 * time.Second

// minorUnitFactor converts rupees to paise
var minorUnitFactor = decimal.NewFromInt(100)

// RazorpayAdapter implements the billing.PaymentGateway port against the
// Razorpay Orders API. Amounts are converted to the currency's minor unit
// (paise for INR) as the API requires.
type RazorpayAdapter struct {
	baseURL    string
	keyID      string
	keySecret  string
	currency   string
	httpClient *http.Client
}

// NewRazorpayAdapter creates a new adapter from gateway settings
func NewRazorpayAdapter(cfg config.GatewayConfig) (*RazorpayAdapter, error) {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, fmt.Errorf("razorpay: key_id and key_secret are required")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultGatewayTimeout
	}

	return &RazorpayAdapter{
		baseURL:   cfg.BaseURL,
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		currency:  cfg.Currency,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// createOrderPayload is the Orders API request body
type createOrderPayload struct {
	Amount   int64             `json:"amount"` // minor units
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt,omitempty"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// orderResponse is the subset of the Orders API response we use
type orderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// errorResponse is the gateway's error envelope
type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder opens a gateway order for the given amount
func (a *RazorpayAdapter) CreateOrder(ctx context.Context, req billing.CreateOrderRequest) (*billing.CreateOrderResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("razorpay: order amount must be positive")
	}

	currency := req.Currency
	if currency == "" {
		currency = a.currency
	}

	payload := createOrderPayload{
		Amount:   req.Amount.Mul(minorUnitFactor).IntPart(),
		Currency: currency,
		Receipt:  req.Receipt,
		Notes:    req.Notes,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("razorpay: failed to marshal order payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("razorpay: failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(a.keyID, a.keySecret)

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("razorpay: order request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("razorpay: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var gatewayErr errorResponse
		if err := json.Unmarshal(respBody, &gatewayErr); err == nil && gatewayErr.Error.Description != "" {
			return nil, fmt.Errorf("razorpay: order rejected (%s): %s", gatewayErr.Error.Code, gatewayErr.Error.Description)
		}
		return nil, fmt.Errorf("razorpay: order rejected with status %d", resp.StatusCode)
	}

	var order orderResponse
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, fmt.Errorf("razorpay: failed to decode response: %w", err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("razorpay: response missing order id")
	}

	return &billing.CreateOrderResponse{
		OrderID: order.ID,
		Status:  order.Status,
	}, nil
}

// VerifySignature checks the HMAC-SHA256 signature the gateway computes over
// "orderID|paymentID" with the key secret, using a constant-time comparison.
func (a *RazorpayAdapter) VerifySignature(orderID, paymentID, signature string) bool {
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(a.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

var _ billing.PaymentGateway = (*RazorpayAdapter)(nil)
