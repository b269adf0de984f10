package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/propman/backend/internal/domain/billing"
	"github.com/propman/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGatewayConfig(baseURL string) config.GatewayConfig {
	return config.GatewayConfig{
		BaseURL:   baseURL,
		KeyID:     "rzp_test_key",
		KeySecret: "rzp_test_secret",
		Currency:  "INR",
		Timeout:   5 * time.Second,
	}
}

func TestRazorpayAdapter_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("posts the order in minor units with basic auth", func(t *testing.T) {
		var got createOrderPayload
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/orders", r.URL.Path)

			user, pass, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "rzp_test_key", user)
			assert.Equal(t, "rzp_test_secret", pass)

			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"order_A1","status":"created"}`))
		}))
		defer server.Close()

		adapter, err := NewRazorpayAdapter(testGatewayConfig(server.URL))
		require.NoError(t, err)

		resp, err := adapter.CreateOrder(ctx, billing.CreateOrderRequest{
			Amount:   decimal.NewFromFloat(3587.50),
			Currency: "INR",
			Receipt:  "bill-42",
			Notes:    map[string]string{"bill_id": "42"},
		})
		require.NoError(t, err)

		assert.Equal(t, "order_A1", resp.OrderID)
		assert.Equal(t, "created", resp.Status)
		assert.Equal(t, int64(358750), got.Amount)
		assert.Equal(t, "INR", got.Currency)
		assert.Equal(t, "bill-42", got.Receipt)
	})

	t.Run("falls back to the configured currency", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var payload createOrderPayload
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "INR", payload.Currency)
			_, _ = w.Write([]byte(`{"id":"order_A2","status":"created"}`))
		}))
		defer server.Close()

		adapter, err := NewRazorpayAdapter(testGatewayConfig(server.URL))
		require.NoError(t, err)

		_, err = adapter.CreateOrder(ctx, billing.CreateOrderRequest{
			Amount: decimal.NewFromInt(100),
		})
		require.NoError(t, err)
	})

	t.Run("surfaces the gateway error description", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount exceeds maximum"}}`))
		}))
		defer server.Close()

		adapter, err := NewRazorpayAdapter(testGatewayConfig(server.URL))
		require.NoError(t, err)

		_, err = adapter.CreateOrder(ctx, billing.CreateOrderRequest{Amount: decimal.NewFromInt(100)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "amount exceeds maximum")
	})

	t.Run("rejects non-positive amounts without calling the gateway", func(t *testing.T) {
		adapter, err := NewRazorpayAdapter(testGatewayConfig("http://unused.invalid"))
		require.NoError(t, err)

		_, err = adapter.CreateOrder(ctx, billing.CreateOrderRequest{Amount: decimal.Zero})
		assert.Error(t, err)
	})

	t.Run("requires credentials", func(t *testing.T) {
		_, err := NewRazorpayAdapter(config.GatewayConfig{BaseURL: "http://x"})
		assert.Error(t, err)
	})
}

func TestRazorpayAdapter_VerifySignature(t *testing.T) {
	adapter, err := NewRazorpayAdapter(testGatewayConfig("http://unused.invalid"))
	require.NoError(t, err)

	sign := func(orderID, paymentID string) string {
		mac := hmac.New(sha256.New, []byte("rzp_test_secret"))
		mac.Write([]byte(orderID + "|" + paymentID))
		return hex.EncodeToString(mac.Sum(nil))
	}

	t.Run("accepts a correct signature", func(t *testing.T) {
		assert.True(t, adapter.VerifySignature("order_A1", "pay_B2", sign("order_A1", "pay_B2")))
	})

	t.Run("rejects a signature for another payment", func(t *testing.T) {
		assert.False(t, adapter.VerifySignature("order_A1", "pay_B2", sign("order_A1", "pay_XX")))
	})

	t.Run("rejects a tampered signature", func(t *testing.T) {
		assert.False(t, adapter.VerifySignature("order_A1", "pay_B2", "deadbeef"))
	})

	t.Run("rejects empty inputs", func(t *testing.T) {
		assert.False(t, adapter.VerifySignature("", "pay_B2", sign("", "pay_B2")))
		assert.False(t, adapter.VerifySignature("order_A1", "pay_B2", ""))
	})
}
