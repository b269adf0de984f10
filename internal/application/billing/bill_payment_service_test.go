package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	ledgerapp "github.com/propman/backend/internal/application/ledger"
	"github.com/propman/backend/internal/domain/billing"
	"github.com/propman/backend/internal/domain/ledger"
	"github.com/propman/backend/internal/domain/party"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type paymentFixture struct {
	service       *BillPaymentService
	billRepo      *MockBillRepository
	paymentRepo   *MockBillPaymentRepository
	gateway       *MockPaymentGateway
	entryRepo     *MockLedgerEntryRepository
	landlordRepo  *MockLandlordRepository
	paymentLedger *MockPaymentLedgerRepository
	idempotency   *MockIdempotencyStore
}

func newPaymentFixture() *paymentFixture {
	f := &paymentFixture{
		billRepo:      new(MockBillRepository),
		paymentRepo:   new(MockBillPaymentRepository),
		gateway:       new(MockPaymentGateway),
		entryRepo:     new(MockLedgerEntryRepository),
		landlordRepo:  new(MockLandlordRepository),
		paymentLedger: new(MockPaymentLedgerRepository),
		idempotency:   new(MockIdempotencyStore),
	}
	f.service = NewBillPaymentService(
		f.billRepo,
		f.paymentRepo,
		f.gateway,
		ledgerapp.NewLedgerService(f.entryRepo, f.landlordRepo),
		ledgerapp.NewPaymentLedgerService(f.paymentLedger),
		f.idempotency,
		zap.NewNop(),
	)
	return f
}

func newTestBill(t *testing.T, landlordID uuid.UUID, total int64) *billing.Bill {
	t.Helper()
	bill, err := billing.NewBill(
		landlordID, uuid.New(), uuid.New(),
		billing.BillingCycleMonthly,
		time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		billing.ChargeSheet{
			Maintenance: decimal.NewFromInt(total),
			Total:       decimal.NewFromInt(total),
		},
	)
	require.NoError(t, err)
	return bill
}

func TestBillPaymentService_InitiatePayment(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("opens a gateway order and moves the bill under process", func(t *testing.T) {
		f := newPaymentFixture()
		bill := newTestBill(t, uuid.New(), 3500)

		f.billRepo.On("FindByID", ctx, bill.ID).Return(bill, nil)
		f.gateway.On("CreateOrder", ctx, mock.AnythingOfType("billing.CreateOrderRequest")).
			Return(&billing.CreateOrderResponse{OrderID: "order_N1", Status: "created"}, nil)
		f.billRepo.On("Save", ctx, bill).Return(nil)
		f.paymentRepo.On("Create", ctx, mock.AnythingOfType("*billing.BillPayment")).Return(nil)

		payment, err := f.service.InitiatePayment(ctx, bill.ID, userID)
		require.NoError(t, err)

		assert.Equal(t, billing.PaymentStatusPending, payment.Status)
		assert.Equal(t, "order_N1", payment.GatewayOrderID)
		assert.True(t, bill.TotalAmount.Equal(payment.Amount))
		assert.Equal(t, billing.BillStatusUnderProcess, bill.Status)
	})

	t.Run("rejects a bill that is not unpaid", func(t *testing.T) {
		f := newPaymentFixture()
		bill := newTestBill(t, uuid.New(), 3500)
		require.NoError(t, bill.MarkPaid("someone", time.Now()))

		f.billRepo.On("FindByID", ctx, bill.ID).Return(bill, nil)

		_, err := f.service.InitiatePayment(ctx, bill.ID, userID)
		assert.Error(t, err)
		f.gateway.AssertNotCalled(t, "CreateOrder")
	})

	t.Run("gateway failure surfaces as such", func(t *testing.T) {
		f := newPaymentFixture()
		bill := newTestBill(t, uuid.New(), 3500)

		f.billRepo.On("FindByID", ctx, bill.ID).Return(bill, nil)
		f.gateway.On("CreateOrder", ctx, mock.AnythingOfType("billing.CreateOrderRequest")).
			Return(nil, assert.AnError)

		_, err := f.service.InitiatePayment(ctx, bill.ID, userID)
		assert.ErrorIs(t, err, shared.ErrGatewayFailure)
		f.billRepo.AssertNotCalled(t, "Save")
	})
}

func TestBillPaymentService_HandleCallback(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	pendingPayment := func(t *testing.T, bill *billing.Bill) *billing.BillPayment {
		t.Helper()
		payment, err := billing.NewBillPayment(bill.ID, userID, bill.TotalAmount, "INR")
		require.NoError(t, err)
		require.NoError(t, payment.AttachGatewayOrder("order_N1"))
		require.NoError(t, bill.MarkUnderProcess())
		return payment
	}

	t.Run("verified callback settles the bill and posts entries", func(t *testing.T) {
		f := newPaymentFixture()
		landlord, err := party.NewLandlord("Asha Mehta", "", "9876500001")
		require.NoError(t, err)
		bill := newTestBill(t, landlord.ID, 3500)
		payment := pendingPayment(t, bill)

		f.idempotency.On("Claim", ctx, "payment:callback:order_N1", mock.Anything).Return(true, nil)
		f.paymentRepo.On("FindByGatewayOrderID", ctx, "order_N1").Return(payment, nil)
		f.billRepo.On("FindByID", ctx, bill.ID).Return(bill, nil)
		f.gateway.On("VerifySignature", "order_N1", "pay_77", "sig_ok").Return(true)
		f.billRepo.On("Save", ctx, bill).Return(nil)
		f.paymentRepo.On("Save", ctx, payment).Return(nil)

		f.landlordRepo.On("FindByID", ctx, landlord.ID).Return(landlord, nil)
		f.entryRepo.On("FindLatestByLandlord", ctx, landlord.ID).Return(nil, shared.ErrNotFound)
		var ledgerEntry *ledger.LedgerEntry
		f.entryRepo.On("Create", ctx, mock.AnythingOfType("*ledger.LedgerEntry")).
			Run(func(args mock.Arguments) {
				ledgerEntry = args.Get(1).(*ledger.LedgerEntry)
			}).Return(nil)
		f.paymentLedger.On("FindLatestByScope", ctx, mock.AnythingOfType("ledger.PaymentScope")).Return(nil, shared.ErrNotFound)
		var creditEntry *ledger.PaymentLedgerEntry
		f.paymentLedger.On("Create", ctx, mock.AnythingOfType("*ledger.PaymentLedgerEntry")).
			Run(func(args mock.Arguments) {
				creditEntry = args.Get(1).(*ledger.PaymentLedgerEntry)
			}).Return(nil)

		result, err := f.service.HandleCallback(ctx, PaymentCallbackRequest{
			OrderID:   "order_N1",
			PaymentID: "pay_77",
			Signature: "sig_ok",
		})
		require.NoError(t, err)

		assert.Equal(t, billing.PaymentStatusSuccess, result.Status)
		assert.Equal(t, billing.BillStatusPaid, bill.Status)
		assert.Equal(t, userID.String(), bill.PaidBy)

		require.NotNil(t, ledgerEntry)
		assert.Equal(t, ledger.TransactionTypePayment, ledgerEntry.TransactionType)
		require.NotNil(t, creditEntry)
		assert.Equal(t, ledger.EntryTypeCredit, creditEntry.EntryType)
		assert.True(t, bill.TotalAmount.Equal(creditEntry.CreditAmount))
	})

	t.Run("bad signature fails the payment and reopens the bill", func(t *testing.T) {
		f := newPaymentFixture()
		bill := newTestBill(t, uuid.New(), 3500)
		payment := pendingPayment(t, bill)

		f.idempotency.On("Claim", ctx, "payment:callback:order_N1", mock.Anything).Return(true, nil)
		f.idempotency.On("Release", ctx, "payment:callback:order_N1").Return(nil)
		f.paymentRepo.On("FindByGatewayOrderID", ctx, "order_N1").Return(payment, nil)
		f.billRepo.On("FindByID", ctx, bill.ID).Return(bill, nil)
		f.gateway.On("VerifySignature", "order_N1", "pay_77", "sig_bad").Return(false)
		f.billRepo.On("Save", ctx, bill).Return(nil)
		f.paymentRepo.On("Save", ctx, payment).Return(nil)

		_, err := f.service.HandleCallback(ctx, PaymentCallbackRequest{
			OrderID:   "order_N1",
			PaymentID: "pay_77",
			Signature: "sig_bad",
		})
		assert.ErrorIs(t, err, shared.ErrInvalidSignature)

		assert.Equal(t, billing.PaymentStatusFailed, payment.Status)
		assert.Equal(t, billing.BillStatusUnpaid, bill.Status)
		f.entryRepo.AssertNotCalled(t, "Create")
	})

	t.Run("duplicate callback is dropped", func(t *testing.T) {
		f := newPaymentFixture()

		f.idempotency.On("Claim", ctx, "payment:callback:order_N1", mock.Anything).Return(false, nil)

		_, err := f.service.HandleCallback(ctx, PaymentCallbackRequest{
			OrderID:   "order_N1",
			PaymentID: "pay_77",
			Signature: "sig_ok",
		})
		assert.Error(t, err)
		f.paymentRepo.AssertNotCalled(t, "FindByGatewayOrderID")
	})

	t.Run("unknown order", func(t *testing.T) {
		f := newPaymentFixture()

		f.idempotency.On("Claim", ctx, "payment:callback:order_X", mock.Anything).Return(true, nil)
		f.idempotency.On("Release", ctx, "payment:callback:order_X").Return(nil)
		f.paymentRepo.On("FindByGatewayOrderID", ctx, "order_X").Return(nil, nil)

		_, err := f.service.HandleCallback(ctx, PaymentCallbackRequest{
			OrderID:   "order_X",
			PaymentID: "pay_77",
			Signature: "sig_ok",
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		f := newPaymentFixture()
		_, err := f.service.HandleCallback(ctx, PaymentCallbackRequest{OrderID: "order_N1"})
		assert.Error(t, err)
		f.idempotency.AssertNotCalled(t, "Claim")
	})
}
