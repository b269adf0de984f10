package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	ledgerapp "github.com/propman/backend/internal/application/ledger"
	"github.com/propman/backend/internal/domain/billing"
	"github.com/propman/backend/internal/domain/ledger"
	"github.com/propman/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// callbackClaimTTL bounds how long a gateway callback stays deduplicated.
// Razorpay retries webhooks for 24 hours.
const callbackClaimTTL = 24 * time.Hour

// IdempotencyStore deduplicates gateway callbacks. Claim returns false when
// the key was already claimed by an earlier delivery of the same callback.
type IdempotencyStore interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// BillPaymentService drives the gateway payment flow for bills: open an
// order, then settle the bill from the verified callback.
type BillPaymentService struct {
	billRepo      billing.BillRepository
	paymentRepo   billing.BillPaymentRepository
	gateway       billing.PaymentGateway
	ledgerService *ledgerapp.LedgerService
	paymentLedger *ledgerapp.PaymentLedgerService
	idempotency   IdempotencyStore
	logger        *zap.Logger
}

// NewBillPaymentService creates a new BillPaymentService
func NewBillPaymentService(
	billRepo billing.BillRepository,
	paymentRepo billing.BillPaymentRepository,
	gateway billing.PaymentGateway,
	ledgerService *ledgerapp.LedgerService,
	paymentLedger *ledgerapp.PaymentLedgerService,
	idempotency IdempotencyStore,
	logger *zap.Logger,
) *BillPaymentService {
	return &BillPaymentService{
		billRepo:      billRepo,
		paymentRepo:   paymentRepo,
		gateway:       gateway,
		ledgerService: ledgerService,
		paymentLedger: paymentLedger,
		idempotency:   idempotency,
		logger:        logger,
	}
}

// InitiatePayment opens a gateway order for a bill's full amount and moves
// the bill under process. The returned payment carries the order id the
// client completes the payment against.
func (s *BillPaymentService) InitiatePayment(ctx context.Context, billID, paidByUserID uuid.UUID) (*billing.BillPayment, error) {
	if billID == uuid.Nil {
		return nil, shared.NewValidationError("Bill ID is required")
	}
	if paidByUserID == uuid.Nil {
		return nil, shared.NewValidationError("Paying user ID is required")
	}

	bill, err := s.billRepo.FindByID(ctx, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	if bill == nil {
		return nil, shared.ErrNotFound
	}
	if !bill.IsUnpaid() {
		return nil, shared.NewDomainError("INVALID_STATE", "Bill is not open for payment")
	}

	payment, err := billing.NewBillPayment(bill.ID, paidByUserID, bill.TotalAmount, "INR")
	if err != nil {
		return nil, err
	}

	order, err := s.gateway.CreateOrder(ctx, billing.CreateOrderRequest{
		Amount:   bill.TotalAmount,
		Currency: payment.Currency,
		Receipt:  fmt.Sprintf("bill-%s", bill.ID),
		Notes: map[string]string{
			"bill_id": bill.ID.String(),
			"unit_id": bill.UnitID.String(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrGatewayFailure, err)
	}
	if err := payment.AttachGatewayOrder(order.OrderID); err != nil {
		return nil, err
	}

	if err := bill.MarkUnderProcess(); err != nil {
		return nil, err
	}
	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to save bill: %w", err)
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	s.logger.Info("payment initiated",
		zap.String("bill_id", bill.ID.String()),
		zap.String("order_id", order.OrderID),
	)
	return payment, nil
}

// PaymentCallbackRequest is the gateway's completion callback
type PaymentCallbackRequest struct {
	OrderID   string
	PaymentID string
	Signature string
}

// HandleCallback settles a bill from a verified gateway callback. Duplicate
// deliveries of the same order callback are dropped via the idempotency
// store. A bad signature fails the payment and returns the bill to unpaid.
func (s *BillPaymentService) HandleCallback(ctx context.Context, req PaymentCallbackRequest) (*billing.BillPayment, error) {
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		return nil, shared.NewValidationError("Order ID, payment ID and signature are required")
	}

	claimed, err := s.idempotency.Claim(ctx, "payment:callback:"+req.OrderID, callbackClaimTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to claim callback: %w", err)
	}
	if !claimed {
		return nil, shared.NewDomainError("DUPLICATE_CALLBACK", "Callback for this order was already processed")
	}

	payment, err := s.processCallback(ctx, req)
	if err != nil {
		// Release the claim so the gateway's retry can be processed
		if releaseErr := s.idempotency.Release(ctx, "payment:callback:"+req.OrderID); releaseErr != nil {
			s.logger.Error("failed to release callback claim",
				zap.String("order_id", req.OrderID), zap.Error(releaseErr))
		}
		return nil, err
	}
	return payment, nil
}

func (s *BillPaymentService) processCallback(ctx context.Context, req PaymentCallbackRequest) (*billing.BillPayment, error) {
	payment, err := s.paymentRepo.FindByGatewayOrderID(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}
	if payment == nil {
		return nil, shared.ErrNotFound
	}

	bill, err := s.billRepo.FindByID(ctx, payment.BillID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	if bill == nil {
		return nil, shared.ErrNotFound
	}

	now := time.Now()
	if !s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		if err := payment.MarkFailed("signature verification failed", now); err != nil {
			return nil, err
		}
		if err := bill.ReturnToUnpaid(); err != nil {
			return nil, err
		}
		if err := s.billRepo.Save(ctx, bill); err != nil {
			return nil, fmt.Errorf("failed to save bill: %w", err)
		}
		if err := s.paymentRepo.Save(ctx, payment); err != nil {
			return nil, fmt.Errorf("failed to save payment: %w", err)
		}
		s.logger.Warn("payment signature rejected",
			zap.String("order_id", req.OrderID),
			zap.String("payment_id", req.PaymentID),
		)
		return nil, shared.ErrInvalidSignature
	}

	if err := payment.MarkSuccess(req.PaymentID, req.Signature, now); err != nil {
		return nil, err
	}
	if err := bill.MarkPaid(payment.PaidByUserID.String(), now); err != nil {
		return nil, err
	}
	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to save bill: %w", err)
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	if err := s.postPaymentEntries(ctx, bill, payment); err != nil {
		return nil, err
	}

	s.logger.Info("payment settled",
		zap.String("bill_id", bill.ID.String()),
		zap.String("order_id", req.OrderID),
	)
	return payment, nil
}

// postPaymentEntries writes the PAYMENT credit on the landlord ledger and
// the CREDIT on the unit's payment ledger.
func (s *BillPaymentService) postPaymentEntries(ctx context.Context, bill *billing.Bill, payment *billing.BillPayment) error {
	remark := fmt.Sprintf("Gateway payment %s", payment.GatewayPaymentID)

	_, err := s.ledgerService.Record(ctx, ledgerapp.RecordEntryRequest{
		LandlordID:      bill.LandlordID,
		SiteID:          bill.SiteID,
		UnitID:          bill.UnitID,
		BillID:          &bill.ID,
		Purpose:         remark,
		TransactionType: ledger.TransactionTypePayment,
		Amount:          payment.Amount,
	})
	if err != nil {
		return fmt.Errorf("failed to record ledger entry for payment %s: %w", payment.ID, err)
	}

	_, err = s.paymentLedger.Record(ctx, ledgerapp.RecordPaymentEntryRequest{
		Scope: ledger.PaymentScope{
			PartyType: ledger.PartyTypeLandlord,
			PartyID:   bill.LandlordID,
			SiteID:    bill.SiteID,
			UnitID:    bill.UnitID,
		},
		BillID:       &bill.ID,
		EntryType:    ledger.EntryTypeCredit,
		CreditAmount: payment.Amount,
		Remark:       remark,
		PaymentMode:  "gateway",
	})
	if err != nil {
		return fmt.Errorf("failed to record payment ledger entry for payment %s: %w", payment.ID, err)
	}

	return nil
}

// GetPayment returns one payment attempt by id
func (s *BillPaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*billing.BillPayment, error) {
	if id == uuid.Nil {
		return nil, shared.NewValidationError("Payment ID is required")
	}
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	if payment == nil {
		return nil, shared.ErrNotFound
	}
	return payment, nil
}

// ListPaymentsByBill returns every attempt recorded against a bill
func (s *BillPaymentService) ListPaymentsByBill(ctx context.Context, billID uuid.UUID) ([]*billing.BillPayment, error) {
	if billID == uuid.Nil {
		return nil, shared.NewValidationError("Bill ID is required")
	}
	return s.paymentRepo.FindByBill(ctx, billID)
}
