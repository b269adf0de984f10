package party

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	billingapp "github.com/propman/backend/internal/application/billing"
	ledgerapp "github.com/propman/backend/internal/application/ledger"
	"github.com/propman/backend/internal/domain/billing"
	"github.com/propman/backend/internal/domain/ledger"
	"github.com/propman/backend/internal/domain/party"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// topUpClaimTTL mirrors the bill-payment callback window
const topUpClaimTTL = 24 * time.Hour

// WalletService funds landlord and tenant wallets through the payment
// gateway. A verified top-up credits the wallet and posts a CREDIT entry on
// the party's unit payment ledger.
type WalletService struct {
	topUpRepo     party.WalletTopUpRepository
	landlordRepo  party.LandlordRepository
	tenantRepo    party.TenantRepository
	gateway       billing.PaymentGateway
	paymentLedger *ledgerapp.PaymentLedgerService
	idempotency   billingapp.IdempotencyStore
	logger        *zap.Logger
}

// NewWalletService creates a new WalletService
func NewWalletService(
	topUpRepo party.WalletTopUpRepository,
	landlordRepo party.LandlordRepository,
	tenantRepo party.TenantRepository,
	gateway billing.PaymentGateway,
	paymentLedger *ledgerapp.PaymentLedgerService,
	idempotency billingapp.IdempotencyStore,
	logger *zap.Logger,
) *WalletService {
	return &WalletService{
		topUpRepo:     topUpRepo,
		landlordRepo:  landlordRepo,
		tenantRepo:    tenantRepo,
		gateway:       gateway,
		paymentLedger: paymentLedger,
		idempotency:   idempotency,
		logger:        logger,
	}
}

// InitiateTopUpRequest asks to fund one party's wallet
type InitiateTopUpRequest struct {
	PartyType ledger.PartyType
	PartyID   uuid.UUID
	SiteID    uuid.UUID
	UnitID    uuid.UUID
	Amount    decimal.Decimal
}

// InitiateTopUp opens a gateway order for the top-up amount
func (s *WalletService) InitiateTopUp(ctx context.Context, req InitiateTopUpRequest) (*party.WalletTopUp, error) {
	if err := s.checkParty(ctx, req.PartyType, req.PartyID); err != nil {
		return nil, err
	}

	topUp, err := party.NewWalletTopUp(req.PartyType, req.PartyID, req.SiteID, req.UnitID, req.Amount)
	if err != nil {
		return nil, err
	}

	order, err := s.gateway.CreateOrder(ctx, billing.CreateOrderRequest{
		Amount:   req.Amount,
		Currency: topUp.Currency,
		Receipt:  fmt.Sprintf("topup-%s", topUp.ID),
		Notes: map[string]string{
			"party_type": req.PartyType.String(),
			"party_id":   req.PartyID.String(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrGatewayFailure, err)
	}
	if err := topUp.AttachGatewayOrder(order.OrderID); err != nil {
		return nil, err
	}

	if err := s.topUpRepo.Create(ctx, topUp); err != nil {
		return nil, fmt.Errorf("failed to create top-up: %w", err)
	}

	s.logger.Info("wallet top-up initiated",
		zap.String("party_id", req.PartyID.String()),
		zap.String("order_id", order.OrderID),
	)
	return topUp, nil
}

func (s *WalletService) checkParty(ctx context.Context, partyType ledger.PartyType, partyID uuid.UUID) error {
	if partyID == uuid.Nil {
		return shared.NewValidationError("Party ID is required")
	}
	switch partyType {
	case ledger.PartyTypeLandlord:
		landlord, err := s.landlordRepo.FindByID(ctx, partyID)
		if err != nil {
			return fmt.Errorf("failed to get landlord: %w", err)
		}
		if landlord == nil {
			return shared.ErrNotFound
		}
	case ledger.PartyTypeTenant:
		tenant, err := s.tenantRepo.FindByID(ctx, partyID)
		if err != nil {
			return fmt.Errorf("failed to get tenant: %w", err)
		}
		if tenant == nil {
			return shared.ErrNotFound
		}
	default:
		return shared.NewValidationError("Invalid party type")
	}
	return nil
}

// TopUpCallbackRequest is the gateway's completion callback for a top-up
type TopUpCallbackRequest struct {
	OrderID   string
	PaymentID string
	Signature string
}

// HandleCallback credits the wallet from a verified gateway callback and
// posts the CREDIT payment-ledger entry. Duplicates are dropped.
func (s *WalletService) HandleCallback(ctx context.Context, req TopUpCallbackRequest) (*party.WalletTopUp, error) {
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		return nil, shared.NewValidationError("Order ID, payment ID and signature are required")
	}

	claimed, err := s.idempotency.Claim(ctx, "wallet:callback:"+req.OrderID, topUpClaimTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to claim callback: %w", err)
	}
	if !claimed {
		return nil, shared.NewDomainError("DUPLICATE_CALLBACK", "Callback for this order was already processed")
	}

	topUp, err := s.processCallback(ctx, req)
	if err != nil {
		if releaseErr := s.idempotency.Release(ctx, "wallet:callback:"+req.OrderID); releaseErr != nil {
			s.logger.Error("failed to release callback claim",
				zap.String("order_id", req.OrderID), zap.Error(releaseErr))
		}
		return nil, err
	}
	return topUp, nil
}

func (s *WalletService) processCallback(ctx context.Context, req TopUpCallbackRequest) (*party.WalletTopUp, error) {
	topUp, err := s.topUpRepo.FindByGatewayOrderID(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find top-up: %w", err)
	}
	if topUp == nil {
		return nil, shared.ErrNotFound
	}

	now := time.Now()
	if !s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		if err := topUp.MarkFailed("signature verification failed", now); err != nil {
			return nil, err
		}
		if err := s.topUpRepo.Save(ctx, topUp); err != nil {
			return nil, fmt.Errorf("failed to save top-up: %w", err)
		}
		return nil, shared.ErrInvalidSignature
	}

	if err := topUp.MarkSuccess(req.PaymentID, now); err != nil {
		return nil, err
	}
	if err := s.creditWallet(ctx, topUp); err != nil {
		return nil, err
	}
	if err := s.topUpRepo.Save(ctx, topUp); err != nil {
		return nil, fmt.Errorf("failed to save top-up: %w", err)
	}

	_, err = s.paymentLedger.Record(ctx, ledgerapp.RecordPaymentEntryRequest{
		Scope: ledger.PaymentScope{
			PartyType: topUp.PartyType,
			PartyID:   topUp.PartyID,
			SiteID:    topUp.SiteID,
			UnitID:    topUp.UnitID,
		},
		EntryType:    ledger.EntryTypeCredit,
		CreditAmount: topUp.Amount,
		Remark:       fmt.Sprintf("Wallet top-up %s", topUp.GatewayPaymentID),
		PaymentMode:  "gateway",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record payment ledger entry for top-up %s: %w", topUp.ID, err)
	}

	s.logger.Info("wallet top-up settled",
		zap.String("party_id", topUp.PartyID.String()),
		zap.String("order_id", req.OrderID),
	)
	return topUp, nil
}

func (s *WalletService) creditWallet(ctx context.Context, topUp *party.WalletTopUp) error {
	switch topUp.PartyType {
	case ledger.PartyTypeLandlord:
		landlord, err := s.landlordRepo.FindByID(ctx, topUp.PartyID)
		if err != nil {
			return fmt.Errorf("failed to get landlord: %w", err)
		}
		if landlord == nil {
			return shared.ErrNotFound
		}
		if err := landlord.CreditWallet(topUp.Amount); err != nil {
			return err
		}
		if err := s.landlordRepo.Save(ctx, landlord); err != nil {
			return fmt.Errorf("failed to save landlord: %w", err)
		}
	case ledger.PartyTypeTenant:
		tenant, err := s.tenantRepo.FindByID(ctx, topUp.PartyID)
		if err != nil {
			return fmt.Errorf("failed to get tenant: %w", err)
		}
		if tenant == nil {
			return shared.ErrNotFound
		}
		if err := tenant.CreditWallet(topUp.Amount); err != nil {
			return err
		}
		if err := s.tenantRepo.Save(ctx, tenant); err != nil {
			return fmt.Errorf("failed to save tenant: %w", err)
		}
	}
	return nil
}
