package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/billing"
	"github.com/propman/backend/internal/domain/ledger"
	"github.com/propman/backend/internal/domain/shared"
)

// ConsolidatedPayableService nets a landlord's standing advance against their
// unpaid bills. The computation is a pure plan; committing it (flipping
// covered bills to paid) only happens on an explicit settle request.
type ConsolidatedPayableService struct {
	ledgerService *LedgerService
	billRepo      billing.BillRepository
}

// NewConsolidatedPayableService creates a new ConsolidatedPayableService
func NewConsolidatedPayableService(
	ledgerService *LedgerService,
	billRepo billing.BillRepository,
) *ConsolidatedPayableService {
	return &ConsolidatedPayableService{
		ledgerService: ledgerService,
		billRepo:      billRepo,
	}
}

// ConsolidatedPayableResult is the plan plus what, if anything, was committed
type ConsolidatedPayableResult struct {
	LandlordID     uuid.UUID              `json:"landlord_id"`
	CurrentBalance ledger.Balance         `json:"current_balance"`
	Plan           *ledger.SettlementPlan `json:"plan"`
	Settled        bool                   `json:"settled"`
	SettledBillIDs []uuid.UUID            `json:"settled_bill_ids,omitempty"`
}

// GetConsolidatedPayable computes how much a landlord still owes across all
// unpaid bills after netting any advance. Read-only: nothing is mutated.
func (s *ConsolidatedPayableService) GetConsolidatedPayable(ctx context.Context, landlordID uuid.UUID) (*ConsolidatedPayableResult, error) {
	return s.consolidate(ctx, landlordID, false)
}

// Settle computes the same plan and commits it: every bill the advance fully
// covers is marked paid with paidBy recorded as the auto-settlement actor.
func (s *ConsolidatedPayableService) Settle(ctx context.Context, landlordID uuid.UUID) (*ConsolidatedPayableResult, error) {
	return s.consolidate(ctx, landlordID, true)
}

func (s *ConsolidatedPayableService) consolidate(ctx context.Context, landlordID uuid.UUID, settle bool) (*ConsolidatedPayableResult, error) {
	if landlordID == uuid.Nil {
		return nil, shared.NewValidationError("Landlord ID is required")
	}

	current, err := s.ledgerService.GetCurrentBalance(ctx, landlordID)
	if err != nil {
		return nil, err
	}

	bills, err := s.billRepo.FindUnpaidByLandlord(ctx, landlordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get unpaid bills: %w", err)
	}

	unpaid := make([]ledger.UnpaidBill, 0, len(bills))
	for _, bill := range bills {
		unpaid = append(unpaid, ledger.UnpaidBill{
			BillID:      bill.ID,
			TotalAmount: bill.TotalAmount,
			GeneratedAt: bill.CreatedAt,
		})
	}

	plan, err := ledger.BuildSettlementPlan(current, unpaid)
	if err != nil {
		return nil, err
	}

	result := &ConsolidatedPayableResult{
		LandlordID:     landlordID,
		CurrentBalance: current,
		Plan:           plan,
	}
	if !settle {
		return result, nil
	}

	settled, err := s.commitPlan(ctx, bills, plan)
	if err != nil {
		return nil, err
	}
	result.Settled = true
	result.SettledBillIDs = settled
	return result, nil
}

// commitPlan commits the plan's auto-paid bills: each settlement first
// appends a ledger entry charging the bill against the standing advance,
// then flips the bill to paid. The entry goes first so a failure between
// the two steps leaves the advance consumed and the bill still unpaid —
// a re-run then undercounts the advance instead of spending it twice.
// Bills are committed one by one under optimistic locking; a conflict means
// someone else touched the bill meanwhile and the whole settlement reports
// it, so the caller can re-run against fresh state.
func (s *ConsolidatedPayableService) commitPlan(ctx context.Context, bills []*billing.Bill, plan *ledger.SettlementPlan) ([]uuid.UUID, error) {
	byID := make(map[uuid.UUID]*billing.Bill, len(bills))
	for _, bill := range bills {
		byID[bill.ID] = bill
	}

	now := time.Now()
	settled := make([]uuid.UUID, 0)
	for _, billID := range plan.AutoPaidBillIDs() {
		bill, ok := byID[billID]
		if !ok {
			continue
		}

		// Consume the advance: a BILL entry debits the account, so the
		// running balance sheds exactly the settled total. (PAYMENT would
		// credit it and grow the advance instead.)
		_, err := s.ledgerService.Record(ctx, RecordEntryRequest{
			LandlordID:      bill.LandlordID,
			SiteID:          bill.SiteID,
			UnitID:          bill.UnitID,
			BillID:          &bill.ID,
			Purpose:         "Bill settled from standing advance",
			TransactionType: ledger.TransactionTypeBill,
			Amount:          bill.TotalAmount,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to record settlement entry for bill %s: %w", billID, err)
		}

		if err := bill.MarkPaid(billing.PaidByAuto, now); err != nil {
			return nil, fmt.Errorf("failed to mark bill %s paid: %w", billID, err)
		}
		if err := s.billRepo.Save(ctx, bill); err != nil {
			if errors.Is(err, shared.ErrConcurrencyConflict) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to save bill %s: %w", billID, err)
		}
		settled = append(settled, billID)
	}

	return settled, nil
}
