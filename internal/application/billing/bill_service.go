package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	ledgerapp "github.com/propman/backend/internal/application/ledger"
	"github.com/propman/backend/internal/domain/billing"
	"github.com/propman/backend/internal/domain/ledger"
	"github.com/propman/backend/internal/domain/party"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BillingService generates bills for units and posts the matching ledger
// entries. A generated bill always produces one BILL entry on the landlord
// ledger and one DEBIT entry on the unit's payment ledger.
type BillingService struct {
	billRepo      billing.BillRepository
	unitRepo      party.UnitRepository
	ledgerService *ledgerapp.LedgerService
	paymentLedger *ledgerapp.PaymentLedgerService
	logger        *zap.Logger
}

// NewBillingService creates a new BillingService
func NewBillingService(
	billRepo billing.BillRepository,
	unitRepo party.UnitRepository,
	ledgerService *ledgerapp.LedgerService,
	paymentLedger *ledgerapp.PaymentLedgerService,
	logger *zap.Logger,
) *BillingService {
	return &BillingService{
		billRepo:      billRepo,
		unitRepo:      unitRepo,
		ledgerService: ledgerService,
		paymentLedger: paymentLedger,
		logger:        logger,
	}
}

// GenerateBillRequest asks for one bill on one unit
type GenerateBillRequest struct {
	UnitID         uuid.UUID
	PeriodStart    time.Time
	CurrentReading *decimal.Decimal
	TenantID       *uuid.UUID
	Remarks        string
}

// GenerateBill computes charges from the unit's configured rates and meter
// state, persists the bill and posts its ledger entries. A second bill for
// the same unit and period is rejected.
func (s *BillingService) GenerateBill(ctx context.Context, req GenerateBillRequest) (*billing.Bill, error) {
	if req.UnitID == uuid.Nil {
		return nil, shared.NewValidationError("Unit ID is required")
	}
	if req.PeriodStart.IsZero() {
		return nil, shared.NewValidationError("Period start is required")
	}

	unit, err := s.unitRepo.FindByID(ctx, req.UnitID)
	if err != nil {
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}
	if unit == nil {
		return nil, shared.ErrNotFound
	}

	exists, err := s.billRepo.ExistsForPeriod(ctx, unit.ID, unit.Cycle, req.PeriodStart)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing bills: %w", err)
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A bill already covers this unit and period")
	}

	previousReading := unit.MeterReading
	currentReading := unit.MeterReading
	meterAdvanced := false
	if req.CurrentReading != nil {
		previousReading, err = unit.RecordMeterReading(*req.CurrentReading)
		if err != nil {
			return nil, err
		}
		currentReading = *req.CurrentReading
		meterAdvanced = true
	}

	charges, err := billing.ComputeCharges(billing.ChargeInput{
		Basis:           unit.MaintenanceBasis,
		MaintenanceRate: unit.MaintenanceRate,
		AreaSqft:        unit.AreaSqft,
		GSTPercent:      unit.GSTPercent,
		PreviousReading: previousReading,
		CurrentReading:  currentReading,
		RatePerUnit:     unit.ElectricityRate,
		Months:          unit.Cycle.Months(),
	})
	if err != nil {
		return nil, err
	}

	bill, err := billing.NewBill(unit.LandlordID, unit.SiteID, unit.ID, unit.Cycle, req.PeriodStart, charges)
	if err != nil {
		return nil, err
	}
	if req.TenantID != nil {
		bill.WithTenant(*req.TenantID)
	}
	bill.Remarks = req.Remarks

	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}
	if meterAdvanced {
		if err := s.unitRepo.Save(ctx, unit); err != nil {
			return nil, fmt.Errorf("failed to save unit meter reading: %w", err)
		}
	}

	if err := s.postBillEntries(ctx, bill); err != nil {
		return nil, err
	}

	s.logger.Info("bill generated",
		zap.String("bill_id", bill.ID.String()),
		zap.String("unit_id", unit.ID.String()),
		zap.String("total", bill.TotalAmount.String()),
	)
	return bill, nil
}

// postBillEntries writes the BILL debit on the landlord ledger and the DEBIT
// on the unit's payment ledger.
func (s *BillingService) postBillEntries(ctx context.Context, bill *billing.Bill) error {
	purpose := fmt.Sprintf("Maintenance bill %s to %s",
		bill.PeriodStart.Format("2006-01-02"), bill.PeriodEnd.Format("2006-01-02"))

	_, err := s.ledgerService.Record(ctx, ledgerapp.RecordEntryRequest{
		LandlordID:      bill.LandlordID,
		SiteID:          bill.SiteID,
		UnitID:          bill.UnitID,
		BillID:          &bill.ID,
		Purpose:         purpose,
		TransactionType: ledger.TransactionTypeBill,
		Amount:          bill.TotalAmount,
	})
	if err != nil {
		return fmt.Errorf("failed to record ledger entry for bill %s: %w", bill.ID, err)
	}

	_, err = s.paymentLedger.Record(ctx, ledgerapp.RecordPaymentEntryRequest{
		Scope: ledger.PaymentScope{
			PartyType: ledger.PartyTypeLandlord,
			PartyID:   bill.LandlordID,
			SiteID:    bill.SiteID,
			UnitID:    bill.UnitID,
		},
		BillID:      &bill.ID,
		EntryType:   ledger.EntryTypeDebit,
		DebitAmount: bill.TotalAmount,
		Remark:      purpose,
	})
	if err != nil {
		return fmt.Errorf("failed to record payment ledger entry for bill %s: %w", bill.ID, err)
	}

	return nil
}

// GenerationSummary reports one scheduled billing run
type GenerationSummary struct {
	Generated int `json:"generated"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// GenerateForBillableUnits runs one billing cycle over every unit with a
// configured maintenance rate. Units already billed for the period are
// skipped; per-unit failures are logged and counted, never abort the run.
func (s *BillingService) GenerateForBillableUnits(ctx context.Context, periodStart time.Time) (*GenerationSummary, error) {
	units, err := s.unitRepo.FindBillable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list billable units: %w", err)
	}

	summary := &GenerationSummary{}
	for _, unit := range units {
		exists, err := s.billRepo.ExistsForPeriod(ctx, unit.ID, unit.Cycle, periodStart)
		if err != nil {
			s.logger.Error("billing run: period check failed",
				zap.String("unit_id", unit.ID.String()), zap.Error(err))
			summary.Failed++
			continue
		}
		if exists {
			summary.Skipped++
			continue
		}

		_, err = s.GenerateBill(ctx, GenerateBillRequest{
			UnitID:      unit.ID,
			PeriodStart: periodStart,
		})
		if err != nil {
			s.logger.Error("billing run: generation failed",
				zap.String("unit_id", unit.ID.String()), zap.Error(err))
			summary.Failed++
			continue
		}
		summary.Generated++
	}

	s.logger.Info("billing run finished",
		zap.Int("generated", summary.Generated),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}

// GetBill returns one bill by id
func (s *BillingService) GetBill(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	if id == uuid.Nil {
		return nil, shared.NewValidationError("Bill ID is required")
	}
	bill, err := s.billRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	if bill == nil {
		return nil, shared.ErrNotFound
	}
	return bill, nil
}

// ListBillsByLandlord returns a landlord's bills
func (s *BillingService) ListBillsByLandlord(ctx context.Context, landlordID uuid.UUID, filter shared.Filter) ([]*billing.Bill, int64, error) {
	if landlordID == uuid.Nil {
		return nil, 0, shared.NewValidationError("Landlord ID is required")
	}
	return s.billRepo.FindByLandlord(ctx, landlordID, filter)
}

// ListBillsByUnit returns a unit's bills
func (s *BillingService) ListBillsByUnit(ctx context.Context, unitID uuid.UUID, filter shared.Filter) ([]*billing.Bill, int64, error) {
	if unitID == uuid.Nil {
		return nil, 0, shared.NewValidationError("Unit ID is required")
	}
	return s.billRepo.FindByUnit(ctx, unitID, filter)
}
