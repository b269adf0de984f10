package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/ledger"
	"github.com/propman/backend/internal/domain/party"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// maxWriteAttempts bounds the retry loop on the sequence-conflict race.
// After this many collisions the conflict surfaces to the caller as 409.
const maxWriteAttempts = 3

// LedgerService appends entries to the per-landlord ledger
type LedgerService struct {
	entryRepo    ledger.LedgerEntryRepository
	landlordRepo party.LandlordRepository
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	entryRepo ledger.LedgerEntryRepository,
	landlordRepo party.LandlordRepository,
) *LedgerService {
	return &LedgerService{
		entryRepo:    entryRepo,
		landlordRepo: landlordRepo,
	}
}

// RecordEntryRequest describes one transaction to append
type RecordEntryRequest struct {
	LandlordID      uuid.UUID
	SiteID          uuid.UUID
	UnitID          uuid.UUID
	BillID          *uuid.UUID
	Purpose         string
	TransactionType ledger.TransactionType
	Amount          decimal.Decimal
}

// Record appends a ledger entry for a landlord. The opening balance is the
// latest entry's closing balance, falling back to the landlord's stored
// opening balance for the first entry. Two writers racing on the same
// landlord collide on the (landlord, sequence) unique index; the loser
// re-reads and retries up to maxWriteAttempts times.
func (s *LedgerService) Record(ctx context.Context, req RecordEntryRequest) (*ledger.LedgerEntry, error) {
	if req.LandlordID == uuid.Nil {
		return nil, shared.NewValidationError("Landlord ID is required")
	}

	landlord, err := s.landlordRepo.FindByID(ctx, req.LandlordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get landlord: %w", err)
	}
	if landlord == nil {
		return nil, shared.ErrNotFound
	}

	var lastErr error
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		opening := landlord.OpeningBalance
		var sequence uint64 = 1

		latest, err := s.entryRepo.FindLatestByLandlord(ctx, req.LandlordID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("failed to read latest ledger entry: %w", err)
		}
		if latest != nil {
			opening = latest.ClosingBalance
			sequence = latest.Sequence + 1
		}

		entry, err := ledger.NewLedgerEntry(
			req.LandlordID, req.SiteID, req.UnitID,
			req.TransactionType, req.Amount,
			opening, sequence,
		)
		if err != nil {
			return nil, err
		}
		if req.BillID != nil {
			entry.WithBillID(*req.BillID)
		}
		if req.Purpose != "" {
			entry.WithPurpose(req.Purpose)
		}

		if err := s.entryRepo.Create(ctx, entry); err != nil {
			if errors.Is(err, shared.ErrConcurrencyConflict) {
				lastErr = err
				continue
			}
			return nil, fmt.Errorf("failed to create ledger entry: %w", err)
		}
		return entry, nil
	}

	return nil, lastErr
}

// GetEntries returns a landlord's ledger entries, newest first by sequence
func (s *LedgerService) GetEntries(ctx context.Context, landlordID uuid.UUID, filter shared.Filter) ([]*ledger.LedgerEntry, int64, error) {
	if landlordID == uuid.Nil {
		return nil, 0, shared.NewValidationError("Landlord ID is required")
	}
	return s.entryRepo.FindByLandlord(ctx, landlordID, filter)
}

// GetCurrentBalance returns a landlord's running balance: the latest entry's
// closing balance, or the stored opening balance when no entries exist.
func (s *LedgerService) GetCurrentBalance(ctx context.Context, landlordID uuid.UUID) (ledger.Balance, error) {
	if landlordID == uuid.Nil {
		return ledger.ZeroBalance(), shared.NewValidationError("Landlord ID is required")
	}

	landlord, err := s.landlordRepo.FindByID(ctx, landlordID)
	if err != nil {
		return ledger.ZeroBalance(), fmt.Errorf("failed to get landlord: %w", err)
	}
	if landlord == nil {
		return ledger.ZeroBalance(), shared.ErrNotFound
	}

	latest, err := s.entryRepo.FindLatestByLandlord(ctx, landlordID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return landlord.OpeningBalance, nil
		}
		return ledger.ZeroBalance(), fmt.Errorf("failed to read latest ledger entry: %w", err)
	}

	return latest.ClosingBalance, nil
}
