package party

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/ledger"
	"github.com/propman/backend/internal/domain/party"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LandlordService handles landlord onboarding and profile management
type LandlordService struct {
	landlordRepo party.LandlordRepository
}

// NewLandlordService creates a new LandlordService
func NewLandlordService(landlordRepo party.LandlordRepository) *LandlordService {
	return &LandlordService{landlordRepo: landlordRepo}
}

// CreateLandlordRequest carries the onboarding fields
type CreateLandlordRequest struct {
	Name               string
	Email              string
	Phone              string
	OpeningBalance     decimal.Decimal
	OpeningBalanceType ledger.BalanceType
}

// CreateLandlord onboards a landlord, optionally seeding an opening balance
func (s *LandlordService) CreateLandlord(ctx context.Context, req CreateLandlordRequest) (*party.Landlord, error) {
	existing, err := s.landlordRepo.FindByPhone(ctx, req.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing landlord: %w", err)
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A landlord with this phone already exists")
	}

	landlord, err := party.NewLandlord(req.Name, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}

	if !req.OpeningBalance.IsZero() || req.OpeningBalanceType != ledger.BalanceTypeNone {
		opening, err := ledger.NewBalance(req.OpeningBalance, req.OpeningBalanceType)
		if err != nil {
			return nil, err
		}
		landlord.SetOpeningBalance(opening)
	}

	if err := s.landlordRepo.Create(ctx, landlord); err != nil {
		return nil, fmt.Errorf("failed to create landlord: %w", err)
	}
	return landlord, nil
}

// GetLandlord returns one landlord by id
func (s *LandlordService) GetLandlord(ctx context.Context, id uuid.UUID) (*party.Landlord, error) {
	if id == uuid.Nil {
		return nil, shared.NewValidationError("Landlord ID is required")
	}
	landlord, err := s.landlordRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get landlord: %w", err)
	}
	if landlord == nil {
		return nil, shared.ErrNotFound
	}
	return landlord, nil
}

// ListLandlords returns landlords matching the filter
func (s *LandlordService) ListLandlords(ctx context.Context, filter shared.Filter) ([]*party.Landlord, int64, error) {
	return s.landlordRepo.FindAll(ctx, filter)
}

// UpdateLandlordRequest carries mutable profile fields
type UpdateLandlordRequest struct {
	Name  string
	Email string
	Phone string
}

// UpdateLandlord changes a landlord's contact details
func (s *LandlordService) UpdateLandlord(ctx context.Context, id uuid.UUID, req UpdateLandlordRequest) (*party.Landlord, error) {
	landlord, err := s.GetLandlord(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := landlord.UpdateContact(req.Name, req.Email, req.Phone); err != nil {
		return nil, err
	}
	if err := s.landlordRepo.Save(ctx, landlord); err != nil {
		return nil, fmt.Errorf("failed to save landlord: %w", err)
	}
	return landlord, nil
}

// DeactivateLandlord removes a landlord from active billing
func (s *LandlordService) DeactivateLandlord(ctx context.Context, id uuid.UUID) error {
	landlord, err := s.GetLandlord(ctx, id)
	if err != nil {
		return err
	}
	landlord.Deactivate()
	if err := s.landlordRepo.Save(ctx, landlord); err != nil {
		return fmt.Errorf("failed to save landlord: %w", err)
	}
	return nil
}
