package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/billing"
	"github.com/propman/backend/internal/domain/ledger"
	"github.com/propman/backend/internal/domain/party"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockLedgerEntryRepository is a mock implementation of ledger.LedgerEntryRepository
type MockLedgerEntryRepository struct {
	mock.Mock
}

func (m *MockLedgerEntryRepository) Create(ctx context.Context, entry *ledger.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.LedgerEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.LedgerEntry), args.Error(1)
}

func (m *MockLedgerEntryRepository) FindLatestByLandlord(ctx context.Context, landlordID uuid.UUID) (*ledger.LedgerEntry, error) {
	args := m.Called(ctx, landlordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.LedgerEntry), args.Error(1)
}

func (m *MockLedgerEntryRepository) FindByLandlord(ctx context.Context, landlordID uuid.UUID, filter shared.Filter) ([]*ledger.LedgerEntry, int64, error) {
	args := m.Called(ctx, landlordID, filter)
	return args.Get(0).([]*ledger.LedgerEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerEntryRepository) FindByBill(ctx context.Context, billID uuid.UUID) ([]*ledger.LedgerEntry, error) {
	args := m.Called(ctx, billID)
	return args.Get(0).([]*ledger.LedgerEntry), args.Error(1)
}

// MockPaymentLedgerRepository is a mock implementation of ledger.PaymentLedgerRepository
type MockPaymentLedgerRepository struct {
	mock.Mock
}

func (m *MockPaymentLedgerRepository) Create(ctx context.Context, entry *ledger.PaymentLedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockPaymentLedgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.PaymentLedgerEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.PaymentLedgerEntry), args.Error(1)
}

func (m *MockPaymentLedgerRepository) FindLatestByScope(ctx context.Context, scope ledger.PaymentScope) (*ledger.PaymentLedgerEntry, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.PaymentLedgerEntry), args.Error(1)
}

func (m *MockPaymentLedgerRepository) FindByScope(ctx context.Context, scope ledger.PaymentScope, filter shared.Filter) ([]*ledger.PaymentLedgerEntry, int64, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).([]*ledger.PaymentLedgerEntry), args.Get(1).(int64), args.Error(2)
}

// MockLandlordRepository is a mock implementation of party.LandlordRepository
type MockLandlordRepository struct {
	mock.Mock
}

func (m *MockLandlordRepository) Create(ctx context.Context, landlord *party.Landlord) error {
	args := m.Called(ctx, landlord)
	return args.Error(0)
}

func (m *MockLandlordRepository) FindByID(ctx context.Context, id uuid.UUID) (*party.Landlord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*party.Landlord), args.Error(1)
}

func (m *MockLandlordRepository) FindByPhone(ctx context.Context, phone string) (*party.Landlord, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*party.Landlord), args.Error(1)
}

func (m *MockLandlordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*party.Landlord, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*party.Landlord), args.Get(1).(int64), args.Error(2)
}

func (m *MockLandlordRepository) Save(ctx context.Context, landlord *party.Landlord) error {
	args := m.Called(ctx, landlord)
	return args.Error(0)
}

// MockBillRepository is a mock implementation of billing.BillRepository
type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) Create(ctx context.Context, bill *billing.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindUnpaidByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*billing.Bill, error) {
	args := m.Called(ctx, landlordID)
	return args.Get(0).([]*billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindByLandlord(ctx context.Context, landlordID uuid.UUID, filter shared.Filter) ([]*billing.Bill, int64, error) {
	args := m.Called(ctx, landlordID, filter)
	return args.Get(0).([]*billing.Bill), args.Get(1).(int64), args.Error(2)
}

func (m *MockBillRepository) FindByUnit(ctx context.Context, unitID uuid.UUID, filter shared.Filter) ([]*billing.Bill, int64, error) {
	args := m.Called(ctx, unitID, filter)
	return args.Get(0).([]*billing.Bill), args.Get(1).(int64), args.Error(2)
}

func (m *MockBillRepository) ExistsForPeriod(ctx context.Context, unitID uuid.UUID, cycle billing.BillingCycle, periodStart time.Time) (bool, error) {
	args := m.Called(ctx, unitID, cycle, periodStart)
	return args.Bool(0), args.Error(1)
}

func (m *MockBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}
