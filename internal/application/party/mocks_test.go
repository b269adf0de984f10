package party

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

// MockTenantRepository is a mock implementation of party.TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *party.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*party.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*party.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByPhone(ctx context.Context, phone string) (*party.Tenant, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*party.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*party.Tenant, int64, error) {
	args := m.Called(ctx, siteID, filter)
	return args.Get(0).([]*party.Tenant), args.Get(1).(int64), args.Error(2)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *party.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

// MockSiteRepository is a mock implementation of party.SiteRepository
type MockSiteRepository struct {
	mock.Mock
}

func (m *MockSiteRepository) Create(ctx context.Context, site *party.Site) error {
	args := m.Called(ctx, site)
	return args.Error(0)
}

func (m *MockSiteRepository) FindByID(ctx context.Context, id uuid.UUID) (*party.Site, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*party.Site), args.Error(1)
}

func (m *MockSiteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*party.Site, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*party.Site), args.Get(1).(int64), args.Error(2)
}

func (m *MockSiteRepository) Save(ctx context.Context, site *party.Site) error {
	args := m.Called(ctx, site)
	return args.Error(0)
}

// MockUnitRepository is a mock implementation of party.UnitRepository
type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) Create(ctx context.Context, unit *party.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*party.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*party.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*party.Unit, int64, error) {
	args := m.Called(ctx, siteID, filter)
	return args.Get(0).([]*party.Unit), args.Get(1).(int64), args.Error(2)
}

func (m *MockUnitRepository) FindByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*party.Unit, error) {
	args := m.Called(ctx, landlordID)
	return args.Get(0).([]*party.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindBillable(ctx context.Context) ([]*party.Unit, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*party.Unit), args.Error(1)
}

func (m *MockUnitRepository) Save(ctx context.Context, unit *party.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

// MockWalletTopUpRepository is a mock implementation of party.WalletTopUpRepository
type MockWalletTopUpRepository struct {
	mock.Mock
}

func (m *MockWalletTopUpRepository) Create(ctx context.Context, topUp *party.WalletTopUp) error {
	args := m.Called(ctx, topUp)
	return args.Error(0)
}

func (m *MockWalletTopUpRepository) FindByID(ctx context.Context, id uuid.UUID) (*party.WalletTopUp, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*party.WalletTopUp), args.Error(1)
}

func (m *MockWalletTopUpRepository) FindByGatewayOrderID(ctx context.Context, orderID string) (*party.WalletTopUp, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*party.WalletTopUp), args.Error(1)
}

func (m *MockWalletTopUpRepository) FindByParty(ctx context.Context, partyType ledger.PartyType, partyID uuid.UUID, filter shared.Filter) ([]*party.WalletTopUp, int64, error) {
	args := m.Called(ctx, partyType, partyID, filter)
	return args.Get(0).([]*party.WalletTopUp), args.Get(1).(int64), args.Error(2)
}

func (m *MockWalletTopUpRepository) Save(ctx context.Context, topUp *party.WalletTopUp) error {
	args := m.Called(ctx, topUp)
	return args.Error(0)
}

// MockPaymentGateway is a mock implementation of billing.PaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateOrder(ctx context.Context, req billing.CreateOrderRequest) (*billing.CreateOrderResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.CreateOrderResponse), args.Error(1)
}

func (m *MockPaymentGateway) VerifySignature(orderID, paymentID, signature string) bool {
	args := m.Called(orderID, paymentID, signature)
	return args.Bool(0)
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

// MockIdempotencyStore is a mock implementation of billingapp.IdempotencyStore
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
