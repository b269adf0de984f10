package complaint

import (
	"context"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/complaint"
	"github.com/propman/backend/internal/domain/party"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockComplaintRepository is a mock implementation of complaint.Repository
type MockComplaintRepository struct {
	mock.Mock
}

func (m *MockComplaintRepository) Create(ctx context.Context, c *complaint.Complaint) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockComplaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*complaint.Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*complaint.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*complaint.Complaint, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]*complaint.Complaint), args.Get(1).(int64), args.Error(2)
}

func (m *MockComplaintRepository) FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*complaint.Complaint, int64, error) {
	args := m.Called(ctx, siteID, filter)
	return args.Get(0).([]*complaint.Complaint), args.Get(1).(int64), args.Error(2)
}

func (m *MockComplaintRepository) Save(ctx context.Context, c *complaint.Complaint) error {
	args := m.Called(ctx, c)
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
