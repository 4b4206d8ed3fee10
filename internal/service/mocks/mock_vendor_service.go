package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vendordesk/internal/model"
	"vendordesk/internal/service"
)

type MockVendorService struct {
	mock.Mock
}

func (m *MockVendorService) List(ctx context.Context) ([]model.VendorView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VendorView), args.Error(1)
}

func (m *MockVendorService) Get(ctx context.Context, id int64) (*model.VendorDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VendorDetail), args.Error(1)
}

func (m *MockVendorService) Create(ctx context.Context, in service.VendorInput) (*model.Vendor, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vendor), args.Error(1)
}

func (m *MockVendorService) Update(ctx context.Context, id int64, in service.VendorInput) error {
	args := m.Called(ctx, id, in)
	return args.Error(0)
}

func (m *MockVendorService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
