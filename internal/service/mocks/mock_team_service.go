package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vendordesk/internal/model"
	"vendordesk/internal/service"
)

type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) List(ctx context.Context) ([]model.TeamMemberView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TeamMemberView), args.Error(1)
}

func (m *MockTeamService) Get(ctx context.Context, id int64) (*model.TeamMemberView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TeamMemberView), args.Error(1)
}

func (m *MockTeamService) Update(ctx context.Context, id int64, in service.TeamMemberInput) error {
	args := m.Called(ctx, id, in)
	return args.Error(0)
}

func (m *MockTeamService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
