package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vendordesk/internal/model"
)

type MockTeamMemberRepository struct {
	mock.Mock
}

func (m *MockTeamMemberRepository) List(ctx context.Context) ([]model.TeamMember, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TeamMember), args.Error(1)
}

func (m *MockTeamMemberRepository) FindByID(ctx context.Context, id int64) (*model.TeamMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TeamMember), args.Error(1)
}

func (m *MockTeamMemberRepository) Create(ctx context.Context, tm *model.TeamMember) (*model.TeamMember, error) {
	args := m.Called(ctx, tm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TeamMember), args.Error(1)
}

func (m *MockTeamMemberRepository) Update(ctx context.Context, tm *model.TeamMember) error {
	args := m.Called(ctx, tm)
	return args.Error(0)
}

func (m *MockTeamMemberRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
