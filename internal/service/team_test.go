package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vendordesk/internal/logging"
	"vendordesk/internal/model"
	"vendordesk/internal/repository"
	repoMocks "vendordesk/internal/repository/mocks"
)

func TestTeamService_ListJoinsUsers(t *testing.T) {
	ctx := context.Background()
	store := repoMocks.NewMockStore()
	now := time.Now()

	store.TeamRepo.On("List", ctx).Return([]model.TeamMember{
		{ID: 1, UserID: 1, Title: strPtr("System Administrator"), Department: strPtr("IT"), CreatedAt: now},
		{ID: 2, UserID: 42},
	}, nil)
	store.UserRepo.On("List", ctx).Return([]model.User{{ID: 1, Name: "Admin User", Email: "admin@x.com"}}, nil)

	got, err := NewTeamService(store, logging.Nop()).List(ctx)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Admin User", got[0].Name)
	assert.Equal(t, "admin@x.com", got[0].Email)
	assert.Equal(t, "IT", *got[0].Department)
	assert.Equal(t, "Unknown", got[1].Name)
	assert.Equal(t, "", got[1].Email)
	store.AssertExpectations(t)
}

func TestTeamService_UpdateOverwritesAllFields(t *testing.T) {
	ctx := context.Background()
	store := repoMocks.NewMockStore()

	store.TeamRepo.On("FindByID", ctx, int64(3)).Return(&model.TeamMember{
		ID: 3, UserID: 5, Title: strPtr("Engineer"), Department: strPtr("Ops"), Phone: strPtr("555"),
	}, nil)
	store.TeamRepo.On("Update", ctx, mock.MatchedBy(func(m *model.TeamMember) bool {
		return m.ID == 3 && m.UserID == 5 && *m.Title == "Lead" && m.Department == nil && m.Phone == nil
	})).Return(nil)

	err := NewTeamService(store, logging.Nop()).Update(ctx, 3, TeamMemberInput{Title: strPtr("Lead"), Department: strPtr("")})

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestTeamService_NotFound(t *testing.T) {
	ctx := context.Background()
	store := repoMocks.NewMockStore()
	store.TeamRepo.On("FindByID", ctx, int64(8)).Return(nil, repository.ErrNotFound)
	store.TeamRepo.On("Delete", ctx, int64(8)).Return(repository.ErrNotFound)
	svc := NewTeamService(store, logging.Nop())

	_, err := svc.Get(ctx, 8)
	assertKind(t, err, ErrNotFound, MsgTeamMemberNotFound)
	assertKind(t, svc.Update(ctx, 8, TeamMemberInput{}), ErrNotFound, MsgTeamMemberNotFound)
	assertKind(t, svc.Delete(ctx, 8), ErrNotFound, MsgTeamMemberNotFound)
}
