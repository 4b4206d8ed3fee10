package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"vendordesk/internal/model"
	"vendordesk/internal/repository"
)

// TeamMemberInput carries the editable team member fields.
type TeamMemberInput struct {
	Title      *string `json:"title"`
	Department *string `json:"department"`
	Phone      *string `json:"phone"`
}

// TeamService manages the team directory.
type TeamService interface {
	List(ctx context.Context) ([]model.TeamMemberView, error)
	Get(ctx context.Context, id int64) (*model.TeamMemberView, error)
	// Update overwrites title, department and phone; missing or empty values clear the field.
	Update(ctx context.Context, id int64, in TeamMemberInput) error
	Delete(ctx context.Context, id int64) error
}

type teamService struct {
	store repository.Store
	log   zerolog.Logger
}

// NewTeamService constructs a new TeamService.
func NewTeamService(store repository.Store, log zerolog.Logger) TeamService {
	return &teamService{store: store, log: log}
}

func (s *teamService) List(ctx context.Context) ([]model.TeamMemberView, error) {
	dir, err := loadDirectory(ctx, s.store)
	if err != nil {
		return nil, err
	}
	members, err := s.store.TeamMembers().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}

	out := make([]model.TeamMemberView, 0, len(members))
	for _, m := range members {
		out = append(out, dir.memberView(m))
	}
	return out, nil
}

func (s *teamService) Get(ctx context.Context, id int64) (*model.TeamMemberView, error) {
	m, err := s.store.TeamMembers().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError(MsgTeamMemberNotFound)
		}
		return nil, fmt.Errorf("find team member: %w", err)
	}
	dir, err := loadDirectory(ctx, s.store)
	if err != nil {
		return nil, err
	}
	view := dir.memberView(*m)
	return &view, nil
}

func (s *teamService) Update(ctx context.Context, id int64, in TeamMemberInput) error {
	return s.store.WithinTx(ctx, func(tx repository.Store) error {
		m, err := tx.TeamMembers().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return notFoundError(MsgTeamMemberNotFound)
			}
			return fmt.Errorf("find team member: %w", err)
		}

		m.Title = nonEmpty(in.Title)
		m.Department = nonEmpty(in.Department)
		m.Phone = nonEmpty(in.Phone)

		if err := tx.TeamMembers().Update(ctx, m); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return notFoundError(MsgTeamMemberNotFound)
			}
			return fmt.Errorf("update team member: %w", err)
		}
		return nil
	})
}

func (s *teamService) Delete(ctx context.Context, id int64) error {
	if err := s.store.TeamMembers().Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFoundError(MsgTeamMemberNotFound)
		}
		return fmt.Errorf("delete team member: %w", err)
	}
	s.logger(ctx).Info().Str("event", "team_member_deleted").Int64("team_member_id", id).Msg("team member deleted")
	return nil
}

func (s *teamService) logger(ctx context.Context) *zerolog.Logger {
	return scopedLogger(ctx, s.log, "team")
}
