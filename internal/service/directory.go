package service

import (
	"context"
	"fmt"

	"vendordesk/internal/model"
	"vendordesk/internal/repository"
)

// unknownUser is shown in place of a user that no longer exists.
const unknownUser = "Unknown"

// directory is an id-indexed snapshot of users and team members used to
// resolve references. Missing entries resolve to empty values, never errors.
type directory struct {
	users   map[int64]model.User
	members map[int64]model.TeamMember
}

func loadDirectory(ctx context.Context, store repository.Store) (*directory, error) {
	users, err := store.Users().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	members, err := store.TeamMembers().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}

	d := &directory{
		users:   make(map[int64]model.User, len(users)),
		members: make(map[int64]model.TeamMember, len(members)),
	}
	for _, u := range users {
		d.users[u.ID] = u
	}
	for _, m := range members {
		d.members[m.ID] = m
	}
	return d, nil
}

// contact resolves a team member id to the owning user's name and email.
func (d *directory) contact(memberID *int64) (name, email *string) {
	if memberID == nil {
		return nil, nil
	}
	m, ok := d.members[*memberID]
	if !ok {
		return nil, nil
	}
	u, ok := d.users[m.UserID]
	if !ok {
		return nil, nil
	}
	return &u.Name, &u.Email
}

func (d *directory) vendorView(v model.Vendor) model.VendorView {
	view := model.VendorView{Vendor: v}
	view.PrimaryContactName, view.PrimaryContactEmail = d.contact(v.PrimaryContactID)
	view.SecondaryContactName, _ = d.contact(v.SecondaryContactID)
	return view
}

func (d *directory) memberView(m model.TeamMember) model.TeamMemberView {
	view := model.TeamMemberView{
		ID:         m.ID,
		UserID:     m.UserID,
		Name:       unknownUser,
		Title:      m.Title,
		Department: m.Department,
		Phone:      m.Phone,
		CreatedAt:  m.CreatedAt,
	}
	if u, ok := d.users[m.UserID]; ok {
		view.Name = u.Name
		view.Email = u.Email
	}
	return view
}

func (d *directory) uploaderName(userID *int64) string {
	if userID == nil {
		return unknownUser
	}
	if u, ok := d.users[*userID]; ok {
		return u.Name
	}
	return unknownUser
}
