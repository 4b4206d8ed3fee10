package repository

import (
	"context"
	"errors"

	"vendordesk/internal/model"
)

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (jsonfile, postgres) inside this directory.

var (
	// ErrNotFound is returned when a record with the requested id does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a backend rejects a duplicate unique key.
	ErrConflict = errors.New("record conflict")
)

// UserRepository defines data access for users. No business logic here.
type UserRepository interface {
	// List returns every user in id order.
	List(ctx context.Context) ([]model.User, error)
	// FindByID returns ErrNotFound when the user is absent.
	FindByID(ctx context.Context, id int64) (*model.User, error)
	// Create assigns the next id (max existing id + 1) and stores the user.
	Create(ctx context.Context, u *model.User) (*model.User, error)
	// UpdatePassword replaces the stored hash. ErrNotFound when id is absent.
	UpdatePassword(ctx context.Context, id int64, hash string) error
}

// TeamMemberRepository defines data access for team members.
type TeamMemberRepository interface {
	List(ctx context.Context) ([]model.TeamMember, error)
	FindByID(ctx context.Context, id int64) (*model.TeamMember, error)
	Create(ctx context.Context, m *model.TeamMember) (*model.TeamMember, error)
	// Update replaces the stored row with m. ErrNotFound when m.ID is absent.
	Update(ctx context.Context, m *model.TeamMember) error
	// Delete returns ErrNotFound when the id is absent.
	Delete(ctx context.Context, id int64) error
}

// VendorRepository defines data access for vendors.
type VendorRepository interface {
	List(ctx context.Context) ([]model.Vendor, error)
	FindByID(ctx context.Context, id int64) (*model.Vendor, error)
	Create(ctx context.Context, v *model.Vendor) (*model.Vendor, error)
	Update(ctx context.Context, v *model.Vendor) error
	Delete(ctx context.Context, id int64) error
}

// DocumentRepository defines data access for document metadata.
type DocumentRepository interface {
	// ListByVendor returns the documents attached to vendorID in storage order.
	ListByVendor(ctx context.Context, vendorID int64) ([]model.Document, error)
	FindByID(ctx context.Context, id int64) (*model.Document, error)
	Create(ctx context.Context, d *model.Document) (*model.Document, error)
	Delete(ctx context.Context, id int64) error
}

// Store groups the per-collection repositories of one backend.
type Store interface {
	Users() UserRepository
	TeamMembers() TeamMemberRepository
	Vendors() VendorRepository
	Documents() DocumentRepository

	// WithinTx runs fn against a Store whose writes commit together.
	// If fn returns an error every write made through tx is undone.
	WithinTx(ctx context.Context, fn func(tx Store) error) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}

// NextID returns 1 for an empty collection, otherwise the highest id plus one.
func NextID(ids []int64) int64 {
	var max int64
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max + 1
}
