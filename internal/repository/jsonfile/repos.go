package jsonfile

import (
	"context"

	"vendordesk/internal/model"
)

type userRepo struct{ s *Store }

func (r userRepo) List(ctx context.Context) ([]model.User, error) {
	defer r.s.lock()()
	return r.s.users.all()
}

func (r userRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	defer r.s.lock()()
	return r.s.users.find(id)
}

func (r userRepo) Create(ctx context.Context, u *model.User) (*model.User, error) {
	defer r.s.lock()()
	return r.s.users.insert(*u)
}

func (r userRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	defer r.s.lock()()
	u, err := r.s.users.find(id)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return r.s.users.replace(*u)
}

type teamMemberRepo struct{ s *Store }

func (r teamMemberRepo) List(ctx context.Context) ([]model.TeamMember, error) {
	defer r.s.lock()()
	return r.s.teamMembers.all()
}

func (r teamMemberRepo) FindByID(ctx context.Context, id int64) (*model.TeamMember, error) {
	defer r.s.lock()()
	return r.s.teamMembers.find(id)
}

func (r teamMemberRepo) Create(ctx context.Context, m *model.TeamMember) (*model.TeamMember, error) {
	defer r.s.lock()()
	return r.s.teamMembers.insert(*m)
}

func (r teamMemberRepo) Update(ctx context.Context, m *model.TeamMember) error {
	defer r.s.lock()()
	return r.s.teamMembers.replace(*m)
}

func (r teamMemberRepo) Delete(ctx context.Context, id int64) error {
	defer r.s.lock()()
	return r.s.teamMembers.remove(id)
}

type vendorRepo struct{ s *Store }

func (r vendorRepo) List(ctx context.Context) ([]model.Vendor, error) {
	defer r.s.lock()()
	return r.s.vendors.all()
}

func (r vendorRepo) FindByID(ctx context.Context, id int64) (*model.Vendor, error) {
	defer r.s.lock()()
	return r.s.vendors.find(id)
}

func (r vendorRepo) Create(ctx context.Context, v *model.Vendor) (*model.Vendor, error) {
	defer r.s.lock()()
	return r.s.vendors.insert(*v)
}

func (r vendorRepo) Update(ctx context.Context, v *model.Vendor) error {
	defer r.s.lock()()
	return r.s.vendors.replace(*v)
}

func (r vendorRepo) Delete(ctx context.Context, id int64) error {
	defer r.s.lock()()
	return r.s.vendors.remove(id)
}

type documentRepo struct{ s *Store }

func (r documentRepo) ListByVendor(ctx context.Context, vendorID int64) ([]model.Document, error) {
	defer r.s.lock()()
	docs, err := r.s.documents.all()
	if err != nil {
		return nil, err
	}
	out := make([]model.Document, 0, len(docs))
	for _, d := range docs {
		if d.VendorID == vendorID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r documentRepo) FindByID(ctx context.Context, id int64) (*model.Document, error) {
	defer r.s.lock()()
	return r.s.documents.find(id)
}

func (r documentRepo) Create(ctx context.Context, d *model.Document) (*model.Document, error) {
	defer r.s.lock()()
	return r.s.documents.insert(*d)
}

func (r documentRepo) Delete(ctx context.Context, id int64) error {
	defer r.s.lock()()
	return r.s.documents.remove(id)
}
