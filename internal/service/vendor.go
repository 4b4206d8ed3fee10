package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"vendordesk/internal/model"
	"vendordesk/internal/repository"
)

// VendorInput carries the writable vendor fields. Nil means "not provided".
type VendorInput struct {
	Name               *string `json:"name"`
	Product            *string `json:"product"`
	AccountRep         *string `json:"account_rep"`
	AccountRepPhone    *string `json:"account_rep_phone"`
	AccountRepEmail    *string `json:"account_rep_email"`
	SupportLevel       *string `json:"support_level"`
	Notes              *string `json:"notes"`
	PrimaryContactID   *int64  `json:"primary_contact_id"`
	SecondaryContactID *int64  `json:"secondary_contact_id"`
}

// VendorService manages vendors and resolves their contacts.
type VendorService interface {
	List(ctx context.Context) ([]model.VendorView, error)
	// Get returns the vendor with its documents, newest first.
	Get(ctx context.Context, id int64) (*model.VendorDetail, error)
	Create(ctx context.Context, in VendorInput) (*model.Vendor, error)
	// Update applies the non-empty fields of in; empty ones keep the stored value.
	Update(ctx context.Context, id int64, in VendorInput) error
	Delete(ctx context.Context, id int64) error
}

type vendorService struct {
	store repository.Store
	log   zerolog.Logger
}

// NewVendorService constructs a new VendorService.
func NewVendorService(store repository.Store, log zerolog.Logger) VendorService {
	return &vendorService{store: store, log: log}
}

func (s *vendorService) List(ctx context.Context) ([]model.VendorView, error) {
	vendors, err := s.store.Vendors().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	dir, err := loadDirectory(ctx, s.store)
	if err != nil {
		return nil, err
	}

	out := make([]model.VendorView, 0, len(vendors))
	for _, v := range vendors {
		out = append(out, dir.vendorView(v))
	}
	return out, nil
}

func (s *vendorService) Get(ctx context.Context, id int64) (*model.VendorDetail, error) {
	v, err := s.store.Vendors().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError(MsgVendorNotFound)
		}
		return nil, fmt.Errorf("find vendor: %w", err)
	}
	dir, err := loadDirectory(ctx, s.store)
	if err != nil {
		return nil, err
	}
	docs, err := s.store.Documents().ListByVendor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return &model.VendorDetail{
		VendorView: dir.vendorView(*v),
		Documents:  documentViews(dir, docs),
	}, nil
}

func (s *vendorService) Create(ctx context.Context, in VendorInput) (*model.Vendor, error) {
	name := strings.TrimSpace(deref(in.Name))
	if name == "" {
		return nil, validationError(MsgVendorNameRequired)
	}
	level := model.SupportStandard
	if l := deref(in.SupportLevel); l != "" {
		level = model.SupportLevel(l)
		if !level.Valid() {
			return nil, validationError(MsgInvalidSupportLevel)
		}
	}

	var created *model.Vendor
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		vendors, err := tx.Vendors().List(ctx)
		if err != nil {
			return fmt.Errorf("list vendors: %w", err)
		}
		if vendorNameTaken(vendors, name, 0) {
			return conflictError(MsgVendorExists)
		}

		now := time.Now().UTC()
		created, err = tx.Vendors().Create(ctx, &model.Vendor{
			Name:               name,
			Product:            nonEmpty(in.Product),
			AccountRep:         nonEmpty(in.AccountRep),
			AccountRepPhone:    nonEmpty(in.AccountRepPhone),
			AccountRepEmail:    nonEmpty(in.AccountRepEmail),
			SupportLevel:       level,
			Notes:              nonEmpty(in.Notes),
			PrimaryContactID:   nonZero(in.PrimaryContactID),
			SecondaryContactID: nonZero(in.SecondaryContactID),
			CreatedAt:          now,
			UpdatedAt:          now,
		})
		if err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return conflictError(MsgVendorExists)
			}
			return fmt.Errorf("create vendor: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger(ctx).Info().Str("event", "vendor_created").Int64("vendor_id", created.ID).Msg("vendor created")
	return created, nil
}

func (s *vendorService) Update(ctx context.Context, id int64, in VendorInput) error {
	var level model.SupportLevel
	if l := deref(in.SupportLevel); l != "" {
		level = model.SupportLevel(l)
		if !level.Valid() {
			return validationError(MsgInvalidSupportLevel)
		}
	}

	return s.store.WithinTx(ctx, func(tx repository.Store) error {
		v, err := tx.Vendors().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return notFoundError(MsgVendorNotFound)
			}
			return fmt.Errorf("find vendor: %w", err)
		}

		if name := strings.TrimSpace(deref(in.Name)); name != "" && name != v.Name {
			vendors, err := tx.Vendors().List(ctx)
			if err != nil {
				return fmt.Errorf("list vendors: %w", err)
			}
			if vendorNameTaken(vendors, name, id) {
				return conflictError(MsgVendorExists)
			}
			v.Name = name
		}
		keepOrSet(&v.Product, in.Product)
		keepOrSet(&v.AccountRep, in.AccountRep)
		keepOrSet(&v.AccountRepPhone, in.AccountRepPhone)
		keepOrSet(&v.AccountRepEmail, in.AccountRepEmail)
		keepOrSet(&v.Notes, in.Notes)
		if level != "" {
			v.SupportLevel = level
		}
		if p := nonZero(in.PrimaryContactID); p != nil {
			v.PrimaryContactID = p
		}
		if p := nonZero(in.SecondaryContactID); p != nil {
			v.SecondaryContactID = p
		}
		v.UpdatedAt = time.Now().UTC()

		if err := tx.Vendors().Update(ctx, v); err != nil {
			switch {
			case errors.Is(err, repository.ErrConflict):
				return conflictError(MsgVendorExists)
			case errors.Is(err, repository.ErrNotFound):
				return notFoundError(MsgVendorNotFound)
			}
			return fmt.Errorf("update vendor: %w", err)
		}
		return nil
	})
}

func (s *vendorService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Vendors().Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFoundError(MsgVendorNotFound)
		}
		return fmt.Errorf("delete vendor: %w", err)
	}
	s.logger(ctx).Info().Str("event", "vendor_deleted").Int64("vendor_id", id).Msg("vendor deleted")
	return nil
}

func vendorNameTaken(vendors []model.Vendor, name string, exceptID int64) bool {
	for _, v := range vendors {
		if v.Name == name && v.ID != exceptID {
			return true
		}
	}
	return false
}

func documentViews(dir *directory, docs []model.Document) []model.DocumentView {
	out := make([]model.DocumentView, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.DocumentView{Document: d, UploadedBy: dir.uploaderName(d.UploadedByID)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func nonEmpty(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	v := *p
	return &v
}

func nonZero(p *int64) *int64 {
	if p == nil || *p == 0 {
		return nil
	}
	v := *p
	return &v
}

// keepOrSet overwrites *dst only when v carries a non-empty value.
func keepOrSet(dst **string, v *string) {
	if s := nonEmpty(v); s != nil {
		*dst = s
	}
}

func (s *vendorService) logger(ctx context.Context) *zerolog.Logger {
	return scopedLogger(ctx, s.log, "vendors")
}
