package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vendordesk/internal/logging"
	"vendordesk/internal/model"
	"vendordesk/internal/repository"
	repoMocks "vendordesk/internal/repository/mocks"
)

func TestVendorService_ListEnrichesContacts(t *testing.T) {
	ctx := context.Background()
	store := repoMocks.NewMockStore()

	store.VendorRepo.On("List", ctx).Return([]model.Vendor{
		{ID: 1, Name: "Acme", PrimaryContactID: idPtr(10), SecondaryContactID: idPtr(11)},
		{ID: 2, Name: "Globex", PrimaryContactID: idPtr(12)},
		{ID: 3, Name: "Initech"},
	}, nil)
	store.TeamRepo.On("List", ctx).Return([]model.TeamMember{
		{ID: 10, UserID: 1},
		{ID: 11, UserID: 2},
		{ID: 12, UserID: 404},
	}, nil)
	store.UserRepo.On("List", ctx).Return([]model.User{
		{ID: 1, Name: "Alice", Email: "alice@x.com"},
		{ID: 2, Name: "Bob", Email: "bob@x.com"},
	}, nil)

	got, err := NewVendorService(store, logging.Nop()).List(ctx)

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Alice", *got[0].PrimaryContactName)
	assert.Equal(t, "alice@x.com", *got[0].PrimaryContactEmail)
	assert.Equal(t, "Bob", *got[0].SecondaryContactName)
	// member exists but its user does not
	assert.Nil(t, got[1].PrimaryContactName)
	assert.Nil(t, got[1].PrimaryContactEmail)
	assert.Nil(t, got[2].PrimaryContactName)
	assert.Nil(t, got[2].SecondaryContactName)
	store.AssertExpectations(t)
}

func TestVendorService_ListPropagatesStoreErrors(t *testing.T) {
	ctx := context.Background()
	store := repoMocks.NewMockStore()
	store.VendorRepo.On("List", ctx).Return(nil, errors.New("parse vendors.json: unexpected EOF"))

	_, err := NewVendorService(store, logging.Nop()).List(ctx)

	assert.EqualError(t, err, "list vendors: parse vendors.json: unexpected EOF")
}

func TestVendorService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		in         VendorInput
		setupMocks func(store *repoMocks.MockStore)
		wantKind   error
		wantErrMsg string
	}{
		{
			name: "defaults and empty fields",
			in:   VendorInput{Name: strPtr("Acme"), Product: strPtr(""), PrimaryContactID: idPtr(0)},
			setupMocks: func(store *repoMocks.MockStore) {
				store.VendorRepo.On("List", ctx).Return([]model.Vendor{}, nil)
				store.VendorRepo.On("Create", ctx, mock.MatchedBy(func(v *model.Vendor) bool {
					return v.Name == "Acme" && v.Product == nil && v.PrimaryContactID == nil &&
						v.SupportLevel == model.SupportStandard && v.CreatedAt.Equal(v.UpdatedAt)
				})).Return(&model.Vendor{ID: 1, Name: "Acme"}, nil)
			},
		},
		{
			name:       "missing name",
			in:         VendorInput{Product: strPtr("Widgets")},
			setupMocks: func(*repoMocks.MockStore) {},
			wantKind:   ErrValidation,
			wantErrMsg: MsgVendorNameRequired,
		},
		{
			name:       "unknown support level",
			in:         VendorInput{Name: strPtr("Acme"), SupportLevel: strPtr("gold")},
			setupMocks: func(*repoMocks.MockStore) {},
			wantKind:   ErrValidation,
			wantErrMsg: MsgInvalidSupportLevel,
		},
		{
			name: "duplicate name",
			in:   VendorInput{Name: strPtr("Acme")},
			setupMocks: func(store *repoMocks.MockStore) {
				store.VendorRepo.On("List", ctx).Return([]model.Vendor{{ID: 1, Name: "Acme"}}, nil)
			},
			wantKind:   ErrConflict,
			wantErrMsg: MsgVendorExists,
		},
		{
			name: "backend unique violation",
			in:   VendorInput{Name: strPtr("Acme")},
			setupMocks: func(store *repoMocks.MockStore) {
				store.VendorRepo.On("List", ctx).Return([]model.Vendor{}, nil)
				store.VendorRepo.On("Create", ctx, mock.Anything).Return(nil, repository.ErrConflict)
			},
			wantKind:   ErrConflict,
			wantErrMsg: MsgVendorExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := repoMocks.NewMockStore()
			tt.setupMocks(store)

			v, err := NewVendorService(store, logging.Nop()).Create(ctx, tt.in)

			if tt.wantKind != nil {
				assertKind(t, err, tt.wantKind, tt.wantErrMsg)
				assert.Nil(t, v)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, v)
			}
			store.AssertExpectations(t)
		})
	}
}

func TestVendorService_UpdateSkipsEmptyFields(t *testing.T) {
	ctx := context.Background()
	store := repoMocks.NewMockStore()
	existing := &model.Vendor{
		ID:               4,
		Name:             "Acme",
		Product:          strPtr("Widgets"),
		SupportLevel:     model.SupportBusiness,
		PrimaryContactID: idPtr(7),
	}

	store.VendorRepo.On("FindByID", ctx, int64(4)).Return(existing, nil)
	store.VendorRepo.On("Update", ctx, mock.MatchedBy(func(v *model.Vendor) bool {
		return v.Name == "Acme" && *v.Product == "Widgets" && *v.Notes == "call first" &&
			v.SupportLevel == model.SupportBusiness && *v.PrimaryContactID == 7 && !v.UpdatedAt.IsZero()
	})).Return(nil)

	err := NewVendorService(store, logging.Nop()).Update(ctx, 4, VendorInput{
		Name:             strPtr(""),
		Product:          strPtr(""),
		Notes:            strPtr("call first"),
		SupportLevel:     strPtr(""),
		PrimaryContactID: idPtr(0),
	})

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestVendorService_UpdateAndDeleteNotFound(t *testing.T) {
	ctx := context.Background()
	store := repoMocks.NewMockStore()
	store.VendorRepo.On("FindByID", ctx, int64(9)).Return(nil, repository.ErrNotFound)
	store.VendorRepo.On("Delete", ctx, int64(9)).Return(repository.ErrNotFound)
	svc := NewVendorService(store, logging.Nop())

	assertKind(t, svc.Update(ctx, 9, VendorInput{Name: strPtr("x")}), ErrNotFound, MsgVendorNotFound)
	assertKind(t, svc.Delete(ctx, 9), ErrNotFound, MsgVendorNotFound)

	_, err := svc.Get(ctx, 9)
	assertKind(t, err, ErrNotFound, MsgVendorNotFound)
}
