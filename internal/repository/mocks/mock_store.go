package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vendordesk/internal/repository"
)

// MockStore hands out the embedded repository mocks. WithinTx runs fn against
// the same store, so expectations set on the repositories apply inside a tx too.
type MockStore struct {
	mock.Mock

	UserRepo     *MockUserRepository
	TeamRepo     *MockTeamMemberRepository
	VendorRepo   *MockVendorRepository
	DocumentRepo *MockDocumentRepository

	// TxErr, when set, is returned by WithinTx without running fn.
	TxErr error
	// TxCount counts WithinTx invocations.
	TxCount int
}

func NewMockStore() *MockStore {
	return &MockStore{
		UserRepo:     new(MockUserRepository),
		TeamRepo:     new(MockTeamMemberRepository),
		VendorRepo:   new(MockVendorRepository),
		DocumentRepo: new(MockDocumentRepository),
	}
}

func (m *MockStore) Users() repository.UserRepository             { return m.UserRepo }
func (m *MockStore) TeamMembers() repository.TeamMemberRepository { return m.TeamRepo }
func (m *MockStore) Vendors() repository.VendorRepository         { return m.VendorRepo }
func (m *MockStore) Documents() repository.DocumentRepository     { return m.DocumentRepo }

func (m *MockStore) WithinTx(ctx context.Context, fn func(tx repository.Store) error) error {
	m.TxCount++
	if m.TxErr != nil {
		return m.TxErr
	}
	return fn(m)
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// AssertExpectations checks the store and every repository mock.
func (m *MockStore) AssertExpectations(t mock.TestingT) bool {
	return mock.AssertExpectationsForObjects(t, &m.Mock, m.UserRepo, m.TeamRepo, m.VendorRepo, m.DocumentRepo)
}
