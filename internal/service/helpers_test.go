package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendordesk/internal/auth"
	"vendordesk/internal/logging"
	"vendordesk/internal/repository/jsonfile"
	"vendordesk/internal/storage"
)

func strPtr(s string) *string { return &s }
func idPtr(id int64) *int64   { return &id }

// testEnv wires every service against a temp-dir flat-file store and local storage.
type testEnv struct {
	store     *jsonfile.Store
	uploadDir string
	tokens    *auth.TokenManager
	auth      AuthService
	vendors   VendorService
	team      TeamService
	documents DocumentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()

	store, err := jsonfile.Open(filepath.Join(root, "data"))
	require.NoError(t, err)
	uploadDir := filepath.Join(root, "uploads")
	objects, err := storage.NewLocal(uploadDir)
	require.NoError(t, err)

	log := logging.Nop()
	tokens := auth.NewTokenManager("test-secret", "vendordesk", 24*time.Hour)
	return &testEnv{
		store:     store,
		uploadDir: uploadDir,
		tokens:    tokens,
		auth:      NewAuthService(store, tokens, log),
		vendors:   NewVendorService(store, log),
		team:      NewTeamService(store, log),
		documents: NewDocumentService(store, objects, log),
	}
}

// register creates a viewer and returns the id of its team member entry.
func (e *testEnv) register(t *testing.T, email, name string) (userID, memberID int64) {
	t.Helper()
	ctx := context.Background()
	p, err := e.auth.Register(ctx, email, "pw-"+name, name)
	require.NoError(t, err)

	members, err := e.store.TeamMembers().List(ctx)
	require.NoError(t, err)
	for _, m := range members {
		if m.UserID == p.ID {
			return p.ID, m.ID
		}
	}
	t.Fatalf("no team member for user %d", p.ID)
	return 0, 0
}

func assertKind(t *testing.T, err error, kind error, msg string) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, kind)
	var svcErr *Error
	if assert.True(t, errors.As(err, &svcErr)) {
		assert.Equal(t, msg, svcErr.Message)
	}
}
