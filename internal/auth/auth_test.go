package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendordesk/internal/model"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	m := NewTokenManager("test-secret", "vendordesk", 24*time.Hour)

	token, err := m.Issue(7, model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(token, ".")))

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.Equal(t, "7", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenManager_Verify(t *testing.T) {
	m := NewTokenManager("test-secret", "vendordesk", time.Hour)
	valid, err := m.Issue(1, model.RoleViewer)
	require.NoError(t, err)

	expired := NewTokenManager("test-secret", "vendordesk", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Issue(1, model.RoleViewer)
	require.NoError(t, err)

	otherSecret, err := NewTokenManager("other-secret", "vendordesk", time.Hour).Issue(1, model.RoleViewer)
	require.NoError(t, err)

	otherIssuer, err := NewTokenManager("test-secret", "someone-else", time.Hour).Issue(1, model.RoleViewer)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1, Role: model.RoleAdmin}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"valid", valid, false},
		{"expired", expiredToken, true},
		{"wrong secret", otherSecret, true},
		{"wrong issuer", otherIssuer, true},
		{"alg none", none, true},
		{"garbage", "not-a-token", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := m.Verify(tt.token)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidToken)
				assert.Nil(t, claims)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, claims)
		})
	}
}

func TestTokenManager_SetupTokens(t *testing.T) {
	m := NewTokenManager("test-secret", "vendordesk", 24*time.Hour)

	setup, err := m.IssueSetup(1, time.Hour)
	require.NoError(t, err)
	access, err := m.Issue(1, model.RoleAdmin)
	require.NoError(t, err)

	claims, err := m.VerifySetup(setup)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, PurposeSetup, claims.Purpose)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)

	_, err = m.Verify(setup)
	assert.ErrorIs(t, err, ErrInvalidToken, "setup token must not grant API access")

	_, err = m.VerifySetup(access)
	assert.ErrorIs(t, err, ErrInvalidToken, "access token must not complete setup")
}

func TestTokenManager_IssueRequiresSecret(t *testing.T) {
	_, err := NewTokenManager("", "", time.Hour).Issue(1, model.RoleViewer)
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$10$"))

	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "correct horse"))
}
