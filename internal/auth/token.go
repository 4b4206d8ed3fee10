// Package auth issues and verifies bearer tokens and hashes passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"vendordesk/internal/model"
)

// ErrInvalidToken is returned for tokens that fail signature, expiry or shape checks.
var ErrInvalidToken = errors.New("invalid token")

// PurposeSetup marks a one-time token that may only set the first admin password.
const PurposeSetup = "setup"

// Claims is the token payload: the user id and role at issue time.
// Purpose is empty for API access tokens.
type Claims struct {
	UserID  int64      `json:"userId"`
	Role    model.Role `json:"role"`
	Purpose string     `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 tokens.
type TokenManager struct {
	secret []byte
	issuer string
	expiry time.Duration
	now    func() time.Time
}

// NewTokenManager creates a TokenManager. An empty issuer disables the issuer check.
func NewTokenManager(secret, issuer string, expiry time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		expiry: expiry,
		now:    time.Now,
	}
}

// Issue creates a signed access token for the user.
func (m *TokenManager) Issue(userID int64, role model.Role) (string, error) {
	return m.sign(userID, role, "", m.expiry)
}

// IssueSetup creates a setup token for the admin account valid for ttl.
func (m *TokenManager) IssueSetup(userID int64, ttl time.Duration) (string, error) {
	return m.sign(userID, model.RoleAdmin, PurposeSetup, ttl)
}

func (m *TokenManager) sign(userID int64, role model.Role, purpose string, ttl time.Duration) (string, error) {
	if len(m.secret) == 0 {
		return "", errors.New("token secret is empty")
	}
	now := m.now()
	claims := &Claims{
		UserID:  userID,
		Role:    role,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify validates an access token. Every failure wraps ErrInvalidToken,
// including a valid setup token presented as an access token.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	return m.verify(tokenString, "")
}

// VerifySetup validates a token issued by IssueSetup.
func (m *TokenManager) VerifySetup(tokenString string) (*Claims, error) {
	return m.verify(tokenString, PurposeSetup)
}

func (m *TokenManager) verify(tokenString, purpose string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID <= 0 {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != purpose {
		return nil, fmt.Errorf("%w: purpose %q", ErrInvalidToken, claims.Purpose)
	}
	return claims, nil
}
