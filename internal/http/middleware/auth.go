package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"vendordesk/internal/auth"
	"vendordesk/internal/service"
)

// ClaimsLocalKey is the Fiber locals key holding the caller's *auth.Claims.
const ClaimsLocalKey = "auth_claims"

// Authenticator verifies bearer tokens.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

// RequireAuth rejects requests without a valid bearer token: 401 when the
// token is missing, 403 when it is invalid or expired.
func RequireAuth(a Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := a.Authenticate(c.UserContext(), bearerToken(c.Get(fiber.HeaderAuthorization)))
		if err != nil {
			var svcErr *service.Error
			switch {
			case errors.As(err, &svcErr) && errors.Is(err, service.ErrUnauthenticated):
				return abort(c, fiber.StatusUnauthorized, svcErr.Message)
			case errors.As(err, &svcErr):
				return abort(c, fiber.StatusForbidden, svcErr.Message)
			}
			return err
		}

		c.Locals(ClaimsLocalKey, claims)
		return c.Next()
	}
}

// ClaimsFromCtx returns the claims stored by RequireAuth.
func ClaimsFromCtx(c *fiber.Ctx) (*auth.Claims, bool) {
	claims, ok := c.Locals(ClaimsLocalKey).(*auth.Claims)
	return claims, ok && claims != nil
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func abort(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
