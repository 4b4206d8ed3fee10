package handler

import (
	"github.com/gofiber/fiber/v2"

	"vendordesk/internal/http/middleware"
	"vendordesk/internal/service"
)

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" example:"admin@vendordesk.local"`
	Password string `json:"password" example:"secret"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"secret"`
	Name     string `json:"name" example:"Alice"`
}

// Login godoc
// @Summary      Log in
// @Description  Exchanges email and password for a bearer token valid 24 hours.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Credentials"
// @Success      200   {object}  service.LoginResult
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      429   {object}  ErrorResponse
// @Router       /auth/login [post]
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req LoginRequest
		if !parseBody(c, &req) {
			return writeError(c, fiber.StatusBadRequest, msgInvalidBody)
		}
		res, err := svc.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// Register godoc
// @Summary      Register
// @Description  Creates a viewer account and its team directory entry.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterRequest  true  "New account"
// @Success      201   {object}  MessageResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      429   {object}  ErrorResponse
// @Router       /auth/register [post]
func Register(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req RegisterRequest
		if !parseBody(c, &req) {
			return writeError(c, fiber.StatusBadRequest, msgInvalidBody)
		}
		if _, err := svc.Register(c.UserContext(), req.Email, req.Password, req.Name); err != nil {
			return respondError(c, err)
		}
		return writeMessage(c, fiber.StatusCreated, "User created successfully")
	}
}

// SetupRequest is the body of POST /auth/setup.
type SetupRequest struct {
	Token    string `json:"token" example:"eyJhbGciOiJIUzI1NiJ9..."`
	Password string `json:"password" example:"a-strong-password"`
}

// CompleteSetup godoc
// @Summary      Complete admin setup
// @Description  Sets the first administrator password with the one-time setup token printed in the server log.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      SetupRequest  true  "Setup token and new password"
// @Success      200   {object}  MessageResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      429   {object}  ErrorResponse
// @Router       /auth/setup [post]
func CompleteSetup(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req SetupRequest
		if !parseBody(c, &req) {
			return writeError(c, fiber.StatusBadRequest, msgInvalidBody)
		}
		if err := svc.CompleteSetup(c.UserContext(), req.Token, req.Password); err != nil {
			return respondError(c, err)
		}
		return writeMessage(c, fiber.StatusOK, "Admin password set")
	}
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.UserProfile
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /auth/me [get]
func Me(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := middleware.ClaimsFromCtx(c)
		if !ok {
			return writeError(c, fiber.StatusUnauthorized, service.MsgNoToken)
		}
		p, err := svc.Me(c.UserContext(), claims.UserID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(p)
	}
}
