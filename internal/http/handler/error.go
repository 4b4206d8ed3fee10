package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"vendordesk/internal/http/middleware"
	"vendordesk/internal/service"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error" example:"Vendor not found"`
}

// MessageResponse is the body of successful mutations.
type MessageResponse struct {
	Message string `json:"message" example:"Vendor updated"`
}

// CreatedResponse is returned by endpoints that create a record.
type CreatedResponse struct {
	ID      int64  `json:"id" example:"1"`
	Message string `json:"message" example:"Vendor created"`
}

const msgInternal = "internal server error"

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorResponse{Error: message})
}

func writeMessage(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(MessageResponse{Message: message})
}

// respondError writes client-safe service errors. Anything else is returned
// unchanged so the global ErrorHandler logs it and answers 500.
func respondError(c *fiber.Ctx, err error) error {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		return err
	}

	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = fiber.StatusBadRequest
	case errors.Is(err, service.ErrConflict):
		status = fiber.StatusConflict
	case errors.Is(err, service.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUnauthenticated):
		status = fiber.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = fiber.StatusForbidden
	}
	return writeError(c, status, svcErr.Message)
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	log = log.With().Str("component", "http").Logger()

	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "Bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "Not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "Method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, msgFileTooLarge)
		case fiber.StatusTooManyRequests:
			return writeError(c, status, "Too many requests")
		case fiber.StatusUnprocessableEntity:
			return writeError(c, fiber.StatusBadRequest, msgInvalidBody)
		}

		log.Error().
			Err(err).
			Str("request_id", requestIDFromCtx(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("request failed")
		return writeError(c, fiber.StatusInternalServerError, msgInternal)
	}
}
