package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"vendordesk/internal/logging"
)

const (
	// RequestIDHeader carries the request id in both directions.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is the fiber Locals key holding the id.
	RequestIDLocalKey = "request_id"
)

// RequestID tags every request with an id, taken from X-Request-ID when the
// client sent one. The id is echoed back and stored in Locals. A copy of log
// carrying the id goes into the user context, so services that log through
// logging.FromContext emit lines that correlate with the access log.
func RequestID(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)

		scoped := log.With().Str("request_id", id).Logger()
		c.SetUserContext(logging.WithContext(c.UserContext(), scoped))

		return c.Next()
	}
}
