package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	msgInvalidBody  = "Invalid request body"
	msgFileTooLarge = "File too large"
)

// pathID parses a positive integer route parameter. Malformed ids are
// treated as unknown records by callers.
func pathID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseBody decodes an optional body into v. An empty body leaves v untouched.
func parseBody(c *fiber.Ctx, v any) bool {
	if len(c.Body()) == 0 {
		return true
	}
	return c.BodyParser(v) == nil
}
