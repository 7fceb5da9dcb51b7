package helperAuth

import (
	"github.com/gofiber/fiber/v2"

	"schoolhub_backend/internals/helpers/errs"
)

// Locals keys hydrated by the auth middleware.
const (
	LocUserID   = "user_id"
	LocUserRole = "user_role"
)

// GetUserID returns the authenticated actor's id from fiber Locals.
func GetUserID(c *fiber.Ctx) (uint, error) {
	if v, ok := c.Locals(LocUserID).(uint); ok && v != 0 {
		return v, nil
	}
	return 0, errs.Forbidden("Unauthorized: no user in token")
}

// GetUserRole returns the coarse platform role carried in the token, if any.
func GetUserRole(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocUserRole).(string); ok {
		return v
	}
	return ""
}
