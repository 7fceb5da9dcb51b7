package helper

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// ParamUint reads a numeric path parameter. A zero or malformed id is a 400.
func ParamUint(c *fiber.Ctx, name string) (uint, error) {
	n, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || n == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return uint(n), nil
}
