package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"schoolhub_backend/internals/helpers/errs"
)

// Pagination is the list-response meta block.
type Pagination struct {
	Page         int   `json:"page"`
	Paginate     int   `json:"paginate"`
	TotalResults int64 `json:"totalResults"`
	TotalPages   int   `json:"totalPages"`
}

// Success response, default 200.
func JsonOK(c *fiber.Ctx, message string, data interface{}) error {
	return JsonOKWithCode(c, fiber.StatusOK, message, data)
}

// Success response with custom code (e.g. 201 for created).
func JsonOKWithCode(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// Success response for list endpoints: data + pagination meta.
func JsonList(c *fiber.Ctx, message string, data interface{}, p Pagination) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"message":    message,
		"data":       data,
		"pagination": p,
	})
}

func JsonError(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func JsonErrorWithDetails(c *fiber.Ctx, code int, message string, details interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
		"errors":  details,
	})
}

// JsonValidationError renders a validator.v10 failure as a per-field map.
func JsonValidationError(c *fiber.Ctx, err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return JsonError(c, fiber.StatusBadRequest, "Invalid input")
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fe.Tag()
	}
	return JsonErrorWithDetails(c, fiber.StatusBadRequest, "Validation failed", fields)
}

// JsonDomainError maps a service error to its HTTP shape. Non-domain errors
// are treated as internal.
func JsonDomainError(c *fiber.Ctx, err error) error {
	if de, ok := errs.As(err); ok {
		return JsonError(c, de.HTTPStatus(), de.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, err.Error())
}
