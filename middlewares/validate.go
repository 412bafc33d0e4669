package middlewares

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// BindAndValidate parses the request body into dst and validates it.
// Parse errors become 400; validation issues surface as
// validator.ValidationErrors for the central error handler.
func BindAndValidate(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return validate.Struct(dst)
}

// ValidateStruct validates one struct with the shared validator instance.
// Batch endpoints call this per element after parsing the slice themselves.
func ValidateStruct(v interface{}) error {
	return validate.Struct(v)
}
