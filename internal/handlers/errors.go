package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler shapes every unhandled error into the
// {success:false, message} envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(code).JSON(fiber.Map{"success": false, "message": message})
}
