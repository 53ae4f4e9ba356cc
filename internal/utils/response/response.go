// Package response produces the stable JSON envelope every endpoint
// returns: {success, message, data} on success, {success, message} on
// failure. Internal error detail never crosses this boundary.
package response

import (
	"errors"

	domain "arcbank/internal/errors"

	"github.com/gofiber/fiber/v2"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

func Unauthorized(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnauthorized, "Unauthorized")
}

// DomainError maps a domain error category to its HTTP status. Unknown
// errors collapse to a generic 500 so nothing internal leaks.
func DomainError(c *fiber.Ctx, err error) error {
	var de *domain.DomainError
	if !errors.As(err, &de) {
		return ServerError(c, "something went wrong")
	}
	return Error(c, statusFor(de.Code), de.Message)
}

func statusFor(code string) int {
	switch code {
	case domain.ErrValidation.Code, domain.ErrLimitExceeded.Code, domain.ErrInsufficientFunds.Code:
		return fiber.StatusBadRequest
	case domain.ErrAuthFailure.Code:
		return fiber.StatusUnauthorized
	case domain.ErrTransferNotFound.Code:
		return fiber.StatusNotFound
	case domain.ErrInvalidStateTransition.Code:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
