package serverutils

import (
	"errors"

	"viewset-bot/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders returned errors in the response envelope.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse(verr.Fields))
		}

		var ferr *fiber.Error
		if errors.As(err, &ferr) {
			return ctx.Status(ferr.Code).JSON(ErrorResponse(ferr.Message))
		}

		log.Error("HTTP", "Unhandled request error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("Internal server error"))
	}
}
