package serverutils

import (
	"errors"
	"net/http"

	"study-assistant-be/internal/pkg/apperror"
	"study-assistant-be/internal/pkg/logger"
	"study-assistant-be/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns whatever a handler returned into the JSON envelope.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var (
			appErr   *apperror.Error
			fiberErr *fiber.Error
			valErr   *validation.Error
		)

		switch {
		case errors.As(err, &appErr):
			status := appErr.HTTPStatus()
			if status >= http.StatusInternalServerError {
				log.Error("HTTP", "Request failed", map[string]interface{}{
					"path":   ctx.Path(),
					"method": ctx.Method(),
					"code":   string(appErr.Code),
					"error":  err.Error(),
				})
			}
			res := ErrorResponse(status, appErr.Message)
			res.Errors = appErr.Fields
			return ctx.Status(status).JSON(res)

		case errors.As(err, &valErr):
			return ctx.Status(http.StatusBadRequest).JSON(ValidationErrorResponse("Validation failed", valErr.Fields))

		case errors.As(err, &fiberErr):
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		log.Error("HTTP", "Unhandled error", map[string]interface{}{
			"path":   ctx.Path(),
			"method": ctx.Method(),
			"error":  err.Error(),
		})
		return ctx.Status(http.StatusInternalServerError).
			JSON(ErrorResponse(http.StatusInternalServerError, apperror.DefaultMessage))
	}
}
