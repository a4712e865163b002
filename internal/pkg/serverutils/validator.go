package serverutils

import (
	"errors"

	"study-assistant-be/internal/pkg/apperror"
	"study-assistant-be/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidateRequest runs the struct tags of a request DTO. Failures come back as
// an invalid-argument error carrying the offending fields.
func ValidateRequest(req interface{}) error {
	err := validation.Struct(req)
	if err == nil {
		return nil
	}

	var verr *validation.Error
	if errors.As(err, &verr) {
		return apperror.InvalidArgument("Validation failed", verr.Fields)
	}
	return apperror.Internal(err)
}

// ParseBody decodes the JSON body into req and validates it.
func ParseBody(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return apperror.InvalidArgument("Invalid request body", nil)
	}
	return ValidateRequest(req)
}
