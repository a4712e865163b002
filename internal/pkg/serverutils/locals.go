package serverutils

import (
	"time"

	"study-assistant-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func UserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIdStr, _ := ctx.Locals(LocalUserID).(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, apperror.Unauthenticated("")
	}
	return userId, nil
}

func TokenClaimsFrom(ctx *fiber.Ctx) *TokenClaims {
	userId, _ := UserID(ctx)
	jti, _ := ctx.Locals(LocalTokenID).(string)
	exp, _ := ctx.Locals(LocalTokenExp).(time.Time)
	return &TokenClaims{UserID: userId, TokenID: jti, ExpiresAt: exp}
}

// ParamUUID parses a path parameter, mapping junk to not-found.
func ParamUUID(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperror.NotFound("")
	}
	return id, nil
}
