package serverutils

import (
	"strings"

	"study-assistant-be/internal/pkg/apperror"
	"study-assistant-be/internal/repository/contract"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalUserID   = "user_id"
	LocalTokenID  = "token_id"
	LocalTokenExp = "token_exp"
)

// BearerToken reads the Authorization header, falling back to ?token= for
// browsers that cannot set headers on websocket upgrades.
func BearerToken(ctx *fiber.Ctx) string {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ctx.Query("token")
}

// JwtMiddleware rejects missing, invalid and revoked tokens.
func JwtMiddleware(tokens *TokenManager, blocklist contract.TokenBlocklist) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := BearerToken(ctx)
		if tokenStr == "" {
			return apperror.Unauthenticated("Missing token")
		}

		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			return apperror.Unauthenticated("Invalid token")
		}

		if blocklist != nil && claims.TokenID != "" {
			revoked, err := blocklist.IsRevoked(ctx.UserContext(), claims.TokenID)
			if err != nil {
				return apperror.Unavailable(err)
			}
			if revoked {
				return apperror.Unauthenticated("Token has been revoked")
			}
		}

		ctx.Locals(LocalUserID, claims.UserID.String())
		ctx.Locals(LocalTokenID, claims.TokenID)
		ctx.Locals(LocalTokenExp, claims.ExpiresAt)
		return ctx.Next()
	}
}
