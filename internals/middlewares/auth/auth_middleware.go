// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	helper "campusevents_backend/internals/helpers"
	helpersAuth "campusevents_backend/internals/helpers/auth"
)

type TokenParser interface {
	Parse(token string) (*helpersAuth.Claims, error)
}

// Blacklist answers whether a token was revoked by logout.
type Blacklist interface {
	IsBlacklisted(ctx context.Context, rawToken string) (bool, error)
}

// AuthMiddleware verifies the bearer token and stores the principal in Locals.
// blacklist may be nil.
func AuthMiddleware(tokens TokenParser, blacklist Blacklist) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			if errors.Is(err, helpersAuth.ErrTokenExpired) {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token expired")
			}
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Invalid token")
		}

		if blacklist != nil {
			revoked, err := blacklist.IsBlacklisted(c.UserContext(), tokenString)
			if err != nil {
				log.Println("[ERROR] blacklist check failed:", err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
			}
			if revoked {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
			}
		}

		storeClaimsToLocals(c, claims, tokenString)
		return c.Next()
	}
}
