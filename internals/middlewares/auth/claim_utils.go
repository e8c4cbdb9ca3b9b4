// internals/middlewares/auth/claim_utils.go
package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	helpersAuth "campusevents_backend/internals/helpers/auth"
)

var (
	errNoToken       = errors.New("unauthorized - no token provided")
	errInvalidFormat = errors.New("unauthorized - invalid token format")
)

func extractBearerToken(c *fiber.Ctx) (string, error) {
	if strings.TrimSpace(c.Get(fiber.HeaderAuthorization)) == "" {
		return "", errNoToken
	}
	tok := helpersAuth.GetRawAccessToken(c)
	if tok == "" {
		return "", errInvalidFormat
	}
	return tok, nil
}

func storeClaimsToLocals(c *fiber.Ctx, claims *helpersAuth.Claims, rawToken string) {
	c.Locals("user_id", claims.ID)
	c.Locals("userRole", claims.Role)
	c.Locals("user_name", claims.Username)
	c.Locals("name", claims.Name)
	c.Locals("access_token", rawToken)
	if claims.ExpiresAt != nil {
		c.Locals("token_exp", claims.ExpiresAt.Time)
	}
}
