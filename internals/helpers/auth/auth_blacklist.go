package helper

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// HashToken is what the blacklist stores instead of the raw token.
func HashToken(rawToken, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(rawToken))
	return hex.EncodeToString(m.Sum(nil))
}

// GetRawAccessToken reads "Authorization: Bearer <token>".
// Returns "" when the header is missing or malformed.
func GetRawAccessToken(c *fiber.Ctx) string {
	fields := strings.Fields(strings.TrimSpace(c.Get(fiber.HeaderAuthorization)))
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return ""
	}
	return strings.Trim(fields[1], "\"'")
}
