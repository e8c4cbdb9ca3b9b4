package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserIDFromToken reads c.Locals("user_id") set by the auth middleware.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals("user_id")
	if v == nil {
		return uuid.Nil, ErrAuth("Not authenticated")
	}

	var s string
	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, ErrAuth("Not authenticated")
		}
		return t, nil
	case string:
		s = strings.TrimSpace(t)
	default:
		return uuid.Nil, ErrAuth("Invalid user id in token")
	}

	if s == "" {
		return uuid.Nil, ErrAuth("Not authenticated")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, ErrAuth("Invalid user id in token")
	}
	return id, nil
}

