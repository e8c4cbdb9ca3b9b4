package middlewares

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"

	"campusevents_backend/internals/configs"
)

const RequestTimeout = 10 * time.Second

// RequestContext tags each request with an id and a deadline that gorm queries inherit.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)

		ctx, cancel := context.WithTimeout(configs.WithRequestID(c.UserContext(), id), RequestTimeout)
		defer cancel()
		c.SetUserContext(ctx)

		return c.Next()
	}
}
