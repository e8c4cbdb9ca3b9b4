// internals/middlewares/cors_middleware.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"campusevents_backend/internals/configs"
)

// CorsMiddleware allows the origins listed in CORS_ORIGINS.
func CorsMiddleware() fiber.Handler {
	origins := configs.CorsOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	allowCredentials := true
	for _, o := range origins {
		if o == "*" {
			// wildcard origin cannot be combined with credentials
			allowCredentials = false
		}
	}
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ", "),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		ExposeHeaders:    "X-Request-ID",
		AllowCredentials: allowCredentials,
	})
}
