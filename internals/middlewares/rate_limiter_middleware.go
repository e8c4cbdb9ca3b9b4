package middlewares

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/postgres/v3"

	"campusevents_backend/internals/configs"
	database "campusevents_backend/internals/databases"
	helper "campusevents_backend/internals/helpers"
)

var (
	limiterStorageOnce sync.Once
	limiterStorage     fiber.Storage
)

// sharedLimiterStorage returns nil (fiber's in-memory store) unless RATE_LIMIT_STORAGE=postgres.
func sharedLimiterStorage() fiber.Storage {
	limiterStorageOnce.Do(func() {
		if !strings.EqualFold(configs.RateLimitStorage, "postgres") {
			return
		}
		limiterStorage = postgres.New(postgres.Config{
			ConnectionURI: database.DSN(),
			Table:         "fiber_rate_limits",
			Reset:         false,
			GCInterval:    time.Minute,
		})
		log.Println("[INFO] rate limiter uses postgres storage")
	})
	return limiterStorage
}

func newLimiter(max int, window time.Duration, prefix, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		Storage:    sharedLimiterStorage(),
		KeyGenerator: func(c *fiber.Ctx) string {
			return prefix + ":" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// GlobalRateLimiter applies to every /api request.
func GlobalRateLimiter() fiber.Handler {
	return newLimiter(300, time.Minute, "global", "Too many requests. Please try again later.")
}

// LoginRateLimiter is stricter, per client IP.
func LoginRateLimiter() fiber.Handler {
	return newLimiter(10, time.Minute, "login", "Too many login attempts. Please wait a moment.")
}

// RegisterRateLimiter guards account creation.
func RegisterRateLimiter() fiber.Handler {
	return newLimiter(5, 5*time.Minute, "register", "Too many registration attempts. Please wait a few minutes.")
}
