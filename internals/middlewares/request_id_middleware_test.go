package middlewares

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusevents_backend/internals/configs"
)

func TestRequestContextPropagatesID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestContext())

	var fromCtx string
	var hasDeadline bool
	app.Get("/", func(c *fiber.Ctx) error {
		fromCtx = configs.RequestIDFrom(c.UserContext())
		_, hasDeadline = c.UserContext().Deadline()
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "abc-123", fromCtx)
	assert.True(t, hasDeadline)

	resp, err = app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Equal(t, resp.Header.Get("X-Request-ID"), fromCtx)
}
