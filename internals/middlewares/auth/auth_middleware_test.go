package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusevents_backend/internals/constants"
	helpersAuth "campusevents_backend/internals/helpers/auth"
)

type fakeBlacklist struct {
	revoked map[string]bool
	err     error
}

func (f *fakeBlacklist) IsBlacklisted(_ context.Context, raw string) (bool, error) {
	return f.revoked[raw], f.err
}

func newTestApp(bl Blacklist) (*fiber.App, *helpersAuth.TokenManager) {
	tm := helpersAuth.NewTokenManager("test-secret", time.Hour)
	app := fiber.New()
	app.Get("/me", AuthMiddleware(tm, bl), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("userRole").(string) + ":" + c.Locals("user_name").(string))
	})
	app.Get("/admin", AuthMiddleware(tm, bl), OnlyRolesSlice(constants.RoleErrorAdmin("this page"), constants.AdminOnly), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app, tm
}

func doGet(t *testing.T, app *fiber.App, path, authz string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddlewareRejectsMissingAndMalformed(t *testing.T) {
	app, _ := newTestApp(nil)

	assert.Equal(t, fiber.StatusUnauthorized, doGet(t, app, "/me", "").StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, doGet(t, app, "/me", "Token abc").StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, doGet(t, app, "/me", "Bearer not.a.jwt").StatusCode)
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	app, tm := newTestApp(nil)
	tok, _, err := tm.Issue(uuid.New(), constants.RoleStudent, "asha", "Asha")
	require.NoError(t, err)

	resp := doGet(t, app, "/me", "Bearer "+tok)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doGet(t, app, "/me", "bearer   "+tok)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareBlacklisted(t *testing.T) {
	bl := &fakeBlacklist{revoked: map[string]bool{}}
	app, tm := newTestApp(bl)
	tok, _, err := tm.Issue(uuid.New(), constants.RoleStudent, "asha", "Asha")
	require.NoError(t, err)
	bl.revoked[tok] = true

	assert.Equal(t, fiber.StatusUnauthorized, doGet(t, app, "/me", "Bearer "+tok).StatusCode)

	bl.revoked = map[string]bool{}
	bl.err = errors.New("db down")
	assert.Equal(t, fiber.StatusInternalServerError, doGet(t, app, "/me", "Bearer "+tok).StatusCode)
}

func TestOnlyRolesForbidsStudent(t *testing.T) {
	app, tm := newTestApp(nil)

	student, _, err := tm.Issue(uuid.New(), constants.RoleStudent, "asha", "Asha")
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, doGet(t, app, "/admin", "Bearer "+student).StatusCode)

	admin, _, err := tm.Issue(uuid.New(), constants.RoleAdmin, "root", "Root")
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, doGet(t, app, "/admin", "Bearer "+admin).StatusCode)
}
