package helper

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorStatusAndCode(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
		code   string
	}{
		{ErrValidation("x"), fiber.StatusBadRequest, "VALIDATION_ERROR"},
		{ErrConflict("x"), fiber.StatusBadRequest, "CONFLICT"},
		{ErrCapacity("x"), fiber.StatusBadRequest, "CAPACITY_FULL"},
		{ErrAuth("x"), fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{ErrPermission("x"), fiber.StatusForbidden, "FORBIDDEN"},
		{ErrNotFound("x"), fiber.StatusNotFound, "NOT_FOUND"},
		{ErrInternal("x", errors.New("boom")), fiber.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.Status(), tc.code)
		assert.Equal(t, tc.code, tc.err.Code())
	}
}

func TestIsKindUnwraps(t *testing.T) {
	err := fmt.Errorf("participate: %w", ErrCapacity("Event is full"))
	assert.True(t, IsKind(err, KindCapacity))
	assert.False(t, IsKind(err, KindConflict))
	assert.False(t, IsKind(errors.New("plain"), KindInternal))
}

func TestTranslateDBError(t *testing.T) {
	dup := TranslateDBError(&pgconn.PgError{Code: "23505"}, "Already registered")
	assert.True(t, IsKind(dup, KindConflict))
	assert.Contains(t, dup.Error(), "Already registered")

	fk := TranslateDBError(&pgconn.PgError{Code: "23503"}, "")
	assert.True(t, IsKind(fk, KindConflict))

	chk := TranslateDBError(&pgconn.PgError{Code: "23514", ConstraintName: "events_check"}, "")
	assert.True(t, IsKind(chk, KindValidation))
	assert.Contains(t, chk.Error(), "events_check")

	plain := errors.New("connection reset")
	assert.Same(t, plain, TranslateDBError(plain, "x"))
}

func serveError(t *testing.T, err error) (int, ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return FromError(c, err) })

	resp, rerr := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, rerr)
	defer resp.Body.Close()

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestFromErrorWritesAppError(t *testing.T) {
	ae := &AppError{Kind: KindValidation, Message: "title is required", Fields: map[string][]string{"event_title": {"title is required"}}}
	status, body := serveError(t, ae)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, body.Success)
	assert.Equal(t, "title is required", body.Message)
	assert.Equal(t, "VALIDATION_ERROR", body.ErrorCode)
	assert.Equal(t, []string{"title is required"}, body.Errors["event_title"])
}

func TestFromErrorHidesInternalDetails(t *testing.T) {
	status, body := serveError(t, ErrInternal("load events", errors.New("pq: secret detail")))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body.Message)

	status, body = serveError(t, errors.New("unexpected"))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", body.ErrorCode)
}

func TestFromErrorFiberError(t *testing.T) {
	status, body := serveError(t, fiber.NewError(fiber.StatusTooManyRequests, "slow down"))
	assert.Equal(t, fiber.StatusTooManyRequests, status)
	assert.Equal(t, "slow down", body.Message)
	assert.Equal(t, "TOO_MANY_REQUESTS", body.ErrorCode)
}
