package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	ErrorCode string              `json:"error_code,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
}

var statusCodes = map[int]string{
	fiber.StatusBadRequest:            "BAD_REQUEST",
	fiber.StatusUnauthorized:          "UNAUTHORIZED",
	fiber.StatusForbidden:             "FORBIDDEN",
	fiber.StatusNotFound:              "NOT_FOUND",
	fiber.StatusConflict:              "CONFLICT",
	fiber.StatusRequestEntityTooLarge: "PAYLOAD_TOO_LARGE",
	fiber.StatusTooManyRequests:       "TOO_MANY_REQUESTS",
}

func codeForStatus(status int) string {
	if code, ok := statusCodes[status]; ok {
		return code
	}
	if status >= fiber.StatusInternalServerError {
		return "INTERNAL_ERROR"
	}
	return "ERROR"
}

// JsonError answers status with a message and the generic code for that status.
func JsonError(c *fiber.Ctx, status int, message string) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	if strings.TrimSpace(message) == "" {
		message = fiber.ErrInternalServerError.Message
	}
	return jsonErrorWithCode(c, status, codeForStatus(status), message, nil)
}

func jsonErrorWithCode(c *fiber.Ctx, status int, code, message string, fields map[string][]string) error {
	return c.Status(status).JSON(ErrorResponse{
		Message:   message,
		ErrorCode: code,
		Errors:    fields,
	})
}

// JsonWith merges body with success/message at the top level,
// e.g. {"success":true,"message":"Events fetched","events":[...]}.
func JsonWith(c *fiber.Ctx, status int, message string, body fiber.Map) error {
	out := make(fiber.Map, len(body)+2)
	for k, v := range body {
		out[k] = v
	}
	out["success"] = true
	out["message"] = message
	return c.Status(status).JSON(out)
}

func JsonOK(c *fiber.Ctx, message string, body fiber.Map) error {
	if strings.TrimSpace(message) == "" {
		message = "ok"
	}
	return JsonWith(c, fiber.StatusOK, message, body)
}

func JsonCreated(c *fiber.Ctx, message string, body fiber.Map) error {
	if strings.TrimSpace(message) == "" {
		message = "created"
	}
	return JsonWith(c, fiber.StatusCreated, message, body)
}

// JsonDeleted answers 204 with no body.
func JsonDeleted(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
