package helper

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindAuth
	KindPermission
	KindNotFound
	KindConflict
	KindCapacity
)

// AppError is the error type returned by services; controllers map it to HTTP.
type AppError struct {
	Kind    ErrorKind
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func (e *AppError) Status() int {
	switch e.Kind {
	case KindValidation, KindConflict, KindCapacity:
		return fiber.StatusBadRequest
	case KindAuth:
		return fiber.StatusUnauthorized
	case KindPermission:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func (e *AppError) Code() string {
	switch e.Kind {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindAuth:
		return "UNAUTHORIZED"
	case KindPermission:
		return "FORBIDDEN"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	case KindCapacity:
		return "CAPACITY_FULL"
	default:
		return "INTERNAL_ERROR"
	}
}

func newAppError(kind ErrorKind, msg string) *AppError {
	return &AppError{Kind: kind, Message: msg}
}

func ErrValidation(msg string) *AppError { return newAppError(KindValidation, msg) }
func ErrAuth(msg string) *AppError       { return newAppError(KindAuth, msg) }
func ErrPermission(msg string) *AppError { return newAppError(KindPermission, msg) }
func ErrNotFound(msg string) *AppError   { return newAppError(KindNotFound, msg) }
func ErrConflict(msg string) *AppError   { return newAppError(KindConflict, msg) }
func ErrCapacity(msg string) *AppError   { return newAppError(KindCapacity, msg) }

func ErrInternal(msg string, cause error) *AppError {
	return &AppError{Kind: KindInternal, Message: msg, Err: cause}
}

// IsKind reports whether err is (or wraps) an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Kind == kind
}

// TranslateDBError turns postgres constraint violations into AppErrors.
// conflictMsg is used for unique violations; other errors are returned unchanged.
func TranslateDBError(err error, conflictMsg string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23505":
		if conflictMsg == "" {
			conflictMsg = "Resource already exists"
		}
		return &AppError{Kind: KindConflict, Message: conflictMsg, Err: err}
	case "23503":
		return &AppError{Kind: KindConflict, Message: "Resource is still referenced", Err: err}
	case "23514":
		return &AppError{Kind: KindValidation, Message: "Value violates constraint " + pgErr.ConstraintName, Err: err}
	}
	return err
}

// FromError writes the standard error body for err.
func FromError(c *fiber.Ctx, err error) error {
	var ae *AppError
	if errors.As(err, &ae) {
		if ae.Kind == KindInternal {
			log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), ae)
			return JsonError(c, fiber.StatusInternalServerError, "Internal server error")
		}
		return jsonErrorWithCode(c, ae.Status(), ae.Code(), ae.Message, ae.Fields)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}

	log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
	return JsonError(c, fiber.StatusInternalServerError, "Internal server error")
}

// ErrorHandler is installed as fiber.Config.ErrorHandler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromError(c, err)
}
