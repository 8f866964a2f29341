package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"boardapi/internal/http/middleware"
	"boardapi/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// apiError is a request-level failure detected by the handler itself
// (malformed id, body or query) before any service is called.
type apiError struct {
	status  int
	code    string
	message string
}

func (e *apiError) Error() string { return e.message }

func badRequest(code, message string) error {
	return &apiError{status: fiber.StatusBadRequest, code: code, message: message}
}

// writeError writes a standardized JSON error response without leaking internal errors.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: middleware.RequestIDFrom(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// domainErrors maps service sentinels to HTTP responses. Order matters:
// the more specific 409 codes come before the generic conflict.
var domainErrors = []struct {
	err    error
	status int
	code   string
}{
	{service.ErrValidation, fiber.StatusBadRequest, "VALIDATION_ERROR"},
	{service.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{service.ErrInvalidToken, fiber.StatusUnauthorized, "INVALID_TOKEN"},
	{service.ErrAccountDisabled, fiber.StatusForbidden, "ACCOUNT_DISABLED"},
	{service.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{service.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{service.ErrQuotaExceeded, fiber.StatusConflict, "QUOTA_EXCEEDED"},
	{service.ErrProjectArchived, fiber.StatusConflict, "PROJECT_ARCHIVED"},
	{service.ErrColumnNotEmpty, fiber.StatusConflict, "COLUMN_NOT_EMPTY"},
	{service.ErrWIPLimitReached, fiber.StatusConflict, "WIP_LIMIT_REACHED"},
	{service.ErrTaskArchived, fiber.StatusConflict, "TASK_ARCHIVED"},
	{service.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
	{service.ErrLastOwner, fiber.StatusConflict, "LAST_OWNER"},
	{service.ErrConflict, fiber.StatusConflict, "CONFLICT"},
}

// fail translates err into the JSON error envelope. Anything unrecognised is
// a 500 whose detail only reaches the access log.
func fail(c *fiber.Ctx, err error) error {
	var ae *apiError
	if errors.As(err, &ae) {
		return writeError(c, ae.status, ae.code, ae.message)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return writeFiberError(c, fe)
	}
	for _, m := range domainErrors {
		if errors.Is(err, m.err) {
			return writeError(c, m.status, m.code, err.Error())
		}
	}

	middleware.SetError(c, err)
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

func writeFiberError(c *fiber.Ctx, e *fiber.Error) error {
	switch e.Code {
	case fiber.StatusBadRequest:
		return writeError(c, e.Code, "BAD_REQUEST", "bad request")
	case fiber.StatusUnauthorized:
		return writeError(c, e.Code, "UNAUTHORIZED", e.Message)
	case fiber.StatusForbidden:
		return writeError(c, e.Code, "FORBIDDEN", e.Message)
	case fiber.StatusNotFound:
		return writeError(c, e.Code, "NOT_FOUND", "resource not found")
	case fiber.StatusMethodNotAllowed:
		return writeError(c, e.Code, "METHOD_NOT_ALLOWED", "method not allowed")
	case fiber.StatusRequestEntityTooLarge:
		return writeError(c, e.Code, "PAYLOAD_TOO_LARGE", "request body too large")
	case fiber.StatusTooManyRequests:
		return writeError(c, e.Code, "RATE_LIMITED", "too many requests")
	case fiber.StatusUnsupportedMediaType:
		return writeError(c, e.Code, "UNSUPPORTED_MEDIA_TYPE", "unsupported media type")
	default:
		if e.Code >= fiber.StatusInternalServerError {
			middleware.SetError(c, e)
			return writeError(c, e.Code, "INTERNAL_ERROR", "internal server error")
		}
		return writeError(c, e.Code, "ERROR", e.Message)
	}
}

// ErrorHandler returns the Fiber global error handler. It covers router-level
// errors, middleware denials and recovered panics.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return fail(c, err)
	}
}
