package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/puntu/internal/core/domain"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // Error code: bad_request, unprocessable, internal_error, etc.
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, 400, "bad_request", msg)
}

// errUnprocessable returns a 422 error.
func errUnprocessable(c *fiber.Ctx, msg string) error {
	return newError(c, 422, "unprocessable", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, 500, "internal_error", msg)
}

// errStorage returns a 503 error.
func errStorage(c *fiber.Ctx, msg string) error {
	return newError(c, 503, "storage_unavailable", msg)
}

// writeDomainError maps the typed error taxonomy onto HTTP status codes.
func writeDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrMalformedGeometry),
		errors.Is(err, domain.ErrOutOfRange):
		return errBadRequest(c, err.Error())
	case errors.Is(err, domain.ErrInvalidBounds):
		return errUnprocessable(c, err.Error())
	case errors.Is(err, domain.ErrStorageUnavailable):
		return errStorage(c, err.Error())
	case errors.Is(err, domain.ErrConstraintViolation):
		return newError(c, 409, "conflict", err.Error())
	default:
		return errInternal(c, err.Error())
	}
}
