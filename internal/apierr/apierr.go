// Package apierr defines the error taxonomy shared by every pipeline stage.
// Handlers return these instead of raw backend errors; the Fiber error
// handler in main renders them as JSON with the carried status code.
package apierr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error is an API-facing error with an HTTP status and optional extra
// fields merged into the JSON error body (e.g. quota counts).
type Error struct {
	Status  int
	Message string
	Extra   map[string]interface{}
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// WithCause attaches the underlying error for logging. The cause is never
// serialized into the response.
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// WithExtra adds a field to the JSON error body.
func (e *Error) WithExtra(key string, value interface{}) *Error {
	if e.Extra == nil {
		e.Extra = map[string]interface{}{}
	}
	e.Extra[key] = value
	return e
}

func BadRequest(message string) *Error {
	return &Error{Status: fiber.StatusBadRequest, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Status: fiber.StatusNotFound, Message: message}
}

func Auth(message string) *Error {
	return &Error{Status: fiber.StatusUnauthorized, Message: message}
}

func RateLimit(message string) *Error {
	return &Error{Status: fiber.StatusTooManyRequests, Message: message}
}

func ServiceUnavailable(message string) *Error {
	return &Error{Status: fiber.StatusServiceUnavailable, Message: message}
}

// QuotaExceeded reports a local size guard violation. The measured count and
// the limit are included in the response body under the given keys.
func QuotaExceeded(message, currentKey string, current int, maxKey string, max int) *Error {
	e := &Error{Status: fiber.StatusBadRequest, Message: message}
	return e.WithExtra(currentKey, current).WithExtra(maxKey, max)
}

func Internal(message string) *Error {
	return &Error{Status: fiber.StatusInternalServerError, Message: message}
}

// From converts any error into an *Error, passing typed errors through and
// wrapping everything else as an internal error.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Internal("Internal server error").WithCause(err)
}
