package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// AppError is the error contract the controllers surface to clients.
// Services return these; the error-handler middleware maps Code to the
// HTTP status and Message to the response body.
type AppError struct {
	Code    int
	Message string
	Err     error // wrapped cause, never sent to the client
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidation(message string) *AppError {
	return &AppError{Code: fiber.StatusBadRequest, Message: message}
}

// NewInvalidIdentifier signals a malformed id in the URL. Distinct from
// NotFound: a syntactically broken uuid is a 400, a missing row is a 404.
func NewInvalidIdentifier(resource string) *AppError {
	return &AppError{Code: fiber.StatusBadRequest, Message: fmt.Sprintf("Invalid %s ID format", resource)}
}

// NewNotFound is used both for absent rows and rows owned by someone else,
// so existence never leaks across users.
func NewNotFound(resource string) *AppError {
	return &AppError{Code: fiber.StatusNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func NewUnauthenticated(message string) *AppError {
	return &AppError{Code: fiber.StatusUnauthorized, Message: message}
}

func NewConflict(message string) *AppError {
	return &AppError{Code: fiber.StatusConflict, Message: message}
}

// AsAppError unwraps err to an *AppError if one is in the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
