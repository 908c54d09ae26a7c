// Package apperror defines the error kinds shared by the repositories, the HTTP boundary and the sync client.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error kinds. Match them with errors.Is.
var (
	ErrValidation           = errors.New("validation error")
	ErrNotFound             = errors.New("not found")
	ErrBackendUnavailable   = errors.New("backend unavailable")
	ErrSheetNotFound        = errors.New("sheet not found")
	ErrBackendWriteFailed   = errors.New("backend write failed")
	ErrBackendNotConfigured = errors.New("backend not configured")
)

// Error carries a kind, a user-facing message and an optional cause.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

// New creates an error of the given kind.
func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an error of the given kind around cause.
func Wrap(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// Validation is shorthand for New(ErrValidation, ...).
func Validation(format string, args ...any) *Error {
	return New(ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound is shorthand for New(ErrNotFound, ...).
func NotFound(message string) *Error {
	return New(ErrNotFound, message)
}

// HTTPStatus maps an error to the status code the API answers with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the text shown to API callers. Causes stay in the logs.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	switch {
	case errors.Is(err, ErrBackendNotConfigured):
		return "Google Sheets not configured"
	case errors.Is(err, ErrBackendUnavailable), errors.Is(err, ErrSheetNotFound):
		return "Storage backend is unavailable"
	case errors.Is(err, ErrBackendWriteFailed):
		return "Failed to write to storage backend"
	}
	return "Internal server error"
}

var fieldMessages = map[string]string{
	"required":  "is required",
	"oneof":     "has an unsupported value",
	"category":  "has an unsupported value",
	"timeofday": "has an unsupported value",
	"frequency": "has an unsupported value",
	"gte":       "must not be negative",
	"min":       "must not be empty",
}

// FromValidator converts go-playground/validator errors into a single ValidationError naming every field.
func FromValidator(err error) error {
	var validationErr validator.ValidationErrors
	if !errors.As(err, &validationErr) {
		return Wrap(ErrValidation, "Invalid request payload", err)
	}

	parts := make([]string, 0, len(validationErr))
	for _, e := range validationErr {
		msg, ok := fieldMessages[e.Tag()]
		if !ok {
			msg = "is invalid"
		}
		parts = append(parts, fmt.Sprintf("%s %s", e.Field(), msg))
	}
	return New(ErrValidation, strings.Join(parts, "; "))
}
