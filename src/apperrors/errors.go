package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

// ErrorType categorizes store failures the way the pages need to react to
// them: permission problems get a specific message, unavailability degrades
// softly, everything else is generic.
type ErrorType string

const (
	ErrorTypeUnavailable      ErrorType = "UNAVAILABLE"
	ErrorTypePermissionDenied ErrorType = "PERMISSION_DENIED"
	ErrorTypeUnauthenticated  ErrorType = "UNAUTHENTICATED"
	ErrorTypeNotFound         ErrorType = "NOT_FOUND"
	ErrorTypeValidation       ErrorType = "VALIDATION"
	ErrorTypeConflict         ErrorType = "CONFLICT"
	ErrorTypeInternal         ErrorType = "INTERNAL"
)

type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(t ErrorType, message string, err error) *AppError {
	return &AppError{Type: t, Message: message, Err: err}
}

func Unavailable(message string, err error) *AppError {
	return New(ErrorTypeUnavailable, message, err)
}

func PermissionDenied(message string) *AppError {
	return New(ErrorTypePermissionDenied, message, nil)
}

func Unauthenticated(message string) *AppError {
	return New(ErrorTypeUnauthenticated, message, nil)
}

func NotFound(message string) *AppError {
	return New(ErrorTypeNotFound, message, nil)
}

func Validation(message string) *AppError {
	return New(ErrorTypeValidation, message, nil)
}

func Conflict(message string) *AppError {
	return New(ErrorTypeConflict, message, nil)
}

func Internal(message string, err error) *AppError {
	return New(ErrorTypeInternal, message, err)
}

// TypeOf returns the category of err, or ErrorTypeInternal for plain errors.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// IsUnavailable reports whether err means the store could not be reached at
// all, which read paths treat as "render empty" rather than a failure.
func IsUnavailable(err error) bool {
	return TypeOf(err) == ErrorTypeUnavailable
}

// FromStore maps a raw gorm/driver error into the taxonomy. Connection-level
// failures become Unavailable, permission failures keep their category, and
// anything unrecognized stays Internal.
func FromStore(err error, message string) *AppError {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(message)
	}
	if errors.Is(err, gorm.ErrInvalidDB) {
		return Unavailable(message, err)
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "timeout"):
		return Unavailable(message, err)
	case strings.Contains(msg, "permission denied"):
		return New(ErrorTypePermissionDenied, message, err)
	case strings.Contains(msg, "authentication failed"),
		strings.Contains(msg, "password authentication"):
		return New(ErrorTypeUnauthenticated, message, err)
	case strings.Contains(msg, "unique constraint"),
		strings.Contains(msg, "duplicate key"):
		return Conflict(message)
	}
	return Internal(message, err)
}

// HTTPStatus maps an error category to the response code controllers use.
func HTTPStatus(err error) int {
	switch TypeOf(err) {
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypePermissionDenied:
		return http.StatusForbidden
	case ErrorTypeUnauthenticated:
		return http.StatusUnauthorized
	case ErrorTypeConflict:
		return http.StatusConflict
	case ErrorTypeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
