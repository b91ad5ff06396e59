package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// API key verification failures. ErrInvalidCredential deliberately covers
	// unknown, inactive and deleted keys at the lookup step so responses don't
	// leak key-enumeration signals.
	ErrMissingCredential = errors.New("credential required")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrKeyDeactivated    = errors.New("api key deactivated")
	ErrKeyExpired        = errors.New("api key expired")

	// ErrStoreUnavailable marks transient database failures; callers may retry.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Stable error codes returned in response bodies
const (
	CodeNotFound         = "ERR_NOT_FOUND"
	CodeBadRequest       = "ERR_BAD_REQUEST"
	CodeUnauthorized     = "ERR_UNAUTHORIZED"
	CodeForbidden        = "ERR_FORBIDDEN"
	CodeInternalError    = "ERR_INTERNAL"
	CodeStoreUnavailable = "ERR_STORE_UNAVAILABLE"
)

// AppError represents an application error with HTTP status and a stable code
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeBadRequest, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func ForbiddenWith(message string, err error) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, err)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

func StoreUnavailable(err error) *AppError {
	return NewAppError(http.StatusServiceUnavailable, CodeStoreUnavailable, "storage temporarily unavailable", errors.Join(ErrStoreUnavailable, err))
}
