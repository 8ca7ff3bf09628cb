package utils

import "net/http"

// AppError is the application error type carried from repositories and
// handlers to the HTTP boundary, where Code decides the status.
type AppError struct {
	Code    string
	Message string
	Origin  error // Original error that caused this error, if any
}

func (appErr *AppError) Error() string {
	if appErr.Origin != nil {
		return appErr.Message + ": " + appErr.Origin.Error()
	}
	return appErr.Message
}

func (appErr *AppError) Unwrap() error {
	return appErr.Origin
}

// Standard error codes for the application
const (
	ErrNotFound     = "NOT_FOUND"
	ErrDuplicate    = "DUPLICATE"
	ErrInvalidInput = "INVALID_INPUT"
	ErrUnauthorized = "UNAUTHORIZED"

	// Upstream errors cover the external Reddit feed.
	ErrUpstreamNotFound = "UPSTREAM_NOT_FOUND"
	ErrUpstream         = "UPSTREAM_ERROR"

	ErrDatabase = "DATABASE_ERROR"
	ErrInternal = "INTERNAL_ERROR"
)

func NewAppError(code string, message string, originalErr error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Origin:  originalErr,
	}
}

// Specific error creators for common cases
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: ErrNotFound, Message: message}
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: ErrInvalidInput, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: ErrUnauthorized, Message: message}
}

func NewDuplicateError(message string) *AppError {
	return &AppError{Code: ErrDuplicate, Message: message}
}

func NewDatabaseError(message string, originalErr error) *AppError {
	return &AppError{Code: ErrDatabase, Message: message, Origin: originalErr}
}

// IsErrorCode checks whether err is an AppError with the given code.
func IsErrorCode(err error, code string) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// AppErrorToHTTPStatus converts an AppError code to an HTTP status code.
func AppErrorToHTTPStatus(errorCode string) int {
	switch errorCode {
	case ErrNotFound, ErrUpstreamNotFound:
		return http.StatusNotFound
	case ErrInvalidInput:
		return http.StatusBadRequest
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrDuplicate:
		return http.StatusConflict
	case ErrDatabase, ErrInternal, ErrUpstream:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
