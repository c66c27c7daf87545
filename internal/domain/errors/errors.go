// Package errors defines the application error taxonomy shared by the
// usecase and delivery layers.
package errors

import (
	"net/http"

	"corpgate/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Business failures below answer with HTTP 200 and an ok:false body;
// the portal frontend keys on the message, not the status line.
// Transport-level rejections (401/403/404) come from the middleware chain.
var (
	// Login and credential errors. Absent user and wrong password share
	// one message so the login form cannot be used to probe for accounts.
	ErrInvalidCredentials = NewBaseError(
		http.StatusOK,
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		"",
	)

	ErrCurrentPasswordMismatch = NewBaseError(
		http.StatusOK,
		"INVALID_CREDENTIALS",
		"Current password is incorrect",
		"",
	)

	// Refresh-token errors.
	ErrInvalidToken = NewBaseError(
		http.StatusOK,
		"INVALID_TOKEN",
		"Invalid refresh token",
		"",
	)

	ErrTokenExpired = NewBaseError(
		http.StatusOK,
		"TOKEN_EXPIRED",
		"Refresh token expired",
		"",
	)

	ErrAccountInactive = NewBaseError(
		http.StatusOK,
		"ACCOUNT_INACTIVE",
		"User account is inactive",
		"",
	)

	// Onboarding errors.
	ErrNotEligible = NewBaseError(
		http.StatusOK,
		"NOT_ELIGIBLE",
		"Initial password can only be set on a new account",
		"",
	)

	// User management errors.
	ErrUserNotFound = NewBaseError(
		http.StatusOK,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusOK,
		"USER_ALREADY_EXISTS",
		"User already exists",
		"",
	)

	ErrSelfDelete = NewBaseError(
		http.StatusOK,
		"SELF_DELETE",
		"Cannot delete your own account",
		"",
	)

	// Generic table errors.
	ErrInvalidTable = NewBaseError(
		http.StatusOK,
		"INVALID_TABLE",
		"Invalid table name",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusOK,
		"VALIDATION_FAILED",
		"Invalid input",
		"",
	)

	// Middleware-level rejections keep real HTTP statuses.
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Invalid or expired token",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Record not found",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database operation failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
