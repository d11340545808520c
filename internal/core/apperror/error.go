// Package apperror provides structured error handling following RFC 7807 Problem Details.
// All business errors must use AppError for consistent API responses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes following domain-driven design
const (
	// Infrastructure errors (5xx)
	CodeInternal      = "INTERNAL_ERROR"
	CodeDatabase      = "DATABASE_ERROR"
	CodeTimeout       = "TIMEOUT_ERROR"
	CodeStoreDisabled = "STORE_DISABLED"

	// Validation errors (400)
	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidInput = "INVALID_INPUT"

	// Schema integrity violations (422)
	CodeDanglingLink   = "DANGLING_LINK"
	CodeAmbiguousMatch = "AMBIGUOUS_MATCH"

	// Not found (404)
	CodeNotFound = "NOT_FOUND"
)

// AppError is the standard error type for the platform.
// It implements error interface and provides structured details for API responses.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (field errors, column ids, etc.)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions for common errors ---

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewInvalidInput creates an error for malformed request input (400)
func NewInvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewDanglingLink creates an error for a linked table whose owning
// department or source table does not exist (422)
func NewDanglingLink(tableID, departmentID string) *AppError {
	return &AppError{
		Code:       CodeDanglingLink,
		Message:    fmt.Sprintf("linked table %q references unknown department %q", tableID, departmentID),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"table_id": tableID, "department_id": departmentID},
	}
}

// NewAmbiguousMatch creates an error for a header that matches alternatives
// of more than one column (422)
func NewAmbiguousMatch(header string, columnIDs []string) *AppError {
	return &AppError{
		Code:       CodeAmbiguousMatch,
		Message:    fmt.Sprintf("header %q matches alternatives of multiple columns", header),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"header": header, "column_ids": columnIDs},
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewDatabase creates a database error (500)
func NewDatabase(op string, err error) *AppError {
	return &AppError{
		Code:       CodeDatabase,
		Message:    fmt.Sprintf("database operation failed: %s", op),
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewTimeout creates a timeout error (504)
func NewTimeout(op string) *AppError {
	return &AppError{
		Code:       CodeTimeout,
		Message:    fmt.Sprintf("operation timed out: %s", op),
		HTTPStatus: http.StatusGatewayTimeout,
	}
}

// NewStoreDisabled is returned when a persistence endpoint is called
// without a configured database (503)
func NewStoreDisabled() *AppError {
	return &AppError{
		Code:       CodeStoreDisabled,
		Message:    "mapping store is not configured",
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeNotFound
	}
	return false
}

// IsDanglingLink checks if error is CodeDanglingLink
func IsDanglingLink(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeDanglingLink
	}
	return false
}

// IsAmbiguousMatch checks if error is CodeAmbiguousMatch
func IsAmbiguousMatch(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeAmbiguousMatch
	}
	return false
}
