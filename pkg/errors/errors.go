// Package errors provides structured application errors with stable codes
// that the HTTP adapter maps onto status codes and JSON bodies.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode identifies an error class.
type ErrorCode string

const (
	// Client errors
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeConflict         ErrorCode = "CONFLICT"

	// Engine errors
	CodeQuotaExceeded   ErrorCode = "QUOTA_EXCEEDED"
	CodeInvalidAction   ErrorCode = "INVALID_ACTION"
	CodeRecipeNotFound  ErrorCode = "RECIPE_NOT_FOUND"
	CodeSessionInactive ErrorCode = "SESSION_INACTIVE"

	// Server errors
	CodeStoreError           ErrorCode = "STORE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"
	CodeInternal             ErrorCode = "INTERNAL_ERROR"
)

// AppError is an error with a code, a human message, and optional metadata.
type AppError struct {
	Code     ErrorCode              `json:"code"`
	Message  string                 `json:"message"`
	Details  string                 `json:"details,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Cause    error                  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *AppError) Unwrap() error { return e.Cause }

// StatusCode maps the error code to an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidationFailed:
		return http.StatusBadRequest
	case CodeNotFound, CodeRecipeNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeInvalidAction, CodeSessionInactive:
		return http.StatusConflict
	case CodeQuotaExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// WithMetadata attaches a metadata entry.
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithCause attaches the underlying cause.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// New creates an application error.
func New(code ErrorCode, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// NewBadRequestError creates a bad request error.
func NewBadRequestError(message string) *AppError {
	return New(CodeBadRequest, message, "")
}

// NewValidationError creates a validation error.
func NewValidationError(details string) *AppError {
	return New(CodeValidationFailed, "Validation failed", details)
}

// NewNotFoundError creates a not found error for a resource.
func NewNotFoundError(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource), "")
}

// NewRecipeNotFoundError creates a recipe not found error.
func NewRecipeNotFoundError(recipeID string) *AppError {
	return New(CodeRecipeNotFound, "Recipe not found", "").WithMetadata("recipe_id", recipeID)
}

// NewInvalidActionError flags an action not allowed in the current state.
func NewInvalidActionError(details string) *AppError {
	return New(CodeInvalidAction, "Action not allowed in the current state", details)
}

// NewSessionInactiveError flags an operation against a session that has not
// been started.
func NewSessionInactiveError() *AppError {
	return New(CodeSessionInactive, "No active session", "Start a session first")
}

// NewQuotaExceededError creates a quota exceeded error.
func NewQuotaExceededError(limit int) *AppError {
	return New(
		CodeQuotaExceeded,
		"Daily swipe limit reached",
		fmt.Sprintf("Free tier allows %d swipes per day", limit),
	).WithMetadata("limit", limit)
}

// NewStoreError wraps a persistence failure.
func NewStoreError(operation string, cause error) *AppError {
	return New(CodeStoreError, "store operation failed", fmt.Sprintf("failed to %s", operation)).WithCause(cause)
}

// NewExternalServiceError wraps a failure talking to a collaborator.
func NewExternalServiceError(service string, cause error) *AppError {
	return New(
		CodeExternalServiceError,
		"External service error",
		fmt.Sprintf("failed to reach %s", service),
	).WithCause(cause)
}

// NewInternalError creates an internal error.
func NewInternalError(message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return New(CodeInternal, message, "")
}

// Wrap converts err into an AppError, passing existing AppErrors through.
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return NewInternalError(message).WithCause(err)
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the code, defaulting to internal.
func GetCode(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeInternal
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails is the payload inside the envelope.
type ErrorDetails struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

// ToErrorResponse builds the JSON envelope for an AppError.
func ToErrorResponse(err *AppError, requestID string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetails{
			Code:      err.Code,
			Message:   err.Message,
			Details:   err.Details,
			Metadata:  err.Metadata,
			RequestID: requestID,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}
}
