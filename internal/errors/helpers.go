package errors

import (
	"fmt"
	"net/http"
)

// Common error constructors for the handler layer

// NewValidationError creates a validation error whose message is shown to the
// caller verbatim
func NewValidationError(message string) *AppError {
	return New(ErrCodeValidationFailed, message).WithUserMessage(message)
}

// NewUnauthenticatedError creates a 401 error
func NewUnauthenticatedError(message string) *AppError {
	return New(ErrCodeUnauthenticated, message).WithUserMessage(message)
}

// NewForbiddenError creates a 403 error
func NewForbiddenError(message string) *AppError {
	return New(ErrCodeForbidden, message).WithUserMessage(message)
}

// NewQuotaExceededError creates the session-limit error with the caller's
// current usage embedded in the message
func NewQuotaExceededError(limit, current int) *AppError {
	msg := fmt.Sprintf("Session limit reached. You can create at most %d sessions. You currently have %d sessions.", limit, current)
	return New(ErrCodeQuotaExceeded, msg).
		WithContext("limit", limit).
		WithContext("current", current).
		WithUserMessage(msg)
}

// NewUpstreamError wraps a gateway failure, preserving the upstream HTTP
// status for passthrough. The message carries the upstream status and body
// verbatim.
func NewUpstreamError(statusCode int, message string) *AppError {
	return New(ErrCodeUpstream, message).
		WithContext("upstream_status", statusCode).
		WithHTTPStatus(statusCode).
		WithUserMessage(message)
}

// NewDatabaseError creates a database error with operation context
func NewDatabaseError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeDatabaseQuery, fmt.Sprintf("database %s failed", operation)).
		WithContext("operation", operation).
		WithUserMessage("Database operation failed")
}

// NewNotFoundError creates a not found error with resource context
func NewNotFoundError(resource, identifier string) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource)).
		WithContext("resource", resource).
		WithContext("identifier", identifier).
		WithUserMessage(fmt.Sprintf("%s not found", resource))
}

// HTTPStatusCode maps an error to the HTTP status the handler should return.
// Upstream errors keep the gateway's own status.
func HTTPStatusCode(err error) int {
	if appErr, ok := err.(*AppError); ok && appErr.HTTPStatus != 0 {
		return appErr.HTTPStatus
	}

	switch GetCode(err) {
	case ErrCodeValidationFailed, ErrCodeInvalidInput, ErrCodeQuotaExceeded, ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case ErrCodeUnauthenticated:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUpstream:
		return http.StatusBadGateway
	case ErrCodeDatabaseConnection, ErrCodeDatabaseQuery:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
