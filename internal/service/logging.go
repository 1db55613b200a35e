package service

// Logging Standards for botlink
//
// This file defines standard field names and log level guidance to keep
// logging consistent across the application.

// Standard Field Names
// Use these exact field names for consistency across all logging calls
const (
	// Core identifiers
	LogFieldRequestID = "request_id"
	LogFieldTraceID   = "trace_id"
	LogFieldUserID    = "user_id"
	LogFieldUserEmail = "user_email"
	LogFieldSession   = "session"
	LogFieldAppID     = "app_id"

	// Service and operation fields
	LogFieldService   = "service"
	LogFieldOperation = "operation"
	LogFieldComponent = "component"
	LogFieldMethod    = "method"

	// Performance and metrics
	LogFieldDuration = "duration_ms"
	LogFieldCount    = "count"
	LogFieldSize     = "size_bytes"

	// Network and external services
	LogFieldURL        = "url"
	LogFieldEndpoint   = "endpoint"
	LogFieldStatusCode = "status_code"
	LogFieldRemoteIP   = "remote_ip"
	LogFieldUserAgent  = "user_agent"

	// Error and debugging
	LogFieldErrorCode  = "error_code"
	LogFieldErrorType  = "error_type"
	LogFieldRetryCount = "retry_count"
	LogFieldAttempt    = "attempt"
)

// Log Level Usage Guidelines
//
// DEBUG: Detailed flow information, sanitized request/response data.
// INFO: Startup/shutdown, major state changes, successful operations.
// WARN: Unexpected but recoverable: rejected input, quota hits,
//   gateway temporarily unavailable.
// ERROR: Failed operations, gateway errors, authentication failures.
// FATAL: Missing startup configuration, unrecoverable database errors.
//
// Never log raw JWTs, API keys or full email addresses; use the privacy
// package helpers before attaching user data to log fields.
