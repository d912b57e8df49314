package errors

import (
	"errors"
	"fmt"
)

// Common application errors. API handlers attach these as causes so
// callers can match with errors.Is.
var (
	// Ingestion errors
	ErrEmptyBatch        = errors.New("empty metric batch")
	ErrInvalidMetricName = errors.New("invalid metric name")
	ErrInvalidTimestamp  = errors.New("invalid timestamp: must be RFC3339")

	// Query errors
	ErrMetricNotFound     = errors.New("metric not found")
	ErrInvalidSeverity    = errors.New("invalid severity filter")
	ErrInvalidTimeRange   = errors.New("invalid time range: hours must be positive")
	ErrInvalidPatternType = errors.New("invalid pattern type filter")

	// Configuration errors
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation    ErrorType = "validation"
	ErrorTypeIngestion     ErrorType = "ingestion"
	ErrorTypeQuery         ErrorType = "query"
	ErrorTypeConfiguration ErrorType = "configuration"
	ErrorTypeInternal      ErrorType = "internal"
)

// AppError represents an application-specific error with additional context
type AppError struct {
	Type       ErrorType              `json:"type"`
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	Context    map[string]interface{} `json:"context,omitempty"`
	HTTPStatus int                    `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// WithCause attaches an underlying error, typically one of the package
// sentinels, so errors.Is can match it through Unwrap.
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:       errType,
		Code:       code,
		Message:    message,
		HTTPStatus: getDefaultHTTPStatus(errType),
	}
}

// WrapError wraps an existing error with application context
func WrapError(err error, errType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:       errType,
		Code:       code,
		Message:    message,
		Cause:      err,
		HTTPStatus: getDefaultHTTPStatus(errType),
	}
}

// NewValidationError creates a validation error
func NewValidationError(code, message string) *AppError {
	return NewAppError(ErrorTypeValidation, code, message)
}

// NewIngestionError creates an ingestion error
func NewIngestionError(code, message string) *AppError {
	return NewAppError(ErrorTypeIngestion, code, message)
}

// NewQueryError creates a query error
func NewQueryError(code, message string) *AppError {
	return NewAppError(ErrorTypeQuery, code, message)
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return NewAppError(ErrorTypeInternal, CodeInternalError, message)
}

// getDefaultHTTPStatus returns the default HTTP status for an error type
func getDefaultHTTPStatus(errType ErrorType) int {
	switch errType {
	case ErrorTypeValidation, ErrorTypeIngestion:
		return 400
	case ErrorTypeQuery:
		return 404
	case ErrorTypeConfiguration:
		return 503
	case ErrorTypeInternal:
		return 500
	default:
		return 500
	}
}

// ErrorResponse represents an error response for APIs
type ErrorResponse struct {
	Error     *AppError `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp string    `json:"timestamp"`
	Path      string    `json:"path,omitempty"`
}

// Error codes for different error scenarios
const (
	// Validation error codes
	CodeInvalidInput     = "INVALID_INPUT"
	CodeMissingField     = "MISSING_FIELD"
	CodeInvalidTimestamp = "INVALID_TIMESTAMP"
	CodeInvalidFilter    = "INVALID_FILTER"

	// Query error codes
	CodePredictionNotFound = "PREDICTION_NOT_FOUND"

	// Internal error codes
	CodeInternalError = "INTERNAL_ERROR"
)
