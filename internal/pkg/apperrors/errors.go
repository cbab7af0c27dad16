package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Pipeline errors. Each stage of the generation pipeline fails fast with one
// of these; no stage retries on its own.
var (
	// ErrConfiguration means a credential or endpoint is missing. It is
	// raised before any network call is attempted.
	ErrConfiguration = errors.New("missing configuration")

	// ErrUpstream covers non-2xx or malformed responses from the storage or
	// generation endpoint. Wrap with NewUpstreamError to keep the status code.
	ErrUpstream = errors.New("upstream request failed")

	// ErrRateLimited and ErrPaymentRequired are distinguished user-facing
	// cases for the streaming chat path (HTTP 429 / 402).
	ErrRateLimited     = errors.New("rate limited by generation endpoint")
	ErrPaymentRequired = errors.New("payment required by generation endpoint")

	// ErrUnparseableOutput means the model output could not be reduced to the
	// expected structure. It is never reported as an empty success.
	ErrUnparseableOutput = errors.New("unparseable model output")

	// ErrPersistence means the batch write was rejected by the data store.
	ErrPersistence = errors.New("batch write rejected")
)

// Resource errors per entity
var (
	ErrFileNotFound        = errors.New("file not found")
	ErrFlashcardNotFound   = errors.New("flashcard not found")
	ErrQuizNotFound        = errors.New("quiz not found")
	ErrSummaryNotFound     = errors.New("summary not found")
	ErrScheduleNotFound    = errors.New("schedule entry not found")
	ErrNoteNotFound        = errors.New("note not found")
	ErrGradeNotFound       = errors.New("grade not found")
	ErrGenerationNotFound  = errors.New("generation request not found")
	ErrGenerationKind      = errors.New("unknown artifact kind")
	ErrStreamAlreadyActive = errors.New("a chat stream is already in flight")
	ErrEmptyMessage        = errors.New("empty chat message")
)

// UpstreamError carries the upstream HTTP status and response body for
// diagnostics. It unwraps to ErrUpstream (or a more specific sentinel for
// 429/402) so callers can match with errors.Is.
type UpstreamError struct {
	Status int
	Body   string
	kind   error
}

// NewUpstreamError builds an UpstreamError for the given status and body.
func NewUpstreamError(status int, body string) *UpstreamError {
	kind := ErrUpstream
	switch status {
	case 429:
		kind = ErrRateLimited
	case 402:
		kind = ErrPaymentRequired
	}
	return &UpstreamError{Status: status, Body: body, kind: kind}
}

// Error implements error interface
func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream returned status %d", e.Status)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.Status, e.Body)
}

// Unwrap implements errors.Unwrap interface
func (e *UpstreamError) Unwrap() error {
	return e.kind
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewConfigurationError creates a new custom error for a missing credential or endpoint
func NewConfigurationError(message string) error {
	return &CustomError{
		Err:     ErrConfiguration,
		Message: message,
	}
}

// NewParseError creates a new custom error for output that could not be parsed
func NewParseError(message string) error {
	return &CustomError{
		Err:     ErrUnparseableOutput,
		Message: message,
	}
}

// NewPersistenceError wraps a rejected batch write, keeping the cause
func NewPersistenceError(cause error) error {
	return &CustomError{
		Err:     ErrPersistence,
		Message: fmt.Sprintf("batch write rejected: %v", cause),
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
