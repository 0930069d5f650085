package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Container Error Constructors ---

// DuplicateRegistration creates an AppError for a token registered twice.
func DuplicateRegistration(token string) *AppError {
	return &AppError{
		Code: ErrCodeDuplicateRegistration, Message: fmt.Sprintf("service %q is already registered", token),
		Retryable: false,
		Details:   map[string]any{"token": token},
	}
}

// NotRegistered creates an AppError for a token with no descriptor.
func NotRegistered(token string) *AppError {
	return &AppError{
		Code: ErrCodeNotRegistered, Message: fmt.Sprintf("service %q is not registered", token),
		Retryable: false,
		Details:   map[string]any{"token": token},
	}
}

// CircularDependency creates an AppError for a detected dependency cycle.
// The path lists the chain of token names that formed the cycle.
func CircularDependency(path []string) *AppError {
	chain := strings.Join(path, " -> ")
	return &AppError{
		Code: ErrCodeCircularDependency, Message: fmt.Sprintf("circular dependency detected: %s", chain),
		Retryable: false,
		Details:   map[string]any{"path": chain},
	}
}

// FactoryFailure creates an AppError for a factory that returned an error.
func FactoryFailure(token string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeFactoryFailure, Message: fmt.Sprintf("factory for %q failed", token),
		Retryable: false,
		Details:   map[string]any{"token": token},
		Cause:     cause,
	}
}

// --- Automation Error Constructors ---

// ScriptFailed creates an AppError for a failed osascript invocation.
func ScriptFailed(script string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeScriptFailed, Message: "AppleScript execution failed.",
		Retryable: true,
		Details:   map[string]any{"script": script},
		Cause:     cause,
	}
}

// Timeout creates an AppError for an operation that took too long.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: "The operation took too long. Please try again.",
		Retryable: true,
		Details:   map[string]any{"operation": operation},
	}
}

// RateLimited creates an AppError for a call rejected by the rate limiter.
func RateLimited() *AppError {
	return &AppError{
		Code: ErrCodeRateLimited, Message: "Too many automation calls. Please wait a moment and try again.",
		Retryable: true,
	}
}

// InvalidInput creates an AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Retryable: false, Details: details,
	}
}

// InvalidConfig creates an AppError for a configuration section that failed validation.
func InvalidConfig(section, reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidConfig, Message: fmt.Sprintf("Invalid %s configuration: %s", section, reason),
		Retryable: false,
		Details:   map[string]any{"section": section},
	}
}

// Internal creates an AppError for an unexpected internal failure.
func Internal(reason string) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: reason,
		Retryable: false,
	}
}

// --- Inspection Helpers ---

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError carrying the given code.
func HasCode(err error, code ErrorCode) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// IsRetryable reports whether err is an AppError marked retryable.
func IsRetryable(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Retryable
	}
	return false
}
