package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Container wiring errors
const (
	// ErrCodeDuplicateRegistration indicates a token name was registered twice.
	ErrCodeDuplicateRegistration ErrorCode = "DUPLICATE_REGISTRATION"
	// ErrCodeNotRegistered indicates the resolved token has no descriptor.
	ErrCodeNotRegistered ErrorCode = "NOT_REGISTERED"
	// ErrCodeCircularDependency indicates a dependency cycle was detected mid-resolution.
	ErrCodeCircularDependency ErrorCode = "CIRCULAR_DEPENDENCY"
	// ErrCodeFactoryFailure indicates a service factory returned an error.
	ErrCodeFactoryFailure ErrorCode = "FACTORY_FAILURE"
)

// Automation errors (retryable where the OS layer may recover)
const (
	// ErrCodeScriptFailed indicates an osascript invocation failed.
	ErrCodeScriptFailed ErrorCode = "SCRIPT_FAILED"
	// ErrCodeTimeout indicates an operation took too long.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeRateLimited indicates the automation rate limiter rejected the call.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInvalidConfig indicates a configuration section failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeScriptFailed: true,
	ErrCodeTimeout:      true,
	ErrCodeRateLimited:  true,
}

// IsRetryableCode reports whether operations failing with the given code
// may be retried.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
