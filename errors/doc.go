// Package errors provides unified error handling for browserkit applications.
//
// It implements structured error types with machine-readable error codes,
// retryable detection, and cause preservation, so callers can branch on
// failure classes without string matching.
//
// # Usage
//
//	err := errors.NotRegistered("rate_limiter")
//	if errors.HasCode(err, errors.ErrCodeNotRegistered) {
//	    // handle missing registration
//	}
package errors
