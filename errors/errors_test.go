package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppErrorError(t *testing.T) {
	err := New(ErrCodeInternal, "something broke")
	if !strings.Contains(err.Error(), "INTERNAL_ERROR") {
		t.Errorf("expected code in message, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "something broke") {
		t.Errorf("expected message in output, got %q", err.Error())
	}
}

func TestAppErrorWithCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := ScriptFailed("tell application", cause)

	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to match the cause through Unwrap")
	}
}

func TestDuplicateRegistration(t *testing.T) {
	err := DuplicateRegistration("logger")
	if err.Code != ErrCodeDuplicateRegistration {
		t.Errorf("expected DUPLICATE_REGISTRATION, got %s", err.Code)
	}
	if err.Retryable {
		t.Error("registration errors must not be retryable")
	}
	if err.Details["token"] != "logger" {
		t.Errorf("expected token detail, got %v", err.Details)
	}
}

func TestCircularDependencyPath(t *testing.T) {
	err := CircularDependency([]string{"a", "b", "a"})
	if !strings.Contains(err.Message, "a -> b -> a") {
		t.Errorf("expected joined path in message, got %q", err.Message)
	}
	if err.Details["path"] != "a -> b -> a" {
		t.Errorf("expected path detail, got %v", err.Details["path"])
	}
}

func TestFactoryFailurePreservesCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := FactoryFailure("app_cache", cause)

	if err.Unwrap() != cause {
		t.Error("expected Unwrap to return the original cause")
	}
	if !HasCode(err, ErrCodeFactoryFailure) {
		t.Error("expected HasCode to match FACTORY_FAILURE")
	}
}

func TestHasCodeOnWrappedError(t *testing.T) {
	inner := NotRegistered("network_sanitizer")
	wrapped := fmt.Errorf("resolving: %w", inner)

	if !HasCode(wrapped, ErrCodeNotRegistered) {
		t.Error("expected HasCode to see through fmt.Errorf wrapping")
	}
	if HasCode(wrapped, ErrCodeTimeout) {
		t.Error("expected HasCode to reject a different code")
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(Timeout("navigate")) {
		t.Error("expected timeouts to be retryable")
	}
	if IsRetryable(NotRegistered("logger")) {
		t.Error("expected NOT_REGISTERED to be non-retryable")
	}
	if IsRetryable(fmt.Errorf("plain error")) {
		t.Error("expected plain errors to be non-retryable")
	}
}

func TestWithDetail(t *testing.T) {
	err := Internal("boom").WithDetail("op", "cleanup").WithDetails(map[string]any{"attempt": 2})
	if err.Details["op"] != "cleanup" {
		t.Errorf("expected op detail, got %v", err.Details)
	}
	if err.Details["attempt"] != 2 {
		t.Errorf("expected attempt detail, got %v", err.Details)
	}
}
