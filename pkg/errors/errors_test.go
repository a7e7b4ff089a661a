package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	err := NewAppError(ErrCodeInvalidInput, "test error", 400)
	expected := "INVALID_INPUT: test error"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestAppError_WithCause(t *testing.T) {
	originalErr := errors.New("original error")
	err := WrapError(originalErr, ErrCodeInternal, "wrapped error", 500)

	if err.Cause != originalErr {
		t.Errorf("Cause = %v, want %v", err.Cause, originalErr)
	}

	if !errors.Is(err, originalErr) {
		t.Error("errors.Is should match the wrapped cause")
	}
}

func TestAppError_WithContext(t *testing.T) {
	err := NewAppError(ErrCodeInvalidInput, "test error", 400)
	err.WithContext("field", "value").WithContext("count", 42)

	if err.Context["field"] != "value" {
		t.Errorf("Context[field] = %v, want 'value'", err.Context["field"])
	}
	if err.Context["count"] != 42 {
		t.Errorf("Context[count] = %v, want 42", err.Context["count"])
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   ErrorCode
		wantStatus int
	}{
		{"invalid input", NewInvalidInputError("x"), ErrCodeInvalidInput, 400},
		{"not found", NewNotFoundError("x"), ErrCodeNotFound, 404},
		{"unauthorized", NewUnauthorizedError("x"), ErrCodeUnauthorized, 401},
		{"forbidden", NewForbiddenError("x"), ErrCodeForbidden, 403},
		{"conflict", NewConflictError("x"), ErrCodeConflict, 409},
		{"internal", NewInternalError("x"), ErrCodeInternal, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.wantCode)
			}
			if tt.err.HTTPStatus != tt.wantStatus {
				t.Errorf("HTTPStatus = %v, want %v", tt.err.HTTPStatus, tt.wantStatus)
			}
		})
	}
}

func TestGetAppError(t *testing.T) {
	appErr := NewNotFoundError("missing")
	wrapped := fmt.Errorf("handler: %w", appErr)

	if got := GetAppError(wrapped); got != appErr {
		t.Errorf("GetAppError() = %v, want %v", got, appErr)
	}

	if got := GetAppError(errors.New("plain")); got != nil {
		t.Errorf("GetAppError(plain) = %v, want nil", got)
	}
}
