package testutil

import (
	"errors"
	"testing"

	apperrors "monevo/internal/errors"
)

// AssertAppError fails the test unless err is an AppError with the
// expected code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %s, got nil", expectedCode)
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError with code %s, got %T: %v", expectedCode, err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected error code %s, got %s", expectedCode, appErr.Code)
	}
}

// AssertNoError fails the test immediately when err is non-nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
