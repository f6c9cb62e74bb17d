package apperrors

import (
	"errors"
	"testing"
)

func TestAppErrorError(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "With Code",
			appError: &AppError{
				Code:    "TEST_CODE",
				Message: "This is a test error",
			},
			expected: "[TEST_CODE] This is a test error",
		},
		{
			name: "Without Code",
			appError: &AppError{
				Message: "This is a test error without code",
			},
			expected: "This is a test error without code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Error()
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestNewValidationErrorNamesField(t *testing.T) {
	err := NewValidationError("monthly_income", "is required")

	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected error to wrap ErrValidation")
	}

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected error to unwrap to *ValidationError")
	}
	if validationErr.Field != "monthly_income" {
		t.Errorf("expected field 'monthly_income', got %q", validationErr.Field)
	}
}

func TestWrapDatabaseError(t *testing.T) {
	cause := errors.New("connection reset")
	err := WrapDatabaseError(cause, "failed to insert loan")

	if !errors.Is(err, ErrDatabase) {
		t.Errorf("expected error to wrap ErrDatabase")
	}
	if expected := "[DB_ERROR] failed to insert loan"; err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}
