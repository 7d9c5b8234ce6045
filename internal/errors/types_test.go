package errors

import (
	"errors"
	"testing"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		name      string
		errorType ErrorType
		expected  string
	}{
		{"Connection", ErrorTypeConnection, "connection"},
		{"Schema", ErrorTypeSchema, "schema"},
		{"Statement", ErrorTypeStatement, "statement"},
		{"Validation", ErrorTypeValidation, "validation"},
		{"NotFound", ErrorTypeNotFound, "not_found"},
		{"InvalidInput", ErrorTypeInvalidInput, "invalid_input"},
		{"Import", ErrorTypeImport, "import"},
		{"Unknown", ErrorType(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.errorType.String(); result != tt.expected {
				t.Errorf("ErrorType.String() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name:     "Error without cause",
			appError: &AppError{Type: ErrorTypeValidation, Message: "name is required"},
			expected: "validation: name is required",
		},
		{
			name: "Error with cause",
			appError: &AppError{
				Type:    ErrorTypeStatement,
				Message: "insert project",
				Cause:   errors.New("disk I/O error"),
			},
			expected: "statement: insert project (caused by: disk I/O error)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.appError.Error(); result != tt.expected {
				t.Errorf("AppError.Error() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("unable to open database file")
	appError := NewConnectionError("/nope/app.db", cause)

	if appError.Unwrap() != cause {
		t.Errorf("AppError.Unwrap() = %v, want %v", appError.Unwrap(), cause)
	}
	if !errors.Is(appError, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestAppError_Is(t *testing.T) {
	err := NewSchemaError("projects", errors.New("syntax error"))

	if !errors.Is(err, &AppError{Type: ErrorTypeSchema, Code: "SCHEMA_FAILED"}) {
		t.Error("errors.Is should match same type and code")
	}
	if errors.Is(err, &AppError{Type: ErrorTypeStatement, Code: "STATEMENT_FAILED"}) {
		t.Error("errors.Is should not match a different type")
	}
}

func TestAppError_Context(t *testing.T) {
	err := &AppError{Type: ErrorTypeStatement}

	if _, ok := err.GetContext("table"); ok {
		t.Error("GetContext on empty context should report missing key")
	}

	err.WithContext("table", "tasks").WithContext("rows", 3)

	if v, ok := err.GetContext("table"); !ok || v != "tasks" {
		t.Errorf("GetContext(table) = %v, %v", v, ok)
	}
	if v, ok := err.GetContext("rows"); !ok || v != 3 {
		t.Errorf("GetContext(rows) = %v, %v", v, ok)
	}
}
