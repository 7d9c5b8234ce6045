package errors

import (
	"errors"
	"fmt"
)

// NewConnectionError reports that the store at location could not be opened.
func NewConnectionError(location string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeConnection,
		Message: fmt.Sprintf("cannot open database: %s", location),
		Code:    "CONNECTION_FAILED",
		Cause:   cause,
		Context: map[string]interface{}{
			"location": location,
		},
	}
}

// NewSchemaError reports a failed table definition statement.
func NewSchemaError(table string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeSchema,
		Message: fmt.Sprintf("schema statement failed for %s", table),
		Code:    "SCHEMA_FAILED",
		Cause:   cause,
		Context: map[string]interface{}{
			"table": table,
		},
	}
}

// NewStatementError reports a failed data statement.
func NewStatementError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeStatement,
		Message: fmt.Sprintf("statement failed: %s", operation),
		Code:    "STATEMENT_FAILED",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewImportError reports a spreadsheet or CSV source that could not be read.
func NewImportError(path string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeImport,
		Message: fmt.Sprintf("cannot read source file: %s", path),
		Code:    "IMPORT_FAILED",
		Cause:   cause,
		Context: map[string]interface{}{
			"path": path,
		},
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
			return appErr.Message
		case ErrorTypeConnection, ErrorTypeSchema, ErrorTypeStatement, ErrorTypeImport:
			if appErr.Cause != nil {
				return fmt.Sprintf("%s: %v", appErr.Message, appErr.Cause)
			}
			return appErr.Message
		default:
			return "An unexpected error occurred."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
			return false // user errors
		default:
			return true
		}
	}
	return true
}
