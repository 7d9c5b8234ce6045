package cli

import (
	stderrors "errors"
	"fmt"

	"sqlite-crud/internal/config"
	"sqlite-crud/internal/errors"
)

// ErrorHandler turns command errors into messages for the terminal
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// HandleSimple returns the user-facing message without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if msg, ok := eh.message(err); ok {
		return fmt.Errorf("%s", msg)
	}
	return err
}

func (eh *ErrorHandler) message(err error) (string, bool) {
	if cfgErr, ok := err.(*config.ConfigError); ok {
		return "invalid configuration: " + cfgErr.Error(), true
	}
	if errors.IsAppError(err) {
		return errors.GetUserMessage(err), true
	}
	return "", false
}

// Process exit statuses returned by ExitCode.
const (
	ExitFailure  = 1
	ExitUsage    = 2
	ExitNotFound = 3
	ExitDatabase = 4
)

// ExitCode maps an error to the process exit status.
func (eh *ErrorHandler) ExitCode(err error) int {
	var cfgErr *config.ConfigError
	switch {
	case err == nil:
		return 0
	case eh.IsValidationError(err), stderrors.As(err, &cfgErr):
		return ExitUsage
	case eh.IsNotFoundError(err):
		return ExitNotFound
	case eh.IsDatabaseError(err):
		return ExitDatabase
	default:
		return ExitFailure
	}
}

// IsValidationError checks if an error is a validation or invalid input error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeValidation) ||
		errors.IsErrorType(err, errors.ErrorTypeInvalidInput)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsDatabaseError reports connection, schema and statement failures
func (eh *ErrorHandler) IsDatabaseError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeConnection) ||
		errors.IsErrorType(err, errors.ErrorTypeSchema) ||
		errors.IsErrorType(err, errors.ErrorTypeStatement)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
