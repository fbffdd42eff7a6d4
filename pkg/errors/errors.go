package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"

	// Configuration errors
	ErrConfigLoad     ErrorCode = "CONFIG_LOAD"
	ErrConfigParse    ErrorCode = "CONFIG_PARSE"
	ErrPatternInvalid ErrorCode = "PATTERN_INVALID"
	ErrWorkDirInvalid ErrorCode = "WORKDIR_INVALID"
	ErrFormatInvalid  ErrorCode = "FORMAT_INVALID"

	// Execution errors
	ErrExecFailed ErrorCode = "EXEC_FAILED"
)

// LintrollError represents a structured error with code and details
type LintrollError struct {
	Code    ErrorCode
	Message string
	Wrapped error
}

// Error implements the error interface
func (e *LintrollError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LintrollError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *LintrollError) Is(target error) bool {
	var targetErr *LintrollError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new LintrollError with the given code and message
func New(code ErrorCode, message string) *LintrollError {
	return &LintrollError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new LintrollError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *LintrollError {
	return &LintrollError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with a LintrollError
func Wrap(err error, code ErrorCode, message string) *LintrollError {
	if err == nil {
		return nil
	}
	return &LintrollError{
		Code:    code,
		Message: message,
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *LintrollError {
	if err == nil {
		return nil
	}
	return &LintrollError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Wrapped: err,
	}
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var lerr *LintrollError
	if errors.As(err, &lerr) {
		return lerr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a LintrollError
func GetErrorCode(err error) ErrorCode {
	var lerr *LintrollError
	if errors.As(err, &lerr) {
		return lerr.Code
	}
	return ErrUnknown
}
