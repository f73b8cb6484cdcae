package errors

import (
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeParse      ErrorType = "parse"
	ErrorTypeFile       ErrorType = "file"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeUnknown    ErrorType = "unknown"
)

// OpError represents a custom error with context
type OpError struct {
	Type    ErrorType
	Message string
	Err     error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *OpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *OpError) Unwrap() error {
	return e.Err
}

// WithContext adds context to the error
func (e *OpError) WithContext(key string, value interface{}) *OpError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new OpError
func New(errType ErrorType, message string) *OpError {
	return &OpError{
		Type:    errType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error
func Wrap(err error, errType ErrorType, message string) *OpError {
	return &OpError{
		Type:    errType,
		Message: message,
		Err:     err,
		Context: make(map[string]interface{}),
	}
}

// ConfigError represents a configuration error
func ConfigError(message string) *OpError {
	return New(ErrorTypeConfig, message)
}

// ConfigErrorf creates a formatted configuration error
func ConfigErrorf(format string, args ...interface{}) *OpError {
	return New(ErrorTypeConfig, fmt.Sprintf(format, args...))
}

// ParseError represents a parsing error
func ParseError(message string) *OpError {
	return New(ErrorTypeParse, message)
}

// ParseErrorf creates a formatted parsing error
func ParseErrorf(format string, args ...interface{}) *OpError {
	return New(ErrorTypeParse, fmt.Sprintf(format, args...))
}

// FileError represents a file system error
func FileError(message string) *OpError {
	return New(ErrorTypeFile, message)
}

// FileErrorf creates a formatted file error
func FileErrorf(format string, args ...interface{}) *OpError {
	return New(ErrorTypeFile, fmt.Sprintf(format, args...))
}

// ValidationError represents a validation error
func ValidationError(message string) *OpError {
	return New(ErrorTypeValidation, message)
}

// ValidationErrorf creates a formatted validation error
func ValidationErrorf(format string, args ...interface{}) *OpError {
	return New(ErrorTypeValidation, fmt.Sprintf(format, args...))
}
