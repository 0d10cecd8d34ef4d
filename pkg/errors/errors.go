package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents different types of errors that can occur
type ErrorType string

const (
	ErrorTypeConfiguration       ErrorType = "configuration"
	ErrorTypeNetwork             ErrorType = "network"
	ErrorTypeAuth                ErrorType = "auth"
	ErrorTypeParsing             ErrorType = "parsing"
	ErrorTypeEmptyResult         ErrorType = "empty_result"
	ErrorTypeIO                  ErrorType = "io"
	ErrorTypeUnsupportedPlatform ErrorType = "unsupported_platform"
	ErrorTypeUnknown             ErrorType = "unknown"
)

// Error represents an application error with type information.
// Code carries the HTTP status for network-layer errors and is zero otherwise.
type Error struct {
	Type    ErrorType
	Message string
	Code    int
	Err     error
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error, if any
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a typed error
func New(errorType ErrorType, message string) *Error {
	return &Error{Type: errorType, Message: message}
}

// Newf creates a typed error with a formatted message
func Newf(errorType ErrorType, format string, args ...interface{}) *Error {
	return &Error{Type: errorType, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a typed error wrapping an underlying cause
func Wrap(errorType ErrorType, err error, message string) *Error {
	return &Error{Type: errorType, Message: message, Err: err}
}

// WithCode attaches an HTTP status code to the error
func (e *Error) WithCode(code int) *Error {
	e.Code = code
	return e
}

// GetType returns the error type of err, or ErrorTypeUnknown if err is not
// a typed error
func GetType(err error) ErrorType {
	var typed *Error
	if stderrors.As(err, &typed) {
		return typed.Type
	}
	return ErrorTypeUnknown
}

// IsType reports whether err is a typed error of the given kind
func IsType(err error, errorType ErrorType) bool {
	return GetType(err) == errorType
}

// IsConfiguration reports whether err is a configuration error
func IsConfiguration(err error) bool {
	return IsType(err, ErrorTypeConfiguration)
}

// IsEmptyResult reports whether err is an empty result error
func IsEmptyResult(err error) bool {
	return IsType(err, ErrorTypeEmptyResult)
}

// IsUnsupportedPlatform reports whether err is an unsupported platform error
func IsUnsupportedPlatform(err error) bool {
	return IsType(err, ErrorTypeUnsupportedPlatform)
}
