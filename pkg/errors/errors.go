package errors

import (
	"errors"
	"fmt"
)

// Error codes.
const (
	CodeConfiguration = "CONFIGURATION_ERROR"
	CodeAttempt       = "ATTEMPT_FAILED"
	CodeInput         = "INPUT_ERROR"
	CodeInternal      = "INTERNAL_ERROR"
)

// Error represents a typed scheduling error.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Configuration is a shorthand for a formatted configuration error.
func Configuration(format string, args ...any) *Error {
	return New(CodeConfiguration, fmt.Sprintf(format, args...))
}

// Input is a shorthand for wrapping a data decoding problem.
func Input(err error, format string, args ...any) *Error {
	return Wrap(err, CodeInput, fmt.Sprintf(format, args...))
}

// Sentinels usable with errors.Is.
var (
	ErrConfiguration = New(CodeConfiguration, "invalid configuration")
	ErrAttempt       = New(CodeAttempt, "scheduling attempt failed")
	ErrInput         = New(CodeInput, "invalid input")
)

// CodeOf returns the code of err, or CodeInternal for foreign errors.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
