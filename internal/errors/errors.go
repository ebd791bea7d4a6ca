package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Fetch error codes. One code per way a directory request can fail.
const (
	ErrNotFound    = "NOT_FOUND"
	ErrRateLimited = "RATE_LIMITED"
	ErrTimeout     = "TIMEOUT"
	ErrNoResults   = "NO_RESULTS"
	ErrNetwork     = "NETWORK"
)

// Persistence error codes. These are recovered locally and never shown to the user.
const (
	ErrUnreadable = "UNREADABLE"
	ErrUnwritable = "UNWRITABLE"
)

// Input error codes for user-entered server codes and search queries.
const (
	ErrEmptyInput     = "EMPTY_INPUT"
	ErrMalformedInput = "MALFORMED_INPUT"
)

// ErrConfig covers configuration loading and validation failures.
const ErrConfig = "CONFIG"

var fetchCodes = map[string]bool{
	ErrNotFound:    true,
	ErrRateLimited: true,
	ErrTimeout:     true,
	ErrNoResults:   true,
	ErrNetwork:     true,
}

// Error represents a structured error with code, message, suggestion, and optional cause.
// Rendered as:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrNetwork code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrNetwork,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var cfxErr *Error
	if errors.As(err, &cfxErr) {
		return cfxErr.Code == code
	}
	return false
}

// Code returns the code of a structured error, or "" for anything else.
func Code(err error) string {
	var cfxErr *Error
	if errors.As(err, &cfxErr) {
		return cfxErr.Code
	}
	return ""
}

// IsFetch reports whether err is one of the directory fetch failures.
func IsFetch(err error) bool {
	return fetchCodes[Code(err)]
}

// IsInput reports whether err was caused by bad user input.
func IsInput(err error) bool {
	c := Code(err)
	return c == ErrEmptyInput || c == ErrMalformedInput
}

// UserMessage returns the one-line message suitable for a notification.
// Falls back to the raw error text for unstructured errors.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var cfxErr *Error
	if errors.As(err, &cfxErr) {
		return cfxErr.Message
	}
	return err.Error()
}
