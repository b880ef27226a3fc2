package errors

import (
	"errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime    Category = "runtime"
	CategoryValidation Category = "validation"
	CategoryConfig     Category = "config"
	CategoryCLI        Category = "cli"
)

// HXError is a structured error with a code, suggestions, and documentation.
type HXError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (runtime, config, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *HXError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *HXError) Unwrap() error {
	return e.Wrapped
}

// Is matches another HXError with the same code.
func (e *HXError) Is(target error) bool {
	t, ok := target.(*HXError)
	return ok && t.Code != "" && t.Code == e.Code
}

// WithSuggestion adds a fix suggestion to the error.
func (e *HXError) WithSuggestion(s string) *HXError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *HXError) WithDetail(d string) *HXError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *HXError) Wrap(err error) *HXError {
	e.Wrapped = err
	return e
}

// New creates an HXError from a registered error code.
func New(code string) *HXError {
	template, ok := registry[code]
	if !ok {
		return &HXError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &HXError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new HXError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *HXError {
	return &HXError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an HXError.
func FromError(err error, code string) *HXError {
	if err == nil {
		return nil
	}
	var he *HXError
	if errors.As(err, &he) {
		return he
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err or anything it wraps is an HXError with code.
func HasCode(err error, code string) bool {
	return errors.Is(err, &HXError{Code: code})
}
