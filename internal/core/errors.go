// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Routing errors
	ErrNotFound          = &Error{Code: "NOT_FOUND", Message: "page not found"}
	ErrInvalidIdentifier = &Error{Code: "INVALID_IDENTIFIER", Message: "invalid route identifier"}

	// Catalog errors
	ErrCatalogInvalid   = &Error{Code: "CATALOG_INVALID", Message: "catalog invalid"}
	ErrStrategyNotFound = &Error{Code: "STRATEGY_NOT_FOUND", Message: "strategy not found"}

	// Stubbed features
	ErrNotImplemented = &Error{Code: "NOT_IMPLEMENTED", Message: "feature not implemented"}

	// Rendering errors
	ErrRenderFailed = &Error{Code: "RENDER_FAILED", Message: "page rendering failed"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}
)
