// Package app contains the service implementations behind the primary
// ports. Services validate input, consult the pure core and drive the
// secondary ports.
package app

import (
	"errors"
	"fmt"
)

// Sentinel errors for the application failure taxonomy. Adapters map
// these onto their transport's vocabulary (HTTP status codes, MCP tool
// errors, CLI exit output).
var (
	// ErrNotFound marks lookups of missing or out-of-tenant entities.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks rejected input or rule violations. The
	// message carries the actionable detail.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden marks operations the acting user may not perform.
	ErrForbidden = errors.New("forbidden")
)

// kindError carries a human message while unwrapping to its sentinel.
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// NotFoundf builds an ErrNotFound with a formatted message.
func NotFoundf(format string, args ...any) error {
	return &kindError{msg: fmt.Sprintf(format, args...), kind: ErrNotFound}
}

// Validationf builds an ErrValidation with a formatted message.
func Validationf(format string, args ...any) error {
	return &kindError{msg: fmt.Sprintf(format, args...), kind: ErrValidation}
}

// Forbiddenf builds an ErrForbidden with a formatted message.
func Forbiddenf(format string, args ...any) error {
	return &kindError{msg: fmt.Sprintf(format, args...), kind: ErrForbidden}
}
