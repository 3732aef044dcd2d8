package generator

import (
	"errors"
	"strings"
)

// Error kinds surfaced to callers. Every error returned by Generate matches
// exactly one of them with errors.Is.
var (
	ErrValidation = errors.New("invalid content")
	ErrCapacity   = errors.New("payload too large for this error-correction level")
	ErrRender     = errors.New("failed to render QR code")
)

// Error carries the kind of a failed generation, the offending input field
// for validation failures, and the underlying cause.
type Error struct {
	Kind  error
	Field string
	Err   error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Category names the kind of err: "validation", "capacity" or "render".
// Errors that did not come from Generate are reported as "render".
func Category(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrCapacity):
		return "capacity"
	default:
		return "render"
	}
}

// FieldOf returns the input field a validation error refers to, if any.
func FieldOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}

func invalid(field string, cause error) *Error {
	return &Error{Kind: ErrValidation, Field: strings.ToLower(field), Err: cause}
}

func failed(kind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}
