package usecase

import (
	"errors"
	"fmt"

	"cineticket/pkg/utils"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrValidation       = errors.New("validation failed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")

	// ErrConflict is an invalid operation caused by existing state,
	// e.g. a seat that is already ticketed.
	ErrConflict error = conflictError{}
)

type conflictError struct{}

func (conflictError) Error() string { return "conflict" }

func (conflictError) Is(target error) bool { return target == ErrInvalidOperation }

// Error carries a client-facing message and one of the sentinel kinds above.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ValidationError lists failed fields by name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + utils.FormatValidationErrors(e.Fields)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// validate runs the struct tags and wraps failures as ValidationError
func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
