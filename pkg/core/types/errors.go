package types

import (
	"errors"
	"fmt"
)

// Sentinels for the three failure classes. Every typed error below reports
// exactly one of them through errors.Is.
var (
	// ErrValidation marks input that can never succeed as given.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a lookup of a namespace that was never created.
	ErrNotFound = errors.New("not found")
	// ErrInternal marks an unexpected failure such as corrupted graph state.
	ErrInternal = errors.New("internal error")
)

// ValidationError describes rejected caller input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// DimensionMismatchError indicates a vector whose length differs from the
// dimension fixed for an index or namespace. It is a validation failure.
type DimensionMismatchError struct {
	Expected int
	Actual   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Is reports whether target is ErrValidation.
func (e *DimensionMismatchError) Is(target error) bool { return target == ErrValidation }

// NotFoundError indicates a namespace that does not exist.
type NotFoundError struct {
	Namespace string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("namespace %q not found", e.Namespace)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InternalError wraps an unexpected failure.
type InternalError struct {
	Cause error
}

func (e *InternalError) Error() string {
	if e.Cause == nil {
		return ErrInternal.Error()
	}
	return fmt.Sprintf("internal error: %v", e.Cause)
}

// Is reports whether target is ErrInternal.
func (e *InternalError) Is(target error) bool { return target == ErrInternal }

// Unwrap returns the underlying cause.
func (e *InternalError) Unwrap() error { return e.Cause }

// Internalf builds an InternalError from a format string.
func Internalf(format string, args ...any) error {
	return &InternalError{Cause: fmt.Errorf(format, args...)}
}
