package genyrator

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Standard sentinel errors.
var (
	// ErrNotFound is returned when a record addressed by its identifier does not exist.
	ErrNotFound = errors.New("genyrator: record not found")
)

// NotFoundError represents an error when a record is not found.
type NotFoundError struct {
	label string
	id    any // Optional: the identifier that was addressed
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	if e.id != nil {
		return fmt.Sprintf("genyrator: %s not found (id=%v)", e.label, e.id)
	}
	return fmt.Sprintf("genyrator: %s not found", e.label)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(notFoundErr, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Label returns the entity label.
func (e *NotFoundError) Label() string {
	return e.label
}

// ID returns the identifier that was addressed, if available.
func (e *NotFoundError) ID() any {
	return e.id
}

// NewNotFoundError returns a new NotFoundError for the given entity.
func NewNotFoundError(label string) *NotFoundError {
	return &NotFoundError{label: label}
}

// NewNotFoundErrorWithID returns a new NotFoundError with the identifier that was addressed.
func NewNotFoundErrorWithID(label string, id any) *NotFoundError {
	return &NotFoundError{label: label, id: id}
}

// IsNotFound returns a boolean indicating whether the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// AggregateError collects the errors of independent steps, e.g. one per
// schema file.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "genyrator: no errors"
	case 1:
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("genyrator: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

func (e *AggregateError) Unwrap() []error { return e.Errors }

// NewAggregateError drops the nil errors of errs. It returns nil when none
// remain and the error itself when one remains.
func NewAggregateError(errs ...error) error {
	errs = slices.DeleteFunc(slices.Clone(errs), func(err error) bool { return err == nil })
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}
	return &AggregateError{Errors: errs}
}

// MutationError wraps a write error with the entity and the write phase.
type MutationError struct {
	Entity string // Entity being written
	Op     string // Write phase: "create" or "deferred update"
	Err    error
}

// Error returns the error string.
func (e *MutationError) Error() string {
	return fmt.Sprintf("genyrator: %s %s: %v", e.Op, e.Entity, e.Err)
}

// Unwrap returns the underlying error.
func (e *MutationError) Unwrap() error {
	return e.Err
}

// NewMutationError creates a new MutationError.
func NewMutationError(entity, op string, err error) *MutationError {
	return &MutationError{Entity: entity, Op: op, Err: err}
}

// IsMutationError returns a boolean indicating whether the error is a MutationError.
func IsMutationError(err error) bool {
	var e *MutationError
	return errors.As(err, &e)
}
