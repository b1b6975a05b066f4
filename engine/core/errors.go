package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoSuchKey is reported when a named accessor is used for a key that was never written.
	ErrNoSuchKey = errors.New("no such key")
	// ErrUnsupportedMerge is reported when a builder is asked to merge a value it cannot read.
	ErrUnsupportedMerge = errors.New("unsupported merge source")
)

// ValidationError aggregates every violation found in one validation pass and
// reports them through a single error value.
type ValidationError struct {
	Errors []error
}

// NewValidationError returns nil when errs holds no non-nil error, otherwise a
// *ValidationError wrapping them. Nested validation errors are flattened so the
// message stays a flat list.
func NewValidationError(errs ...error) error {
	flat := flattenValidation(errs)
	if len(flat) == 0 {
		return nil
	}
	return &ValidationError{Errors: flat}
}

// Error joins the aggregated messages with ", ".
func (e *ValidationError) Error() string {
	if e == nil {
		return "validation failed"
	}
	errs := e.nonNilErrors()
	if len(errs) == 0 {
		return "validation failed"
	}
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, ", ")
}

// Messages returns the individual violation messages in report order.
func (e *ValidationError) Messages() []string {
	if e == nil {
		return nil
	}
	errs := e.nonNilErrors()
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Error())
	}
	return messages
}

// Unwrap exposes the first aggregated error so standard helpers can unwrap the
// chain while preserving compatibility with errors.Is and errors.As.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	errs := e.nonNilErrors()
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}

// Is allows errors.Is to match against any aggregated error.
func (e *ValidationError) Is(target error) bool {
	if e == nil {
		return false
	}
	for _, err := range e.nonNilErrors() {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// As allows errors.As to project any aggregated error into the provided target.
func (e *ValidationError) As(target any) bool {
	if e == nil {
		return false
	}
	for _, err := range e.nonNilErrors() {
		if errors.As(err, target) {
			return true
		}
	}
	return false
}

func (e *ValidationError) nonNilErrors() []error {
	if e == nil {
		return nil
	}
	filtered := make([]error, 0, len(e.Errors))
	for _, err := range e.Errors {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return filtered
}

func flattenValidation(errs []error) []error {
	flat := make([]error, 0, len(errs))
	for _, err := range errs {
		if err == nil {
			continue
		}
		if ve, ok := err.(*ValidationError); ok && ve != nil {
			flat = append(flat, flattenValidation(ve.Errors)...)
			continue
		}
		flat = append(flat, err)
	}
	return flat
}

// DSLError describes a programmer-usage problem: merging an unsupported value or
// reading a never-written key through a named accessor.
type DSLError struct {
	Op  string
	Key string
	Msg string
	Err error
}

func (e *DSLError) Error() string {
	if e == nil {
		return "dsl error"
	}
	if e.Msg != "" {
		return e.Msg
	}
	switch {
	case e.Key != "" && e.Err != nil:
		return fmt.Sprintf("%s %q: %v", e.Op, e.Key, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op
	}
}

func (e *DSLError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NoSuchKey builds the error returned by named accessors for unknown keys.
func NoSuchKey(op, key string) error {
	return &DSLError{Op: op, Key: key, Err: ErrNoSuchKey}
}

// CannotMerge builds the error returned when a merge source has an unsupported type.
func CannotMerge(v any) error {
	return &DSLError{
		Op:  "merge",
		Msg: fmt.Sprintf("Cannot merge %T", v),
		Err: ErrUnsupportedMerge,
	}
}
