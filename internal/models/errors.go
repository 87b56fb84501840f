package models

import (
	"fmt"
	"strings"
)

// ValidationError reports malformed or inconsistent expense input: a bad
// amount, too few participants, an unknown split type, shares that do not
// reconcile, and so on. Fields identifies the offending people or fields
// when known.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
}

// NewValidationError builds a ValidationError with optional field detail.
func NewValidationError(msg string, fields ...string) *ValidationError {
	return &ValidationError{Message: msg, Fields: fields}
}

// NotFoundError reports an operation against a record that does not exist,
// or an expense referencing unregistered people.
type NotFoundError struct {
	Message string
	Fields  []string
}

func (e *NotFoundError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
}

// NewNotFoundError builds a NotFoundError with optional field detail.
func NewNotFoundError(msg string, fields ...string) *NotFoundError {
	return &NotFoundError{Message: msg, Fields: fields}
}

// StoreError wraps a failure from the persistence layer. It is propagated,
// not retried; the wrapped error is available via Unwrap.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err with the failing operation name.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}
