package domain

import (
	"errors"
	"fmt"
)

// Error classes. Typed errors below match them with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("entity not found")
	ErrConflict   = errors.New("conflicting identifier")
)

// Conflict reasons, sent to clients as the errorKey of a 400 response.
const (
	ReasonIDExists  = "idexists"
	ReasonIDInvalid = "idinvalid"
	ReasonIDNull    = "idnull"
)

// ValidationError reports a required field that is missing or a value outside its domain.
type ValidationError struct {
	Entity Kind
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s %s", e.Entity, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError reports an identifier with no matching record.
type NotFoundError struct {
	Entity Kind
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConflictError reports a caller-supplied identifier that cannot be accepted.
type ConflictError struct {
	Entity Kind
	Reason string
}

func (e *ConflictError) Error() string {
	switch e.Reason {
	case ReasonIDExists:
		return fmt.Sprintf("a new %s cannot already have an id", e.Entity)
	case ReasonIDInvalid:
		return fmt.Sprintf("%s id does not match the payload id", e.Entity)
	case ReasonIDNull:
		return fmt.Sprintf("%s id is required", e.Entity)
	}
	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

func missing(kind Kind, field string) error {
	return &ValidationError{Entity: kind, Field: field, Reason: "is required"}
}

func invalid(kind Kind, field, reason string) error {
	return &ValidationError{Entity: kind, Field: field, Reason: reason}
}

// NotFound builds a NotFoundError for the given entity.
func NotFound(kind Kind, id int64) error {
	return &NotFoundError{Entity: kind, ID: id}
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
