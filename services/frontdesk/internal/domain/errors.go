package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("reservation conflict")
	ErrForbidden  = errors.New("operation not permitted for role")
	ErrNotFound   = errors.New("not found")
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError identifies the stored reservation a proposal collided with.
type ConflictError struct {
	RoomID     int64
	ExistingID int64
	Existing   DateRange
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("room %d is already reserved for %s (reservation %d)", e.RoomID, e.Existing, e.ExistingID)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

type ForbiddenError struct {
	Role      Role
	Operation string
}

func (e *ForbiddenError) Error() string {
	role := string(e.Role)
	if role == "" {
		role = "undefined"
	}
	return fmt.Sprintf("role '%s' is not authorized to %s", role, e.Operation)
}

func (e *ForbiddenError) Unwrap() error { return ErrForbidden }

type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func NotFound(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

type ErrorKind string

const (
	KindValidation     ErrorKind = "validation"
	KindConflict       ErrorKind = "conflict"
	KindForbidden      ErrorKind = "forbidden"
	KindNotFound       ErrorKind = "not_found"
	KindInfrastructure ErrorKind = "infrastructure"
)

// Kind classifies err. Anything outside the domain taxonomy is an infrastructure
// fault and the only kind a caller may retry.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindInfrastructure
	}
}
