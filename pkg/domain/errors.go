package domain

import (
	"errors"
	"fmt"
)

// NotFoundError indicates a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Entity + " not found"
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// IsNotFound checks if an error is a not-found error
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ConflictError indicates a unique constraint violation, e.g. duplicate email.
type ConflictError struct {
	Entity string
	Field  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with this %s already exists", e.Entity, e.Field)
}

// IsConflict checks if an error is a conflict error
func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

// InvalidStateError indicates an operation was rejected because a related
// entity is in the wrong state, e.g. a subscription that is not active.
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string {
	return e.Reason
}

// IsInvalidState checks if an error is an invalid-state error
func IsInvalidState(err error) bool {
	var is *InvalidStateError
	return errors.As(err, &is)
}

// LimitExceededError indicates a plan quota has been reached.
type LimitExceededError struct {
	Resource string
	Current  int
	Limit    int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("plan limit exceeded for %s (%d/%d)", e.Resource, e.Current, e.Limit)
}

// IsLimitExceeded checks if an error is a limit exceeded error
func IsLimitExceeded(err error) bool {
	var le *LimitExceededError
	return errors.As(err, &le)
}
