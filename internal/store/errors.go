package store

import (
	"errors"
	"fmt"
)

// ErrEmptyName is wrapped by ValidationError when a trip name is blank.
var ErrEmptyName = errors.New("trip name is required")

// ReferentialIntegrityError reports a create that named a trip the store does not hold.
type ReferentialIntegrityError struct {
	Entity string
	TripID string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("%s references unknown trip %q", e.Entity, e.TripID)
}

// ValidationError wraps a rejected field value.
type ValidationError struct {
	Entity string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Entity, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// PersistError reports a failed durable write. The change it belongs to is
// already applied in memory and published; only the durable copy lags.
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
