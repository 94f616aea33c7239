package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no row matches the requested id.
var ErrNotFound = errors.New("game not found")

// StorageError wraps a pool or database failure other than "no matching row":
// connection exhaustion, timeouts, constraint violations, network errors.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
