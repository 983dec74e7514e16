package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given Param is not valid")
	// ErrLockTimeout will throw if a discussion lock could not be taken in time
	ErrLockTimeout = errors.New("discussion is busy")

	ErrValidation = errors.New("validation failed")
	ErrCascade    = errors.New("cascade failed")
	ErrStorage    = errors.New("storage unavailable")
)

// ValidationError is bad caller input. It is never worth retrying.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation || target == ErrBadParamInput
}

// CascadeError means a delete cascade failed part way and was rolled back as a whole.
type CascadeError struct {
	Op        string
	CommentID int64
	Err       error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("%s comment %d: %v", e.Op, e.CommentID, e.Err)
}

func (e *CascadeError) Unwrap() error { return e.Err }

func (e *CascadeError) Is(target error) bool { return target == ErrCascade }

// StorageError wraps a failure of the backing store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// NewStorageError wraps err unless it is nil or already a domain error the
// caller should see as is.
func NewStorageError(op string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrStorage) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
