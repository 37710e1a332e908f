package domain

import (
	"errors"
	"fmt"
)

// ErrEntryNotFound is returned when no catalog entry exists for an id.
var ErrEntryNotFound = errors.New("catalog entry not found")

// ErrMoneyOverflow is returned when a price no longer fits int64 storage.
var ErrMoneyOverflow = errors.New("money value exceeds storage bounds")

// ValidationError reports a rejected input field. It is always produced
// before any storage or media call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// UploadError reports a media host failure during image upload. A single
// failed upload aborts the whole mutation; nothing is persisted.
type UploadError struct {
	Index int
	Err   error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("image upload %d failed: %v", e.Index, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// StorageError reports a persistence failure. No domain event is ever
// published for a mutation whose persistence failed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
