package archive

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is returned when a record with the same id is already in the collection.
var ErrDuplicateID = errors.New("photo id already exists")

type ValidationKind string

const (
	MissingRequiredField ValidationKind = "missing_required_field"
	InvalidReelYear      ValidationKind = "invalid_reel_year"
)

// ValidationError rejects a record before it reaches the collection.
// The entry form that produced it should stay open with its input intact.
type ValidationError struct {
	Kind  ValidationKind
	Field string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case MissingRequiredField:
		return fmt.Sprintf("missing required field: %s", e.Field)
	case InvalidReelYear:
		return fmt.Sprintf("invalid reel year for field %s", e.Field)
	default:
		return fmt.Sprintf("validation failed for field %s", e.Field)
	}
}

type StorageErrorKind string

const (
	// CorruptRead is recovered locally by falling back to the seed collection.
	CorruptRead StorageErrorKind = "corrupt_read"
	ReadFailed  StorageErrorKind = "read_failed"
	// WriteFailed leaves the in-memory collection mutated; callers report it as a warning.
	WriteFailed StorageErrorKind = "write_failed"
)

// StorageError reports a failure of the persistence slot.
type StorageError struct {
	Kind StorageErrorKind
	Key  string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s on slot %q: %v", e.Kind, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageKind reports whether err is a StorageError of the given kind.
func IsStorageKind(err error, kind StorageErrorKind) bool {
	var se *StorageError
	return errors.As(err, &se) && se.Kind == kind
}
