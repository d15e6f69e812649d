package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Taxonomy shape errors.
	// These are recovered at the call boundary and shown as a notice.

	// ErrDuplicateCategory indicates the category name is already in the taxonomy.
	ErrDuplicateCategory = errors.New("category already exists")

	// ErrDuplicateSubcategory indicates the subcategory already exists in its category.
	ErrDuplicateSubcategory = errors.New("subcategory already exists")

	// ErrUnknownCategory indicates the category is not in the taxonomy.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrUnknownSubcategory indicates the subcategory is not in its category.
	ErrUnknownSubcategory = errors.New("unknown subcategory")

	// Document errors.

	// ErrNoActiveDocument indicates no document is selected by the caller.
	ErrNoActiveDocument = errors.New("no active document")

	// I/O errors.
	// These are logged with the underlying cause and never retried automatically.

	// ErrPersistFailure indicates a write to settings or the vault failed.
	ErrPersistFailure = errors.New("persist failure")

	// ErrExportFailure indicates an export could not be produced.
	ErrExportFailure = errors.New("export failure")

	// ErrSettingsPersistFailure is a failed write of the settings record,
	// the taxonomy included. It matches ErrPersistFailure.
	ErrSettingsPersistFailure = fmt.Errorf("settings: %w", ErrPersistFailure)

	// ErrDocumentWriteFailure is a failed edit of a vault document.
	// It matches ErrPersistFailure.
	ErrDocumentWriteFailure = fmt.Errorf("document: %w", ErrPersistFailure)
)

// IsTaxonomyError reports whether err is one of the taxonomy shape errors.
func IsTaxonomyError(err error) bool {
	return errors.Is(err, ErrDuplicateCategory) ||
		errors.Is(err, ErrDuplicateSubcategory) ||
		errors.Is(err, ErrUnknownCategory) ||
		errors.Is(err, ErrUnknownSubcategory)
}

// IsIOError reports whether err is a persist or export failure.
func IsIOError(err error) bool {
	return errors.Is(err, ErrPersistFailure) || errors.Is(err, ErrExportFailure)
}
