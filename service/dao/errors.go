package dao

import "errors"

// Sentinel errors shared by every store, test with errors.Is.
var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("dao: not found")

	// ErrInvalidID is returned for a key that cannot address an entity, for
	// reports any quantum below 1.
	ErrInvalidID = errors.New("dao: invalid id")

	// ErrNilEntity is returned when saving a nil pointer.
	ErrNilEntity = errors.New("dao: nil entity")
)
