package models

import "errors"

// Domain error taxonomy. Services and controllers match these with errors.Is;
// every failure is detected before any mutation is applied.
var (
	// ErrNotFound means a referenced entity is absent from its owning collection.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate means a uniqueness invariant (name, bill-per-customer) would break.
	ErrDuplicate = errors.New("duplicate")
	// ErrConflict means an aggregate-wide invariant (single open session) would break.
	ErrConflict = errors.New("conflict")
	// ErrInvalidArgument means a caller-supplied value fails domain validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidState means the operation is not allowed in the current lifecycle state.
	ErrInvalidState = errors.New("invalid state")
)
