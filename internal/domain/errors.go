package domain

import "errors"

// ErrNotFound is returned when a referenced customer, accommodation, package
// or saved snapshot does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input is malformed or out of range
// (e.g. empty name, bad email shape, non-positive days, invalid date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a well-formed request breaks a business rule:
// the accommodation is already booked, the customer already has a package,
// or an extra is already attached.
// Handlers should map this to HTTP 409 Conflict.
var ErrConflict = errors.New("conflict")

// ErrPersistence is returned when a package snapshot cannot be stored,
// read, or decoded. The catalog is never modified when this is returned.
var ErrPersistence = errors.New("persistence error")
