package store

import "errors"

// ErrNotFound is returned when a record does not exist or is not visible
// to the caller.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when inserting a user whose email is
// already registered.
var ErrDuplicateEmail = errors.New("email already registered")
