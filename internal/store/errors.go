package store

import "errors"

// ErrNotFound is returned by stores when a row does not exist. Services map
// it onto the appropriate NOT_FOUND application error.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a uniqueness constraint is violated, e.g. a
// second membership row for the same user and project or a reused email.
var ErrDuplicate = errors.New("duplicate record")
