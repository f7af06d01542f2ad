package repository

import "errors"

// ErrNotFound is returned when no post carries the requested id.
var ErrNotFound = errors.New("post not found")
