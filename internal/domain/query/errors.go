package query

import "errors"

// ErrInvalidDirection is returned for direction values other than
// "asc" and "desc".
var ErrInvalidDirection = errors.New("invalid sort direction")
