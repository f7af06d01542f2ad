package seed

import "errors"

// ErrInvalidSeed is returned when a seed file entry cannot become a
// valid post.
var ErrInvalidSeed = errors.New("invalid seed file")
