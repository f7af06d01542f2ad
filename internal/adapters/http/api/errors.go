package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrNoData = errors.New("no data sent")
)
