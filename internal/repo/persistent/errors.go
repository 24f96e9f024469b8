package persistent

import "errors"

// Sentinel errors returned by the repositories so use cases never have to
// inspect driver-level error values.
var (
	ErrNotFound  = errors.New("record not found")
	ErrTagExists = errors.New("tag already exists")
)
