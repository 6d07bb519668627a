package driver

import "errors"

var (
	// ErrDriverNotFound indicates the driver doesn't exist.
	ErrDriverNotFound = errors.New("driver not found")
)
