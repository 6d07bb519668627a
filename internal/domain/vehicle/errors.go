package vehicle

import "errors"

var (
	// ErrVehicleNotFound indicates the vehicle doesn't exist.
	ErrVehicleNotFound = errors.New("vehicle not found")
)
