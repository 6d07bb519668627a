package maintenance

import "errors"

var (
	// ErrRecordNotFound indicates the maintenance record doesn't exist.
	ErrRecordNotFound = errors.New("maintenance record not found")
	// ErrInvalidLimit indicates a non-positive schedule limit.
	ErrInvalidLimit = errors.New("limit must be positive")
)
