package listview

import "errors"

var (
	// ErrInvalidConfiguration indicates a view configuration the engine refuses to evaluate.
	ErrInvalidConfiguration = errors.New("invalid list view configuration")
)
