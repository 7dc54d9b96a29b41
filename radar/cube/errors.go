package cube

import "errors"

var (
	// ErrShape is returned for invalid or mismatched shapes.
	ErrShape = errors.New("cube: invalid shape")
	// ErrAxis is returned when an axis is missing, duplicated or unknown.
	ErrAxis = errors.New("cube: invalid axis")
	// ErrIndex is returned for out-of-range indices.
	ErrIndex = errors.New("cube: index out of range")
)
