package capture

import (
	"errors"
	"fmt"
)

// ErrGeometry is returned by [Geometry.Validate] for unusable geometries.
var ErrGeometry = errors.New("capture: invalid geometry")

// FramingError reports a reference header mismatch at an expected packet
// boundary. Offset is in bytes from the start of the combined word stream
// (carryover included) of File.
type FramingError struct {
	File   string
	Offset int64
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("capture: reference header mismatch in %s at byte offset %d", e.File, e.Offset)
}

// Is matches any *FramingError.
func (e *FramingError) Is(target error) bool {
	_, ok := target.(*FramingError)
	return ok
}

// IncompleteSessionError reports a session directory without capture files.
type IncompleteSessionError struct {
	Dir string
}

func (e *IncompleteSessionError) Error() string {
	return fmt.Sprintf("capture: no capture files in %s", e.Dir)
}

// Is matches any *IncompleteSessionError.
func (e *IncompleteSessionError) Is(target error) bool {
	_, ok := target.(*IncompleteSessionError)
	return ok
}

// GeometryMismatchError reports a file whose size cannot match the geometry.
type GeometryMismatchError struct {
	File   string
	Words  int64
	Detail string
}

func (e *GeometryMismatchError) Error() string {
	return fmt.Sprintf("capture: %s (%d words): %s", e.File, e.Words, e.Detail)
}

// Is matches any *GeometryMismatchError.
func (e *GeometryMismatchError) Is(target error) bool {
	_, ok := target.(*GeometryMismatchError)
	return ok
}

// ConfigError reports an ambiguous or inconsistent session configuration.
type ConfigError struct {
	Detail string
}

func (e *ConfigError) Error() string {
	return "capture: " + e.Detail
}

// Is matches any *ConfigError.
func (e *ConfigError) Is(target error) bool {
	_, ok := target.(*ConfigError)
	return ok
}
