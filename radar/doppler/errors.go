package doppler

import "errors"

var (
	// ErrConfig is returned by [Config.Validate].
	ErrConfig = errors.New("doppler: invalid config")
	// ErrReduceMode is returned for unknown [ReduceMode] values.
	ErrReduceMode = errors.New("doppler: unknown reduce mode")
)
