package fft

import "errors"

var (
	// ErrLength is returned for non-positive transform lengths.
	ErrLength = errors.New("fft: length must be positive")
	// ErrSize is returned when dst or src do not match the plan length.
	ErrSize = errors.New("fft: buffer length does not match plan")
)
