// Package fft provides complex FFT plans sized for radar cube lines.
//
// Plans are backed by algo-fft when it supports the requested length and fall
// back to gonum's mixed-radix transform otherwise, so any positive length
// (for example a 122-point interpolated Doppler axis) can be transformed.
// The inverse transform is normalised by 1/N in both cases.
//
// Package-level [Forward] and [Inverse] draw plans from a per-length pool and
// are safe for concurrent use. A single [Plan] is not.
package fft
