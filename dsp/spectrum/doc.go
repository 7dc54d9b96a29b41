// Package spectrum converts complex FFT bins into the real-valued quantities
// used by range-Doppler and micro-Doppler maps: magnitude, power and floored
// log magnitude.
//
// The package does not implement an FFT itself; it operates on bins produced
// by [github.com/arvindsr33/mm-radar/dsp/fft].
package spectrum
