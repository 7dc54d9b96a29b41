// Package doppler implements the two-axis FFT pipeline applied to radar
// cubes: a range FFT along fast-time followed by a Doppler FFT along
// slow-time (or any other axis), with optional static clutter removal,
// windowing, zero-padded interpolation and channel accumulation.
//
// All stages are driven by one [Config]. The named axes of
// [github.com/arvindsr33/mm-radar/radar/cube] make the Doppler stage work on
// full four-axis cubes and on cubes whose fast-time axis has already been
// reduced.
package doppler
