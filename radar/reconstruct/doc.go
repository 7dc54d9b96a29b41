// Package reconstruct turns an ordered sequence of raw capture files into
// radar cubes with axes (FastTime, SlowTime, Channel, Frame).
//
// Frames span file boundaries, so a [Reconstructor] keeps the words that did
// not complete a frame and prepends them to the next file. Every combined
// stream is checked against the reference header at the first two packet
// boundaries; a mismatch fails the file with a *capture.FramingError and
// leaves the carryover untouched.
//
// [Stream] drives a Reconstructor over a [capture.Sequence] and returns
// io.EOF after the last file.
package reconstruct
