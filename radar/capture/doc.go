// Package capture describes raw radar capture sessions: the geometry of the
// packet and frame layout, the ordered list of capture files that make up a
// session, and the typed errors raised while reading them.
//
// A capture file is a flat sequence of little-endian int16 words. A packet
// is HeaderWords header words followed by NumSamples*NumRx interleaved I/Q
// pairs, and a frame is NumChirps consecutive packets. Files end at
// arbitrary word boundaries, so a frame may span two files.
package capture
