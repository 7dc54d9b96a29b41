// Package cube provides a dense N-dimensional array whose dimensions are
// addressed by name rather than position.
//
// A radar cube has the axes FastTime (samples within a chirp), SlowTime
// (chirps within a frame), Channel (receivers) and Frame. Processing stages
// reduce or resize axes, so an [Array] may carry any subset of them; callers
// refer to [FastTime] or [SlowTime] and never track positional indices.
//
// Data is stored row-major in the order given by [Array.Axes]. [Transform]
// and [Collapse] apply a function to every line along one axis and spread
// the lines across goroutines, each writing a disjoint set of output lines.
package cube
