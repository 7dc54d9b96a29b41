// Package microdoppler accumulates a time-Doppler spectrogram from a stream
// of radar cubes. Every frame contributes one Doppler column, so the image
// grows by exactly the number of frames in each cube, in order.
package microdoppler
