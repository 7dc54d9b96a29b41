// Package render writes processing results to disk: grayscale PNG frames for
// range-Doppler maps, a micro-Doppler heatmap drawn with gonum/plot and the
// raw spectrogram as CSV.
package render
