// Package spectrum provides magnitude-spectrum helpers and the streaming
// Analyzer that taps the render graph for visualization.
//
// The Analyzer windows a sample ring, runs a small FFT at a fixed hop, and
// exposes smoothed, normalized frequency bins plus the raw time-domain tail,
// matching what spectrum bar and oscilloscope views need.
package spectrum
