// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. The voice and routing
// filters of the generator are all built from single sections.
//
// This package provides the processing runtime only. Coefficient design
// (lowpass, highpass, bandpass) lives in dsp/filter/design.
package biquad
