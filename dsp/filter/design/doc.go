// Package design provides RBJ biquad coefficient designers.
//
// The functions in this package produce coefficients consumable by
// dsp/filter/biquad for runtime processing. The generator uses them for
// the routing tone filter and for shaping noise inside the drum voices.
// Invalid inputs (non-positive sample rate, frequency outside (0, Nyquist))
// yield zero coefficients, which a biquad section treats as silence.
package design
