// Package graph wires the fixed mono render chain: scheduled voices feed a
// tone lowpass, split into dry, reverb and delay sends, then pass through
// bus compression, master gain and the spectrum tap.
//
// Effect switches only move send gains and the tone cutoff. The topology is
// built once, so switching an effect off lets its tail ring out instead of
// cutting it.
package graph
