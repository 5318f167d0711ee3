// Package effects provides the send and bus processors of the render graph.
//
// Subpackages:
//   - github.com/iamhimateja/vinyl-sub001/dsp/effects/dynamics
//   - github.com/iamhimateja/vinyl-sub001/dsp/effects/reverb
//
// This package itself holds Delay, the tempo-synced feedback echo used as a
// wet-only send. All processors are designed for real-time use with
// zero-allocation hot paths and support both single-sample and buffer-based
// processing.
package effects
