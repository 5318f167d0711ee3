package reverb

import (
	"errors"
	"fmt"

	"github.com/iamhimateja/vinyl-sub001/dsp/conv"
)

// ConvolutionReverb applies a room impulse response via partitioned
// convolution and mixes the result with the dry signal.
//
// With wet 1 and dry 0 it acts as a pure send effect whose return level is
// set by the caller.
type ConvolutionReverb struct {
	engine  *conv.Partitioned
	wet     float64
	dry     float64
	latency int
	buf     []float64 // scratch output buffer
}

// NewConvolutionReverb creates a convolution reverb from a mono impulse
// response. blockSize must be a power of two and sets the processing latency
// in samples; 128 or 256 suit real-time playback.
func NewConvolutionReverb(kernel []float64, blockSize int) (*ConvolutionReverb, error) {
	if len(kernel) == 0 {
		return nil, errors.New("reverb: empty impulse response kernel")
	}

	engine, err := conv.NewPartitioned(kernel, blockSize)
	if err != nil {
		return nil, fmt.Errorf("reverb: failed to create convolution engine: %w", err)
	}

	return &ConvolutionReverb{
		engine:  engine,
		wet:     1.0,
		dry:     1.0,
		latency: engine.Latency(),
	}, nil
}

// SetWetDry sets the wet and dry mix levels.
// wet controls the convolution reverb send level.
// dry controls the pass-through level of the original signal.
func (r *ConvolutionReverb) SetWetDry(wet, dry float64) {
	r.wet = wet
	r.dry = dry
}

// Wet returns the wet mix level.
func (r *ConvolutionReverb) Wet() float64 { return r.wet }

// Dry returns the dry mix level.
func (r *ConvolutionReverb) Dry() float64 { return r.dry }

// ProcessInPlace applies reverb to block in place (mono).
// The output is: block[i] = dry*block[i] + wet*reverb(block[i]).
// The block length may vary between calls.
func (r *ConvolutionReverb) ProcessInPlace(block []float64) error {
	n := len(block)
	if n == 0 {
		return nil
	}

	if len(r.buf) < n {
		r.buf = make([]float64, n)
	}

	reverbOut := r.buf[:n]

	err := r.engine.ProcessBlock(reverbOut, block)
	if err != nil {
		return fmt.Errorf("reverb: convolution engine: %w", err)
	}

	wet := r.wet
	dry := r.dry

	for i := range n {
		block[i] = dry*block[i] + wet*reverbOut[i]
	}

	return nil
}

// Reset clears convolution state.
func (r *ConvolutionReverb) Reset() {
	r.engine.Reset()
}

// Latency returns the reverb latency in samples.
func (r *ConvolutionReverb) Latency() int {
	return r.latency
}
