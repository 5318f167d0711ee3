package effects

import (
	"fmt"
	"math"
)

const (
	defaultDelayTimeSeconds = 0.25
	defaultDelayFeedback    = 0.35
	defaultDelayMix         = 0.25
	maxDelayTimeSeconds     = 2.0
	minDelayTimeSeconds     = 0.001
)

// Delay is a feedback delay with dry/wet mix.
//
// The ring buffer is sized for the maximum delay time at construction, so
// SetTime only moves the read offset. Retuning the delay while audio is
// running keeps the buffered history intact and never allocates, which is
// what a tempo-synced echo needs when the tempo changes mid-playback.
//
// With mix set to 1 the output is the delayed signal only, so the same
// processor works as a wet-only send effect.
type Delay struct {
	sampleRate   float64
	delaySeconds float64
	feedback     float64
	mix          float64

	delaySamples int
	buffer       []float64
	write        int
}

// NewDelay creates a delay with practical defaults. The sample rate is fixed
// for the lifetime of the processor.
func NewDelay(sampleRate float64) (*Delay, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("delay sample rate must be > 0: %f", sampleRate)
	}
	d := &Delay{
		sampleRate: sampleRate,
		feedback:   defaultDelayFeedback,
		mix:        defaultDelayMix,
		buffer:     make([]float64, int(math.Ceil(maxDelayTimeSeconds*sampleRate))+1),
	}
	if err := d.SetTime(defaultDelayTimeSeconds); err != nil {
		return nil, err
	}
	return d, nil
}

// SetTime sets delay time in seconds. Only the read offset changes; buffered
// history is preserved.
func (d *Delay) SetTime(seconds float64) error {
	if seconds < minDelayTimeSeconds || seconds > maxDelayTimeSeconds ||
		math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return fmt.Errorf("delay time must be in [%f, %f]: %f",
			minDelayTimeSeconds, maxDelayTimeSeconds, seconds)
	}
	d.delaySeconds = seconds
	d.delaySamples = int(math.Round(seconds * d.sampleRate))
	if d.delaySamples < 1 {
		d.delaySamples = 1
	}
	if d.delaySamples > len(d.buffer)-1 {
		d.delaySamples = len(d.buffer) - 1
	}
	return nil
}

// SetFeedback sets feedback amount in [0, 0.99].
func (d *Delay) SetFeedback(feedback float64) error {
	if feedback < 0 || feedback > 0.99 || math.IsNaN(feedback) || math.IsInf(feedback, 0) {
		return fmt.Errorf("delay feedback must be in [0, 0.99]: %f", feedback)
	}
	d.feedback = feedback
	return nil
}

// SetMix sets wet amount in [0, 1].
func (d *Delay) SetMix(mix float64) error {
	if mix < 0 || mix > 1 || math.IsNaN(mix) || math.IsInf(mix, 0) {
		return fmt.Errorf("delay mix must be in [0, 1]: %f", mix)
	}
	d.mix = mix
	return nil
}

// Reset clears delay state.
func (d *Delay) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.write = 0
}

// ProcessSample processes one sample.
func (d *Delay) ProcessSample(input float64) float64 {
	read := d.write - d.delaySamples
	if read < 0 {
		read += len(d.buffer)
	}
	delayed := d.buffer[read]

	d.buffer[d.write] = input + delayed*d.feedback
	d.write++
	if d.write >= len(d.buffer) {
		d.write = 0
	}

	return input*(1-d.mix) + delayed*d.mix
}

// ProcessInPlace applies delay to buf in place.
func (d *Delay) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = d.ProcessSample(buf[i])
	}
}

// SampleRate returns sample rate in Hz.
func (d *Delay) SampleRate() float64 { return d.sampleRate }

// Time returns delay time in seconds.
func (d *Delay) Time() float64 { return d.delaySeconds }

// Feedback returns feedback amount in [0, 0.99].
func (d *Delay) Feedback() float64 { return d.feedback }

// Mix returns wet amount in [0, 1].
func (d *Delay) Mix() float64 { return d.mix }

// DelaySamples returns the current delay length in samples.
func (d *Delay) DelaySamples() int { return d.delaySamples }
