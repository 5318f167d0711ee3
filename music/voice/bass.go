package voice

import (
	"github.com/iamhimateja/vinyl-sub001/dsp/filter/ladder"
)

const (
	bassAttackMs    = 4.0
	bassReleaseMs   = 30.0
	bassDetuneCents = 5.0
	bassOscLevel    = 0.5
	bassSubLevel    = 0.4
	bassCutoffHiHz  = 3200.0
	bassCutoffLoHz  = 180.0
	bassResonance   = 0.55
	bassDrive       = 1.4
)

// Bass is a plucked dual-oscillator voice with a sub an octave down, run
// through a ladder lowpass that sweeps from open to closed over the note.
// Driving genres use saw oscillators, the rest triangle.
type Bass struct {
	velocity float64
	length   int
	attack   int
	release  int
	driving  bool
	stepA    float64
	stepB    float64
	stepSub  float64
	sweepTau float64
	filter   *ladder.Filter
}

// NewBass returns a bass pluck at freq Hz lasting length samples.
func NewBass(sampleRate, freq, velocity float64, length int, driving bool) (*Bass, error) {
	f, err := ladder.New(sampleRate,
		ladder.WithResonance(bassResonance),
		ladder.WithDrive(bassDrive),
	)
	if err != nil {
		return nil, err
	}

	if length < 0 {
		length = 0
	}
	attack, release := fitEnvelope(length,
		msToSamples(sampleRate, bassAttackMs),
		msToSamples(sampleRate, bassReleaseMs))

	return &Bass{
		velocity: clampVelocity(velocity),
		length:   length,
		attack:   attack,
		release:  release,
		driving:  driving,
		stepA:    detuneCents(freq, bassDetuneCents) / sampleRate,
		stepB:    detuneCents(freq, -bassDetuneCents) / sampleRate,
		stepSub:  freq / 2 / sampleRate,
		sweepTau: float64(length) / 3,
		filter:   f,
	}, nil
}

// Sample returns the bass output n samples after its start.
func (b *Bass) Sample(n int) float64 {
	if n < 0 || n >= b.length {
		return 0
	}

	t := float64(n)
	var osc float64
	if b.driving {
		osc = bassOscLevel * (saw(t*b.stepA) + saw(t*b.stepB))
	} else {
		osc = bassOscLevel * (triangle(t*b.stepA) + triangle(t*b.stepB))
	}
	osc += bassSubLevel * sine(t*b.stepSub)

	b.filter.Modulate(bassCutoffLoHz + (bassCutoffHiHz-bassCutoffLoHz)*expDecay(n, b.sweepTau))
	out := b.filter.ProcessSample(osc)

	env := rampUp(n, b.attack) * releaseRamp(n, b.length, b.release)

	return b.velocity * env * out
}

// Done reports whether the envelope has completed.
func (b *Bass) Done(n int) bool { return n >= b.length }
