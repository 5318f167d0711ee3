package voice

import (
	"github.com/iamhimateja/vinyl-sub001/music/genre"
)

const (
	padAttackMs  = 350.0
	padReleaseMs = 500.0
	padDetune    = 0.004
)

// Pad sustains a detuned saw pair per chord tone for about a bar. Each
// oscillator starts at a random phase so chords do not flange identically
// on every retrigger. stretch scales attack and release; Ambient passes
// roughly double.
type Pad struct {
	velocity float64
	length   int
	attack   int
	release  int
	norm     float64
	steps    []float64
	phases   []float64
}

// NewPad returns a pad chord over the tone frequencies freqs lasting
// length samples.
func NewPad(sampleRate, velocity float64, freqs []float64, length int, stretch float64, rng *genre.Rand) *Pad {
	rng = ensureRand(rng)
	if stretch < 1 {
		stretch = 1
	}
	if length < 0 {
		length = 0
	}

	attack, release := fitEnvelope(length,
		msToSamples(sampleRate, padAttackMs*stretch),
		msToSamples(sampleRate, padReleaseMs*stretch))

	steps := make([]float64, 0, 2*len(freqs))
	phases := make([]float64, 0, 2*len(freqs))
	for _, f := range freqs {
		steps = append(steps, f*(1+padDetune)/sampleRate, f*(1-padDetune)/sampleRate)
		phases = append(phases, rng.Float64(), rng.Float64())
	}

	norm := 0.0
	if len(steps) > 0 {
		norm = 1 / float64(len(steps))
	}

	return &Pad{
		velocity: clampVelocity(velocity),
		length:   length,
		attack:   attack,
		release:  release,
		norm:     norm,
		steps:    steps,
		phases:   phases,
	}
}

// Sample returns the pad output n samples after its start.
func (p *Pad) Sample(n int) float64 {
	if n < 0 || n >= p.length {
		return 0
	}

	t := float64(n)
	sum := 0.0
	for i, step := range p.steps {
		sum += saw(p.phases[i] + t*step)
	}

	env := rampUp(n, p.attack) * releaseRamp(n, p.length, p.release)

	return p.velocity * env * p.norm * sum
}

// Done reports whether the envelope has completed.
func (p *Pad) Done(n int) bool { return n >= p.length }
