package voice

import (
	"github.com/iamhimateja/vinyl-sub001/music/genre"
)

const (
	leadAttackMs    = 8.0
	leadDetuneCents = 4.0

	arpAttackMs = 2.0
)

// Lead plays one melody note with a short attack and an exponential
// release. Calm genres use a sine, the rest a saw, and every note is
// detuned by up to ±leadDetuneCents so repeats drift like a loose player.
type Lead struct {
	velocity float64
	length   int
	attack   int
	tau      float64
	step     float64
	calm     bool
}

// NewLead returns a lead note at freq Hz lasting length samples. rng
// draws the detune; nil selects a fixed seed.
func NewLead(sampleRate, freq, velocity float64, length int, calm bool, rng *genre.Rand) *Lead {
	if length < 0 {
		length = 0
	}
	attack := msToSamples(sampleRate, leadAttackMs)
	if attack > length/2 {
		attack = length / 2
	}
	cents := ensureRand(rng).Range(-leadDetuneCents, leadDetuneCents)

	return &Lead{
		velocity: clampVelocity(velocity),
		length:   length,
		attack:   attack,
		tau:      float64(length) / 4,
		step:     detuneCents(freq, cents) / sampleRate,
		calm:     calm,
	}
}

// Sample returns the lead output n samples after its start.
func (l *Lead) Sample(n int) float64 {
	if n < 0 || n >= l.length {
		return 0
	}

	osc := saw(float64(n) * l.step)
	if l.calm {
		osc = sine(float64(n) * l.step)
	}

	return l.velocity * osc * rampUp(n, l.attack) * expDecay(n, l.tau)
}

// Done reports whether the envelope has completed.
func (l *Lead) Done(n int) bool { return n >= l.length }

// Arp plays one square arpeggio step with a very fast attack and an
// exponential decay.
type Arp struct {
	velocity float64
	length   int
	attack   int
	tau      float64
	step     float64
}

// NewArp returns an arpeggio note at freq Hz lasting length samples.
func NewArp(sampleRate, freq, velocity float64, length int) *Arp {
	if length < 0 {
		length = 0
	}
	attack := msToSamples(sampleRate, arpAttackMs)
	if attack > length/2 {
		attack = length / 2
	}

	return &Arp{
		velocity: clampVelocity(velocity),
		length:   length,
		attack:   attack,
		tau:      float64(length) / 4,
		step:     freq / sampleRate,
	}
}

// Sample returns the arpeggio output n samples after its start.
func (a *Arp) Sample(n int) float64 {
	if n < 0 || n >= a.length {
		return 0
	}
	return a.velocity * square(float64(n)*a.step) * rampUp(n, a.attack) * expDecay(n, a.tau)
}

// Done reports whether the envelope has completed.
func (a *Arp) Done(n int) bool { return n >= a.length }
