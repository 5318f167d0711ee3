package voice

import (
	"math"

	"github.com/iamhimateja/vinyl-sub001/dsp/filter/biquad"
	"github.com/iamhimateja/vinyl-sub001/dsp/filter/design"
	"github.com/iamhimateja/vinyl-sub001/music/genre"
)

// Drum recipe constants. Durations and time constants are in milliseconds,
// frequencies in Hz.
const (
	kickLengthMs   = 120.0
	kickDecayMs    = 45.0
	kickStartHz    = 150.0
	kickEndHz      = 35.0
	kickClickMs    = 3.0
	kickClickHz    = 1100.0
	kickClickLevel = 0.35

	snareLengthMs  = 200.0
	snareNoiseHz   = 2500.0
	snareNoiseMs   = 55.0
	snareBodyHz    = 185.0
	snareBodyMs    = 30.0
	snareBodyLevel = 0.6

	clapLengthMs = 260.0
	clapFilterHz = 1100.0
	clapSpreadMs = 10.0
	clapBurstMs  = 18.0
	clapTailMs   = 90.0
	clapBursts   = 3

	hatFilterHz = 6200.0
	closedHatMs = 55.0
	openHatMs   = 250.0

	percLengthMs = 90.0
	percAttackMs = 2.0
	percMinHz    = 600.0
	percMaxHz    = 1000.0

	crackleLengthMs = 30.0
	crackleMinHz    = 1600.0
	crackleMaxHz    = 3800.0
	crackleQ        = 2.2
)

// Kick is a sine drum whose pitch falls exponentially from kickStartHz to
// kickEndHz, with a short square click on the transient.
type Kick struct {
	sampleRate float64
	velocity   float64
	length     int
	clickLen   int
	decayTau   float64
	phase      float64
}

// NewKick returns a kick hit at the given velocity.
func NewKick(sampleRate, velocity float64) *Kick {
	return &Kick{
		sampleRate: sampleRate,
		velocity:   clampVelocity(velocity),
		length:     msToSamples(sampleRate, kickLengthMs),
		clickLen:   msToSamples(sampleRate, kickClickMs),
		decayTau:   sampleRate * kickDecayMs / 1000,
	}
}

// Sample returns the kick output n samples after its start.
func (k *Kick) Sample(n int) float64 {
	if n < 0 || n >= k.length {
		return 0
	}

	progress := float64(n) / float64(k.length)
	freq := kickStartHz * math.Pow(kickEndHz/kickStartHz, progress)
	k.phase += freq / k.sampleRate

	out := sine(k.phase) * expDecay(n, k.decayTau)
	if n < k.clickLen {
		fade := 1 - float64(n)/float64(k.clickLen)
		out += kickClickLevel * fade * square(kickClickHz*float64(n)/k.sampleRate)
	}

	return k.velocity * out
}

// Done reports whether the envelope has completed.
func (k *Kick) Done(n int) bool { return n >= k.length }

// Snare layers a highpassed noise burst over a low triangle body.
type Snare struct {
	velocity float64
	length   int
	noiseTau float64
	bodyTau  float64
	bodyStep float64
	noise    *biquad.Section
	rng      *genre.Rand
}

// NewSnare returns a snare hit. rng drives the noise burst; nil selects a
// fixed seed.
func NewSnare(sampleRate, velocity float64, rng *genre.Rand) *Snare {
	return &Snare{
		velocity: clampVelocity(velocity),
		length:   msToSamples(sampleRate, snareLengthMs),
		noiseTau: sampleRate * snareNoiseMs / 1000,
		bodyTau:  sampleRate * snareBodyMs / 1000,
		bodyStep: snareBodyHz / sampleRate,
		noise:    biquad.NewSection(design.Highpass(snareNoiseHz, 0, sampleRate)),
		rng:      ensureRand(rng),
	}
}

// Sample returns the snare output n samples after its start.
func (s *Snare) Sample(n int) float64 {
	if n < 0 || n >= s.length {
		return 0
	}

	noise := s.noise.ProcessSample(s.rng.Range(-1, 1)) * expDecay(n, s.noiseTau)
	body := triangle(float64(n)*s.bodyStep) * expDecay(n, s.bodyTau)

	return s.velocity * (noise + snareBodyLevel*body)
}

// Done reports whether the envelope has completed.
func (s *Snare) Done(n int) bool { return n >= s.length }

// Clap fires clapBursts highpassed noise bursts clapSpreadMs apart, each
// decaying fast except the last, which carries the tail.
type Clap struct {
	velocity float64
	length   int
	spread   int
	burstTau float64
	tailTau  float64
	noise    *biquad.Section
	rng      *genre.Rand
}

// NewClap returns a clap hit. rng drives the noise bursts; nil selects a
// fixed seed.
func NewClap(sampleRate, velocity float64, rng *genre.Rand) *Clap {
	return &Clap{
		velocity: clampVelocity(velocity),
		length:   msToSamples(sampleRate, clapLengthMs),
		spread:   msToSamples(sampleRate, clapSpreadMs),
		burstTau: sampleRate * clapBurstMs / 1000,
		tailTau:  sampleRate * clapTailMs / 1000,
		noise:    biquad.NewSection(design.Highpass(clapFilterHz, 0, sampleRate)),
		rng:      ensureRand(rng),
	}
}

// Sample returns the clap output n samples after its start.
func (c *Clap) Sample(n int) float64 {
	if n < 0 || n >= c.length {
		return 0
	}

	env := 0.0
	for i := range clapBursts {
		off := n - i*c.spread
		if off < 0 {
			break
		}
		tau := c.burstTau
		if i == clapBursts-1 {
			tau = c.tailTau
		}
		env += expDecay(off, tau)
	}
	env = min(env, 1)

	return c.velocity * env * c.noise.ProcessSample(c.rng.Range(-1, 1))
}

// Done reports whether the envelope has completed.
func (c *Clap) Done(n int) bool { return n >= c.length }

// Hat is a highpassed noise hit. Closed hats choke quickly, open hats ring
// for about a quarter second.
type Hat struct {
	velocity float64
	length   int
	tau      float64
	noise    *biquad.Section
	rng      *genre.Rand
}

// NewClosedHat returns a short choked hat.
func NewClosedHat(sampleRate, velocity float64, rng *genre.Rand) *Hat {
	return newHat(sampleRate, velocity, closedHatMs, rng)
}

// NewOpenHat returns a ringing open hat.
func NewOpenHat(sampleRate, velocity float64, rng *genre.Rand) *Hat {
	return newHat(sampleRate, velocity, openHatMs, rng)
}

func newHat(sampleRate, velocity, lengthMs float64, rng *genre.Rand) *Hat {
	length := msToSamples(sampleRate, lengthMs)
	return &Hat{
		velocity: clampVelocity(velocity),
		length:   length,
		tau:      float64(length) / 4,
		noise:    biquad.NewSection(design.Highpass(hatFilterHz, 0, sampleRate)),
		rng:      ensureRand(rng),
	}
}

// Sample returns the hat output n samples after its start.
func (h *Hat) Sample(n int) float64 {
	if n < 0 || n >= h.length {
		return 0
	}
	return h.velocity * h.noise.ProcessSample(h.rng.Range(-1, 1)) * expDecay(n, h.tau)
}

// Done reports whether the envelope has completed.
func (h *Hat) Done(n int) bool { return n >= h.length }

// Perc is a short triangle blip pitched randomly between percMinHz and
// percMaxHz.
type Perc struct {
	velocity float64
	length   int
	attack   int
	tau      float64
	step     float64
}

// NewPerc returns a percussion blip. rng picks the pitch; nil selects a
// fixed seed.
func NewPerc(sampleRate, velocity float64, rng *genre.Rand) *Perc {
	length := msToSamples(sampleRate, percLengthMs)
	return &Perc{
		velocity: clampVelocity(velocity),
		length:   length,
		attack:   msToSamples(sampleRate, percAttackMs),
		tau:      float64(length) / 4,
		step:     ensureRand(rng).Range(percMinHz, percMaxHz) / sampleRate,
	}
}

// Sample returns the percussion output n samples after its start.
func (p *Perc) Sample(n int) float64 {
	if n < 0 || n >= p.length {
		return 0
	}
	return p.velocity * triangle(float64(n)*p.step) * rampUp(n, p.attack) * expDecay(n, p.tau)
}

// Done reports whether the envelope has completed.
func (p *Perc) Done(n int) bool { return n >= p.length }

// Crackle is a single dust tick of bandpassed noise for the vinyl layer.
// Its center frequency is drawn per tick so the surface noise never cycles.
type Crackle struct {
	velocity float64
	length   int
	tau      float64
	noise    *biquad.Section
	rng      *genre.Rand
}

// NewCrackle returns one crackle tick. rng picks the band and drives the
// noise; nil selects a fixed seed.
func NewCrackle(sampleRate, velocity float64, rng *genre.Rand) *Crackle {
	rng = ensureRand(rng)
	length := msToSamples(sampleRate, crackleLengthMs)
	center := rng.Range(crackleMinHz, crackleMaxHz)

	return &Crackle{
		velocity: clampVelocity(velocity),
		length:   length,
		tau:      float64(length) / 3,
		noise:    biquad.NewSection(design.Bandpass(center, crackleQ, sampleRate)),
		rng:      rng,
	}
}

// Sample returns the crackle output n samples after its start.
func (c *Crackle) Sample(n int) float64 {
	if n < 0 || n >= c.length {
		return 0
	}
	return c.velocity * c.noise.ProcessSample(c.rng.Range(-1, 1)) * expDecay(n, c.tau)
}

// Done reports whether the envelope has completed.
func (c *Crackle) Done(n int) bool { return n >= c.length }
