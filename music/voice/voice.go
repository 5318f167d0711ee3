package voice

import (
	"math"

	"github.com/iamhimateja/vinyl-sub001/music/genre"
)

// Voice is a short-lived mono sample generator. n counts samples since the
// voice started. The mixer calls Sample once per successive n, so a voice
// may advance oscillator phase and filter state on each call. Done reports
// whether the envelope has finished by sample n; finished voices are
// dropped by the mixer.
type Voice interface {
	Sample(n int) float64
	Done(n int) bool
}

// clampVelocity limits a trigger velocity to [0, 1]. NaN becomes 0.
func clampVelocity(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return min(v, 1)
}

// msToSamples converts a duration in milliseconds to whole samples.
func msToSamples(sampleRate, ms float64) int {
	return int(sampleRate * ms / 1000)
}

// rampUp is a linear attack from 0 at n=0 to 1 at n=attack.
func rampUp(n, attack int) float64 {
	if attack <= 0 || n >= attack {
		return 1
	}
	if n < 0 {
		return 0
	}
	return float64(n) / float64(attack)
}

// expDecay is exp(-n/tau) with tau in samples.
func expDecay(n int, tau float64) float64 {
	if tau <= 0 {
		return 0
	}
	return math.Exp(-float64(n) / tau)
}

// releaseRamp fades linearly to zero over the last release samples of a
// length-sample envelope.
func releaseRamp(n, length, release int) float64 {
	if release <= 0 {
		return 1
	}
	rem := length - n
	if rem >= release {
		return 1
	}
	if rem <= 0 {
		return 0
	}
	return float64(rem) / float64(release)
}

// fitEnvelope shrinks attack and release so both fit inside length.
func fitEnvelope(length, attack, release int) (int, int) {
	if attack > length/2 {
		attack = length / 2
	}
	if release > length-attack {
		release = length - attack
	}
	return attack, release
}

// ensureRand substitutes a fixed-seed generator when rng is nil.
func ensureRand(rng *genre.Rand) *genre.Rand {
	if rng == nil {
		return genre.NewRand(1)
	}
	return rng
}
