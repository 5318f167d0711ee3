package voice

import "math"

// Oscillator phases are in cycles; one cycle spans [0, 1). The shapes are
// naive rather than band-limited, which suits the low registers and heavy
// downstream filtering these voices run through.

func sine(phase float64) float64 {
	return math.Sin(2 * math.Pi * phase)
}

func saw(phase float64) float64 {
	t := phase - math.Floor(phase)
	return 2*t - 1
}

func square(phase float64) float64 {
	if t := phase - math.Floor(phase); t < 0.5 {
		return 1
	}
	return -1
}

// triangle starts at zero and peaks a quarter cycle in, so percussive
// envelopes can open on it without a step.
func triangle(phase float64) float64 {
	return math.Asin(math.Sin(2*math.Pi*phase)) * (2 / math.Pi)
}

// detuneCents shifts a frequency by the given number of cents.
func detuneCents(freq, cents float64) float64 {
	return freq * math.Exp2(cents/1200)
}
