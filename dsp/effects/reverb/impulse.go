package reverb

import (
	"fmt"
	"math"
	"math/rand"
)

const (
	// DefaultIRSeconds is the tail length used by the render graph.
	DefaultIRSeconds = 2.5

	minIRSeconds = 0.05
	maxIRSeconds = 10.0

	// irDecayDB is the attenuation reached at the end of the tail.
	irDecayDB = 60.0
)

// SyntheticIR generates a mono room impulse response: white noise under an
// exponential envelope that falls 60 dB over the requested duration, then
// normalized to unit energy so the send level is independent of tail length
// and sample rate.
//
// The same seed always yields the same impulse response.
func SyntheticIR(sampleRate, seconds float64, seed int64) ([]float64, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("reverb: sample rate must be positive and finite: %f", sampleRate)
	}
	if seconds < minIRSeconds || seconds > maxIRSeconds ||
		math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return nil, fmt.Errorf("reverb: impulse response length must be in [%g, %g]: %f",
			minIRSeconds, maxIRSeconds, seconds)
	}

	n := int(math.Round(seconds * sampleRate))
	if n < 1 {
		n = 1
	}

	// 60 dB amplitude decay: exp(-t*rate) with rate = ln(1000)/seconds.
	decayRate := math.Log(1000) / seconds

	rng := rand.New(rand.NewSource(seed))
	ir := make([]float64, n)

	var energy float64
	for i := range ir {
		t := float64(i) / sampleRate
		sample := (rng.Float64()*2 - 1) * math.Exp(-t*decayRate)
		ir[i] = sample
		energy += sample * sample
	}

	if energy > 0 {
		scale := 1 / math.Sqrt(energy)
		for i := range ir {
			ir[i] *= scale
		}
	}

	return ir, nil
}
