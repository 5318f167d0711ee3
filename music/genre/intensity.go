package genre

import "math"

// Intensity maps a bar index to the slow energy curve of the piece: a sine
// with a period of roughly fifty bars plus a small random wobble, clamped
// to [0.2, 1.0]. Pad and lead velocities scale with it so sections swell
// and recede instead of holding one level.
func Intensity(bar int, rng *Rand) float64 {
	v := 0.6 + 0.4*math.Sin(float64(bar)/8)
	if rng != nil {
		v += rng.Range(-0.1, 0.1)
	}
	return min(1.0, max(0.2, v))
}
