package genre

// Rand is a small deterministic linear congruential generator used for
// pattern draws, humanize jitter and velocity variation. One instance per
// generator keeps the whole piece reproducible from a single seed.
type Rand struct {
	state uint64
}

// NewRand returns a generator seeded with seed.
func NewRand(seed uint64) *Rand {
	r := &Rand{}
	r.Seed(seed)
	return r
}

// Seed resets the generator so the sequence restarts from seed.
func (r *Rand) Seed(seed uint64) {
	r.state = seed
	r.next()
}

func (r *Rand) next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Uint64 returns the next raw generator word, used to seed derived
// streams such as per-voice noise sources.
func (r *Rand) Uint64() uint64 {
	return r.next()
}

// Float64 returns a uniform value in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.next()>>11) / float64(1<<53)
}

// Intn returns a uniform int in [0, n). Non-positive n returns 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Float64() * float64(n))
}

// Range returns a uniform value in [lo, hi).
func (r *Rand) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}
