package music

// Clock reports the scheduler's notion of now, in seconds. The default
// clock follows the engine's sample position so scheduling keeps pace
// with however fast the sink pulls audio, realtime or not.
type Clock interface {
	Now() float64
}

// sampleClock derives time from rendered samples. It is read with the
// generator lock held, so it may touch the engine directly.
type sampleClock struct {
	g *Generator
}

func (c sampleClock) Now() float64 {
	if c.g.engine == nil {
		return 0
	}
	return float64(c.g.engine.Pos()) / c.g.cfg.sampleRate
}

// ManualClock is a Clock advanced by hand. Tests use it to walk the
// scheduler through time deterministically.
type ManualClock struct {
	now float64
}

// Now returns the current manual time in seconds.
func (c *ManualClock) Now() float64 { return c.now }

// Advance moves the clock forward by dt seconds.
func (c *ManualClock) Advance(dt float64) { c.now += dt }
