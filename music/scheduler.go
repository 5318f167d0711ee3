package music

import (
	"github.com/iamhimateja/vinyl-sub001/music/genre"
	"github.com/iamhimateja/vinyl-sub001/music/voice"
)

const (
	// startLead delays the first step past Play so the opening voices
	// never land behind the clock.
	startLead = 0.05 // seconds

	humanizeMs    = 6.0
	velocityFloor = 0.75

	minSectionBars   = 4
	sectionBarSpread = 6 // section length in [4, 9] bars

	crackleChance = 0.10

	bassGateSteps = 2.0
	leadGateBeats = 0.9
	arpGateSteps  = 1.8

	padRegister  = 12 // semitones above the genre root
	leadRegister = 24
	arpRegister  = 24

	kickGain    = 0.9
	snareGain   = 0.7
	clapGain    = 0.6
	hatGain     = 0.35
	percGain    = 0.5
	bassGain    = 0.8
	padGain     = 0.25
	leadGain    = 0.5
	arpGain     = 0.4
	crackleGain = 0.15
)

// Layer identifies which scheduler layer produced a NoteEvent.
type Layer int

const (
	LayerBass Layer = iota
	LayerLead
	LayerArp
)

func (l Layer) String() string {
	switch l {
	case LayerBass:
		return "bass"
	case LayerLead:
		return "lead"
	case LayerArp:
		return "arp"
	default:
		return "unknown"
	}
}

// NoteEvent describes one scheduled pitched note, before humanization. At
// is in clock seconds (swing included), Note a fractional MIDI note.
type NoteEvent struct {
	At       float64
	Dur      float64
	Note     float64
	Velocity float64
	Layer    Layer
}

// sequence is the scheduler's position on the step grid plus the pattern
// draw for the current section. Owned by whoever holds g.mu.
type sequence struct {
	step       int
	bar        int
	section    int
	sectionLen int
	nextFire   float64 // clock seconds of the next unscheduled step
	sel        genre.Selection
	intensity  float64
}

// resetSequence restarts the grid at step 0, bar 0 with a fresh pattern
// roll. Callers hold g.mu.
func (g *Generator) resetSequence() {
	g.seq.step = 0
	g.seq.bar = 0
	g.seq.section = 0
	g.seq.sectionLen = minSectionBars + g.rng.Intn(sectionBarSpread)
	g.seq.sel = g.genre.Roll(g.rng)
	g.seq.intensity = genre.Intensity(0, g.rng)
	g.seq.nextFire = g.clock.Now() + startLead
}

func (g *Generator) stepDuration() float64 {
	return 60 / g.tempo / 4
}

// pump schedules every step whose fire time falls inside the lookahead
// window. Callers hold g.mu.
func (g *Generator) pump() {
	horizon := g.clock.Now() + g.cfg.lookahead
	for g.seq.nextFire < horizon {
		g.scheduleStep(g.seq.nextFire)
		g.seq.nextFire += g.stepDuration()
		g.advanceStep()
	}
}

// scheduleStep places every voice of the current step into the engine. at
// is the step's grid time in clock seconds; odd steps are pushed late by
// the genre's swing. Callers hold g.mu.
func (g *Generator) scheduleStep(at float64) {
	seq := &g.seq
	step := seq.step
	stepDur := g.stepDuration()

	fire := at
	if step%2 == 1 {
		fire += g.profile.Swing * stepDur
	}

	if g.cfg.onStep != nil {
		g.cfg.onStep(step, seq.bar)
	}

	chord := seq.sel.ChordAt(seq.bar)
	root := g.profile.RootNote
	rate := g.cfg.sampleRate

	if seq.sel.Drums.Kick[step] && g.rng.Float64() < g.profile.DrumFire {
		g.spawn(voice.NewKick(rate, g.jitterVelocity()), fire, kickGain)
	}
	if seq.sel.Drums.Snare[step] && g.rng.Float64() < g.profile.DrumFire {
		vel := g.jitterVelocity()
		if g.profile.ClapBackbeat {
			g.spawn(voice.NewClap(rate, vel, g.noiseRand()), fire, clapGain)
		} else {
			g.spawn(voice.NewSnare(rate, vel, g.noiseRand()), fire, snareGain)
		}
	}
	if seq.sel.Drums.Hat[step] && g.rng.Float64() < g.profile.DrumFire {
		vel := g.jitterVelocity()
		if step%4 == 3 {
			g.spawn(voice.NewOpenHat(rate, vel, g.noiseRand()), fire, hatGain)
		} else {
			g.spawn(voice.NewClosedHat(rate, vel, g.noiseRand()), fire, hatGain)
		}
	}
	if seq.sel.Drums.Perc[step] && g.rng.Float64() < g.profile.DrumFire {
		g.spawn(voice.NewPerc(rate, g.jitterVelocity(), g.rng), fire, percGain)
	}

	if seq.sel.Bass[step] {
		note := float64(root + chord.Tone(0))
		vel := g.jitterVelocity()
		length := int(bassGateSteps * stepDur * rate)
		if b, err := voice.NewBass(rate, genre.NoteHz(note), vel, length, g.profile.DrivingBass); err == nil {
			g.spawn(b, fire, bassGain)
			g.emitNote(LayerBass, fire, bassGateSteps*stepDur, note, vel)
		}
	}

	// Pad: the whole chord, retriggered at the bar start and sustained
	// across the bar.
	if step == 0 {
		freqs := make([]float64, len(chord))
		for i := range chord {
			freqs[i] = genre.NoteHz(float64(root + padRegister + chord[i]))
		}
		vel := g.jitterVelocity() * seq.intensity
		length := int(float64(genre.StepCount) * stepDur * g.profile.PadStretch * rate)
		g.spawn(voice.NewPad(rate, vel, freqs, length, g.profile.PadStretch, g.rng), fire, padGain)
	}

	// Melody walks the contour on quarter-step boundaries.
	if step%4 == 0 && len(seq.sel.Contour) > 0 && g.rng.Float64() < g.profile.MelodyChance {
		slot := (seq.bar*4 + step/4) % len(seq.sel.Contour)
		note := float64(root + leadRegister + seq.sel.Scale.Degree(seq.sel.Contour[slot]))
		vel := g.jitterVelocity() * seq.intensity
		length := int(leadGateBeats * 4 * stepDur * rate)
		g.spawn(voice.NewLead(rate, genre.NoteHz(note), vel, length, g.profile.CalmLead, g.rng), fire, leadGain)
		g.emitNote(LayerLead, fire, leadGateBeats*4*stepDur, note, vel)
	}

	// Arpeggio climbs the chord at half-step resolution.
	if g.profile.Arpeggiated && step%2 == 0 && len(seq.sel.Arp) > 0 {
		slot := (seq.bar*8 + step/2) % len(seq.sel.Arp)
		note := float64(root + arpRegister + chord.Tone(seq.sel.Arp[slot]))
		vel := g.jitterVelocity()
		length := int(arpGateSteps * stepDur * rate)
		g.spawn(voice.NewArp(rate, genre.NoteHz(note), vel, length), fire, arpGain)
		g.emitNote(LayerArp, fire, arpGateSteps*stepDur, note, vel)
	}

	if g.profile.Vinyl && g.effects.Vinyl && g.rng.Float64() < crackleChance {
		g.spawn(voice.NewCrackle(rate, g.jitterVelocity(), g.noiseRand()), fire, crackleGain)
	}
}

// advanceStep moves to the next grid slot, recomputing intensity on bar
// wraps and re-rolling the patterns on section boundaries. Callers hold
// g.mu.
func (g *Generator) advanceStep() {
	seq := &g.seq
	seq.step++
	if seq.step < genre.StepCount {
		return
	}
	seq.step = 0
	seq.bar++
	seq.intensity = genre.Intensity(seq.bar, g.rng)
	if seq.bar%seq.sectionLen == 0 {
		seq.section++
		seq.sectionLen = minSectionBars + g.rng.Intn(sectionBarSpread)
		seq.sel = g.genre.Roll(g.rng)
	}
}

// spawn hands a voice to the engine at the given clock time, humanized by
// a few milliseconds either way.
func (g *Generator) spawn(v voice.Voice, at float64, gain float64) {
	at += g.rng.Range(-humanizeMs, humanizeMs) / 1000
	g.engine.Schedule(v, max(int64(at*g.cfg.sampleRate), 0), gain)
}

func (g *Generator) jitterVelocity() float64 {
	return g.rng.Range(velocityFloor, 1)
}

// noiseRand derives an independent stream for voices that keep drawing
// noise while they sound, so their draw count cannot shift the scheduling
// sequence.
func (g *Generator) noiseRand() *genre.Rand {
	return genre.NewRand(g.rng.Uint64())
}

func (g *Generator) emitNote(layer Layer, at, dur, note, velocity float64) {
	if g.cfg.onNote == nil {
		return
	}
	g.cfg.onNote(NoteEvent{At: at, Dur: dur, Note: note, Velocity: velocity, Layer: layer})
}
