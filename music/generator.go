package music

import (
	"fmt"
	"sync"
	"time"

	"github.com/iamhimateja/vinyl-sub001/audio"
	"github.com/iamhimateja/vinyl-sub001/dsp/effects/dynamics"
	"github.com/iamhimateja/vinyl-sub001/music/genre"
	"github.com/iamhimateja/vinyl-sub001/music/graph"
)

const (
	// FrequencyBins is the length of a FrequencyData snapshot.
	FrequencyBins = 128

	// WaveformSamples is the length of a WaveformData snapshot.
	WaveformSamples = 256
)

// Effect names accepted by ToggleEffect and SetEffect.
const (
	EffectReverb = "reverb"
	EffectDelay  = "delay"
	EffectFilter = "filter"
	EffectVinyl  = "vinyl"
)

// EffectsState reports which effect toggles are engaged. Reverb, delay and
// filter move gains in the render graph; vinyl gates the crackle layer and
// is audible only where the genre profile has vinyl character.
type EffectsState struct {
	Reverb bool
	Delay  bool
	Filter bool
	Vinyl  bool
}

// PlaybackPosition locates the scheduler on the step grid.
type PlaybackPosition struct {
	Step    int // 0..15 within the bar
	Bar     int // counts up from zero at Play
	Section int // advances when the patterns re-roll
}

// Generator is the public control surface of the music engine. It owns the
// genre state, the lookahead scheduler and the render graph, and feeds one
// Sink. The zero value is not usable; call [New].
//
// Mutable state sits behind one mutex. Sink start and stop run outside
// that mutex: the sink pulls the render callback from its own goroutine,
// and that callback takes the mutex.
type Generator struct {
	mu  sync.Mutex
	cfg config

	genre   genre.Genre
	profile genre.Profile
	tempo   float64
	effects EffectsState

	rng    *genre.Rand
	engine *graph.Engine
	sink   Sink
	clock  Clock

	seq     sequence
	playing bool
	stop    chan struct{}
}

// New builds an idle Generator. No audio engine or device exists until the
// first Play.
func New(opts ...Option) (*Generator, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	g := &Generator{
		cfg:     cfg,
		genre:   cfg.genre,
		profile: cfg.genre.Profile(),
		tempo:   cfg.genre.Profile().TempoDefault,
		effects: EffectsState{Vinyl: true},
		rng:     genre.NewRand(uint64(cfg.seed)),
		sink:    cfg.sink,
	}
	g.clock = cfg.clock
	if g.clock == nil {
		g.clock = sampleClock{g: g}
	}

	return g, nil
}

// Play starts playback from step 0, bar 0 with a fresh pattern roll. It is
// idempotent while playing. The engine and, without a configured sink, the
// system audio device are built on first use; on failure the Generator
// stays stopped and Play can be retried.
func (g *Generator) Play() error {
	g.mu.Lock()
	if g.playing {
		g.mu.Unlock()
		return nil
	}
	if err := g.ensureEngine(); err != nil {
		g.mu.Unlock()
		return err
	}
	if g.sink == nil {
		dev, err := audio.NewDevice(int(g.cfg.sampleRate))
		if err != nil {
			g.mu.Unlock()
			return err
		}
		g.sink = dev
	}
	g.resetSequence()
	g.pump()
	stop := make(chan struct{})
	g.stop = stop
	g.playing = true
	sink := g.sink
	g.mu.Unlock()

	if err := sink.Start(g.renderBlock); err != nil {
		g.mu.Lock()
		if g.stop == stop {
			close(g.stop)
			g.stop = nil
			g.playing = false
		}
		g.mu.Unlock()
		return err
	}

	go g.drive(stop)

	return nil
}

// Stop halts playback and the driver goroutine. Voices already rendered
// into the sink's buffer play out; nothing new is scheduled. Stop is
// idempotent.
func (g *Generator) Stop() error {
	g.mu.Lock()
	if !g.playing {
		g.mu.Unlock()
		return nil
	}
	g.playing = false
	close(g.stop)
	g.stop = nil
	sink := g.sink
	g.mu.Unlock()

	return sink.Stop()
}

// Close stops playback and releases the engine and sink. Using the
// Generator after Close restarts it from scratch on the next Play.
func (g *Generator) Close() error {
	g.mu.Lock()
	if g.playing {
		g.playing = false
		close(g.stop)
		g.stop = nil
	}
	sink := g.sink
	g.sink = nil
	g.engine = nil
	g.mu.Unlock()

	if sink == nil {
		return nil
	}
	return sink.Close()
}

// SetGenre switches the active genre, resetting the tempo to the genre
// default. If playing, playback stops, switches and restarts with a fresh
// roll. Unknown genres return an error and change nothing.
func (g *Generator) SetGenre(to genre.Genre) error {
	if !to.Valid() {
		return fmt.Errorf("music: unknown genre: %d", to)
	}

	g.mu.Lock()
	wasPlaying := g.playing
	g.mu.Unlock()

	if wasPlaying {
		if err := g.Stop(); err != nil {
			return err
		}
	}

	g.mu.Lock()
	g.genre = to
	g.profile = to.Profile()
	g.tempo = g.profile.TempoDefault
	if g.engine != nil {
		// The genre default tempo is always positive and finite.
		_ = g.engine.SetTempo(g.tempo)
	}
	g.mu.Unlock()

	if wasPlaying {
		return g.Play()
	}
	return nil
}

// SetTempo clamps bpm into the active genre's range, applies it and
// returns the value in effect. The delay retunes to stay locked to the
// beat; steps already scheduled keep their fire times.
func (g *Generator) SetTempo(bpm float64) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.tempo = g.genre.ClampTempo(bpm)
	if g.engine != nil {
		// The clamped tempo is always positive and finite.
		_ = g.engine.SetTempo(g.tempo)
	}
	return g.tempo
}

// ToggleEffect flips the named effect. Unknown names return an error.
func (g *Generator) ToggleEffect(name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	flag, err := g.effectFlag(name)
	if err != nil {
		return err
	}
	*flag = !*flag
	g.applyEffects()
	return nil
}

// SetEffect sets the named effect to an explicit state. Unknown names
// return an error.
func (g *Generator) SetEffect(name string, on bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	flag, err := g.effectFlag(name)
	if err != nil {
		return err
	}
	*flag = on
	g.applyEffects()
	return nil
}

func (g *Generator) effectFlag(name string) (*bool, error) {
	switch name {
	case EffectReverb:
		return &g.effects.Reverb, nil
	case EffectDelay:
		return &g.effects.Delay, nil
	case EffectFilter:
		return &g.effects.Filter, nil
	case EffectVinyl:
		return &g.effects.Vinyl, nil
	}
	return nil, fmt.Errorf("music: unknown effect %q", name)
}

// applyEffects pushes the toggle state into the engine. The vinyl toggle
// is read by the scheduler instead. Callers hold g.mu.
func (g *Generator) applyEffects() {
	if g.engine == nil {
		return
	}
	g.engine.SetReverb(g.effects.Reverb)
	g.engine.SetDelay(g.effects.Delay)
	g.engine.SetFilter(g.effects.Filter)
}

// ensureEngine builds the render graph on first use and resets it on
// replays. Callers hold g.mu.
func (g *Generator) ensureEngine() error {
	if g.engine == nil {
		e, err := graph.New(g.cfg.sampleRate, g.tempo, g.cfg.seed)
		if err != nil {
			return err
		}
		g.engine = e
	} else {
		g.engine.Reset()
	}
	g.applyEffects()
	return nil
}

// renderBlock fills dst with the next block of mono samples. The sink
// calls it from its own goroutine; while stopped it yields silence.
func (g *Generator) renderBlock(dst []float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.playing || g.engine == nil {
		clear(dst)
		return
	}

	// Top up the schedule before rendering; the wall-clock driver alone
	// cannot keep pace when the sink pulls faster than real time.
	g.pump()
	g.engine.Render(dst)
}

// drive wakes on the tick interval and keeps the lookahead window filled
// while nothing is pulling audio. It exits when stop closes.
func (g *Generator) drive(stop chan struct{}) {
	ticker := time.NewTicker(g.cfg.tick)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			g.mu.Lock()
			if g.playing && g.stop == stop {
				g.pump()
			}
			g.mu.Unlock()
		}
	}
}

// Genre returns the active genre.
func (g *Generator) Genre() genre.Genre {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.genre
}

// Tempo returns the tempo in effect, in BPM.
func (g *Generator) Tempo() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.tempo
}

// Playing reports whether the Generator is in the playing state.
func (g *Generator) Playing() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.playing
}

// Effects returns the current toggle state.
func (g *Generator) Effects() EffectsState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.effects
}

// Position returns the scheduler's place on the step grid: the next slot
// it will fill, which leads the audible position by at most the lookahead
// window. Before the first Play all fields are zero.
func (g *Generator) Position() PlaybackPosition {
	g.mu.Lock()
	defer g.mu.Unlock()
	return PlaybackPosition{Step: g.seq.step, Bar: g.seq.bar, Section: g.seq.section}
}

// FrequencyData returns a 128-bin spectrum snapshot of recent output, each
// bin in [0, 1]. Before any audio has rendered, all bins are zero.
func (g *Generator) FrequencyData() []float64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]float64, FrequencyBins)
	if g.engine != nil {
		g.engine.FrequencyData(out)
	}
	return out
}

// WaveformData returns the last 256 output samples in [-1, 1]. Before any
// audio has rendered, all samples are zero.
func (g *Generator) WaveformData() []float64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]float64, WaveformSamples)
	if g.engine != nil {
		g.engine.WaveformData(out)
	}
	return out
}

// Metrics returns the master compressor's running metrics.
func (g *Generator) Metrics() dynamics.CompressorMetrics {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.engine == nil {
		return dynamics.CompressorMetrics{}
	}
	return g.engine.Metrics()
}
