package music

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/iamhimateja/vinyl-sub001/audio"
	"github.com/iamhimateja/vinyl-sub001/dsp/effects/dynamics"
	"github.com/iamhimateja/vinyl-sub001/music/genre"
)

func TestNewDefaults(t *testing.T) {
	g, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := g.Genre(); got != genre.Lofi {
		t.Errorf("Genre() = %v, want %v", got, genre.Lofi)
	}
	if got := g.Tempo(); got != 75 {
		t.Errorf("Tempo() = %v, want 75", got)
	}
	if g.Playing() {
		t.Error("Playing() = true before Play")
	}
	if pos := g.Position(); pos != (PlaybackPosition{}) {
		t.Errorf("Position() = %+v, want zero", pos)
	}
	if fx := g.Effects(); fx != (EffectsState{Vinyl: true}) {
		t.Errorf("Effects() = %+v, want vinyl only", fx)
	}
}

func TestOptionValidation(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"zero sample rate", WithSampleRate(0)},
		{"negative sample rate", WithSampleRate(-44100)},
		{"NaN sample rate", WithSampleRate(math.NaN())},
		{"unknown genre", WithGenre(genre.Genre(99))},
		{"zero lookahead", WithLookahead(0)},
		{"zero tick", WithTickInterval(0)},
		{"nil sink", WithSink(nil)},
		{"nil clock", WithClock(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opt); err == nil {
				t.Error("New accepted an invalid option")
			}
		})
	}
}

// TestPlaybackScenario walks the documented session: play lofi from
// silence, watch a full bar of step callbacks wrap into bar 1, clamp an
// out-of-range tempo, then switch genres mid-flight.
func TestPlaybackScenario(t *testing.T) {
	off := audio.NewOffline()
	var steps []PlaybackPosition
	g, err := New(
		WithSink(off),
		WithSeed(1),
		WithTickInterval(time.Hour),
		WithStepCallback(func(step, bar int) {
			steps = append(steps, PlaybackPosition{Step: step, Bar: bar})
		}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := g.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}

	// 80 blocks cover ~3.7 s, past the 3.25 s where bar 1 begins at
	// 75 BPM.
	buf := make([]float64, 2048)
	for range 80 {
		off.Render(buf)
	}

	if len(steps) < 17 {
		t.Fatalf("got %d step callbacks, want at least 17", len(steps))
	}
	for i := range genre.StepCount {
		if steps[i] != (PlaybackPosition{Step: i}) {
			t.Fatalf("callback %d = %+v, want step %d bar 0", i, steps[i], i)
		}
	}
	if steps[genre.StepCount] != (PlaybackPosition{Step: 0, Bar: 1}) {
		t.Fatalf("callback 16 = %+v, want step 0 bar 1", steps[genre.StepCount])
	}

	if got := g.SetTempo(200); got != 90 {
		t.Errorf("SetTempo(200) = %v, want the lofi maximum 90", got)
	}
	if got := g.Tempo(); got != 90 {
		t.Errorf("Tempo() = %v, want 90", got)
	}

	before := len(steps)
	if err := g.SetGenre(genre.Techno); err != nil {
		t.Fatalf("SetGenre: %v", err)
	}
	if got := g.Tempo(); got != 132 {
		t.Errorf("Tempo() after switch = %v, want the techno default 132", got)
	}
	if !g.Playing() {
		t.Error("Playing() = false after a genre switch while playing")
	}
	if len(steps) <= before {
		t.Fatal("no step callback after the genre switch")
	}
	if steps[before] != (PlaybackPosition{}) {
		t.Errorf("first step after switch = %+v, want step 0 bar 0", steps[before])
	}

	if err := g.SetGenre(genre.Genre(42)); err == nil {
		t.Error("SetGenre accepted an unknown genre")
	}
	if got := g.Genre(); got != genre.Techno {
		t.Errorf("Genre() after a rejected switch = %v, want techno", got)
	}

	if err := g.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if g.Playing() {
		t.Error("Playing() = true after Stop")
	}
}

func TestPlayIdempotent(t *testing.T) {
	off := audio.NewOffline()
	var steps []PlaybackPosition
	g, err := New(
		WithSink(off),
		WithSeed(2),
		WithTickInterval(time.Hour),
		WithStepCallback(func(step, bar int) {
			steps = append(steps, PlaybackPosition{Step: step, Bar: bar})
		}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := g.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if err := g.Play(); err != nil {
		t.Fatalf("second Play: %v", err)
	}

	buf := make([]float64, 2048)
	for range 8 {
		off.Render(buf)
	}
	if err := g.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := g.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}

	count := 0
	for _, s := range steps {
		if s == (PlaybackPosition{}) {
			count++
		}
	}
	if count != 1 {
		t.Errorf("step 0 bar 0 scheduled %d times, want once", count)
	}
}

func TestStopPlayResets(t *testing.T) {
	off := audio.NewOffline()
	var steps []PlaybackPosition
	g, err := New(
		WithSink(off),
		WithSeed(3),
		WithTickInterval(time.Hour),
		WithStepCallback(func(step, bar int) {
			steps = append(steps, PlaybackPosition{Step: step, Bar: bar})
		}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := g.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	buf := make([]float64, 2048)
	for range 10 {
		off.Render(buf)
	}
	if err := g.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	for i := range buf {
		buf[i] = 1
	}
	off.Render(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("buf[%d] = %v while stopped, want silence", i, v)
		}
	}
	quiet := len(steps)

	if err := g.Play(); err != nil {
		t.Fatalf("replay: %v", err)
	}
	for range 8 {
		off.Render(buf)
	}
	if err := g.Stop(); err != nil {
		t.Fatalf("Stop after replay: %v", err)
	}

	if len(steps) < quiet+2 {
		t.Fatalf("got %d step callbacks after replay, want at least 2", len(steps)-quiet)
	}
	if steps[quiet] != (PlaybackPosition{}) {
		t.Errorf("replay began at %+v, want step 0 bar 0", steps[quiet])
	}
	if steps[quiet+1] != (PlaybackPosition{Step: 1}) {
		t.Errorf("second replay step = %+v, want step 1 bar 0", steps[quiet+1])
	}
}

func TestAnalysisBeforePlay(t *testing.T) {
	g, err := New(WithSeed(4))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	freq := g.FrequencyData()
	if len(freq) != FrequencyBins {
		t.Fatalf("FrequencyData length = %d, want %d", len(freq), FrequencyBins)
	}
	for i, v := range freq {
		if v != 0 {
			t.Fatalf("freq[%d] = %v before Play, want 0", i, v)
		}
	}

	wave := g.WaveformData()
	if len(wave) != WaveformSamples {
		t.Fatalf("WaveformData length = %d, want %d", len(wave), WaveformSamples)
	}
	for i, v := range wave {
		if v != 0 {
			t.Fatalf("wave[%d] = %v before Play, want 0", i, v)
		}
	}

	if m := g.Metrics(); m != (dynamics.CompressorMetrics{}) {
		t.Errorf("Metrics() = %+v before Play, want zero", m)
	}
}

func TestRenderProducesAudio(t *testing.T) {
	off := audio.NewOffline()
	g, err := New(WithSink(off), WithSeed(13), WithTickInterval(time.Hour))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := g.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}

	buf := make([]float64, 4096)
	peak := 0.0
	for range 20 {
		off.Render(buf)
		for i, v := range buf {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("buf[%d] = %v, want finite output", i, v)
			}
			peak = max(peak, math.Abs(v))
		}
	}
	if err := g.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	if peak == 0 {
		t.Fatal("rendered ~1.9 s of silence while playing")
	}
	if peak > 1.5 {
		t.Errorf("peak = %v, want bounded output", peak)
	}
}

func TestEffectToggles(t *testing.T) {
	g, err := New(WithSeed(5))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	names := []string{EffectReverb, EffectDelay, EffectFilter, EffectVinyl}
	for _, name := range names {
		before := g.Effects()
		if err := g.ToggleEffect(name); err != nil {
			t.Fatalf("ToggleEffect(%q): %v", name, err)
		}
		after := g.Effects()
		if effectOn(after, name) == effectOn(before, name) {
			t.Errorf("ToggleEffect(%q) did not flip the flag", name)
		}
		if err := g.SetEffect(name, effectOn(before, name)); err != nil {
			t.Fatalf("SetEffect(%q): %v", name, err)
		}
		if g.Effects() != before {
			t.Errorf("SetEffect(%q) disturbed other flags: %+v -> %+v", name, before, g.Effects())
		}
	}

	if err := g.ToggleEffect("wah"); err == nil {
		t.Error("ToggleEffect accepted an unknown name")
	}
	if err := g.SetEffect("wah", true); err == nil {
		t.Error("SetEffect accepted an unknown name")
	}
}

func effectOn(fx EffectsState, name string) bool {
	switch name {
	case EffectReverb:
		return fx.Reverb
	case EffectDelay:
		return fx.Delay
	case EffectFilter:
		return fx.Filter
	case EffectVinyl:
		return fx.Vinyl
	}
	return false
}

func TestTempoClampPerGenre(t *testing.T) {
	for _, gn := range genre.Genres() {
		t.Run(gn.String(), func(t *testing.T) {
			g, err := New(WithGenre(gn), WithSeed(6))
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			lo, def, hi := gn.TempoRange()
			if got := g.Tempo(); got != def {
				t.Fatalf("default tempo = %v, want %v", got, def)
			}
			if got := g.SetTempo(lo - 50); got != lo {
				t.Errorf("SetTempo(%v) = %v, want %v", lo-50, got, lo)
			}
			if got := g.SetTempo(hi + 50); got != hi {
				t.Errorf("SetTempo(%v) = %v, want %v", hi+50, got, hi)
			}
			if got := g.SetTempo(math.NaN()); got != def {
				t.Errorf("SetTempo(NaN) = %v, want the default %v", got, def)
			}
			mid := (lo + hi) / 2
			if got := g.SetTempo(mid); got != mid {
				t.Errorf("SetTempo(%v) = %v, want it unchanged", mid, got)
			}
		})
	}
}

func TestSetGenreStopped(t *testing.T) {
	g, err := New(WithSeed(7))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := g.SetGenre(genre.DrumAndBass); err != nil {
		t.Fatalf("SetGenre: %v", err)
	}
	if got := g.Genre(); got != genre.DrumAndBass {
		t.Errorf("Genre() = %v, want drum-and-bass", got)
	}
	if got := g.Tempo(); got != 174 {
		t.Errorf("Tempo() = %v, want 174", got)
	}
	if g.Playing() {
		t.Error("SetGenre started playback")
	}
}

type failingSink struct{ starts int }

func (s *failingSink) Start(func(dst []float64)) error {
	s.starts++
	return errors.New("device busy")
}
func (s *failingSink) Stop() error  { return nil }
func (s *failingSink) Close() error { return nil }

func TestPlayFailureLeavesStopped(t *testing.T) {
	var _ Sink = (*failingSink)(nil) // verify interface

	fs := &failingSink{}
	g, err := New(WithSink(fs), WithSeed(8))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := g.Play(); err == nil {
		t.Fatal("Play succeeded with a failing sink")
	}
	if g.Playing() {
		t.Error("Playing() = true after a failed Play")
	}
	if err := g.Play(); err == nil {
		t.Fatal("retried Play succeeded with a failing sink")
	}
	if fs.starts != 2 {
		t.Errorf("sink started %d times, want 2", fs.starts)
	}
	if g.stop != nil {
		t.Error("stop channel left behind after a failed Play")
	}
}

// TestLookaheadWindow steps a manual clock through the schedule and checks
// that steps are placed only once they enter the lookahead window.
func TestLookaheadWindow(t *testing.T) {
	off := audio.NewOffline()
	clk := &ManualClock{}
	var steps []int
	g, err := New(
		WithSink(off),
		WithSeed(9),
		WithClock(clk),
		WithTickInterval(time.Hour),
		WithStepCallback(func(step, bar int) {
			steps = append(steps, bar*genre.StepCount+step)
		}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := g.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}

	// Lofi at 75 BPM fires a step every 200 ms starting 50 ms after
	// Play; only step 0 fits the 120 ms window.
	if len(steps) != 1 || steps[0] != 0 {
		t.Fatalf("steps after Play = %v, want [0]", steps)
	}

	buf := make([]float64, 64)
	clk.Advance(0.2)
	off.Render(buf)
	if len(steps) != 2 || steps[1] != 1 {
		t.Fatalf("steps after 200 ms = %v, want [0 1]", steps)
	}

	clk.Advance(1.0)
	off.Render(buf)
	if len(steps) != 7 {
		t.Fatalf("got %d steps after 1.2 s, want 7", len(steps))
	}
	for i, s := range steps {
		if s != i {
			t.Fatalf("steps out of order: %v", steps)
		}
	}

	if err := g.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}

func TestSectionReroll(t *testing.T) {
	g, err := New(WithSeed(10))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.resetSequence()

	length := g.seq.sectionLen
	if length < minSectionBars || length >= minSectionBars+sectionBarSpread {
		t.Fatalf("section length = %d, want in [4, 9]", length)
	}

	for range genre.StepCount {
		g.advanceStep()
	}
	if g.seq.bar != 1 || g.seq.section != 0 {
		t.Fatalf("after one bar: bar %d section %d, want bar 1 section 0", g.seq.bar, g.seq.section)
	}
	if g.seq.intensity < 0.2 || g.seq.intensity > 1 {
		t.Errorf("intensity = %v, want within [0.2, 1]", g.seq.intensity)
	}

	for range (length - 1) * genre.StepCount {
		g.advanceStep()
	}
	if g.seq.bar != length || g.seq.section != 1 {
		t.Fatalf("after %d bars: bar %d section %d, want the section to advance", length, g.seq.bar, g.seq.section)
	}
	if l := g.seq.sectionLen; l < minSectionBars || l >= minSectionBars+sectionBarSpread {
		t.Errorf("re-rolled section length = %d, want in [4, 9]", l)
	}
}
