package voice

import (
	"math"
	"testing"

	"github.com/iamhimateja/vinyl-sub001/music/genre"
)

func TestOscillatorShapes(t *testing.T) {
	tests := []struct {
		name  string
		osc   func(float64) float64
		phase float64
		want  float64
	}{
		{"sine at 0", sine, 0, 0},
		{"sine quarter", sine, 0.25, 1},
		{"saw at 0", saw, 0, -1},
		{"saw half", saw, 0.5, 0},
		{"saw three quarters", saw, 0.75, 0.5},
		{"square high", square, 0.1, 1},
		{"square low", square, 0.6, -1},
		{"triangle at 0", triangle, 0, 0},
		{"triangle peak", triangle, 0.25, 1},
		{"triangle trough", triangle, 0.75, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.osc(tt.phase); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("osc(%g) = %g, want %g", tt.phase, got, tt.want)
			}
		})
	}
}

func TestOscillatorsPeriodic(t *testing.T) {
	for _, osc := range []func(float64) float64{sine, saw, square, triangle} {
		for _, phase := range []float64{0.1, 0.37, 0.9} {
			if a, b := osc(phase), osc(phase+3); math.Abs(a-b) > 1e-9 {
				t.Errorf("osc(%g) = %g but osc(%g) = %g", phase, a, phase+3, b)
			}
		}
	}
}

func TestDetuneCents(t *testing.T) {
	tests := []struct {
		freq  float64
		cents float64
		want  float64
	}{
		{440, 0, 440},
		{440, 1200, 880},
		{440, -1200, 220},
	}
	for _, tt := range tests {
		if got := detuneCents(tt.freq, tt.cents); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("detuneCents(%g, %g) = %g, want %g", tt.freq, tt.cents, got, tt.want)
		}
	}
}

func TestClampVelocity(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.75, 0.75},
		{1.5, 1},
		{-0.2, 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := clampVelocity(tt.in); got != tt.want {
			t.Errorf("clampVelocity(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}
}

func TestEnvelopeHelpers(t *testing.T) {
	if got := rampUp(0, 10); got != 0 {
		t.Errorf("rampUp(0, 10) = %g, want 0", got)
	}
	if got := rampUp(5, 10); got != 0.5 {
		t.Errorf("rampUp(5, 10) = %g, want 0.5", got)
	}
	if got := rampUp(10, 10); got != 1 {
		t.Errorf("rampUp(10, 10) = %g, want 1", got)
	}
	if got := rampUp(3, 0); got != 1 {
		t.Errorf("rampUp with no attack = %g, want 1", got)
	}

	if got := expDecay(0, 100); got != 1 {
		t.Errorf("expDecay(0, 100) = %g, want 1", got)
	}
	if got := expDecay(100, 100); math.Abs(got-1/math.E) > 1e-12 {
		t.Errorf("expDecay(100, 100) = %g, want 1/e", got)
	}
	if got := expDecay(5, 0); got != 0 {
		t.Errorf("expDecay with zero tau = %g, want 0", got)
	}

	if got := releaseRamp(90, 100, 20); got != 0.5 {
		t.Errorf("releaseRamp(90, 100, 20) = %g, want 0.5", got)
	}
	if got := releaseRamp(10, 100, 20); got != 1 {
		t.Errorf("releaseRamp before the tail = %g, want 1", got)
	}
}

func TestFitEnvelope(t *testing.T) {
	attack, release := fitEnvelope(100, 80, 80)
	if attack != 50 || release != 50 {
		t.Errorf("fitEnvelope(100, 80, 80) = %d, %d, want 50, 50", attack, release)
	}

	attack, release = fitEnvelope(1000, 10, 20)
	if attack != 10 || release != 20 {
		t.Errorf("fitEnvelope(1000, 10, 20) = %d, %d, want unchanged", attack, release)
	}
}

func TestVoiceLifecycle(t *testing.T) {
	const rate = 44100.0

	bass, err := NewBass(rate, 55, 1, 4410, true)
	if err != nil {
		t.Fatalf("NewBass: %v", err)
	}

	tests := []struct {
		name string
		v    Voice
	}{
		{"kick", NewKick(rate, 1)},
		{"snare", NewSnare(rate, 1, genre.NewRand(3))},
		{"clap", NewClap(rate, 1, genre.NewRand(3))},
		{"closed hat", NewClosedHat(rate, 1, genre.NewRand(3))},
		{"open hat", NewOpenHat(rate, 1, genre.NewRand(3))},
		{"perc", NewPerc(rate, 1, genre.NewRand(3))},
		{"crackle", NewCrackle(rate, 1, genre.NewRand(3))},
		{"bass", bass},
		{"pad", NewPad(rate, 1, []float64{110, 138.59, 164.81}, 4410, 1, genre.NewRand(3))},
		{"lead", NewLead(rate, 440, 1, 4410, true, genre.NewRand(3))},
		{"arp", NewArp(rate, 440, 1, 4410)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.v.Done(0) {
				t.Fatal("done before the first sample")
			}
			if got := tt.v.Sample(-1); got != 0 {
				t.Errorf("Sample(-1) = %g, want 0", got)
			}
			if s := tt.v.Sample(0); math.IsNaN(s) || math.IsInf(s, 0) {
				t.Fatalf("Sample(0) = %g", s)
			}
			if !tt.v.Done(1 << 30) {
				t.Error("not done long after the envelope length")
			}
			if got := tt.v.Sample(1 << 30); got != 0 {
				t.Errorf("Sample past the end = %g, want 0", got)
			}
		})
	}
}

func TestVelocityScalesOutput(t *testing.T) {
	full := NewKick(44100, 1)
	half := NewKick(44100, 0.5)
	for n := range 512 {
		f, h := full.Sample(n), half.Sample(n)
		if math.Abs(f-2*h) > 1e-12 {
			t.Fatalf("sample %d: velocity 1 gives %g, velocity 0.5 gives %g", n, f, h)
		}
	}

	mute := NewKick(44100, -2)
	for n := range 512 {
		if got := mute.Sample(n); got != 0 {
			t.Fatalf("sample %d: negative velocity output %g, want 0", n, got)
		}
	}
}
