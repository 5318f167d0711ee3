package reverb

import (
	"math"
	"testing"
)

func TestSyntheticIRDeterministic(t *testing.T) {
	a, err := SyntheticIR(48000, 0.5, 42)
	if err != nil {
		t.Fatalf("SyntheticIR() error = %v", err)
	}

	b, err := SyntheticIR(48000, 0.5, 42)
	if err != nil {
		t.Fatalf("SyntheticIR() error = %v", err)
	}

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at sample %d: %g vs %g", i, a[i], b[i])
		}
	}

	c, err := SyntheticIR(48000, 0.5, 43)
	if err != nil {
		t.Fatalf("SyntheticIR() error = %v", err)
	}

	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}

	if same {
		t.Error("different seeds produced identical impulse responses")
	}
}

func TestSyntheticIRLengthAndEnergy(t *testing.T) {
	const (
		sampleRate = 44100.0
		seconds    = 1.5
	)

	ir, err := SyntheticIR(sampleRate, seconds, 7)
	if err != nil {
		t.Fatalf("SyntheticIR() error = %v", err)
	}

	wantLen := int(math.Round(seconds * sampleRate))
	if len(ir) != wantLen {
		t.Errorf("len(ir) = %d, want %d", len(ir), wantLen)
	}

	var energy float64
	for _, v := range ir {
		energy += v * v
	}

	if math.Abs(energy-1) > 1e-9 {
		t.Errorf("total energy = %g, want 1", energy)
	}
}

func TestSyntheticIRDecayProfile(t *testing.T) {
	ir, err := SyntheticIR(48000, 2.5, 1)
	if err != nil {
		t.Fatalf("SyntheticIR() error = %v", err)
	}

	tenth := len(ir) / 10

	rms := func(seg []float64) float64 {
		var sum float64
		for _, v := range seg {
			sum += v * v
		}
		return math.Sqrt(sum / float64(len(seg)))
	}

	head := rms(ir[:tenth])
	tail := rms(ir[len(ir)-tenth:])

	// The envelope falls 60 dB across the tail; the final tenth must sit far
	// below the opening tenth.
	if tail >= head/100 {
		t.Errorf("tail RMS %g not well below head RMS %g", tail, head)
	}
}

func TestSyntheticIRErrors(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
		seconds    float64
	}{
		{"zero sample rate", 0, 2.5},
		{"negative sample rate", -44100, 2.5},
		{"NaN sample rate", math.NaN(), 2.5},
		{"too short", 48000, 0.01},
		{"too long", 48000, 11},
		{"NaN seconds", 48000, math.NaN()},
		{"Inf seconds", 48000, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SyntheticIR(tt.sampleRate, tt.seconds, 0); err == nil {
				t.Errorf("SyntheticIR(%f, %f) expected error", tt.sampleRate, tt.seconds)
			}
		})
	}
}
