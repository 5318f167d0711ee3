package spectrum

import (
	"math"
	"testing"

	"github.com/iamhimateja/vinyl-sub001/dsp/window"
)

// pushBinSine feeds n samples of a sine centered exactly on FFT bin k.
func pushBinSine(a *Analyzer, amplitude float64, bin, n int) {
	size := float64(a.FFTSize())
	for i := 0; i < n; i++ {
		a.PushSample(amplitude * math.Sin(2*math.Pi*float64(bin)*float64(i)/size))
	}
}

func TestNewAnalyzerValidation(t *testing.T) {
	tests := []struct {
		name    string
		fftSize int
		opts    []AnalyzerOption
		wantErr bool
	}{
		{"valid 256", 256, nil, false},
		{"valid 1024", 1024, nil, false},
		{"zero", 0, nil, true},
		{"not power of two", 100, nil, true},
		{"too small", 16, nil, true},
		{"too large", 65536, nil, true},
		{"smoothing too high", 256, []AnalyzerOption{WithSmoothing(1.5)}, true},
		{"smoothing negative", 256, []AnalyzerOption{WithSmoothing(-0.1)}, true},
		{"overlap negative", 256, []AnalyzerOption{WithOverlap(-0.1)}, true},
		{"overlap too high", 256, []AnalyzerOption{WithOverlap(0.99)}, true},
		{"inverted range", 256, []AnalyzerOption{WithRange(-30, -100)}, true},
		{"range NaN", 256, []AnalyzerOption{WithRange(math.NaN(), -30)}, true},
		{"custom window", 256, []AnalyzerOption{WithWindowType(window.TypeHann)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAnalyzer(tt.fftSize, tt.opts...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewAnalyzer() error = %v, wantErr %v", err, tt.wantErr)
			}

			if !tt.wantErr && a == nil {
				t.Fatal("NewAnalyzer() returned nil without error")
			}
		})
	}
}

func TestAnalyzerBinCount(t *testing.T) {
	a, err := NewAnalyzer(256)
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}

	if a.FFTSize() != 256 {
		t.Errorf("FFTSize() = %d, want 256", a.FFTSize())
	}

	if a.BinCount() != 128 {
		t.Errorf("BinCount() = %d, want 128", a.BinCount())
	}
}

func TestAnalyzerZeroBeforeFirstFrame(t *testing.T) {
	a, err := NewAnalyzer(256, WithSmoothing(0))
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}

	// One sample short of a full frame.
	pushBinSine(a, 0.5, 32, 255)

	data := make([]float64, 128)
	if n := a.FrequencyData(data); n != 128 {
		t.Fatalf("FrequencyData() = %d, want 128", n)
	}

	for i, v := range data {
		if v != 0 {
			t.Fatalf("bin %d = %g before first frame, want 0", i, v)
		}
	}
}

func TestAnalyzerSinePeakBin(t *testing.T) {
	a, err := NewAnalyzer(256, WithSmoothing(0))
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}

	// Amplitude 0.01 is -40 dBFS. A bin-centered sine under a periodic
	// window lands its full coherent gain on that bin, so the normalized
	// value is (-40 - (-100)) / 70.
	pushBinSine(a, 0.01, 32, 256)

	data := make([]float64, 128)
	a.FrequencyData(data)

	peak := 0
	for i, v := range data {
		if v > data[peak] {
			peak = i
		}
	}

	if peak != 32 {
		t.Fatalf("peak bin = %d, want 32", peak)
	}

	want := (-40.0 - defaultAnalyzerMinDB) / (defaultAnalyzerMaxDB - defaultAnalyzerMinDB)
	if math.Abs(data[32]-want) > 0.01 {
		t.Errorf("bin 32 = %g, want %g", data[32], want)
	}

	// Bins far from the tone and its leakage skirt stay at the floor.
	for _, k := range []int{5, 10, 64, 100, 127} {
		if data[k] != 0 {
			t.Errorf("bin %d = %g, want 0", k, data[k])
		}
	}
}

func TestAnalyzerFullScaleClampsToOne(t *testing.T) {
	a, err := NewAnalyzer(256, WithSmoothing(0))
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}

	pushBinSine(a, 1.0, 16, 256)

	data := make([]float64, 128)
	a.FrequencyData(data)

	if data[16] != 1 {
		t.Errorf("bin 16 = %g for full-scale sine, want clamped 1", data[16])
	}
}

func TestAnalyzerSmoothingDecay(t *testing.T) {
	a, err := NewAnalyzer(256, WithSmoothing(0.5))
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}

	pushBinSine(a, 0.01, 32, 256)

	data := make([]float64, 128)
	a.FrequencyData(data)
	v1 := data[32]

	if v1 < 0.8 {
		t.Fatalf("initial bin value = %g, want >= 0.8", v1)
	}

	// One hop of silence: the smoothed estimate must fall but not vanish.
	for i := 0; i < 128; i++ {
		a.PushSample(0)
	}

	a.FrequencyData(data)
	v2 := data[32]

	if v2 >= v1 {
		t.Fatalf("bin value did not decay: %g -> %g", v1, v2)
	}

	if v2 <= 0 {
		t.Fatalf("bin value = %g after one silent hop, expected gradual decay", v2)
	}

	// Several more silent frames drive it to the bottom of the range.
	for i := 0; i < 640; i++ {
		a.PushSample(0)
	}

	a.FrequencyData(data)
	if data[32] != 0 {
		t.Errorf("bin value = %g after sustained silence, want 0", data[32])
	}
}

func TestAnalyzerFrequencyDataShortDst(t *testing.T) {
	a, err := NewAnalyzer(256, WithSmoothing(0))
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}

	pushBinSine(a, 0.01, 8, 256)

	short := make([]float64, 16)
	if n := a.FrequencyData(short); n != 16 {
		t.Fatalf("FrequencyData(short) = %d, want 16", n)
	}

	if short[8] == 0 {
		t.Error("bin 8 should be populated in short destination")
	}

	long := make([]float64, 200)
	if n := a.FrequencyData(long); n != 128 {
		t.Fatalf("FrequencyData(long) = %d, want 128", n)
	}

	for i := 128; i < len(long); i++ {
		if long[i] != 0 {
			t.Fatalf("tail index %d = %g, want 0", i, long[i])
		}
	}
}

func TestAnalyzerWaveformChronological(t *testing.T) {
	a, err := NewAnalyzer(256)
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}

	for i := 0; i < 300; i++ {
		a.PushSample(float64(i) / 1000)
	}

	dst := make([]float64, 256)
	if n := a.WaveformData(dst); n != 256 {
		t.Fatalf("WaveformData() = %d, want 256", n)
	}

	if dst[0] != 0.044 {
		t.Errorf("oldest sample = %g, want 0.044", dst[0])
	}

	if dst[255] != 0.299 {
		t.Errorf("newest sample = %g, want 0.299", dst[255])
	}

	for i := 1; i < len(dst); i++ {
		if dst[i] <= dst[i-1] {
			t.Fatalf("waveform not chronological at index %d: %g -> %g", i, dst[i-1], dst[i])
		}
	}
}

func TestAnalyzerWaveformPartialFill(t *testing.T) {
	a, err := NewAnalyzer(256)
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}

	for i := 1; i <= 10; i++ {
		a.PushSample(float64(i) / 100)
	}

	dst := make([]float64, 16)
	if n := a.WaveformData(dst); n != 10 {
		t.Fatalf("WaveformData() = %d, want 10", n)
	}

	for i := 0; i < 6; i++ {
		if dst[i] != 0 {
			t.Fatalf("padding index %d = %g, want 0", i, dst[i])
		}
	}

	if dst[6] != 0.01 || dst[15] != 0.1 {
		t.Errorf("window = [%g .. %g], want [0.01 .. 0.1]", dst[6], dst[15])
	}
}

func TestAnalyzerWaveformClamps(t *testing.T) {
	a, err := NewAnalyzer(256)
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}

	a.PushSample(2.5)
	a.PushSample(-3.0)

	dst := make([]float64, 2)
	a.WaveformData(dst)

	if dst[0] != 1 || dst[1] != -1 {
		t.Errorf("clamped samples = [%g, %g], want [1, -1]", dst[0], dst[1])
	}
}

func TestAnalyzerReset(t *testing.T) {
	a, err := NewAnalyzer(256, WithSmoothing(0))
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}

	pushBinSine(a, 0.5, 32, 512)
	a.Reset()

	data := make([]float64, 128)
	a.FrequencyData(data)

	for i, v := range data {
		if v != 0 {
			t.Fatalf("bin %d = %g after Reset(), want 0", i, v)
		}
	}

	wave := make([]float64, 64)
	if n := a.WaveformData(wave); n != 0 {
		t.Errorf("WaveformData() = %d after Reset(), want 0", n)
	}
}
