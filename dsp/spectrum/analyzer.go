package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/iamhimateja/vinyl-sub001/dsp/window"
)

const (
	defaultAnalyzerSmoothing = 0.8
	defaultAnalyzerOverlap   = 0.5
	defaultAnalyzerMinDB     = -100.0
	defaultAnalyzerMaxDB     = -30.0

	minAnalyzerFFTSize = 32
	maxAnalyzerFFTSize = 32768

	// analyzerFloorDB bounds the raw bin estimate before smoothing.
	analyzerFloorDB = -130.0
)

type analyzerConfig struct {
	windowType window.Type
	smoothing  float64
	overlap    float64
	minDB      float64
	maxDB      float64
}

// AnalyzerOption configures an Analyzer at construction.
type AnalyzerOption func(*analyzerConfig) error

// WithWindowType selects the analysis window.
func WithWindowType(t window.Type) AnalyzerOption {
	return func(cfg *analyzerConfig) error {
		cfg.windowType = t
		return nil
	}
}

// WithSmoothing sets the exponential smoothing factor applied between
// frames, in [0, 0.99]. 0 disables smoothing.
func WithSmoothing(smoothing float64) AnalyzerOption {
	return func(cfg *analyzerConfig) error {
		if smoothing < 0 || smoothing > 0.99 || math.IsNaN(smoothing) {
			return fmt.Errorf("spectrum: smoothing must be in [0, 0.99]: %f", smoothing)
		}
		cfg.smoothing = smoothing
		return nil
	}
}

// WithOverlap sets the analysis frame overlap in [0, 0.95]. Higher overlap
// means more frequent frames for the same FFT size.
func WithOverlap(overlap float64) AnalyzerOption {
	return func(cfg *analyzerConfig) error {
		if overlap < 0 || overlap > 0.95 || math.IsNaN(overlap) {
			return fmt.Errorf("spectrum: overlap must be in [0, 0.95]: %f", overlap)
		}
		cfg.overlap = overlap
		return nil
	}
}

// WithRange sets the dB range mapped onto [0, 1] by FrequencyData.
func WithRange(minDB, maxDB float64) AnalyzerOption {
	return func(cfg *analyzerConfig) error {
		if math.IsNaN(minDB) || math.IsInf(minDB, 0) ||
			math.IsNaN(maxDB) || math.IsInf(maxDB, 0) || minDB >= maxDB {
			return fmt.Errorf("spectrum: invalid dB range [%f, %f]", minDB, maxDB)
		}
		cfg.minDB = minDB
		cfg.maxDB = maxDB
		return nil
	}
}

// Analyzer taps an audio stream and maintains a smoothed magnitude spectrum
// plus the most recent time-domain samples.
//
// Samples enter through Push or PushSample. Every hop samples the analyzer
// windows the newest fftSize samples, transforms them, and folds the result
// into an exponentially smoothed per-bin dB estimate. FrequencyData maps
// that estimate onto [0, 1] across a fixed dB range; WaveformData returns
// the raw sample tail. Not safe for concurrent use.
type Analyzer struct {
	fftSize   int
	hop       int
	smoothing float64
	minDB     float64
	maxDB     float64

	plan       *algofft.Plan[complex128]
	win        []float64
	windowGain float64

	ring   []float64
	write  int
	filled int
	toHop  int

	input  []complex128
	output []complex128
	re     []float64
	im     []float64
	mag    []float64

	db    []float64
	ready bool
}

// NewAnalyzer creates an analyzer for power-of-two FFT sizes.
//
// Defaults: Blackman window, smoothing 0.8, overlap 0.5, range [-100, -30] dB.
func NewAnalyzer(fftSize int, opts ...AnalyzerOption) (*Analyzer, error) {
	if fftSize < minAnalyzerFFTSize || fftSize > maxAnalyzerFFTSize || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("spectrum: fft size must be a power of two in [%d, %d]: %d",
			minAnalyzerFFTSize, maxAnalyzerFFTSize, fftSize)
	}

	cfg := analyzerConfig{
		windowType: window.TypeBlackman,
		smoothing:  defaultAnalyzerSmoothing,
		overlap:    defaultAnalyzerOverlap,
		minDB:      defaultAnalyzerMinDB,
		maxDB:      defaultAnalyzerMaxDB,
	}

	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	win := window.Generate(cfg.windowType, fftSize, window.WithPeriodic())
	if len(win) != fftSize {
		return nil, fmt.Errorf("spectrum: unsupported window type: %v", cfg.windowType)
	}

	gain, err := window.CoherentGain(win)
	if err != nil {
		return nil, fmt.Errorf("spectrum: window gain: %w", err)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan: %w", err)
	}

	hop := int(math.Round(float64(fftSize) * (1 - cfg.overlap)))
	if hop < 1 {
		hop = 1
	}

	bins := fftSize / 2

	return &Analyzer{
		fftSize:    fftSize,
		hop:        hop,
		smoothing:  cfg.smoothing,
		minDB:      cfg.minDB,
		maxDB:      cfg.maxDB,
		plan:       plan,
		win:        win,
		windowGain: gain,
		ring:       make([]float64, fftSize),
		input:      make([]complex128, fftSize),
		output:     make([]complex128, fftSize),
		re:         make([]float64, bins),
		im:         make([]float64, bins),
		mag:        make([]float64, bins),
		db:         make([]float64, bins),
	}, nil
}

// FFTSize returns the analysis frame length in samples.
func (a *Analyzer) FFTSize() int { return a.fftSize }

// BinCount returns the number of frequency bins (FFTSize/2).
func (a *Analyzer) BinCount() int { return a.fftSize / 2 }

// Smoothing returns the inter-frame smoothing factor.
func (a *Analyzer) Smoothing() float64 { return a.smoothing }

// PushSample feeds one sample into the analyzer.
func (a *Analyzer) PushSample(x float64) {
	a.ring[a.write] = x

	a.write++
	if a.write >= a.fftSize {
		a.write = 0
	}

	if a.filled < a.fftSize {
		a.filled++
	}

	a.toHop++
	if a.filled < a.fftSize || a.toHop < a.hop {
		return
	}

	a.toHop = 0
	a.updateFrame()
}

// Push feeds a block of samples into the analyzer.
func (a *Analyzer) Push(block []float64) {
	for _, x := range block {
		a.PushSample(x)
	}
}

// FrequencyData fills dst with normalized bin magnitudes in [0, 1], bin 0
// first. It fills min(len(dst), BinCount()) bins, zeroes any remainder of
// dst, and returns the number of bins written. Before the first complete
// frame every value is 0.
func (a *Analyzer) FrequencyData(dst []float64) int {
	n := min(len(dst), len(a.db))

	if !a.ready {
		for i := range dst {
			dst[i] = 0
		}
		return n
	}

	span := a.maxDB - a.minDB
	for i := 0; i < n; i++ {
		v := (a.db[i] - a.minDB) / span
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		dst[i] = v
	}

	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}

	return n
}

// WaveformData fills dst with the most recent samples in chronological
// order, clamped to [-1, 1] and right aligned; older positions are zeroed
// when fewer samples have been seen. It returns the number of real samples
// written.
func (a *Analyzer) WaveformData(dst []float64) int {
	n := min(len(dst), a.filled)

	for i := range len(dst) - n {
		dst[i] = 0
	}

	read := a.write - n
	if read < 0 {
		read += a.fftSize
	}

	for i := len(dst) - n; i < len(dst); i++ {
		v := a.ring[read]
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		dst[i] = v

		read++
		if read >= a.fftSize {
			read = 0
		}
	}

	return n
}

// Reset clears the ring, the smoothed spectrum, and the frame countdown.
func (a *Analyzer) Reset() {
	clear(a.ring)
	clear(a.db)
	a.write = 0
	a.filled = 0
	a.toHop = 0
	a.ready = false
}

// updateFrame recomputes the smoothed dB spectrum from the newest fftSize
// samples. Runs at most once per hop.
func (a *Analyzer) updateFrame() {
	const eps = 1e-12

	read := a.write
	for i := 0; i < a.fftSize; i++ {
		a.input[i] = complex(a.ring[read]*a.win[i], 0)

		read++
		if read >= a.fftSize {
			read = 0
		}
	}

	if err := a.plan.Forward(a.output, a.input); err != nil {
		return
	}

	for k := range a.re {
		a.re[k] = real(a.output[k])
		a.im[k] = imag(a.output[k])
	}

	MagnitudeFromParts(a.mag, a.re, a.im)

	norm := float64(a.fftSize) * math.Max(a.windowGain, eps)

	for k := range a.db {
		mag := a.mag[k] / norm
		if k > 0 {
			mag *= 2
		}

		valDB := 20 * math.Log10(math.Max(eps, mag))
		if valDB < analyzerFloorDB {
			valDB = analyzerFloorDB
		}

		if !a.ready {
			a.db[k] = valDB
			continue
		}

		a.db[k] = a.smoothing*a.db[k] + (1-a.smoothing)*valDB
	}

	a.ready = true
}
