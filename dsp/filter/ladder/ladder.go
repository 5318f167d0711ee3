package ladder

import (
	"fmt"
	"math"
)

const (
	defaultCutoffHz  = 1000.0
	defaultResonance = 0.8
	defaultDrive     = 1.0

	minCutoffHz  = 1.0
	maxResonance = 4.0
	minDrive     = 0.1
	maxDrive     = 24.0

	// Fraction of the sample rate the cutoff is clamped to during
	// unvalidated Modulate sweeps.
	maxCutoffRatio = 0.45

	thermalVoltage = 5.0
	stateLimit     = 32.0
)

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	cutoffHz  float64
	resonance float64
	drive     float64
}

func defaultConfig() config {
	return config{
		cutoffHz:  defaultCutoffHz,
		resonance: defaultResonance,
		drive:     defaultDrive,
	}
}

// WithCutoffHz sets cutoff in Hz. Must be finite and > 0.
func WithCutoffHz(cutoffHz float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(cutoffHz, minCutoffHz, math.Inf(1), "cutoff"); err != nil {
			return err
		}

		cfg.cutoffHz = cutoffHz

		return nil
	}
}

// WithResonance sets feedback resonance in [0, 4].
func WithResonance(resonance float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(resonance, 0, maxResonance, "resonance"); err != nil {
			return err
		}

		cfg.resonance = resonance

		return nil
	}
}

// WithDrive sets nonlinear drive in [0.1, 24].
func WithDrive(drive float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(drive, minDrive, maxDrive, "drive"); err != nil {
			return err
		}

		cfg.drive = drive

		return nil
	}
}

// State contains explicit ladder runtime state for save/restore workflows.
type State struct {
	Stage      [4]float64
	TanhLast   [3]float64
	PrevOutput float64
}

// Filter is a nonlinear four-stage ladder lowpass.
//
// It uses Huovilainen-style cutoff tuning and resonance compensation with a
// half-sample feedback estimate, saturating each integrator stage with tanh.
// Output level is normalized against resonance so sweeps keep a steady
// perceived volume.
type Filter struct {
	sampleRate float64

	cutoffHz  float64
	resonance float64
	drive     float64

	coefficient float64
	feedback    float64
	driveScale  float64
	outputScale float64

	state State
}

// New constructs a ladder filter.
func New(sampleRate float64, opts ...Option) (*Filter, error) {
	if !isFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("ladder: sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	f := &Filter{
		sampleRate: sampleRate,
		cutoffHz:   cfg.cutoffHz,
		resonance:  cfg.resonance,
		drive:      cfg.drive,
	}

	if err := f.rebuild(); err != nil {
		return nil, err
	}

	return f, nil
}

// SampleRate returns the sample rate in Hz.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

// CutoffHz returns the cutoff frequency in Hz.
func (f *Filter) CutoffHz() float64 { return f.cutoffHz }

// Resonance returns the feedback resonance.
func (f *Filter) Resonance() float64 { return f.resonance }

// Drive returns nonlinear drive.
func (f *Filter) Drive() float64 { return f.drive }

// SetCutoffHz updates cutoff and retunes the ladder.
func (f *Filter) SetCutoffHz(cutoffHz float64) error {
	if err := validateFiniteRange(cutoffHz, minCutoffHz, math.Inf(1), "cutoff"); err != nil {
		return err
	}

	f.cutoffHz = cutoffHz

	return f.rebuild()
}

// SetResonance updates resonance and retunes the ladder.
func (f *Filter) SetResonance(resonance float64) error {
	if err := validateFiniteRange(resonance, 0, maxResonance, "resonance"); err != nil {
		return err
	}

	f.resonance = resonance

	return f.rebuild()
}

// SetDrive updates nonlinear drive.
func (f *Filter) SetDrive(drive float64) error {
	if err := validateFiniteRange(drive, minDrive, maxDrive, "drive"); err != nil {
		return err
	}

	f.drive = drive
	f.driveScale = 0.5 * f.drive / thermalVoltage

	return nil
}

// Modulate updates the cutoff without validation, clamping it to
// [1 Hz, 0.45*sampleRate]. It recomputes only the tuning coefficients and
// is cheap enough to call per sample. The bass voice uses it to sweep the
// filter closed over a note's decay.
func (f *Filter) Modulate(cutoffHz float64) {
	if math.IsNaN(cutoffHz) {
		return
	}

	maxHz := maxCutoffRatio * f.sampleRate
	if cutoffHz < minCutoffHz {
		cutoffHz = minCutoffHz
	}
	if cutoffHz > maxHz {
		cutoffHz = maxHz
	}

	f.cutoffHz = cutoffHz
	f.retune()
}

// Reset clears ladder state.
func (f *Filter) Reset() {
	f.state = State{}
}

// State returns a copy of the current processor state.
func (f *Filter) State() State {
	return f.state
}

// SetState restores an externally saved processor state.
func (f *Filter) SetState(state State) error {
	if !stateIsFinite(state) {
		return fmt.Errorf("ladder: state contains NaN or Inf")
	}

	f.state = state

	return nil
}

// ProcessSample processes one sample.
func (f *Filter) ProcessSample(input float64) float64 {
	if !isFinite(input) {
		input = 0
	}

	s := &f.state

	feedbackSample := 0.5 * (s.Stage[3] + s.PrevOutput)
	driveInput := input - f.feedback*feedbackSample

	shape := f.driveScale
	t0 := math.Tanh(shape * driveInput)
	tS1 := math.Tanh(shape * s.Stage[1])
	tS2 := math.Tanh(shape * s.Stage[2])
	tS3 := math.Tanh(shape * s.Stage[3])

	g := f.coefficient
	s.Stage[0] = clipState(s.Stage[0] + g*(t0-math.Tanh(shape*s.Stage[0])))
	s.TanhLast[0] = math.Tanh(shape * s.Stage[0])

	s.Stage[1] = clipState(s.Stage[1] + g*(s.TanhLast[0]-tS1))
	s.TanhLast[1] = math.Tanh(shape * s.Stage[1])

	s.Stage[2] = clipState(s.Stage[2] + g*(s.TanhLast[1]-tS2))
	s.TanhLast[2] = math.Tanh(shape * s.Stage[2])

	s.Stage[3] = clipState(s.Stage[3] + g*(s.TanhLast[2]-tS3))
	s.PrevOutput = s.Stage[3]

	return sanitizeOutput(f.outputScale * s.Stage[3])
}

// ProcessInPlace processes a mono buffer in place.
func (f *Filter) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = f.ProcessSample(buf[i])
	}
}

func (f *Filter) rebuild() error {
	if err := validateFiniteRange(f.cutoffHz, minCutoffHz, math.Inf(1), "cutoff"); err != nil {
		return err
	}

	if err := validateFiniteRange(f.resonance, 0, maxResonance, "resonance"); err != nil {
		return err
	}

	if err := validateFiniteRange(f.drive, minDrive, maxDrive, "drive"); err != nil {
		return err
	}

	nyquist := f.sampleRate * 0.5
	if f.cutoffHz >= nyquist {
		return fmt.Errorf("ladder: cutoff must be < Nyquist (%f Hz): %f", nyquist, f.cutoffHz)
	}

	f.driveScale = 0.5 * f.drive / thermalVoltage
	f.retune()

	return nil
}

// retune recomputes the Huovilainen tuning coefficient and compensated
// feedback for the current cutoff. Called on every Modulate, so it must
// stay allocation free.
func (f *Filter) retune() {
	fc := f.cutoffHz / f.sampleRate

	fcr := 1.8730*fc*fc*fc + 0.4955*fc*fc - 0.6490*fc + 0.9988
	if fcr < 0 {
		fcr = 0
	}

	f.coefficient = 2 * thermalVoltage * (1 - math.Exp(-2*math.Pi*fcr*fc))

	resonanceComp := -3.9364*fc*fc + 1.8409*fc + 0.9968
	if resonanceComp < 0 {
		resonanceComp = 0
	}

	f.feedback = f.resonance * resonanceComp
	f.outputScale = 1 / (1 + 0.5*f.resonance)
}

func validateFiniteRange(value, min, max float64, name string) error {
	if !isFinite(value) {
		return fmt.Errorf("ladder: %s must be finite: %v", name, value)
	}

	if value < min || value > max {
		return fmt.Errorf("ladder: %s must be in [%g, %g]: %f", name, min, max, value)
	}

	return nil
}

func sanitizeOutput(value float64) float64 {
	if !isFinite(value) {
		return 0
	}

	return value
}

func clipState(value float64) float64 {
	if value > stateLimit {
		return stateLimit
	}

	if value < -stateLimit {
		return -stateLimit
	}

	return value
}

func stateIsFinite(state State) bool {
	for _, v := range state.Stage {
		if !isFinite(v) {
			return false
		}
	}

	for _, v := range state.TanhLast {
		if !isFinite(v) {
			return false
		}
	}

	return isFinite(state.PrevOutput)
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
